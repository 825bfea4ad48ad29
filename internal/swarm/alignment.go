package swarm

import (
	"math/big"
	"time"
)

// AlignmentBase is the fixed offset added to the prescience timestamp.
const AlignmentBase int64 = 10000000000000

// Alignment returns AlignmentBase + timestamp as an exact decimal string.
func Alignment(timestamp int64) string {
	sum := big.NewInt(AlignmentBase)
	sum.Add(sum, big.NewInt(timestamp))
	return sum.String()
}

// NewBreedRequest captures now in Unix milliseconds and derives the alignment from it.
func NewBreedRequest(name string, now time.Time) BreedRequest {
	ts := now.UnixMilli()
	return BreedRequest{
		Name:      name,
		Timestamp: ts,
		Alignment: Alignment(ts),
	}
}
