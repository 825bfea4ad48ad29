package swarm

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when a success response cannot be decoded.
var ErrMalformed = errors.New("malformed response body")

// RemoteError is a non-2xx answer from the service.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// RemoteMessage extracts the human-readable message the service attached
// to a rejection, if any.
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
