package state

import (
	"slices"
	"strings"

	"github.com/pders01/sietch/internal/swarm"
)

// ChartSize is how many names the frequency chart keeps.
const ChartSize = 5

// NameCount is one bar of the frequency chart.
type NameCount struct {
	Name  string
	Count int
}

// Filter keeps the records whose name contains term, ignoring case. An
// empty term returns items unchanged.
func Filter(items []swarm.Record, term string) []swarm.Record {
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	out := make([]swarm.Record, 0, len(items))
	for _, r := range items {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate counts records per name and returns the ChartSize most frequent,
// highest first. Equal counts keep the order in which names first appear.
func Aggregate(items []swarm.Record) []NameCount {
	index := make(map[string]int, len(items))
	var counts []NameCount
	for _, r := range items {
		if i, ok := index[r.Name]; ok {
			counts[i].Count++
			continue
		}
		index[r.Name] = len(counts)
		counts = append(counts, NameCount{Name: r.Name, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b NameCount) int {
		return b.Count - a.Count
	})

	if len(counts) > ChartSize {
		counts = counts[:ChartSize]
	}
	return counts
}
