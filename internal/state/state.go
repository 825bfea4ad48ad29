// Package state holds the client's view of the swarm as an immutable value
// and the single function that advances it.
package state

import (
	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/swarm"
)

// State is everything the client knows. Values are never mutated in place;
// Reduce returns a new State.
type State struct {
	Items      []swarm.Record
	PageNumber int
	PageSize   int
	TotalPages int
	TotalCount int

	Loading    bool
	Status     string
	SearchTerm string
	Draft      string
	DarkTheme  bool

	// chart is Aggregate(Items), refreshed only when a page loads.
	chart []NameCount

	// fetchFailed marks Status as owned by the last failed fetch, so the
	// next successful one can clear it.
	fetchFailed bool
}

// New returns the state at mount: page 1, nothing loaded.
func New(pageSize int, dark bool) State {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return State{
		PageNumber: 1,
		PageSize:   pageSize,
		DarkTheme:  dark,
	}
}

// HasPrev reports whether a previous page exists.
func (s State) HasPrev() bool { return s.PageNumber > 1 }

// HasNext reports whether the service announced a page after the current one.
func (s State) HasNext() bool { return s.PageNumber < s.TotalPages }

// Visible is the loaded page narrowed by the search term.
func (s State) Visible() []swarm.Record { return Filter(s.Items, s.SearchTerm) }

// Chart is the name frequency ranking of the loaded page.
func (s State) Chart() []NameCount { return s.chart }

// Kind classifies the current status line.
func (s State) Kind() StatusKind { return Classify(s.Status) }
