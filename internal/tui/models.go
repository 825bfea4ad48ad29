package tui

import (
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/swarm"
)

type View int

const (
	ViewSwarm View = iota
	ViewBreed
	ViewSearch
	ViewRename
	ViewRecycleConfirm
	ViewHelp
)

// recordItem adapts a swarm record to the bubbles list.
type recordItem struct {
	record swarm.Record
}

func (i recordItem) Title() string       { return i.record.Name }
func (i recordItem) Description() string { return "id " + shortID(i.record.ID, 24) }
func (i recordItem) FilterValue() string { return i.record.Name }

// actionMsg carries the outcome of an effect back into Update.
type actionMsg struct {
	action state.Action
}

type helpRenderedMsg struct {
	content string
}
