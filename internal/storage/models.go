package storage

import (
	"time"
)

// Op names the kind of mutation a journal entry records.
type Op string

const (
	OpBreed   Op = "breed"
	OpRename  Op = "rename"
	OpRecycle Op = "recycle"
)

// Entry is one mutation attempt against the swarm service. The journal is a
// local audit trail, not a cache: it never feeds the page state.
type Entry struct {
	ID        string    `json:"id"`
	Op        Op        `json:"op"`
	RecordID  string    `json:"record_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Alignment string    `json:"alignment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message,omitempty"`
}

// Outcome renders OK as the word shown in listings.
func (e *Entry) Outcome() string {
	if e.OK {
		return "ok"
	}
	return "failed"
}
