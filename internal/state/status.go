package state

import (
	"errors"
	"strings"

	"github.com/pders01/sietch/internal/swarm"
)

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusWarn:
		return "warn"
	case StatusError:
		return "error"
	default:
		return "info"
	}
}

// Canonical status lines. Classify keys off their leading words.
const (
	MsgSummoning     = "Summoning..."
	MsgBred          = "BLESS THE MAKER. Space was folded."
	MsgBreedFailed   = "FAILURE: The Desert Rejects You."
	MsgRenaming      = "Renaming..."
	MsgRenamed       = "BLESS THE MAKER. The worm answers to a new name."
	MsgRenameFailed  = "FAILURE: The name was rejected."
	MsgRecycling     = "Recycling..."
	MsgRecycled      = "BLESS THE MAKER. The water returns to the tribe."
	MsgRecycleFailed = "FAILURE: Could not recycle water."
	MsgFetchFailed   = "FAILURE: Could not see the swarm."
)

// Classify maps a free-text status line to a StatusKind by keyword.
func Classify(status string) StatusKind {
	upper := strings.ToUpper(status)
	switch {
	case status == "":
		return StatusInfo
	case strings.Contains(upper, "FAILURE"), strings.Contains(upper, "ERROR"):
		return StatusError
	case strings.Contains(upper, "WARNING"):
		return StatusWarn
	case strings.Contains(upper, "BLESS"), strings.Contains(upper, "SUCCESS"):
		return StatusSuccess
	default:
		return StatusInfo
	}
}

func validationStatus(err error) string {
	return "WARNING: " + capitalize(err.Error()) + "."
}

// failureStatus prefers the message the service attached to a rejection.
func failureStatus(err error, generic string) string {
	if msg := strings.TrimSpace(swarm.RemoteMessage(err)); msg != "" {
		return "FAILURE: " + msg
	}
	if errors.Is(err, swarm.ErrMalformed) {
		return generic + " (malformed response)"
	}
	return generic
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
