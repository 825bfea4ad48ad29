package state

import "github.com/pders01/sietch/internal/swarm"

// Action is an input to Reduce: either something the user did or the
// outcome of a remote call.
type Action interface{ action() }

// User intent.
type (
	// Mounted is dispatched once when a view of the swarm opens.
	Mounted struct{}
	// Refresh refetches the current page.
	Refresh struct{}
	// PageRequested jumps to Page.
	PageRequested struct{ Page int }
	NextPage      struct{}
	PrevPage      struct{}
	FirstPage     struct{}
	LastPage      struct{}

	SearchChanged struct{ Term string }
	DraftChanged  struct{ Text string }
	ThemeToggled  struct{}

	// BreedSubmitted asks to create a harvester called Name.
	BreedSubmitted struct{ Name string }
	// RenameSubmitted carries the answer to the rename prompt. Accepted is
	// false when the prompt was cancelled.
	RenameSubmitted struct {
		ID       string
		Current  string
		NewName  string
		Accepted bool
	}
	// RecycleSubmitted carries the answer to the recycle confirmation.
	RecycleSubmitted struct {
		ID        string
		Confirmed bool
	}
)

// Remote outcomes.
type (
	PageLoaded struct{ Page swarm.Page }
	PageFailed struct {
		Page int
		Err  error
	}
	BreedSettled   struct{ Err error }
	RenameSettled  struct{ Err error }
	RecycleSettled struct{ Err error }
)

func (Mounted) action()          {}
func (Refresh) action()          {}
func (PageRequested) action()    {}
func (NextPage) action()         {}
func (PrevPage) action()         {}
func (FirstPage) action()        {}
func (LastPage) action()         {}
func (SearchChanged) action()    {}
func (DraftChanged) action()     {}
func (ThemeToggled) action()     {}
func (BreedSubmitted) action()   {}
func (RenameSubmitted) action()  {}
func (RecycleSubmitted) action() {}
func (PageLoaded) action()       {}
func (PageFailed) action()       {}
func (BreedSettled) action()     {}
func (RenameSettled) action()    {}
func (RecycleSettled) action()   {}

// Effect is a remote call Reduce wants performed. Its outcome comes back
// as an Action.
type Effect interface{ effect() }

type (
	FetchPage struct {
		Page  int
		Limit int
	}
	BreedRecord   struct{ Name string }
	RenameRecord  struct{ ID, Name string }
	RecycleRecord struct{ ID string }
)

func (FetchPage) effect()     {}
func (BreedRecord) effect()   {}
func (RenameRecord) effect()  {}
func (RecycleRecord) effect() {}
