package session

import (
	"context"

	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/swarm"
	"github.com/pders01/sietch/internal/validation"
)

const (
	RenamePrompt  = "Enter a new name for the harvester"
	RecyclePrompt = "Recycle this harvester's water?"
)

// Session drives the reducer to completion on the caller's goroutine: each
// effect is run before the next action is reduced.
type Session struct {
	exec     *Executor
	prompt   Prompter
	state    state.State
	onChange func(state.State)
}

func New(exec *Executor, prompt Prompter, initial state.State) *Session {
	if prompt == nil {
		prompt = StaticPrompter{}
	}
	return &Session{exec: exec, prompt: prompt, state: initial}
}

// OnChange registers fn to observe every intermediate state.
func (s *Session) OnChange(fn func(state.State)) { s.onChange = fn }

func (s *Session) State() state.State { return s.state }

func (s *Session) Visible() []swarm.Record { return s.state.Visible() }

func (s *Session) Chart() []state.NameCount { return s.state.Chart() }

func (s *Session) Mount(ctx context.Context) error {
	return s.Dispatch(ctx, state.Mounted{})
}

func (s *Session) Refresh(ctx context.Context) error {
	return s.Dispatch(ctx, state.Refresh{})
}

func (s *Session) LoadPage(ctx context.Context, page int) error {
	return s.Dispatch(ctx, state.PageRequested{Page: page})
}

func (s *Session) Next(ctx context.Context) error {
	return s.Dispatch(ctx, state.NextPage{})
}

func (s *Session) Prev(ctx context.Context) error {
	return s.Dispatch(ctx, state.PrevPage{})
}

func (s *Session) Search(term string) {
	_ = s.Dispatch(context.Background(), state.SearchChanged{Term: term})
}

// Create breeds a harvester. Names that fail validation are reported both
// in the status line and as the returned error.
func (s *Session) Create(ctx context.Context, name string) error {
	_ = s.Dispatch(ctx, state.DraftChanged{Text: name})
	_, verr := validation.HarvesterName(name)
	if err := s.Dispatch(ctx, state.BreedSubmitted{Name: name}); err != nil {
		return err
	}
	return verr
}

// Rename asks the prompter for a new name seeded with current.
func (s *Session) Rename(ctx context.Context, id, current string) error {
	name, ok := s.prompt.PromptText(RenamePrompt, current)
	return s.Dispatch(ctx, state.RenameSubmitted{ID: id, Current: current, NewName: name, Accepted: ok})
}

// Delete recycles id after the prompter confirms.
func (s *Session) Delete(ctx context.Context, id string) error {
	ok := s.prompt.Confirm(RecyclePrompt)
	return s.Dispatch(ctx, state.RecycleSubmitted{ID: id, Confirmed: ok})
}

// Dispatch reduces a and keeps running effects until the reducer settles.
// It returns the first remote failure seen along the way.
func (s *Session) Dispatch(ctx context.Context, a state.Action) error {
	var first error
	for a != nil {
		next, eff := state.Reduce(s.state, a)
		s.state = next
		if s.onChange != nil {
			s.onChange(next)
		}
		if eff == nil {
			break
		}
		a = s.exec.Run(ctx, eff)
		if err := outcomeErr(a); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func outcomeErr(a state.Action) error {
	switch a := a.(type) {
	case state.PageFailed:
		return a.Err
	case state.BreedSettled:
		return a.Err
	case state.RenameSettled:
		return a.Err
	case state.RecycleSettled:
		return a.Err
	}
	return nil
}
