// Package session runs the effects the reducer asks for and drives the
// reducer synchronously for callers that are not a bubbletea program.
package session

import (
	"context"
	"time"

	"github.com/pders01/sietch/internal/debuglog"
	"github.com/pders01/sietch/internal/search"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/storage"
	"github.com/pders01/sietch/internal/swarm"
)

// Remote is the swarm service as the client sees it. *swarm.Client
// implements it.
type Remote interface {
	ListPage(ctx context.Context, page, limit int) (*swarm.Page, error)
	Breed(ctx context.Context, req swarm.BreedRequest) error
	Rename(ctx context.Context, id, newName string) error
	Recycle(ctx context.Context, id string) error
}

// Journal receives one entry per mutation attempt. *storage.Store
// implements it.
type Journal interface {
	Append(entry *storage.Entry) error
}

// Executor performs a single effect and reports its outcome as an action.
type Executor struct {
	remote  Remote
	journal Journal
	index   search.UpdateListener
	now     func() time.Time
}

type Option func(*Executor)

// WithJournal records every mutation attempt in j.
func WithJournal(j Journal) Option {
	return func(e *Executor) { e.journal = j }
}

// WithIndex notifies s about journaled entries when s keeps its own index.
func WithIndex(s search.Searcher) Option {
	return func(e *Executor) {
		if l, ok := s.(search.UpdateListener); ok {
			e.index = l
		}
	}
}

// WithClock replaces time.Now for breed timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

func NewExecutor(remote Remote, opts ...Option) *Executor {
	e := &Executor{remote: remote, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs eff and returns the action that settles it. It never returns
// nil for a known effect.
func (e *Executor) Run(ctx context.Context, eff state.Effect) state.Action {
	switch eff := eff.(type) {
	case state.FetchPage:
		page, err := e.remote.ListPage(ctx, eff.Page, eff.Limit)
		if err != nil {
			debuglog.WithFields(debuglog.Fields{"page": eff.Page}).Warnf("fetch failed: %v", err)
			return state.PageFailed{Page: eff.Page, Err: err}
		}
		page.Number = eff.Page
		return state.PageLoaded{Page: *page}

	case state.BreedRecord:
		req := swarm.NewBreedRequest(eff.Name, e.now())
		err := e.remote.Breed(ctx, req)
		e.record(&storage.Entry{
			Op:        storage.OpBreed,
			Name:      req.Name,
			Alignment: req.Alignment,
			Timestamp: time.UnixMilli(req.Timestamp),
		}, err)
		return state.BreedSettled{Err: err}

	case state.RenameRecord:
		err := e.remote.Rename(ctx, eff.ID, eff.Name)
		e.record(&storage.Entry{Op: storage.OpRename, RecordID: eff.ID, Name: eff.Name}, err)
		return state.RenameSettled{Err: err}

	case state.RecycleRecord:
		err := e.remote.Recycle(ctx, eff.ID)
		e.record(&storage.Entry{Op: storage.OpRecycle, RecordID: eff.ID}, err)
		return state.RecycleSettled{Err: err}
	}

	debuglog.Errorf("unknown effect %T", eff)
	return nil
}

// record journals a mutation outcome. Journal failures are logged, never
// surfaced: the remote call already happened.
func (e *Executor) record(entry *storage.Entry, err error) {
	fields := debuglog.Fields{"op": entry.Op, "id": entry.RecordID, "name": entry.Name}
	if err != nil {
		debuglog.WithFields(fields).Warnf("mutation failed: %v", err)
	} else {
		debuglog.WithFields(fields).Infof("mutation applied")
	}

	if e.journal == nil {
		return
	}
	entry.OK = err == nil
	if err != nil {
		entry.Message = err.Error()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = e.now()
	}
	if jerr := e.journal.Append(entry); jerr != nil {
		debuglog.Warnf("journal append: %v", jerr)
		return
	}
	if e.index != nil {
		e.index.OnEntryAppended(entry)
	}
}
