package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pders01/sietch/internal/swarm"
)

// fakeRemote serves an in-memory swarm and records every call.
type fakeRemote struct {
	mu      sync.Mutex
	records []swarm.Record
	nextID  int
	calls   []string
	breeds  []swarm.BreedRequest

	failList    error
	failMutate  error
	loadingSeen []bool
	observe     func() bool
}

func newFakeRemote(names ...string) *fakeRemote {
	f := &fakeRemote{}
	for _, n := range names {
		f.add(n)
	}
	return f
}

func (f *fakeRemote) add(name string) {
	f.nextID++
	f.records = append(f.records, swarm.Record{ID: fmt.Sprintf("w%d", f.nextID), Name: name})
}

func (f *fakeRemote) note(call string) {
	f.calls = append(f.calls, call)
	if f.observe != nil {
		f.loadingSeen = append(f.loadingSeen, f.observe())
	}
}

func (f *fakeRemote) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeRemote) ListPage(_ context.Context, page, limit int) (*swarm.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.note(fmt.Sprintf("list %d", page))
	if f.failList != nil {
		return nil, f.failList
	}
	start := (page - 1) * limit
	end := min(start+limit, len(f.records))
	items := []swarm.Record{}
	if start < len(f.records) {
		items = append(items, f.records[start:end]...)
	}
	return &swarm.Page{
		Number:     page,
		Items:      items,
		TotalPages: (len(f.records) + limit - 1) / limit,
		TotalCount: len(f.records),
	}, nil
}

func (f *fakeRemote) Breed(_ context.Context, req swarm.BreedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.note("breed " + req.Name)
	if f.failMutate != nil {
		return f.failMutate
	}
	f.breeds = append(f.breeds, req)
	f.add(req.Name)
	return nil
}

func (f *fakeRemote) Rename(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.note("rename " + id)
	if f.failMutate != nil {
		return f.failMutate
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Name = name
			return nil
		}
	}
	return &swarm.RemoteError{StatusCode: 404, Message: "no such worm"}
}

func (f *fakeRemote) Recycle(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.note("recycle " + id)
	if f.failMutate != nil {
		return f.failMutate
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &swarm.RemoteError{StatusCode: 404, Message: "no such worm"}
}
