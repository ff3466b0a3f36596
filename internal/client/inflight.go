package client

import (
	"context"
	"sync"

	"github.com/journeycircle/api/internal/model"
)

type inflightEntry struct {
	cancel context.CancelFunc
}

// Inflight tracks at most one outstanding request per artifact id. Starting a
// request under an id aborts any in-flight request with the same id; requests
// under different ids run independently.
type Inflight struct {
	mu      sync.Mutex
	entries map[model.ArtifactID]*inflightEntry
}

func NewInflight() *Inflight {
	return &Inflight{
		entries: make(map[model.ArtifactID]*inflightEntry),
	}
}

// Start derives a cancellable context for a request under id, cancelling any
// predecessor with the same id first. The returned release func must be
// called when the request finishes; it clears the slot only if the slot
// still belongs to this request.
func (f *Inflight) Start(ctx context.Context, id model.ArtifactID) (context.Context, func()) {
	reqCtx, cancel := context.WithCancel(ctx)
	entry := &inflightEntry{cancel: cancel}

	f.mu.Lock()
	if prev, ok := f.entries[id]; ok {
		prev.cancel()
	}
	f.entries[id] = entry
	f.mu.Unlock()

	release := func() {
		f.mu.Lock()
		if current, ok := f.entries[id]; ok && current == entry {
			delete(f.entries, id)
		}
		f.mu.Unlock()
		cancel()
	}
	return reqCtx, release
}

// Cancel aborts the in-flight request under id, if any
func (f *Inflight) Cancel(id model.ArtifactID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[id]; ok {
		entry.cancel()
		delete(f.entries, id)
		return true
	}
	return false
}

// Active reports whether a request is in flight under id
func (f *Inflight) Active(id model.ArtifactID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[id]
	return ok
}
