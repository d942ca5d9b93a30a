// Package store keeps completed analyses in memory for the lifetime of the
// server process. Results live only in the session: nothing is persisted,
// and restarting the server starts empty.
package store

import (
	"sync"

	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/types"
)

// Store is the session-scoped analysis registry. Analyses are immutable
// once stored, so readers share the stored pointers.
type Store struct {
	mu    sync.RWMutex
	items map[string]*types.Analysis
	order []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		items: make(map[string]*types.Analysis),
	}
}

// Put adds an analysis. Re-putting an existing ID replaces the value and
// keeps its position in the listing order.
func (s *Store) Put(a *types.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	s.items[a.ID] = a
	logging.StoreDebug("put %s (%d stored)", a.ID, len(s.items))
}

// Get returns the analysis with the given ID.
func (s *Store) Get(id string) (*types.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	return a, ok
}

// List returns all analyses, newest first.
func (s *Store) List() []*types.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Analysis, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.items[s.order[i]])
	}
	return out
}

// Summaries returns the list-view projection of every analysis, newest
// first.
func (s *Store) Summaries() []types.Summary {
	analyses := s.List()
	out := make([]types.Summary, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, a.Summarize())
	}
	return out
}

// Delete removes one analysis and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	logging.Store("deleted %s (%d remain)", id, len(s.items))
	return true
}

// Clear removes every analysis and returns how many were dropped.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	s.items = make(map[string]*types.Analysis)
	s.order = nil
	if n > 0 {
		logging.Store("cleared %d analyses", n)
	}
	return n
}

// Len returns the number of stored analyses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
