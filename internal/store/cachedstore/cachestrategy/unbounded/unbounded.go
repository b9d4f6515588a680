// Package unbounded implements a cache strategy that never evicts.
// Entries leave only through Remove or Purge.
package unbounded

import (
	"sync"

	"github.com/discochess/dataservice/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy = (*Strategy)(nil)

// Strategy is a mutex-guarded map.
type Strategy struct {
	mu      sync.RWMutex
	entries map[string]cachestrategy.Entry
}

// New creates an empty unbounded strategy.
func New() *Strategy {
	return &Strategy{entries: make(map[string]cachestrategy.Entry)}
}

func (s *Strategy) Get(id string) (cachestrategy.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Peek is Get; the map keeps no recency.
func (s *Strategy) Peek(id string) (cachestrategy.Entry, bool) {
	return s.Get(id)
}

func (s *Strategy) Add(id string, e cachestrategy.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = e
}

func (s *Strategy) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

func (s *Strategy) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

func (s *Strategy) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
