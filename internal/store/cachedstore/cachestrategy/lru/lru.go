// Package lru implements a bounded cache strategy with LRU eviction.
package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/dataservice/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy = (*Strategy)(nil)

// Strategy implements LRU eviction.
type Strategy struct {
	cache *lru.Cache[string, cachestrategy.Entry]
}

// New creates a new LRU strategy with the given capacity.
func New(capacity int) (*Strategy, error) {
	c, err := lru.New[string, cachestrategy.Entry](capacity)
	if err != nil {
		return nil, err
	}
	return &Strategy{cache: c}, nil
}

func (s *Strategy) Get(id string) (cachestrategy.Entry, bool) {
	return s.cache.Get(id)
}

func (s *Strategy) Peek(id string) (cachestrategy.Entry, bool) {
	return s.cache.Peek(id)
}

func (s *Strategy) Add(id string, e cachestrategy.Entry) {
	s.cache.Add(id, e)
}

func (s *Strategy) Remove(id string) bool {
	return s.cache.Remove(id)
}

func (s *Strategy) Purge() {
	s.cache.Purge()
}

func (s *Strategy) Len() int {
	return s.cache.Len()
}
