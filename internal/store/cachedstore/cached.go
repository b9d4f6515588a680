// Package cachedstore provides a time-to-live caching layer for store.Store.
//
// Point reads are served from the cache while an entry is fresh. Bulk reads
// (FindAll) always go to the delegate and never touch the cache. Expiry is
// evaluated lazily on read; there is no background sweep.
package cachedstore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/discochess/dataservice/internal/stats"
	"github.com/discochess/dataservice/internal/store"
	"github.com/discochess/dataservice/internal/store/cachedstore/cachestrategy"
	"github.com/discochess/dataservice/internal/store/cachedstore/cachestrategy/unbounded"
)

// DefaultTTL is used when no positive TTL is configured.
const DefaultTTL = 60 * time.Second

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store wraps another Store with a TTL cache of point reads and writes.
type Store struct {
	store.Forwarder

	entries   cachestrategy.Strategy
	ttl       time.Duration
	now       func() time.Time
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long an entry stays fresh. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now as the source of entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrategy sets where entries are kept. The default never evicts.
func WithStrategy(strategy cachestrategy.Strategy) Option {
	return func(s *Store) {
		if strategy != nil {
			s.entries = strategy
		}
	}
}

// WithStats sets the collector that receives hit, miss and size samples.
func WithStats(c stats.Collector) Option {
	return func(s *Store) {
		s.collector = stats.OrNoop(c)
	}
}

// New creates a caching layer over next.
func New(next store.Store, opts ...Option) *Store {
	s := &Store{
		Forwarder: store.Forward(next),
		entries:   unbounded.New(),
		ttl:       DefaultTTL,
		now:       time.Now,
		collector: stats.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes through to the delegate and caches the payload under the new id.
func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	id, err := s.Next().Save(ctx, payload)
	if err != nil {
		return "", err
	}
	s.put(id, payload)
	return id, nil
}

// Retrieve serves fresh entries from the cache without calling the delegate.
// On a miss the delegate's result is cached if the record exists.
func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	if e, ok := s.entries.Get(id); ok && s.fresh(e) {
		s.hits.Add(1)
		s.collector.IncCounter(stats.MetricCacheHits, 1)
		return e.Payload, true, nil
	}

	s.misses.Add(1)
	s.collector.IncCounter(stats.MetricCacheMisses, 1)

	payload, ok, err := s.Next().Retrieve(ctx, id)
	if err != nil || !ok {
		return "", false, err
	}
	s.put(id, payload)
	return payload, true, nil
}

// Delete drops the cached entry, then deletes through the delegate.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.entries.Remove(id)
	s.collector.SetGauge(stats.MetricCacheSize, int64(s.entries.Len()))
	return s.Next().Delete(ctx, id)
}

// ClearCache drops every entry, resets the counters and clears the delegate.
func (s *Store) ClearCache(ctx context.Context) error {
	s.entries.Purge()
	s.hits.Store(0)
	s.misses.Store(0)
	s.collector.SetGauge(stats.MetricCacheSize, 0)
	return s.Next().ClearCache(ctx)
}

// Stats returns current cache statistics.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Size:   s.entries.Len(),
	}
}

// Len returns the number of cached entries, fresh or stale.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Hits returns the number of retrievals served from the cache.
func (s *Store) Hits() int64 {
	return s.hits.Load()
}

// Misses returns the number of retrievals that went to the delegate.
func (s *Store) Misses() int64 {
	return s.misses.Load()
}

// HitRate returns the fraction of retrievals served from the cache.
func (s *Store) HitRate() float64 {
	return s.Stats().HitRate()
}

// Peek returns the cached payload under id without checking freshness or
// touching the counters or eviction order.
func (s *Store) Peek(id string) (string, bool) {
	e, ok := s.entries.Peek(id)
	return e.Payload, ok
}

// TTL returns the configured time-to-live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) put(id, payload string) {
	s.entries.Add(id, cachestrategy.Entry{Payload: payload, StoredAt: s.now()})
	s.collector.SetGauge(stats.MetricCacheSize, int64(s.entries.Len()))
}

// fresh reports whether e is no older than the TTL.
func (s *Store) fresh(e cachestrategy.Entry) bool {
	return s.now().Sub(e.StoredAt) <= s.ttl
}
