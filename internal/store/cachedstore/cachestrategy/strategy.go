// Package cachestrategy defines how the caching layer stores its entries.
package cachestrategy

import "time"

// Entry is a cached payload and the time it was stored.
type Entry struct {
	Payload  string
	StoredAt time.Time
}

// Strategy holds cache entries keyed by record id.
// Implementations must be safe for concurrent use.
type Strategy interface {
	Get(id string) (Entry, bool)
	// Peek is Get without updating recency or other eviction state.
	Peek(id string) (Entry, bool)
	Add(id string, e Entry)
	Remove(id string) bool
	Purge()
	Len() int
}
