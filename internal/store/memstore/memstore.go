// Package memstore provides the in-memory base store that terminates every
// decorator chain.
package memstore

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/discochess/dataservice/internal/store"
)

// IDPrefix is prepended to the counter value of every generated id.
const IDPrefix = "ID-"

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a concurrent in-memory mapping from generated ids to payloads.
// It never returns an error.
type Store struct {
	records *xsync.MapOf[string, string]
	counter atomic.Int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: xsync.NewMapOf[string, string](),
	}
}

// Save stores payload under the next id.
func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	id := IDPrefix + strconv.FormatInt(s.counter.Add(1), 10)
	s.records.Store(id, payload)
	return id, nil
}

// Retrieve returns the payload stored under id.
func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	payload, ok := s.records.Load(id)
	return payload, ok, nil
}

// FindAll returns a snapshot of every stored payload.
func (s *Store) FindAll(ctx context.Context) ([]string, error) {
	all := make([]string, 0, s.records.Size())
	s.records.Range(func(_ string, payload string) bool {
		all = append(all, payload)
		return true
	})
	return all, nil
}

// Delete removes the record under id.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := s.records.LoadAndDelete(id)
	return ok, nil
}

// ClearCache is a no-op; the base store holds no cache.
func (s *Store) ClearCache(ctx context.Context) error {
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return s.records.Size()
}

// Raw returns the value exactly as stored under id, bypassing every decorator.
func (s *Store) Raw(id string) (string, bool) {
	return s.records.Load(id)
}
