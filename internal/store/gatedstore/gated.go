// Package gatedstore provides a store.Store layer behind a named on/off switch.
//
// While the gate is disabled no call reaches the delegate. Save fails loudly
// with a *DisabledError; reads and deletes quietly report nothing.
package gatedstore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/discochess/dataservice/internal/stats"
	"github.com/discochess/dataservice/internal/store"
)

// ErrFeatureDisabled matches every *DisabledError via errors.Is.
var ErrFeatureDisabled = errors.New("feature disabled")

// DisabledError is returned by Save while the gate is off.
type DisabledError struct {
	Gate string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("feature %q is disabled", e.Gate)
}

// Is reports whether target is ErrFeatureDisabled.
func (e *DisabledError) Is(target error) bool {
	return target == ErrFeatureDisabled
}

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store gates every operation on a single enabled flag.
type Store struct {
	store.Forwarder

	name      string
	enabled   atomic.Bool
	collector stats.Collector
}

// New creates a gate named name over next, initially enabled or not.
// The collector is optional; if nil, a no-op collector is used.
func New(next store.Store, name string, enabled bool, collector stats.Collector) *Store {
	s := &Store{
		Forwarder: store.Forward(next),
		name:      name,
		collector: stats.OrNoop(collector),
	}
	s.enabled.Store(enabled)
	return s
}

func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	if !s.open() {
		return "", &DisabledError{Gate: s.name}
	}
	return s.Next().Save(ctx, payload)
}

func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	if !s.open() {
		return "", false, nil
	}
	return s.Next().Retrieve(ctx, id)
}

func (s *Store) FindAll(ctx context.Context) ([]string, error) {
	if !s.open() {
		return []string{}, nil
	}
	return s.Next().FindAll(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if !s.open() {
		return false, nil
	}
	return s.Next().Delete(ctx, id)
}

func (s *Store) ClearCache(ctx context.Context) error {
	if !s.open() {
		return nil
	}
	return s.Next().ClearCache(ctx)
}

// Enable opens the gate. Calling it on an open gate is a no-op.
func (s *Store) Enable() {
	s.enabled.Store(true)
}

// Disable closes the gate. Calling it on a closed gate is a no-op.
func (s *Store) Disable() {
	s.enabled.Store(false)
}

// Enabled reports whether calls currently reach the delegate.
func (s *Store) Enabled() bool {
	return s.enabled.Load()
}

// Name returns the gate name.
func (s *Store) Name() string {
	return s.name
}

// open reports whether the gate is enabled, counting a rejection if not.
func (s *Store) open() bool {
	if s.enabled.Load() {
		return true
	}
	s.collector.IncCounter(stats.MetricGateRejections, 1)
	return false
}
