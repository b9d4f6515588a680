// Package store defines the data service contract shared by the base store
// and every decorator layered on top of it.
package store

import "context"

// Store is the five-operation contract implemented by the base store and by
// every decorator. A decorator holds exactly one delegate Store for its whole
// lifetime.
type Store interface {
	// Save stores payload under a freshly generated id and returns the id.
	Save(ctx context.Context, payload string) (string, error)

	// Retrieve returns the payload stored under id.
	// A missing record is reported as ok == false with a nil error.
	Retrieve(ctx context.Context, id string) (payload string, ok bool, err error)

	// FindAll returns every stored payload. Order is not significant.
	FindAll(ctx context.Context) ([]string, error)

	// Delete removes the record under id and reports whether one existed.
	Delete(ctx context.Context, id string) (bool, error)

	// ClearCache drops any cached state held by this layer and propagates
	// the clear to the delegate.
	ClearCache(ctx context.Context) error
}
