package store

import "context"

// Compile-time check that Forwarder implements Store.
var _ Store = Forwarder{}

// Forwarder passes every call through to its delegate unchanged.
// Concrete decorators embed it and override only the operations they change.
type Forwarder struct {
	next Store
}

// Forward returns a Forwarder bound to next.
func Forward(next Store) Forwarder {
	return Forwarder{next: next}
}

// Next returns the wrapped delegate.
func (f Forwarder) Next() Store {
	return f.next
}

func (f Forwarder) Save(ctx context.Context, payload string) (string, error) {
	return f.next.Save(ctx, payload)
}

func (f Forwarder) Retrieve(ctx context.Context, id string) (string, bool, error) {
	return f.next.Retrieve(ctx, id)
}

func (f Forwarder) FindAll(ctx context.Context) ([]string, error) {
	return f.next.FindAll(ctx)
}

func (f Forwarder) Delete(ctx context.Context, id string) (bool, error) {
	return f.next.Delete(ctx, id)
}

func (f Forwarder) ClearCache(ctx context.Context) error {
	return f.next.ClearCache(ctx)
}
