// Package storetest provides a recording store.Store fake for decorator tests.
package storetest

import (
	"context"
	"strconv"
	"sync"

	"github.com/discochess/dataservice/internal/store"
)

// Compile-time check that Recorder implements store.Store.
var _ store.Store = (*Recorder)(nil)

// Recorder is an in-memory store that remembers which operations reached it.
// When a failure is set, every operation returns it without touching the data.
type Recorder struct {
	mu    sync.Mutex
	data  map[string]string
	next  int
	calls []string
	err   error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{data: make(map[string]string)}
}

// Fail makes every subsequent operation return err. A nil err clears it.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Put stores payload under id directly, bypassing call recording.
func (r *Recorder) Put(id, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[id] = payload
}

// Raw returns the value stored under id without recording a call.
func (r *Recorder) Raw(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[id]
	return v, ok
}

// Len returns the number of stored records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Calls returns the operation names received so far, in order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many times op was received.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (r *Recorder) record(op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	return r.err
}

func (r *Recorder) Save(ctx context.Context, payload string) (string, error) {
	if err := r.record("Save"); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := "ID-" + strconv.Itoa(r.next)
	r.data[id] = payload
	return id, nil
}

func (r *Recorder) Retrieve(ctx context.Context, id string) (string, bool, error) {
	if err := r.record("Retrieve"); err != nil {
		return "", false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[id]
	return v, ok, nil
}

func (r *Recorder) FindAll(ctx context.Context) ([]string, error) {
	if err := r.record("FindAll"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]string, 0, len(r.data))
	for _, v := range r.data {
		all = append(all, v)
	}
	return all, nil
}

func (r *Recorder) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.record("Delete"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[id]
	delete(r.data, id)
	return ok, nil
}

func (r *Recorder) ClearCache(ctx context.Context) error {
	return r.record("ClearCache")
}
