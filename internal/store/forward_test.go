package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/dataservice/internal/store"
	"github.com/discochess/dataservice/internal/store/storetest"
)

func TestForwarder_PassesThrough(t *testing.T) {
	rec := storetest.NewRecorder()
	f := store.Forward(rec)
	ctx := context.Background()

	id, err := f.Save(ctx, "payload")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := f.Retrieve(ctx, id)
	if err != nil || !ok || got != "payload" {
		t.Errorf("Retrieve() = %q, %v, %v, want %q, true, nil", got, ok, err, "payload")
	}

	all, err := f.FindAll(ctx)
	if err != nil || len(all) != 1 {
		t.Errorf("FindAll() = %v, %v, want 1 payload", all, err)
	}

	deleted, err := f.Delete(ctx, id)
	if err != nil || !deleted {
		t.Errorf("Delete() = %v, %v, want true, nil", deleted, err)
	}

	if err := f.ClearCache(ctx); err != nil {
		t.Errorf("ClearCache() error = %v", err)
	}

	want := []string{"Save", "Retrieve", "FindAll", "Delete", "ClearCache"}
	if calls := rec.Calls(); len(calls) != len(want) {
		t.Fatalf("Calls() = %v, want %v", calls, want)
	} else {
		for i := range want {
			if calls[i] != want[i] {
				t.Errorf("Calls()[%d] = %q, want %q", i, calls[i], want[i])
			}
		}
	}

	if f.Next() != store.Store(rec) {
		t.Error("Next() should return the wrapped delegate")
	}
}

func TestForwarder_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	rec := storetest.NewRecorder()
	rec.Fail(boom)
	f := store.Forward(rec)
	ctx := context.Background()

	if _, err := f.Save(ctx, "x"); err != boom {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
	if _, _, err := f.Retrieve(ctx, "ID-1"); err != boom {
		t.Errorf("Retrieve() error = %v, want %v", err, boom)
	}
	if _, err := f.FindAll(ctx); err != boom {
		t.Errorf("FindAll() error = %v, want %v", err, boom)
	}
	if _, err := f.Delete(ctx, "ID-1"); err != boom {
		t.Errorf("Delete() error = %v, want %v", err, boom)
	}
	if err := f.ClearCache(ctx); err != boom {
		t.Errorf("ClearCache() error = %v, want %v", err, boom)
	}
}
