package gatedstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/discochess/dataservice/internal/store/storetest"
)

type rejectionCounter struct {
	rejections int64
}

func (c *rejectionCounter) IncCounter(name string, delta int64)         { c.rejections += delta }
func (c *rejectionCounter) SetGauge(name string, value int64)           {}
func (c *rejectionCounter) ObserveHistogram(name string, value float64) {}

func TestStore_EnabledPassesThrough(t *testing.T) {
	rec := storetest.NewRecorder()
	s := New(rec, "beta", true, nil)
	ctx := context.Background()

	id, err := s.Save(ctx, "x")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, ok, _ := s.Retrieve(ctx, id); !ok || got != "x" {
		t.Errorf("Retrieve() = %q, %v, want %q, true", got, ok, "x")
	}
	if all, _ := s.FindAll(ctx); len(all) != 1 {
		t.Errorf("FindAll() = %v, want 1 payload", all)
	}
	if deleted, _ := s.Delete(ctx, id); !deleted {
		t.Error("Delete() = false, want true")
	}
	s.ClearCache(ctx)

	if n := len(rec.Calls()); n != 5 {
		t.Errorf("delegate calls = %d, want 5", n)
	}
}

func TestStore_DisabledShortCircuits(t *testing.T) {
	rec := storetest.NewRecorder()
	rec.Put("ID-1", "existing")
	counter := &rejectionCounter{}
	s := New(rec, "beta", false, counter)
	ctx := context.Background()

	_, err := s.Save(ctx, "x")
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("Save() error = %v, want ErrFeatureDisabled", err)
	}
	var disabled *DisabledError
	if !errors.As(err, &disabled) || disabled.Gate != "beta" {
		t.Errorf("Save() error = %#v, want *DisabledError for gate beta", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "beta") || !strings.Contains(msg, "disabled") {
		t.Errorf("error message = %q, want gate name and \"disabled\"", msg)
	}

	got, ok, err := s.Retrieve(ctx, "ID-1")
	if err != nil || ok || got != "" {
		t.Errorf("Retrieve() = %q, %v, %v, want not found, nil", got, ok, err)
	}

	all, err := s.FindAll(ctx)
	if err != nil || all == nil || len(all) != 0 {
		t.Errorf("FindAll() = %#v, %v, want empty, nil", all, err)
	}

	deleted, err := s.Delete(ctx, "ID-1")
	if err != nil || deleted {
		t.Errorf("Delete() = %v, %v, want false, nil", deleted, err)
	}

	if err := s.ClearCache(ctx); err != nil {
		t.Errorf("ClearCache() error = %v", err)
	}

	if calls := rec.Calls(); len(calls) != 0 {
		t.Errorf("delegate received %v while disabled", calls)
	}
	if rec.Len() != 1 {
		t.Errorf("delegate records = %d, want 1", rec.Len())
	}
	if counter.rejections != 5 {
		t.Errorf("rejections = %d, want 5", counter.rejections)
	}
}

func TestStore_EnableDisableIdempotent(t *testing.T) {
	s := New(storetest.NewRecorder(), "beta", true, nil)

	s.Disable()
	s.Disable()
	if s.Enabled() {
		t.Error("Enabled() after Disable() twice = true")
	}

	s.Enable()
	s.Enable()
	if !s.Enabled() {
		t.Error("Enabled() after Enable() twice = false")
	}

	if _, err := s.Save(context.Background(), "x"); err != nil {
		t.Errorf("Save() after re-enable error = %v", err)
	}
	if s.Name() != "beta" {
		t.Errorf("Name() = %q, want beta", s.Name())
	}
}

func TestStore_ReEnableSeesExistingData(t *testing.T) {
	s := New(storetest.NewRecorder(), "beta", true, nil)
	ctx := context.Background()
	id, _ := s.Save(ctx, "kept")

	s.Disable()
	if _, ok, _ := s.Retrieve(ctx, id); ok {
		t.Error("Retrieve() while disabled should report not found")
	}

	s.Enable()
	if got, ok, _ := s.Retrieve(ctx, id); !ok || got != "kept" {
		t.Errorf("Retrieve() after re-enable = %q, %v, want %q, true", got, ok, "kept")
	}
}

func TestStore_PropagatesDelegateErrors(t *testing.T) {
	boom := errors.New("boom")
	rec := storetest.NewRecorder()
	rec.Fail(boom)
	s := New(rec, "beta", true, nil)

	if _, err := s.Save(context.Background(), "x"); err != boom {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
}
