// Package loggedstore provides a store.Store layer that traces every call.
package loggedstore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/dataservice/internal/stats"
	"github.com/discochess/dataservice/internal/store"
)

// MaxPayloadLen is the number of characters of a payload included in a trace.
const MaxPayloadLen = 50

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store logs entry, outcome and elapsed time around each delegate call.
// It never alters results and returns delegate errors unchanged.
type Store struct {
	store.Forwarder

	logger    *zap.Logger
	collector stats.Collector
}

// New creates a logging layer over next.
// A nil logger or collector disables that output.
func New(next store.Store, logger *zap.Logger, collector stats.Collector) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Forwarder: store.Forward(next),
		logger:    logger,
		collector: stats.OrNoop(collector),
	}
}

func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	t := s.begin("save", zap.String("payload", Truncate(payload)))
	id, err := s.Next().Save(ctx, payload)
	t.end(err, zap.String("result", "created "+id))
	return id, err
}

func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	t := s.begin("retrieve", zap.String("id", id))
	payload, ok, err := s.Next().Retrieve(ctx, id)
	result := "not found"
	if ok {
		result = "found"
	}
	t.end(err, zap.String("result", result))
	return payload, ok, err
}

func (s *Store) FindAll(ctx context.Context) ([]string, error) {
	t := s.begin("findAll")
	all, err := s.Next().FindAll(ctx)
	t.end(err, zap.Int("count", len(all)))
	return all, err
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	t := s.begin("delete", zap.String("id", id))
	deleted, err := s.Next().Delete(ctx, id)
	result := "not deleted"
	if deleted {
		result = "deleted"
	}
	t.end(err, zap.String("result", result))
	return deleted, err
}

func (s *Store) ClearCache(ctx context.Context) error {
	t := s.begin("clearCache")
	err := s.Next().ClearCache(ctx)
	t.end(err)
	return err
}

// Truncate shortens payload to MaxPayloadLen characters followed by "...".
// An empty payload is rendered as "null".
func Truncate(payload string) string {
	if payload == "" {
		return "null"
	}
	runes := []rune(payload)
	if len(runes) <= MaxPayloadLen {
		return payload
	}
	return string(runes[:MaxPayloadLen]) + "..."
}

// trace times one delegate call.
type trace struct {
	s     *Store
	op    string
	start time.Time
}

func (s *Store) begin(op string, fields ...zap.Field) trace {
	s.logger.Debug(op+" started", append(fields, zap.String("operation", op))...)
	return trace{s: s, op: op, start: time.Now()}
}

func (c trace) end(err error, fields ...zap.Field) {
	elapsed := time.Since(c.start)
	c.s.collector.ObserveHistogram(stats.MetricOperationDuration, elapsed.Seconds())

	base := []zap.Field{
		zap.String("operation", c.op),
		zap.Int64("elapsed_ms", elapsed.Milliseconds()),
	}
	if err != nil {
		c.s.collector.IncCounter(stats.MetricOperationErrors, 1)
		c.s.logger.Warn(c.op+" failed", append(base, zap.Error(err))...)
		return
	}
	c.s.logger.Debug(c.op+" succeeded", append(base, fields...)...)
}
