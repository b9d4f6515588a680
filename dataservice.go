// Package dataservice provides an in-memory key-value data service assembled
// from stackable layers: logging, TTL caching, reversible obfuscation,
// compression and a feature gate, over a concurrent base store.
//
// Example usage:
//
//	client, err := dataservice.New(
//	    dataservice.WithObfuscationKey("k"),
//	    dataservice.WithTTL(5*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	id, err := client.Save(ctx, "hello")
//	payload, ok, err := client.Retrieve(ctx, id)
//
// The stack is fixed when the client is built. Client.Cache and Client.Gate
// return typed handles to the caching and gate layers so callers can read
// cache statistics or flip the gate without inspecting the chain.
package dataservice

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/dataservice/internal/codec/zstdcodec"
	"github.com/discochess/dataservice/internal/store"
	"github.com/discochess/dataservice/internal/store/cachedstore"
	"github.com/discochess/dataservice/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/dataservice/internal/store/compressedstore"
	"github.com/discochess/dataservice/internal/store/gatedstore"
	"github.com/discochess/dataservice/internal/store/loggedstore"
	"github.com/discochess/dataservice/internal/store/memstore"
	"github.com/discochess/dataservice/internal/store/obfuscatedstore"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("dataservice: client closed")

	// ErrInvalidLayer indicates an unknown layer name.
	ErrInvalidLayer = errors.New("dataservice: invalid layer")

	// ErrDuplicateLayer indicates a layer was configured more than once.
	ErrDuplicateLayer = errors.New("dataservice: duplicate layer")

	// ErrInvalidTTL indicates a non-positive cache TTL.
	ErrInvalidTTL = errors.New("dataservice: ttl must be positive")

	// ErrFeatureDisabled is returned by Save while the feature gate is off.
	ErrFeatureDisabled = gatedstore.ErrFeatureDisabled
)

// Compile-time check that Client implements store.Store.
var _ store.Store = (*Client)(nil)

// Client is a composed data service.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	store  store.Store
	base   *memstore.Store
	cache  *cachedstore.Store
	gate   *gatedstore.Store
	layers []Layer
	logger *zap.Logger
	closed atomic.Bool
}

// New builds a Client with the given options.
// Without WithLayers the DefaultLayers stack is built.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	c := &Client{
		base:   memstore.New(),
		layers: cfg.layers,
		logger: cfg.logger,
	}

	seen := make(map[Layer]bool, len(cfg.layers))
	var s store.Store = c.base
	// Wrap innermost first so layers[0] ends up outermost.
	for i := len(cfg.layers) - 1; i >= 0; i-- {
		layer := cfg.layers[i]
		if !layer.valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLayer, layer)
		}
		if seen[layer] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayer, layer)
		}
		seen[layer] = true

		next, err := c.wrap(layer, s, cfg)
		if err != nil {
			return nil, fmt.Errorf("building %s layer: %w", layer, err)
		}
		s = next
	}
	c.store = s

	c.logger.Debug("client initialized",
		zap.Stringers("layers", c.layers),
		zap.Duration("ttl", cfg.ttl),
		zap.String("gate", cfg.gateName),
	)

	return c, nil
}

// wrap builds one layer around next.
func (c *Client) wrap(layer Layer, next store.Store, cfg options) (store.Store, error) {
	switch layer {
	case LayerLogging:
		return loggedstore.New(next, cfg.logger.Named("store"), cfg.stats), nil

	case LayerCaching:
		if cfg.ttl <= 0 {
			return nil, ErrInvalidTTL
		}
		cacheOpts := []cachedstore.Option{
			cachedstore.WithTTL(cfg.ttl),
			cachedstore.WithClock(cfg.clock),
			cachedstore.WithStats(cfg.stats),
		}
		if cfg.cacheCapacity > 0 {
			strategy, err := lru.New(cfg.cacheCapacity)
			if err != nil {
				return nil, fmt.Errorf("creating LRU strategy: %w", err)
			}
			cacheOpts = append(cacheOpts, cachedstore.WithStrategy(strategy))
		}
		c.cache = cachedstore.New(next, cacheOpts...)
		return c.cache, nil

	case LayerObfuscation:
		obfuscated, err := obfuscatedstore.New(next, cfg.key)
		if err != nil {
			return nil, err
		}
		return obfuscated, nil

	case LayerGate:
		c.gate = gatedstore.New(next, cfg.gateName, cfg.gateEnabled, cfg.stats)
		return c.gate, nil

	case LayerCompression:
		cd := cfg.codec
		if cd == nil {
			z, err := zstdcodec.New()
			if err != nil {
				return nil, fmt.Errorf("creating zstd codec: %w", err)
			}
			cd = z
		}
		return compressedstore.New(next, cd), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidLayer, layer)
}

// Save stores payload and returns its new id.
func (c *Client) Save(ctx context.Context, payload string) (string, error) {
	if c.closed.Load() {
		return "", ErrClosed
	}
	return c.store.Save(ctx, payload)
}

// Retrieve returns the payload stored under id. A missing record is
// reported as ok == false with a nil error.
func (c *Client) Retrieve(ctx context.Context, id string) (string, bool, error) {
	if c.closed.Load() {
		return "", false, ErrClosed
	}
	return c.store.Retrieve(ctx, id)
}

// FindAll returns every stored payload in no particular order.
func (c *Client) FindAll(ctx context.Context) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.store.FindAll(ctx)
}

// Delete removes the record under id and reports whether one existed.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	return c.store.Delete(ctx, id)
}

// ClearCache clears every cache in the stack.
func (c *Client) ClearCache(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.store.ClearCache(ctx)
}

// Close marks the client closed. Later calls return ErrClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	c.logger.Debug("client closed")
	return nil
}

// Store returns the outermost layer of the stack.
func (c *Client) Store() store.Store {
	return c.store
}

// Base returns the base store at the bottom of the stack.
func (c *Client) Base() *memstore.Store {
	return c.base
}

// Cache returns the caching layer, or nil if the stack has none.
func (c *Client) Cache() *cachedstore.Store {
	return c.cache
}

// Gate returns the feature gate layer, or nil if the stack has none.
func (c *Client) Gate() *gatedstore.Store {
	return c.gate
}

// Layers returns the configured layers, outermost first.
func (c *Client) Layers() []Layer {
	return append([]Layer(nil), c.layers...)
}
