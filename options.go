package dataservice

import (
	"time"

	"go.uber.org/zap"

	"github.com/discochess/dataservice/internal/codec"
	"github.com/discochess/dataservice/internal/stats"
	"github.com/discochess/dataservice/internal/store/cachedstore"
)

const (
	// DefaultGateName names the feature gate when WithGate is not used.
	DefaultGateName = "dataservice"

	// DefaultObfuscationKey is the obfuscation key when WithObfuscationKey
	// is not used.
	DefaultObfuscationKey = "k"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	layers        []Layer
	ttl           time.Duration
	key           string
	gateName      string
	gateEnabled   bool
	codec         codec.Codec
	cacheCapacity int
	clock         func() time.Time
	stats         stats.Collector
	logger        *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		layers:      append([]Layer(nil), DefaultLayers...),
		ttl:         cachedstore.DefaultTTL,
		key:         DefaultObfuscationKey,
		gateName:    DefaultGateName,
		gateEnabled: true,
		clock:       time.Now,
		stats:       stats.NewNoop(),
		logger:      zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithLayers sets the decorator stack, outermost first.
// An empty list leaves the bare base store.
func WithLayers(layers ...Layer) Option {
	return optionFunc(func(o *options) {
		o.layers = append([]Layer(nil), layers...)
	})
}

// WithTTL sets how long cached entries stay fresh.
// Default is 60s.
func WithTTL(ttl time.Duration) Option {
	return optionFunc(func(o *options) {
		o.ttl = ttl
	})
}

// WithObfuscationKey sets the key of the obfuscation layer.
// Default is DefaultObfuscationKey. An empty key fails New when the
// obfuscation layer is configured.
func WithObfuscationKey(key string) Option {
	return optionFunc(func(o *options) {
		o.key = key
	})
}

// WithGate sets the feature gate name and its initial state.
func WithGate(name string, enabled bool) Option {
	return optionFunc(func(o *options) {
		o.gateName = name
		o.gateEnabled = enabled
	})
}

// WithCodec sets the codec of the compression layer.
// If not set, zstd is used.
func WithCodec(c codec.Codec) Option {
	return optionFunc(func(o *options) {
		o.codec = c
	})
}

// WithCacheCapacity bounds the cache to n entries with LRU eviction.
// Zero, the default, means unbounded.
func WithCacheCapacity(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheCapacity = n
	})
}

// WithClock replaces time.Now for cache freshness checks.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.clock = now
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = stats.OrNoop(c)
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	})
}
