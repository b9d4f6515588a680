// Package memorydataservicefx provides an fx module for an in-memory data service client.
package memorydataservicefx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/dataservice"
	"github.com/discochess/dataservice/internal/stats"
	"github.com/discochess/dataservice/internal/stats/logger"
	"github.com/discochess/dataservice/internal/store/cachedstore"
	"github.com/discochess/dataservice/internal/store/gatedstore"
)

// Config holds configuration for the data service client.
type Config struct {
	// Layers is the decorator stack, outermost first.
	// Default is dataservice.DefaultLayers.
	Layers []dataservice.Layer

	// TTL is how long cached entries stay fresh. Default is 60s.
	TTL time.Duration

	// ObfuscationKey is required when the obfuscation layer is configured.
	ObfuscationKey string

	// GateName names the feature gate. Default is dataservice.DefaultGateName.
	GateName string

	// GateDisabled starts the gate closed.
	GateDisabled bool

	// CacheCapacity bounds the cache with LRU eviction. Zero means unbounded.
	CacheCapacity int
}

// Module provides a data service client and handles to its cache and gate.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("memorydataservice",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("dataservice.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client and its layer handles.
// Cache and Gate are nil when the stack has no such layer.
type Result struct {
	fx.Out

	Client *dataservice.Client
	Cache  *cachedstore.Store
	Gate   *gatedstore.Store
}

func newClient(p Params) (Result, error) {
	opts := []dataservice.Option{
		dataservice.WithObfuscationKey(p.Config.ObfuscationKey),
		dataservice.WithCacheCapacity(p.Config.CacheCapacity),
		dataservice.WithStats(p.Collector),
		dataservice.WithLogger(p.Logger.Named("dataservice")),
	}
	if p.Config.Layers != nil {
		opts = append(opts, dataservice.WithLayers(p.Config.Layers...))
	}
	if p.Config.TTL > 0 {
		opts = append(opts, dataservice.WithTTL(p.Config.TTL))
	}
	gateName := p.Config.GateName
	if gateName == "" {
		gateName = dataservice.DefaultGateName
	}
	opts = append(opts, dataservice.WithGate(gateName, !p.Config.GateDisabled))

	client, err := dataservice.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{
		Client: client,
		Cache:  client.Cache(),
		Gate:   client.Gate(),
	}, nil
}
