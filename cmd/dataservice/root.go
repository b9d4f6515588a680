package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/dataservice"
	"github.com/discochess/dataservice/internal/stats"
)

var (
	// Global flags.
	layersFlag string
	ttl        time.Duration
	key        string
	gateName   string
	capacity   int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dataservice",
	Short: "Exercise a layered in-memory data service",
	Long: `dataservice builds an in-memory key-value store wrapped in stackable
layers (gate, obfuscation, caching, logging, compression) and runs
workloads against it.

Layers are given outermost first.

Examples:
  # Walk through save, retrieve and gate toggling
  dataservice demo

  # Put the cache above obfuscation so it holds plaintext
  dataservice demo --layers gate,caching,obfuscation,logging

  # Run a concurrent read-heavy workload and print cache metrics
  dataservice bench --workers 8 --ops 100000`,
	SilenceUsage: true,
}

func init() {
	defaults := ""
	for i, l := range dataservice.DefaultLayers {
		if i > 0 {
			defaults += ","
		}
		defaults += l.String()
	}

	rootCmd.PersistentFlags().StringVarP(&layersFlag, "layers", "l", defaults, "comma-separated layers, outermost first")
	rootCmd.PersistentFlags().DurationVar(&ttl, "ttl", 60*time.Second, "cache time-to-live")
	rootCmd.PersistentFlags().StringVarP(&key, "key", "k", dataservice.DefaultObfuscationKey, "obfuscation key")
	rootCmd.PersistentFlags().StringVar(&gateName, "gate", dataservice.DefaultGateName, "feature gate name")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 0, "cache capacity with LRU eviction (0 = unbounded)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every store operation")
}

// newLogger returns a development logger when verbose, otherwise a no-op.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// newClient builds a client from the global flags.
func newClient(log *zap.Logger, collector stats.Collector) (*dataservice.Client, error) {
	layers, err := dataservice.ParseLayers(layersFlag)
	if err != nil {
		return nil, err
	}

	client, err := dataservice.New(
		dataservice.WithLayers(layers...),
		dataservice.WithTTL(ttl),
		dataservice.WithObfuscationKey(key),
		dataservice.WithGate(gateName, true),
		dataservice.WithCacheCapacity(capacity),
		dataservice.WithStats(collector),
		dataservice.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return client, nil
}
