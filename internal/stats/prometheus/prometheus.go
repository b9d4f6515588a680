// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/dataservice/internal/stats"
)

// Collector implements stats.Collector using Prometheus metrics.
// Metrics are created and registered lazily on first use.
type Collector struct {
	registry prometheus.Registerer

	counters   *family[prometheus.Counter]
	gauges     *family[prometheus.Gauge]
	histograms *family[prometheus.Histogram]
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	c := &Collector{registry: registry}
	c.counters = newFamily(registry, func(name string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
	})
	c.gauges = newFamily(registry, func(name string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
	})
	c.histograms = newFamily(registry, func(name string) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    name,
			Buckets: prometheus.DefBuckets,
		})
	})
	return c
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	c.counters.get(name).Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	c.gauges.get(name).Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.histograms.get(name).Observe(value)
}

// family lazily creates and registers one metric kind, keyed by name.
type family[M prometheus.Collector] struct {
	registry prometheus.Registerer
	create   func(name string) M

	mu      sync.RWMutex
	metrics map[string]M
}

func newFamily[M prometheus.Collector](registry prometheus.Registerer, create func(string) M) *family[M] {
	return &family[M]{
		registry: registry,
		create:   create,
		metrics:  make(map[string]M),
	}
}

func (f *family[M]) get(name string) M {
	f.mu.RLock()
	m, ok := f.metrics[name]
	f.mu.RUnlock()
	if ok {
		return m
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok = f.metrics[name]; ok {
		return m
	}

	m = f.create(name)
	if err := f.registry.Register(m); err != nil {
		// Reuse a metric registered elsewhere under the same name.
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
	}
	f.metrics[name] = m
	return m
}
