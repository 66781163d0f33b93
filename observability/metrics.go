package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the kernel and satisfies the
// nest.MetricsCollector interface.
type Collector struct {
	gatherer prometheus.Gatherer

	CreateCalls      *prometheus.CounterVec
	NodesCreated     prometheus.Counter
	CreateDuration   prometheus.Histogram
	ExchangeRuns     *prometheus.CounterVec
	ExchangeRecords  prometheus.Counter
	ExchangeDuration prometheus.Histogram
	PrepareRuns      *prometheus.CounterVec
	SnapshotRuns     *prometheus.CounterVec
}

// NewCollector registers kernel Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	createCalls, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_create_calls_total",
		Help: "Total number of node creation calls, labeled by outcome.",
	}, []string{"outcome"}), "kernel_create_calls_total")
	if err != nil {
		return nil, err
	}

	nodesCreated, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kernel_nodes_created_total",
		Help: "Total number of entities created.",
	}), "kernel_nodes_created_total")
	if err != nil {
		return nil, err
	}

	createDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kernel_create_duration_seconds",
		Help:    "Node creation latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}), "kernel_create_duration_seconds")
	if err != nil {
		return nil, err
	}

	exchangeRuns, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_position_exchanges_total",
		Help: "Total number of position synchronization runs, labeled by outcome.",
	}, []string{"outcome"}), "kernel_position_exchanges_total")
	if err != nil {
		return nil, err
	}

	exchangeRecords, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kernel_position_records_total",
		Help: "Total number of synchronized position records.",
	}), "kernel_position_records_total")
	if err != nil {
		return nil, err
	}

	exchangeDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kernel_position_exchange_duration_seconds",
		Help:    "Position synchronization latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}), "kernel_position_exchange_duration_seconds")
	if err != nil {
		return nil, err
	}

	prepareRuns, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_lifecycle_runs_total",
		Help: "Total number of prepare/finalize fan-outs, labeled by outcome.",
	}, []string{"outcome"}), "kernel_lifecycle_runs_total")
	if err != nil {
		return nil, err
	}

	snapshotRuns, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_snapshot_runs_total",
		Help: "Total number of snapshot saves/loads, labeled by outcome.",
	}, []string{"outcome"}), "kernel_snapshot_runs_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		CreateCalls:      createCalls,
		NodesCreated:     nodesCreated,
		CreateDuration:   createDuration,
		ExchangeRuns:     exchangeRuns,
		ExchangeRecords:  exchangeRecords,
		ExchangeDuration: exchangeDuration,
		PrepareRuns:      prepareRuns,
		SnapshotRuns:     snapshotRuns,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordCreate implements nest.MetricsCollector.
func (c *Collector) RecordCreate(count int, duration time.Duration, err error) {
	c.CreateCalls.WithLabelValues(outcome(err)).Inc()
	c.CreateDuration.Observe(duration.Seconds())
	if err == nil {
		c.NodesCreated.Add(float64(count))
	}
}

// RecordExchange implements nest.MetricsCollector.
func (c *Collector) RecordExchange(records int, duration time.Duration, err error) {
	c.ExchangeRuns.WithLabelValues(outcome(err)).Inc()
	c.ExchangeDuration.Observe(duration.Seconds())
	if err == nil {
		c.ExchangeRecords.Add(float64(records))
	}
}

// RecordPrepare implements nest.MetricsCollector.
func (c *Collector) RecordPrepare(_ time.Duration, err error) {
	c.PrepareRuns.WithLabelValues(outcome(err)).Inc()
}

// RecordSnapshot implements nest.MetricsCollector.
func (c *Collector) RecordSnapshot(_ time.Duration, err error) {
	c.SnapshotRuns.WithLabelValues(outcome(err)).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
