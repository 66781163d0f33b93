package nest

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// observability package ships a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordCreate is called after each node creation call. count is the
	// number of entities requested, duration the total time taken, err is
	// nil on success.
	RecordCreate(count int, duration time.Duration, err error)

	// RecordExchange is called after each position synchronization run.
	// records is the size of the deduplicated global view.
	RecordExchange(records int, duration time.Duration, err error)

	// RecordPrepare is called after each lifecycle fan-out (prepare or
	// finalize).
	RecordPrepare(duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save or load.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordExchange(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPrepare(time.Duration, error)       {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount        atomic.Int64
	CreateErrors       atomic.Int64
	CreatedNodes       atomic.Int64
	CreateTotalNanos   atomic.Int64
	ExchangeCount      atomic.Int64
	ExchangeErrors     atomic.Int64
	ExchangeRecords    atomic.Int64
	ExchangeTotalNanos atomic.Int64
	PrepareCount       atomic.Int64
	PrepareErrors      atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(count int, duration time.Duration, err error) {
	b.CreateCount.Add(1)
	b.CreateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CreateErrors.Add(1)
		return
	}
	b.CreatedNodes.Add(int64(count))
}

// RecordExchange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExchange(records int, duration time.Duration, err error) {
	b.ExchangeCount.Add(1)
	b.ExchangeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExchangeErrors.Add(1)
		return
	}
	b.ExchangeRecords.Add(int64(records))
}

// RecordPrepare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrepare(_ time.Duration, err error) {
	b.PrepareCount.Add(1)
	if err != nil {
		b.PrepareErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(_ time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// BasicMetricsStats is a point-in-time snapshot of a
// BasicMetricsCollector.
type BasicMetricsStats struct {
	CreateCount     int64
	CreateErrors    int64
	CreatedNodes    int64
	ExchangeCount   int64
	ExchangeErrors  int64
	ExchangeRecords int64
	PrepareCount    int64
	PrepareErrors   int64
	SnapshotCount   int64
	SnapshotErrors  int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:     b.CreateCount.Load(),
		CreateErrors:    b.CreateErrors.Load(),
		CreatedNodes:    b.CreatedNodes.Load(),
		ExchangeCount:   b.ExchangeCount.Load(),
		ExchangeErrors:  b.ExchangeErrors.Load(),
		ExchangeRecords: b.ExchangeRecords.Load(),
		PrepareCount:    b.PrepareCount.Load(),
		PrepareErrors:   b.PrepareErrors.Load(),
		SnapshotCount:   b.SnapshotCount.Load(),
		SnapshotErrors:  b.SnapshotErrors.Load(),
	}
}
