package vecdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter   prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordBatchInsert is called after each batch insert operation.
	// count is the number of items in the batch; the batch is atomic, so
	// err is nil exactly when all items were stored.
	RecordBatchInsert(count int, duration time.Duration, err error)

	// RecordSearch is called after each top-k search.
	// k is the number of neighbors requested.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordRadiusSearch is called after each radius search.
	RecordRadiusSearch(duration time.Duration, err error)

	// RecordRemove is called after each remove operation.
	// removed reports whether the id existed.
	RecordRemove(duration time.Duration, removed bool)

	// RecordSave is called after each snapshot save.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each snapshot load.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchInsert(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordRadiusSearch(time.Duration, error)     {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)            {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)             {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64

	BatchInsertCount  atomic.Int64
	BatchInsertItems  atomic.Int64
	BatchInsertErrors atomic.Int64

	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64

	RadiusSearchCount  atomic.Int64
	RadiusSearchErrors atomic.Int64

	RemoveCount  atomic.Int64
	RemoveMisses atomic.Int64

	SaveCount  atomic.Int64
	SaveErrors atomic.Int64

	LoadCount  atomic.Int64
	LoadErrors atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordBatchInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchInsert(count int, duration time.Duration, err error) {
	b.BatchInsertCount.Add(1)
	b.BatchInsertItems.Add(int64(count))
	if err != nil {
		b.BatchInsertErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRadiusSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRadiusSearch(duration time.Duration, err error) {
	b.RadiusSearchCount.Add(1)
	if err != nil {
		b.RadiusSearchErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, removed bool) {
	b.RemoveCount.Add(1)
	if !removed {
		b.RemoveMisses.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:        b.InsertCount.Load(),
		InsertErrors:       b.InsertErrors.Load(),
		InsertAvgNanos:     b.avgInsertNanos(),
		BatchInsertCount:   b.BatchInsertCount.Load(),
		BatchInsertItems:   b.BatchInsertItems.Load(),
		BatchInsertErrors:  b.BatchInsertErrors.Load(),
		SearchCount:        b.SearchCount.Load(),
		SearchErrors:       b.SearchErrors.Load(),
		SearchAvgNanos:     b.avgSearchNanos(),
		RadiusSearchCount:  b.RadiusSearchCount.Load(),
		RadiusSearchErrors: b.RadiusSearchErrors.Load(),
		RemoveCount:        b.RemoveCount.Load(),
		RemoveMisses:       b.RemoveMisses.Load(),
		SaveCount:          b.SaveCount.Load(),
		SaveErrors:         b.SaveErrors.Load(),
		LoadCount:          b.LoadCount.Load(),
		LoadErrors:         b.LoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) avgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) avgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount        int64
	InsertErrors       int64
	InsertAvgNanos     int64
	BatchInsertCount   int64
	BatchInsertItems   int64
	BatchInsertErrors  int64
	SearchCount        int64
	SearchErrors       int64
	SearchAvgNanos     int64
	RadiusSearchCount  int64
	RadiusSearchErrors int64
	RemoveCount        int64
	RemoveMisses       int64
	SaveCount          int64
	SaveErrors         int64
	LoadCount          int64
	LoadErrors         int64
}
