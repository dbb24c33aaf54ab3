package vecdb

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/vecdb/metric"
)

// IndexStrategy selects the search index backing the store.
type IndexStrategy int

const (
	// IndexStrategyLinear scans every record and returns exact results.
	IndexStrategyLinear IndexStrategy = iota
	// IndexStrategyKDTree is a declared extension point, not implemented.
	IndexStrategyKDTree
	// IndexStrategyHashTable is a declared extension point, not implemented.
	IndexStrategyHashTable
)

// String implements fmt.Stringer.
func (s IndexStrategy) String() string {
	switch s {
	case IndexStrategyLinear:
		return "linear"
	case IndexStrategyKDTree:
		return "kdtree"
	case IndexStrategyHashTable:
		return "hashtable"
	default:
		return fmt.Sprintf("indexstrategy(%d)", int(s))
	}
}

// DB is an embedded in-memory vector store with exact nearest-neighbor
// search. Vectors are copied in on insert and copied out on reads, so
// callers never alias internal state.
//
// A single mutex serializes every operation for its full duration, reads
// included. Operations are linearizable: a search never observes a
// half-applied insert. Read-heavy workloads serialize behind the same
// lock; that is the intended baseline, not an oversight.
type DB struct {
	mu      sync.Mutex
	vectors map[string][]float32

	dimension  int
	maxVectors int
	metric     metric.Metric
	distance   metric.Func
	strategy   IndexStrategy

	logger    *Logger
	collector MetricsCollector
}

// New creates a DB for vectors of the given dimension.
// The dimension is fixed for the lifetime of the store.
func New(dimension int, optFns ...Option) (*DB, error) {
	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}

	o := applyOptions(optFns...)

	if o.indexStrategy != IndexStrategyLinear {
		return nil, &ErrInvalidIndexStrategy{Strategy: o.indexStrategy}
	}

	distance, err := metric.Provider(o.metric)
	if err != nil {
		return nil, err
	}

	return &DB{
		vectors:    make(map[string][]float32),
		dimension:  dimension,
		maxVectors: o.maxVectors,
		metric:     o.metric,
		distance:   distance,
		strategy:   o.indexStrategy,
		logger:     o.logger,
		collector:  o.metricsCollector,
	}, nil
}

// Insert stores vector under id, replacing any existing vector for that id.
// Replacing never counts against capacity, so updates succeed on a full
// store.
func (d *DB) Insert(id string, vector []float32) error {
	start := time.Now()
	err := d.insert(id, vector)

	d.collector.RecordInsert(time.Since(start), err)
	d.logger.LogInsert(id, len(vector), err)

	return err
}

func (d *DB) insert(id string, vector []float32) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(vector) != d.dimension {
		return &ErrDimensionMismatch{Expected: d.dimension, Actual: len(vector)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.vectors[id]; !exists && len(d.vectors) >= d.maxVectors {
		return fmt.Errorf("%w: store holds %d vectors", ErrCapacityExceeded, d.maxVectors)
	}

	d.vectors[id] = cloneVector(vector)

	return nil
}

// InsertBatch stores all vectors or none. Every entry is validated and the
// capacity check runs before the first write, counting only ids not already
// present. On any error the store is unchanged.
func (d *DB) InsertBatch(batch map[string][]float32) error {
	start := time.Now()
	err := d.insertBatch(batch)

	d.collector.RecordBatchInsert(len(batch), time.Since(start), err)
	d.logger.LogBatchInsert(len(batch), err)

	return err
}

func (d *DB) insertBatch(batch map[string][]float32) error {
	for id, vector := range batch {
		if id == "" {
			return ErrEmptyID
		}
		if len(vector) != d.dimension {
			return fmt.Errorf("id %q: %w", id,
				&ErrDimensionMismatch{Expected: d.dimension, Actual: len(vector)})
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	added := 0
	for id := range batch {
		if _, exists := d.vectors[id]; !exists {
			added++
		}
	}
	if len(d.vectors)+added > d.maxVectors {
		return fmt.Errorf("%w: %d stored + %d new exceeds maximum %d",
			ErrCapacityExceeded, len(d.vectors), added, d.maxVectors)
	}

	for id, vector := range batch {
		d.vectors[id] = cloneVector(vector)
	}

	return nil
}

// Remove deletes id and reports whether it existed.
func (d *DB) Remove(id string) bool {
	start := time.Now()

	d.mu.Lock()
	_, removed := d.vectors[id]
	delete(d.vectors, id)
	d.mu.Unlock()

	d.collector.RecordRemove(time.Since(start), removed)
	d.logger.LogRemove(id, removed)

	return removed
}

// Exists reports whether id is stored.
func (d *DB) Exists(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.vectors[id]
	return ok
}

// Get returns a copy of the vector stored under id.
// A missing id is a normal outcome, reported through the second result.
func (d *DB) Get(id string) ([]float32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	vector, ok := d.vectors[id]
	if !ok {
		return nil, false
	}
	return cloneVector(vector), true
}

// IDs returns all stored ids. Order is unspecified.
func (d *DB) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.vectors))
	for id := range d.vectors {
		ids = append(ids, id)
	}
	return ids
}

// Size returns the number of stored vectors.
func (d *DB) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.vectors)
}

// Dimension returns the configured vector dimension.
// The dimension never changes after New, so no lock is taken.
func (d *DB) Dimension() int {
	return d.dimension
}

// Metric returns the configured distance metric.
func (d *DB) Metric() metric.Metric {
	return d.metric
}

// Clear removes all vectors.
func (d *DB) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.vectors = make(map[string][]float32)
}

// Rough per-record cost of the string and slice headers plus bucket share.
const mapEntryOverhead = 48

// Stats returns a point-in-time summary of the store.
func (d *DB) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	var mem int64
	for id := range d.vectors {
		mem += int64(len(id)) + int64(d.dimension)*4 + mapEntryOverhead
	}

	return Stats{
		Size:          len(d.vectors),
		Dimension:     d.dimension,
		MaxVectors:    d.maxVectors,
		Metric:        d.metric,
		IndexStrategy: d.strategy,
		MemoryBytes:   mem,
	}
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
