package vecdb

import (
	"container/heap"
	"sort"
	"time"

	"github.com/hupe1980/vecdb/internal/queue"
)

// SearchResult is a single match from Search or SearchRadius.
// Vector is a copy; mutating it does not affect the store.
type SearchResult struct {
	ID       string
	Distance float32
	Vector   []float32
}

// Search returns the k nearest neighbors of query, sorted by ascending
// distance with ties broken by ascending id. Fewer than k results come back
// when the store holds fewer records; an empty store yields no results and
// no error.
func (d *DB) Search(query []float32, k int) ([]SearchResult, error) {
	start := time.Now()
	results, err := d.search(query, k)

	d.collector.RecordSearch(k, time.Since(start), err)
	d.logger.LogSearch(k, len(results), err)

	return results, err
}

func (d *DB) search(query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(query) != d.dimension {
		return nil, &ErrDimensionMismatch{Expected: d.dimension, Actual: len(query)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.vectors) == 0 {
		return nil, nil
	}

	// Bounded max-heap: the root is the worst candidate kept so far, so
	// each record costs at most O(log k) and the scan stays O(n log k).
	pq := queue.NewMax(min(k, len(d.vectors)))
	for id, vector := range d.vectors {
		candidate := queue.Item{ID: id, Distance: d.distance(query, vector)}
		switch {
		case pq.Len() < k:
			heap.Push(pq, candidate)
		case queue.Worse(pq.Top(), candidate):
			heap.Pop(pq)
			heap.Push(pq, candidate)
		}
	}

	// Popping drains worst-first; filling backwards yields ascending order.
	results := make([]SearchResult, pq.Len())
	for i := pq.Len() - 1; i >= 0; i-- {
		item := heap.Pop(pq).(queue.Item)
		results[i] = SearchResult{
			ID:       item.ID,
			Distance: item.Distance,
			Vector:   cloneVector(d.vectors[item.ID]),
		}
	}

	return results, nil
}

// SearchRadius returns every record whose distance to query is at most
// radius (inclusive), sorted by ascending distance with ties broken by
// ascending id. The result count is unbounded.
func (d *DB) SearchRadius(query []float32, radius float32) ([]SearchResult, error) {
	start := time.Now()
	results, err := d.searchRadius(query, radius)

	d.collector.RecordRadiusSearch(time.Since(start), err)
	d.logger.LogRadiusSearch(radius, len(results), err)

	return results, err
}

func (d *DB) searchRadius(query []float32, radius float32) ([]SearchResult, error) {
	if len(query) != d.dimension {
		return nil, &ErrDimensionMismatch{Expected: d.dimension, Actual: len(query)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var results []SearchResult
	for id, vector := range d.vectors {
		if dist := d.distance(query, vector); dist <= radius {
			results = append(results, SearchResult{
				ID:       id,
				Distance: dist,
				Vector:   cloneVector(vector),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	return results, nil
}
