package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorse(t *testing.T) {
	tests := []struct {
		name string
		a, b Item
		want bool
	}{
		{"Larger distance", Item{"a", 2.0}, Item{"b", 1.0}, true},
		{"Smaller distance", Item{"a", 1.0}, Item{"b", 2.0}, false},
		{"Equal distance larger ID", Item{"b", 1.0}, Item{"a", 1.0}, true},
		{"Equal distance smaller ID", Item{"a", 1.0}, Item{"b", 1.0}, false},
		{"Identical", Item{"a", 1.0}, Item{"a", 1.0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Worse(tc.a, tc.b))
		})
	}
}

func TestPriorityQueue(t *testing.T) {
	t.Run("WorstOnTop", func(t *testing.T) {
		pq := NewMax(4)
		heap.Push(pq, Item{ID: "near", Distance: 0.5})
		heap.Push(pq, Item{ID: "far", Distance: 9.0})
		heap.Push(pq, Item{ID: "mid", Distance: 3.0})

		assert.Equal(t, 3, pq.Len())
		assert.Equal(t, "far", pq.Top().ID)
	})

	t.Run("PopOrder", func(t *testing.T) {
		pq := NewMax(4)
		heap.Push(pq, Item{ID: "b", Distance: 1.0})
		heap.Push(pq, Item{ID: "a", Distance: 1.0})
		heap.Push(pq, Item{ID: "c", Distance: 0.5})

		// Pop yields worst-first; equal distances break ties on ID.
		first := heap.Pop(pq).(Item)
		assert.Equal(t, "b", first.ID)
		second := heap.Pop(pq).(Item)
		assert.Equal(t, "a", second.ID)
		third := heap.Pop(pq).(Item)
		assert.Equal(t, "c", third.ID)
	})

	t.Run("BoundedScan", func(t *testing.T) {
		// The top-k usage pattern: cap the queue at k, replacing the
		// top when a better candidate arrives.
		const k = 3
		candidates := []Item{
			{"e", 5.0}, {"c", 3.0}, {"a", 1.0}, {"d", 4.0}, {"b", 2.0},
		}

		pq := NewMax(k)
		for _, c := range candidates {
			if pq.Len() < k {
				heap.Push(pq, c)
				continue
			}
			if Worse(pq.Top(), c) {
				heap.Pop(pq)
				heap.Push(pq, c)
			}
		}

		require.Equal(t, k, pq.Len())

		// Drain backwards to get ascending order.
		results := make([]Item, k)
		for i := k - 1; i >= 0; i-- {
			results[i] = heap.Pop(pq).(Item)
		}
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, "b", results[1].ID)
		assert.Equal(t, "c", results[2].ID)
	})

	t.Run("TopEmpty", func(t *testing.T) {
		pq := NewMax(0)
		assert.Equal(t, Item{}, pq.Top())
	})
}
