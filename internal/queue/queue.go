// Package queue provides the bounded candidate heap used by top-k search.
package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue)(nil)

// Item is a search candidate: an identifier and its distance to the query.
type Item struct {
	ID       string
	Distance float32
}

// Worse reports whether a orders after b in result order: ascending
// distance, ties broken by ascending ID. The ordering is total, so result
// sets with equal distances still come out deterministic.
func Worse(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.ID > b.ID
}

// PriorityQueue is a max-heap of Items: the candidate that orders last
// sits on top. A bounded top-k scan compares each incoming candidate
// against Top and replaces the top when the newcomer orders before it,
// keeping the k best seen so far in O(log k) per replacement.
type PriorityQueue struct {
	items []Item
}

// NewMax initializes a priority queue with the given capacity hint.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{
		items: make([]Item, 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less reports whether the element with index i should sort before the
// element with index j. Inverted on purpose: the heap root is the worst
// kept candidate.
func (pq *PriorityQueue) Less(i, j int) bool {
	return Worse(pq.items[i], pq.items[j])
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// Push adds x to the priority queue.
func (pq *PriorityQueue) Push(x any) {
	pq.items = append(pq.items, x.(Item))
}

// Pop removes and returns the worst element of the priority queue.
func (pq *PriorityQueue) Pop() any {
	n := len(pq.items)
	if n == 0 {
		return Item{}
	}

	item := pq.items[n-1]
	pq.items[n-1] = Item{} // Zero out for GC
	pq.items = pq.items[:n-1]

	return item
}

// Top returns the worst element without removing it.
// Returns the zero Item when the queue is empty.
func (pq *PriorityQueue) Top() Item {
	if len(pq.items) == 0 {
		return Item{}
	}
	return pq.items[0]
}
