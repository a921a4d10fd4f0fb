// Package queue implements a generic priority queue backed by
// container/heap. internal/ingest.Discover uses it to order discovered
// files largest-first before handing them to the hashing worker pool, so a
// long-running hash isn't left as a tail straggler after every small file
// has already finished.
package queue

import (
	"container/heap"
	"sync"
)

// Item is one entry in the underlying heap.
type Item[T any] struct {
	Value    T
	Priority int
	index    int
}

// priorityQueueHeap implements heap.Interface. Lower Priority dequeues
// first.
type priorityQueueHeap[T any] []*Item[T]

func (pqh priorityQueueHeap[T]) Len() int { return len(pqh) }

func (pqh priorityQueueHeap[T]) Less(i, j int) bool {
	return pqh[i].Priority < pqh[j].Priority
}

func (pqh priorityQueueHeap[T]) Swap(i, j int) {
	pqh[i], pqh[j] = pqh[j], pqh[i]
	pqh[i].index = i
	pqh[j].index = j
}

func (pqh *priorityQueueHeap[T]) Push(x interface{}) {
	n := len(*pqh)
	item := x.(*Item[T])
	item.index = n
	*pqh = append(*pqh, item)
}

func (pqh *priorityQueueHeap[T]) Pop() interface{} {
	old := *pqh
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pqh = old[0 : n-1]
	return item
}

// PriorityQueue is a thread-safe generic priority queue.
type PriorityQueue[T any] struct {
	heap priorityQueueHeap[T]
	mu   sync.Mutex
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	pq := &PriorityQueue[T]{
		heap: make(priorityQueueHeap[T], 0),
	}
	heap.Init(&pq.heap)
	return pq
}

func (pq *PriorityQueue[T]) Len() int {
	pq.mu.Lock()
	defer pq.mu.Unlock()
	return pq.heap.Len()
}

// Enqueue adds value at the given priority. Smaller priority values
// dequeue first — internal/ingest negates file size so the largest file
// sorts to the front.
func (pq *PriorityQueue[T]) Enqueue(value T, priority int) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	item := &Item[T]{
		Value:    value,
		Priority: priority,
	}
	heap.Push(&pq.heap, item)
}

// Dequeue removes and returns the lowest-priority-value item, or the zero
// value and false if the queue is empty.
func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	if pq.heap.Len() == 0 {
		var zero T
		return zero, false
	}

	item := heap.Pop(&pq.heap).(*Item[T])
	return item.Value, true
}

// DequeueAll drains the queue in priority order. internal/ingest uses this
// to turn a batch of discovered files into a single largest-first slice
// before dispatching it to the hashing worker pool.
func (pq *PriorityQueue[T]) DequeueAll() []T {
	items := make([]T, 0, pq.Len())
	for pq.Len() > 0 {
		item, _ := pq.Dequeue()
		items = append(items, item)
	}
	return items
}
