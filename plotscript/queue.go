package plotscript

import (
	"sync"
)

// Queue is an unbounded FIFO safe for use by many goroutines. Push
// never blocks; WaitAndPop blocks until an item is available.
type Queue[T any] struct {
	mut   sync.Mutex
	cond  *sync.Cond
	items []T
}

func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mut)
	return q
}

func (q *Queue[T]) Push(item T) {
	q.mut.Lock()
	q.items = append(q.items, item)
	q.mut.Unlock()
	q.cond.Signal()
}

func (q *Queue[T]) WaitAndPop() T {
	q.mut.Lock()
	defer q.mut.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item
}

// TryPop returns the head item without waiting.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mut.Lock()
	defer q.mut.Unlock()
	if len(q.items) == 0 {
		return item, false
	}
	item = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

func (q *Queue[T]) Empty() bool {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.items) == 0
}

func (q *Queue[T]) Len() int {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.items)
}
