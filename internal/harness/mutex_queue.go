// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"sync"

	"code.hybscloud.com/lfds"
)

// MutexQueue is a bounded FIFO guarded by a single mutex.
//
// It exists as a baseline for the lock-free queues and mirrors the SPSC ring
// layout: capacity slots, one of them always empty. Capacity is used as given.
type MutexQueue[T any] struct {
	mu     sync.Mutex
	buffer []T
	head   int
	tail   int
}

var _ lfds.Queue[int] = (*MutexQueue[int])(nil)

// NewMutexQueue creates a mutex-guarded queue with capacity slots.
// Panics if capacity < 2.
func NewMutexQueue[T any](capacity int) *MutexQueue[T] {
	if capacity < 2 {
		panic("harness: capacity must be >= 2")
	}
	return &MutexQueue[T]{buffer: make([]T, capacity)}
}

// Enqueue adds an element. Returns lfds.ErrWouldBlock if the queue is full.
func (q *MutexQueue[T]) Enqueue(elem *T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := (q.tail + 1) % len(q.buffer)
	if next == q.head {
		return lfds.ErrWouldBlock
	}
	q.buffer[q.tail] = *elem
	q.tail = next
	return nil
}

// Dequeue removes the oldest element. Returns lfds.ErrWouldBlock if empty.
func (q *MutexQueue[T]) Dequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == q.tail {
		return zero, lfds.ErrWouldBlock
	}
	elem := q.buffer[q.head]
	q.buffer[q.head] = zero
	q.head = (q.head + 1) % len(q.buffer)
	return elem, nil
}

// Len returns the number of queued elements.
func (q *MutexQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return (q.tail - q.head + len(q.buffer)) % len(q.buffer)
}

// Empty reports whether the queue holds no elements.
func (q *MutexQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the number of slots.
func (q *MutexQueue[T]) Cap() int {
	return len(q.buffer)
}
