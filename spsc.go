// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer. Both indices wrap modulo the ring size and
// one slot is always left empty so that full (tail+1 == head) and empty
// (head == tail) stay distinguishable; a ring of Cap() slots holds at most
// Cap()-1 elements.
//
// The producer is the only writer of tail and the consumer the only writer of
// head, so a release store on one side paired with an acquire load on the
// other is all the synchronization needed: no CAS, no retries. Each side also
// caches its last view of the other side's index and only reloads it when the
// cached view says the ring is full (or empty).
//
// Memory: O(capacity) with no per-slot overhead
type SPSC[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer writes here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a new SPSC queue.
// Capacity rounds up to the next power of 2 and one slot stays empty, so the
// queue holds roundToPow2(capacity)-1 elements (NewSPSC(3) holds 3).
// Panics if capacity < 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("lfds: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock and leaves the queue unchanged if it is full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	next := (tail + 1) & q.mask
	if next == q.cachedHead {
		q.cachedHead = q.head.LoadAcquire()
		if next == q.cachedHead {
			return ErrWouldBlock
		}
	}

	q.buffer[tail] = *elem
	q.tail.StoreRelease(next)
	return nil
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head == q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head]
	var zero T
	q.buffer[head] = zero
	q.head.StoreRelease((head + 1) & q.mask)
	return elem, nil
}

// Len returns the number of queued elements.
// The result is a snapshot and may be stale under concurrent access.
func (q *SPSC[T]) Len() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	return int((tail - head) & q.mask)
}

// Empty reports whether the queue holds no elements.
// The result is a snapshot and may be stale under concurrent access.
func (q *SPSC[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// Cap returns the number of slots in the ring.
// At most Cap()-1 elements can be queued at once.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
