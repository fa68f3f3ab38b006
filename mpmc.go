// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMC is a CAS-based multi-producer multi-consumer bounded queue.
//
// Based on Vyukov's bounded MPMC queue. Each slot carries a sequence number
// naming the logical position that currently owns it:
//
//	seq == pos     slot is free for the producer claiming pos
//	seq == pos+1   slot holds the element written at pos
//	seq == pos+n   slot was consumed and is free for the next cycle
//
// Producers and consumers claim positions by CAS on their own counter and
// then touch only the claimed slot, so the data write itself is race-free
// even though it is not atomic. Sequence numbers also tell "not yet written"
// apart from "already consumed" across wraparound, which a bare head/tail
// pair cannot do with multiple writers.
//
// Positions grow monotonically and may wrap past 2^64. Because capacity is a
// power of 2 the slot mapping stays consistent across the wrap, and
// comparisons use the signed difference of the unsigned counters.
//
// Enqueue and Dequeue are lock-free, not wait-free: an individual call may
// retry while other goroutines keep winning the CAS.
//
// Memory: n slots, one cache line per slot
type MPMC[T any] struct {
	_          pad
	enqueuePos atomix.Uint64 // Producer position
	_          pad
	dequeuePos atomix.Uint64 // Consumer position
	_          pad
	buffer     []mpmcSlot[T]
	mask       uint64
	capacity   uint64
}

type mpmcSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// NewMPMC creates a new MPMC queue.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("lfds: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &MPMC[T]{
		buffer:   make([]mpmcSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock and leaves the queue unchanged if it is full.
func (q *MPMC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	pos := q.enqueuePos.LoadRelaxed()
	for {
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq - pos)

		if diff == 0 {
			if q.enqueuePos.CompareAndSwapRelaxed(pos, pos+1) {
				slot.data = *elem
				slot.seq.StoreRelease(pos + 1)
				return nil
			}
		} else if diff < 0 {
			// Slot still holds the element from the previous cycle.
			return ErrWouldBlock
		}
		sw.Once()
		pos = q.enqueuePos.LoadRelaxed()
	}
}

// Dequeue removes and returns the oldest element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	pos := q.dequeuePos.LoadRelaxed()
	for {
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq - (pos + 1))

		if diff == 0 {
			if q.dequeuePos.CompareAndSwapRelaxed(pos, pos+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(pos + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			// No producer has published this position yet.
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
		pos = q.dequeuePos.LoadRelaxed()
	}
}

// Len returns the number of claimed but not yet consumed positions,
// clamped to [0, Cap()]. Elements still being written are counted.
// The result is a snapshot and may be stale under concurrent access.
func (q *MPMC[T]) Len() int {
	deq := q.dequeuePos.LoadAcquire()
	enq := q.enqueuePos.LoadAcquire()
	n := int64(enq - deq)
	switch {
	case n < 0:
		return 0
	case n > int64(q.capacity):
		return int(q.capacity)
	}
	return int(n)
}

// Empty reports whether no positions are outstanding.
// The result is a snapshot and may be stale under concurrent access.
func (q *MPMC[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
