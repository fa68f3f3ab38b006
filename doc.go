// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfds provides lock-free data structures for passing values
// between goroutines.
//
//   - SPSC: bounded FIFO, one producer and one consumer
//   - MPMC: bounded FIFO, any number of producers and consumers
//   - Stack: unbounded LIFO (Treiber stack)
//   - StackIndirect: bounded LIFO of uintptr values over a fixed arena
//
// None of the structures start goroutines, take locks or block. Every
// operation either completes in a fixed number of steps (SPSC) or retries a
// compare-and-swap until it wins (MPMC, stacks). Full and empty are reported
// to the caller, who decides how to wait.
//
// # Quick Start
//
//	q := lfds.NewSPSC[Event](1024)
//	q := lfds.NewMPMC[*Request](4096)
//	s := lfds.NewStack[Node]()
//
// Builder API selects the queue from the declared constraints:
//
//	q := lfds.Build[Event](lfds.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q := lfds.Build[Event](lfds.New(1024))                                   // → MPMC
//
// # Basic Usage
//
//	q := lfds.NewMPMC[int](1024)
//
//	value := 42
//	err := q.Enqueue(&value)
//	if lfds.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if lfds.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
//	s := lfds.NewStack[int]()
//	s.Push(&value)
//	top, err := s.Pop()
//
// # Waiting
//
// Nothing in this package waits. Callers that need a bounded wait poll with
// their own backoff and deadline:
//
//	backoff := iox.Backoff{}
//	deadline := time.Now().Add(time.Second)
//	for q.Enqueue(&item) != nil {
//	    if time.Now().After(deadline) {
//	        return errTimeout
//	    }
//	    backoff.Wait()
//	}
//
// # Capacity
//
// Ring buffer capacity rounds up to the next power of 2 and is fixed for the
// life of the queue. Capacity < 2 panics.
//
//	lfds.NewMPMC[int](3)    // Cap() == 4, holds 4
//	lfds.NewSPSC[int](4)    // Cap() == 4, holds 3
//
// SPSC keeps one slot empty to tell full from empty; MPMC uses per-slot
// sequence numbers and holds Cap() elements.
//
// Len and Empty are advisory snapshots. Under concurrent access they can be
// stale before they return.
//
// # Memory Ordering
//
// SPSC publishes each slot with a release store of tail that the consumer
// pairs with an acquire load, and likewise for head in the other direction.
// MPMC publishes per slot through the sequence number. Stack publishes a node
// through the head CAS. No total order between unrelated slots or nodes is
// promised.
//
// Hot counters that different goroutines write sit on separate cache lines
// (see [CacheLinePad]) to avoid false sharing.
//
// # Thread Safety
//
//   - SPSC: one producer goroutine, one consumer goroutine
//   - MPMC, Stack, StackIndirect: any number of goroutines
//
// Violating the SPSC constraint causes undefined behavior including data
// corruption.
//
// # Race Detection
//
// The race detector cannot observe happens-before edges established through
// acquire/release orderings on a separate variable, so it may report false
// positives on the non-atomic slot data of the generic queues. Concurrent
// tests for those variants are skipped when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and [golang.org/x/sys/cpu] for the cache line size.
package lfds
