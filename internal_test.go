// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// seedPosition moves an empty MPMC queue to logical position pos, as if pos
// elements had already passed through it.
func (q *MPMC[T]) seedPosition(pos uint64) {
	q.enqueuePos.StoreRelaxed(pos)
	q.dequeuePos.StoreRelaxed(pos)
	for k := uint64(0); k < q.capacity; k++ {
		p := pos + k
		q.buffer[p&q.mask].seq.StoreRelaxed(p)
	}
}

// =============================================================================
// MPMC counter wraparound
// =============================================================================

// TestMPMCCounterWraparound runs positions across 2^64. The signed difference
// of the unsigned counters must keep full, empty and retry apart on both
// sides of the wrap.
func TestMPMCCounterWraparound(t *testing.T) {
	for _, start := range []uint64{
		math.MaxUint64 - 2,
		math.MaxUint64 - 7,
		math.MaxUint64,
		math.MaxInt64 - 3,
	} {
		q := NewMPMC[int](8)
		q.seedPosition(start)

		if _, err := q.Dequeue(); !errors.Is(err, ErrWouldBlock) {
			t.Fatalf("start %d: Dequeue on empty: got %v, want ErrWouldBlock", start, err)
		}

		next, want := 0, 0
		for round := range 10 {
			for range 8 {
				v := next
				if err := q.Enqueue(&v); err != nil {
					t.Fatalf("start %d round %d: Enqueue(%d): %v", start, round, next, err)
				}
				next++
			}
			v := -1
			if err := q.Enqueue(&v); !errors.Is(err, ErrWouldBlock) {
				t.Fatalf("start %d round %d: Enqueue on full: got %v, want ErrWouldBlock", start, round, err)
			}
			if q.Len() != 8 {
				t.Fatalf("start %d round %d: Len on full: got %d, want 8", start, round, q.Len())
			}
			for range 8 {
				got, err := q.Dequeue()
				if err != nil {
					t.Fatalf("start %d round %d: Dequeue: %v", start, round, err)
				}
				if got != want {
					t.Fatalf("start %d round %d: Dequeue got %d, want %d", start, round, got, want)
				}
				want++
			}
			if !q.Empty() {
				t.Fatalf("start %d round %d: Empty after drain: got false", start, round)
			}
		}

		if pos := q.enqueuePos.LoadRelaxed(); pos != start+80 {
			t.Fatalf("start %d: enqueuePos got %d, want %d", start, pos, start+80)
		}
	}
}

// =============================================================================
// StackIndirect tags
// =============================================================================

// TestStackIndirectTagAdvances checks that every head update bumps the tag,
// so a head that returns to the same node never compares equal.
func TestStackIndirectTagAdvances(t *testing.T) {
	s := NewStackIndirect(2)

	before := s.top.LoadRelaxed()
	if err := s.Push(1); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := s.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	after := s.top.LoadRelaxed()

	if before&stackRefMask != after&stackRefMask {
		t.Fatalf("ref: got %d, want %d", after&stackRefMask, before&stackRefMask)
	}
	if before == after {
		t.Fatalf("head word unchanged after push+pop: %#x", after)
	}
	if got := after >> stackRefBits; got != 2 {
		t.Fatalf("tag: got %d, want 2", got)
	}
}

// TestStackIndirectStaleTake replays the ABA interleaving by hand: a take that
// read the head before a pop/push cycle must not succeed with that snapshot.
func TestStackIndirectStaleTake(t *testing.T) {
	s := NewStackIndirect(3)
	for i := uintptr(1); i <= 2; i++ {
		if err := s.Push(i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	// A goroutine observes top=node(2) with next=node(1) and stalls.
	stale := s.top.LoadAcquire()
	staleNext := s.nodes[stale&stackRefMask-1].next.LoadAcquire()

	// Meanwhile 2 is popped and its node is recycled by pushing 3.
	if got, err := s.Pop(); err != nil || got != 2 {
		t.Fatalf("Pop: got (%d, %v), want (2, nil)", got, err)
	}
	if err := s.Push(3); err != nil {
		t.Fatalf("Push(3): %v", err)
	}

	cur := s.top.LoadAcquire()
	if cur&stackRefMask != stale&stackRefMask {
		t.Fatalf("free list did not recycle the node: got ref %d, want %d", cur&stackRefMask, stale&stackRefMask)
	}
	if s.top.CompareAndSwapAcqRel(stale, stackPack(stale>>stackRefBits+1, staleNext)) {
		t.Fatal("stale CAS succeeded: ABA not detected")
	}

	for _, want := range []uintptr{3, 1} {
		got, err := s.Pop()
		if err != nil || got != want {
			t.Fatalf("Pop: got (%d, %v), want (%d, nil)", got, err, want)
		}
	}
	if _, err := s.Pop(); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestStackPack(t *testing.T) {
	w := stackPack(math.MaxUint32, 5)
	if w>>stackRefBits != math.MaxUint32 || w&stackRefMask != 5 {
		t.Fatalf("stackPack: got tag %d ref %d", w>>stackRefBits, w&stackRefMask)
	}
	// Tag overflow wraps without touching the reference.
	w = stackPack(w>>stackRefBits+1, w&stackRefMask)
	if w>>stackRefBits != 0 || w&stackRefMask != 5 {
		t.Fatalf("stackPack wrap: got tag %d ref %d", w>>stackRefBits, w&stackRefMask)
	}
}

// =============================================================================
// Layout
// =============================================================================

// TestHotFieldsSeparated verifies that fields written by different sides sit
// at least one cache line apart.
func TestHotFieldsSeparated(t *testing.T) {
	check := func(v any, a, b string) {
		t.Helper()
		typ := reflect.TypeOf(v)
		fa, ok := typ.FieldByName(a)
		if !ok {
			t.Fatalf("%s: missing field %q", typ, a)
		}
		fb, ok := typ.FieldByName(b)
		if !ok {
			t.Fatalf("%s: missing field %q", typ, b)
		}
		lo, hi := fa.Offset, fb.Offset
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo < CacheLineSize {
			t.Fatalf("%s: %s@%d and %s@%d share a cache line (%d bytes)", typ, a, fa.Offset, b, fb.Offset, CacheLineSize)
		}
	}

	check(SPSC[int]{}, "head", "tail")
	check(SPSC[int]{}, "head", "cachedHead")
	check(SPSC[int]{}, "tail", "cachedTail")
	check(MPMC[int]{}, "enqueuePos", "dequeuePos")
	check(StackIndirect{}, "top", "free")

	if got := reflect.TypeOf(mpmcSlot[int]{}).Size(); got < CacheLineSize {
		t.Fatalf("mpmcSlot[int] size %d is smaller than a cache line (%d)", got, CacheLineSize)
	}
}
