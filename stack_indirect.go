// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

const (
	stackRefBits = 32
	stackRefMask = 1<<stackRefBits - 1

	// MaxStackIndirect is the largest capacity NewStackIndirect accepts.
	MaxStackIndirect = stackRefMask - 1
)

// StackIndirect is a bounded lock-free LIFO stack for uintptr values.
//
// Nodes live in an arena allocated once at construction and are addressed by
// index. Live nodes form a Treiber stack, unused nodes form a second one (the
// free list). Each list head packs a 32-bit tag with a 32-bit node reference:
//
//	head = tag<<32 | index+1    (index+1 == 0 means nil)
//
// Every successful CAS on a head bumps its tag. A goroutine that observed
// node A on top, stalled while A was popped, recycled and pushed again, will
// find a different tag and fail its CAS instead of installing a stale next
// link. The tag wraps after 2^32 updates of the same head; an ABA would
// require a single CAS attempt to stall across exactly that many updates.
//
// Memory: 16 bytes per node, no allocation after construction
type StackIndirect struct {
	_     pad
	top   atomix.Uint64 // Live stack head
	_     pad
	free  atomix.Uint64 // Free list head
	_     pad
	nodes []stackIndirectNode
}

type stackIndirectNode struct {
	next  atomix.Uint64 // index+1 of the next node, 0 at the end
	value atomix.Uintptr
}

// NewStackIndirect creates a stack holding at most capacity values.
// Panics if capacity < 1 or capacity > MaxStackIndirect.
func NewStackIndirect(capacity int) *StackIndirect {
	if capacity < 1 {
		panic("lfds: capacity must be >= 1")
	}
	if uint64(capacity) > MaxStackIndirect {
		panic("lfds: capacity exceeds MaxStackIndirect")
	}

	s := &StackIndirect{
		nodes: make([]stackIndirectNode, capacity),
	}
	for i := range capacity - 1 {
		s.nodes[i].next.StoreRelaxed(uint64(i + 2))
	}
	s.free.StoreRelease(stackPack(0, 1))

	return s
}

// Push adds a value on top of the stack.
// Returns ErrWouldBlock if all capacity nodes are in use.
func (s *StackIndirect) Push(elem uintptr) error {
	ref := s.take(&s.free)
	if ref == 0 {
		return ErrWouldBlock
	}
	s.nodes[ref-1].value.StoreRelaxed(elem)
	s.put(&s.top, ref)
	return nil
}

// Pop removes and returns the top value.
// Returns (0, ErrWouldBlock) if the stack is empty.
func (s *StackIndirect) Pop() (uintptr, error) {
	ref := s.take(&s.top)
	if ref == 0 {
		return 0, ErrWouldBlock
	}
	elem := s.nodes[ref-1].value.LoadAcquire()
	s.put(&s.free, ref)
	return elem, nil
}

// Empty reports whether the stack holds no values.
// The result is a snapshot and may be stale under concurrent access.
func (s *StackIndirect) Empty() bool {
	return s.top.LoadAcquire()&stackRefMask == 0
}

// Cap returns the maximum number of values the stack can hold.
func (s *StackIndirect) Cap() int {
	return len(s.nodes)
}

// take unlinks the first node of list and returns its reference,
// or 0 if list is empty.
func (s *StackIndirect) take(list *atomix.Uint64) uint64 {
	sw := spin.Wait{}
	for {
		old := list.LoadAcquire()
		ref := old & stackRefMask
		if ref == 0 {
			return 0
		}
		// May read a node that is concurrently recycled; the tag check
		// below rejects the resulting next link.
		next := s.nodes[ref-1].next.LoadAcquire()
		if list.CompareAndSwapAcqRel(old, stackPack(old>>stackRefBits+1, next)) {
			return ref
		}
		sw.Once()
	}
}

// put links the node ref in front of list.
func (s *StackIndirect) put(list *atomix.Uint64, ref uint64) {
	sw := spin.Wait{}
	for {
		old := list.LoadAcquire()
		s.nodes[ref-1].next.StoreRelaxed(old & stackRefMask)
		if list.CompareAndSwapAcqRel(old, stackPack(old>>stackRefBits+1, ref)) {
			return
		}
		sw.Once()
	}
}

func stackPack(tag, ref uint64) uint64 {
	return tag<<stackRefBits | ref&stackRefMask
}
