// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// Stack is an unbounded lock-free LIFO stack (Treiber stack).
//
// Elements live in heap-allocated nodes linked from a single atomic head
// pointer. Push and Pop both retry a compare-and-swap on head until it
// succeeds; head is never written any other way.
//
// Node reclamation is left to the garbage collector. A popped node stays
// alive for as long as any goroutine still holds it from an earlier load of
// head, so a racing Pop that reads node.next after losing the CAS never
// touches freed memory. Every Push allocates a fresh node, so the head CAS
// cannot succeed against a recycled node (no ABA).
//
// Memory: one node per element
type Stack[T any] struct {
	_    pad
	head atomic.Pointer[stackNode[T]]
	_    pad
}

type stackNode[T any] struct {
	value T
	next  *stackNode[T] // immutable once published
}

// NewStack creates a new empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds an element on top of the stack. It always succeeds.
func (s *Stack[T]) Push(elem *T) {
	n := &stackNode[T]{value: *elem}
	n.next = s.head.Load()

	sw := spin.Wait{}
	for !s.head.CompareAndSwap(n.next, n) {
		sw.Once()
		n.next = s.head.Load()
	}
}

// Pop removes and returns the top element.
// Returns (zero-value, ErrWouldBlock) if the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	sw := spin.Wait{}
	for {
		top := s.head.Load()
		if top == nil {
			var zero T
			return zero, ErrWouldBlock
		}
		if s.head.CompareAndSwap(top, top.next) {
			elem := top.value
			var zero T
			top.value = zero
			return elem, nil
		}
		sw.Once()
	}
}

// Empty reports whether the stack holds no elements.
// The result is a snapshot and may be stale under concurrent access.
func (s *Stack[T]) Empty() bool {
	return s.head.Load() == nil
}
