// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import "code.hybscloud.com/lfds"

// Target adapts a structure under test to the token workload.
//
// Enqueue and Dequeue follow the lfds convention: lfds.ErrWouldBlock when the
// structure is full or empty, nil on success.
type Target struct {
	Name    string
	Enqueue func(v int) error
	Dequeue func() (int, error)
}

// ForQueue wraps any lfds.Queue[int], including MutexQueue.
func ForQueue(name string, q lfds.Queue[int]) Target {
	return Target{
		Name: name,
		Enqueue: func(v int) error {
			return q.Enqueue(&v)
		},
		Dequeue: q.Dequeue,
	}
}

// ForStack wraps an lfds.Stack[int]. Enqueue never reports full.
func ForStack(name string, s *lfds.Stack[int]) Target {
	return Target{
		Name: name,
		Enqueue: func(v int) error {
			s.Push(&v)
			return nil
		},
		Dequeue: s.Pop,
	}
}

// ForStackIndirect wraps an lfds.StackIndirect carrying tokens as uintptr.
func ForStackIndirect(name string, s *lfds.StackIndirect) Target {
	return Target{
		Name: name,
		Enqueue: func(v int) error {
			return s.Push(uintptr(v))
		},
		Dequeue: func() (int, error) {
			v, err := s.Pop()
			return int(v), err
		},
	}
}
