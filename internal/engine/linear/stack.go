package linear

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// Stack is an array-backed stack with the same grow/shrink behavior as
// ArrayList. Pop and Peek on an empty stack fail rather than returning a
// sentinel value.
type Stack struct {
	data   []int
	top    int
	sizing sizing
}

// NewStack creates an empty stack.
func NewStack(opts ...Option) *Stack {
	s := defaultSizing()
	for _, opt := range opts {
		opt(&s)
	}
	return &Stack{
		data:   make([]int, s.initial),
		sizing: s,
	}
}

// NewStackFrom creates a stack by pushing values in order, so the last
// value is on top.
func NewStackFrom(values []int, opts ...Option) *Stack {
	s := NewStack(opts...)
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// Type returns command.StructureStack.
func (s *Stack) Type() command.StructureType {
	return command.StructureStack
}

// Len returns the element count.
func (s *Stack) Len() int {
	return s.top
}

// Cap returns the current backing capacity.
func (s *Stack) Cap() int {
	return len(s.data)
}

// Push places value on top of the stack.
func (s *Stack) Push(value int) {
	if s.top == len(s.data) {
		next := make([]int, grown(len(s.data)))
		copy(next, s.data[:s.top])
		s.data = next
	}
	s.data[s.top] = value
	s.top++
}

// Pop removes and returns the top element.
func (s *Stack) Pop() (int, error) {
	if s.top == 0 {
		return 0, fmt.Errorf("%w: pop on empty stack", engine.ErrOutOfRange)
	}

	s.top--
	removed := s.data[s.top]

	if s.sizing.wantsShrink(s.top, len(s.data)) {
		next := make([]int, s.sizing.shrunk(len(s.data)))
		copy(next, s.data[:s.top])
		s.data = next
	}

	return removed, nil
}

// Peek returns the top element without removing it.
func (s *Stack) Peek() (int, error) {
	if s.top == 0 {
		return 0, fmt.Errorf("%w: peek on empty stack", engine.ErrOutOfRange)
	}
	return s.data[s.top-1], nil
}

// Clear removes all elements and resets the backing capacity.
func (s *Stack) Clear() {
	s.data = make([]int, s.sizing.initial)
	s.top = 0
}

// Snapshot returns a serializable view of the stack, bottom first.
func (s *Stack) Snapshot() snapshot.Linear {
	elems := make([]int, s.top)
	copy(elems, s.data[:s.top])
	return snapshot.Linear{
		Type:     s.Type().String(),
		Elements: elems,
		Size:     s.top,
		Capacity: len(s.data),
	}
}
