package linear

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// ArrayList is a resizable array-backed list. The backing capacity doubles
// when an insert finds it full and halves, never below the configured
// floor, once a removal leaves size below a quarter of capacity.
type ArrayList struct {
	data   []int
	size   int
	sizing sizing
}

// NewArrayList creates an empty array list.
func NewArrayList(opts ...Option) *ArrayList {
	s := defaultSizing()
	for _, opt := range opts {
		opt(&s)
	}
	return &ArrayList{
		data:   make([]int, s.initial),
		sizing: s,
	}
}

// NewArrayListFrom creates an array list seeded with values.
func NewArrayListFrom(values []int, opts ...Option) *ArrayList {
	l := NewArrayList(opts...)
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Type returns command.StructureArrayList.
func (l *ArrayList) Type() command.StructureType {
	return command.StructureArrayList
}

// Len returns the element count.
func (l *ArrayList) Len() int {
	return l.size
}

// Cap returns the current backing capacity.
func (l *ArrayList) Cap() int {
	return len(l.data)
}

// Insert places value at index, shifting later elements right.
// index may equal Len(), which appends.
func (l *ArrayList) Insert(index, value int) error {
	if index < 0 || index > l.size {
		return fmt.Errorf("%w: insert index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}

	if l.size == len(l.data) {
		l.grow()
	}

	copy(l.data[index+1:l.size+1], l.data[index:l.size])
	l.data[index] = value
	l.size++

	return nil
}

// Append adds value at the end.
func (l *ArrayList) Append(value int) {
	// Insert at size cannot fail.
	_ = l.Insert(l.size, value)
}

// Delete removes and returns the element at index.
func (l *ArrayList) Delete(index int) (int, error) {
	if index < 0 || index >= l.size {
		return 0, fmt.Errorf("%w: delete index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}

	removed := l.data[index]
	copy(l.data[index:l.size-1], l.data[index+1:l.size])
	l.size--

	if l.sizing.wantsShrink(l.size, len(l.data)) {
		l.shrink()
	}

	return removed, nil
}

// Get returns the element at index.
func (l *ArrayList) Get(index int) (int, error) {
	if index < 0 || index >= l.size {
		return 0, fmt.Errorf("%w: get index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}
	return l.data[index], nil
}

// Set overwrites the element at index.
func (l *ArrayList) Set(index, value int) error {
	if index < 0 || index >= l.size {
		return fmt.Errorf("%w: set index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}
	l.data[index] = value
	return nil
}

// IndexOf returns the first index holding value, or -1.
func (l *ArrayList) IndexOf(value int) int {
	for i := 0; i < l.size; i++ {
		if l.data[i] == value {
			return i
		}
	}
	return -1
}

// Clear removes all elements and resets the backing capacity.
func (l *ArrayList) Clear() {
	l.data = make([]int, l.sizing.initial)
	l.size = 0
}

// Snapshot returns a serializable view of the list.
func (l *ArrayList) Snapshot() snapshot.Linear {
	elems := make([]int, l.size)
	copy(elems, l.data[:l.size])
	return snapshot.Linear{
		Type:     l.Type().String(),
		Elements: elems,
		Size:     l.size,
		Capacity: len(l.data),
	}
}

// grow doubles the backing array, preserving element order.
func (l *ArrayList) grow() {
	next := make([]int, grown(len(l.data)))
	copy(next, l.data[:l.size])
	l.data = next
}

// shrink halves the backing array, clamped to the floor.
func (l *ArrayList) shrink() {
	next := make([]int, l.sizing.shrunk(len(l.data)))
	copy(next, l.data[:l.size])
	l.data = next
}
