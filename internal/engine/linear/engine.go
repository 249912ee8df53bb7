// Package linear implements the three linear structure engines: the
// array-backed list, the singly linked list, and the array-backed stack.
//
// All engines share the Engine interface; the indexed structures (array
// list, linked list) additionally implement Indexed, and the stack
// implements its own push/pop/peek surface. Operations either fully apply
// or leave the structure unchanged, and none of them block.
package linear

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/snapshot"
)

// Engine is the surface every linear structure exposes.
type Engine interface {
	// Type returns the canonical structure type.
	Type() command.StructureType

	// Len returns the element count.
	Len() int

	// Clear removes all elements.
	Clear()

	// Snapshot returns a serializable view of the current state.
	Snapshot() snapshot.Linear
}

// Indexed is the surface of linear structures addressable by position.
type Indexed interface {
	Engine

	// Insert places value at index, shifting later elements right.
	// index == Len() appends.
	Insert(index, value int) error

	// Delete removes and returns the element at index.
	Delete(index int) (int, error)

	// Get returns the element at index.
	Get(index int) (int, error)

	// Set overwrites the element at index.
	Set(index, value int) error

	// IndexOf returns the first index holding value, or -1.
	IndexOf(value int) int

	// Append adds value at the end.
	Append(value int)
}
