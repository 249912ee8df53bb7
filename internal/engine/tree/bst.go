package tree

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// BST is the binary search tree. For every node, all left-descendant
// values are smaller and all right-descendant values larger; duplicates
// are rejected as no-ops.
type BST struct {
	root *node
	size int
	ids  *engine.IDSource
}

// NewBST creates an empty binary search tree.
func NewBST(ids *engine.IDSource) *BST {
	if ids == nil {
		ids = engine.NewIDSource()
	}
	return &BST{ids: ids}
}

// NewBSTFrom creates a BST by inserting values in order.
func NewBSTFrom(ids *engine.IDSource, values []int) *BST {
	t := NewBST(ids)
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

// Type returns command.StructureBST.
func (t *BST) Type() command.StructureType {
	return command.StructureBST
}

// Len returns the node count.
func (t *BST) Len() int {
	return t.size
}

// Height returns the tree height, 0 when empty.
func (t *BST) Height() int {
	return measure(t.root)
}

// Insert places value in order. Returns false without changing the tree
// when the value is already present.
func (t *BST) Insert(value int) bool {
	root, added := insertOrdered(t.root, value, func(v int) *node {
		return newNode(t.ids, v)
	})
	t.root = root
	if added {
		t.size++
	}
	return added
}

// Search walks from the root toward value. The returned path holds every
// visited node value, ending at the match or at the last node before the
// walk ran off the tree; it is the animation contract consumed by
// external renderers.
func (t *BST) Search(value int) (bool, []int) {
	return searchOrdered(t.root, value)
}

// Delete removes value. A two-children node takes its in-order
// successor's value before the successor is deleted from the right
// subtree. Returns false without changing the tree when the value is
// absent.
func (t *BST) Delete(value int) bool {
	root, removed := removeOrdered(t.root, value)
	t.root = root
	if removed {
		t.size--
	}
	return removed
}

// InOrder returns the values in sorted order.
func (t *BST) InOrder() []int {
	out := []int{}
	inorderValues(t.root, &out)
	return out
}

// Clear removes all nodes.
func (t *BST) Clear() {
	t.root = nil
	t.size = 0
}

// Snapshot returns a serializable view of the tree.
func (t *BST) Snapshot() snapshot.Tree {
	return capture(t.Type(), t.root, t.size)
}
