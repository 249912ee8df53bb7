package tree

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// AVL is the self-balancing binary search tree. Every node caches its
// height; after any structural change the tree is rebalanced by scanning
// breadth-first for the first node whose balance factor leaves [-1, 1],
// rotating it per the classic four cases, and rescanning from the root
// until no unbalanced node remains. Insertions need at most one rotation
// pass; deletions may cascade.
//
// Every insert and delete produces a step trace: the state before the
// change, the state after the raw structural change, and one frame per
// rotation performed.
type AVL struct {
	root *node
	size int
	ids  *engine.IDSource
}

// NewAVL creates an empty AVL tree.
func NewAVL(ids *engine.IDSource) *AVL {
	if ids == nil {
		ids = engine.NewIDSource()
	}
	return &AVL{ids: ids}
}

// Type returns command.StructureAVL.
func (t *AVL) Type() command.StructureType {
	return command.StructureAVL
}

// Len returns the node count.
func (t *AVL) Len() int {
	return t.size
}

// Height returns the tree height, 0 when empty.
func (t *AVL) Height() int {
	return heightOf(t.root)
}

// Insert places value in order and rebalances. Returns the step trace
// and whether a node was added; inserting a present value is a no-op.
func (t *AVL) Insert(value int) (*snapshot.Trace, bool) {
	trace := snapshot.NewTrace("avl.insert")
	trace.Add(fmt.Sprintf("insert %d", value), t.Snapshot())

	var fresh *node
	root, added := insertOrdered(t.root, value, func(v int) *node {
		fresh = newNode(t.ids, v)
		return fresh
	})
	t.root = root

	if !added {
		trace.Add(fmt.Sprintf("value %d already present, tree unchanged", value), t.Snapshot())
		return trace, false
	}
	t.size++

	measure(t.root)
	trace.Add(fmt.Sprintf("inserted %d", value), t.Snapshot(), fresh.id)

	t.rebalance(trace)
	return trace, true
}

// Delete removes value and rebalances. Returns the step trace and
// whether a node was removed; deleting an absent value is a no-op.
func (t *AVL) Delete(value int) (*snapshot.Trace, bool) {
	trace := snapshot.NewTrace("avl.delete")
	trace.Add(fmt.Sprintf("delete %d", value), t.Snapshot())

	root, removed := removeOrdered(t.root, value)
	t.root = root

	if !removed {
		trace.Add(fmt.Sprintf("value %d not present, tree unchanged", value), t.Snapshot())
		return trace, false
	}
	t.size--

	measure(t.root)
	trace.Add(fmt.Sprintf("deleted %d", value), t.Snapshot())

	t.rebalance(trace)
	return trace, true
}

// Search walks from the root toward value, the same root-to-target walk
// the BST exposes.
func (t *AVL) Search(value int) (bool, []int) {
	return searchOrdered(t.root, value)
}

// InOrder returns the values in sorted order.
func (t *AVL) InOrder() []int {
	out := []int{}
	inorderValues(t.root, &out)
	return out
}

// Clear removes all nodes.
func (t *AVL) Clear() {
	t.root = nil
	t.size = 0
}

// Snapshot returns a serializable view of the tree.
func (t *AVL) Snapshot() snapshot.Tree {
	return capture(t.Type(), t.root, t.size)
}

// rebalance rotates until every node's balance factor is within [-1, 1],
// appending one trace frame per rotation. Each pass rescans from the
// root so cascading imbalances after deletions are all found.
func (t *AVL) rebalance(trace *snapshot.Trace) {
	for {
		z, parent := t.firstUnbalanced()
		if z == nil {
			return
		}

		desc, pivots := t.rotate(z, parent)
		measure(t.root)
		trace.Add(desc, t.Snapshot(), pivots...)
	}
}

// firstUnbalanced scans breadth-first for the first node with
// |balance| > 1, returning it and its parent. Heights must be current.
func (t *AVL) firstUnbalanced() (z, parent *node) {
	if t.root == nil {
		return nil, nil
	}

	type entry struct {
		n, parent *node
	}
	queue := []entry{{t.root, nil}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if b := balanceOf(e.n); b > 1 || b < -1 {
			return e.n, e.parent
		}
		if e.n.left != nil {
			queue = append(queue, entry{e.n.left, e.n})
		}
		if e.n.right != nil {
			queue = append(queue, entry{e.n.right, e.n})
		}
	}
	return nil, nil
}

// rotate applies the fixup for the unbalanced node z and reattaches the
// rotated subtree to parent (or the root). Returns the frame description
// and the IDs of the nodes involved.
func (t *AVL) rotate(z, parent *node) (string, []uint64) {
	var sub *node
	var desc string
	var pivots []uint64

	if balanceOf(z) > 1 {
		y := z.left
		if balanceOf(y) >= 0 {
			sub = rotateRight(z)
			desc = fmt.Sprintf("left-left case: rotate right at %d", z.value)
			pivots = []uint64{z.id, y.id}
		} else {
			x := y.right
			z.left = rotateLeft(y)
			sub = rotateRight(z)
			desc = fmt.Sprintf("left-right case: rotate left at %d, then rotate right at %d", y.value, z.value)
			pivots = []uint64{z.id, y.id, x.id}
		}
	} else {
		y := z.right
		if balanceOf(y) <= 0 {
			sub = rotateLeft(z)
			desc = fmt.Sprintf("right-right case: rotate left at %d", z.value)
			pivots = []uint64{z.id, y.id}
		} else {
			x := y.left
			z.right = rotateRight(y)
			sub = rotateLeft(z)
			desc = fmt.Sprintf("right-left case: rotate right at %d, then rotate left at %d", y.value, z.value)
			pivots = []uint64{z.id, y.id, x.id}
		}
	}

	switch {
	case parent == nil:
		t.root = sub
	case parent.left == z:
		parent.left = sub
	default:
		parent.right = sub
	}

	return desc, pivots
}

// rotateRight lifts z's left child over z and returns it.
func rotateRight(z *node) *node {
	y := z.left
	z.left = y.right
	y.right = z
	return y
}

// rotateLeft lifts z's right child over z and returns it.
func rotateLeft(z *node) *node {
	y := z.right
	z.right = y.left
	y.left = z
	return y
}
