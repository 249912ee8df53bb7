// Package tree implements the four tree engines: the unordered complete
// binary tree, the binary search tree, the self-balancing AVL tree, and
// the Huffman coding tree.
//
// All four share a boxed-child node representation. The tree owns its
// nodes top-down through left/right pointers; parent references exist
// only inside snapshots, produced during the capture walk. Node IDs come
// from an engine.IDSource so no ID is reused across a clear.
//
// The AVL engine and the Huffman engine record step traces: AVL for every
// insert and delete (one frame per rotation), Huffman for the build (one
// frame per merge plus the final code table).
package tree

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// Engine is the surface every tree structure exposes.
type Engine interface {
	// Type returns the canonical structure type.
	Type() command.StructureType

	// Len returns the node count.
	Len() int

	// Clear removes all nodes.
	Clear()

	// Snapshot returns a serializable view of the current state.
	Snapshot() snapshot.Tree
}

// node is the shared tree node. value carries the element value, or the
// frequency for Huffman nodes. height is maintained by the AVL engine
// and recomputed during capture for the others. char is set on Huffman
// leaves only.
type node struct {
	id     uint64
	value  int
	left   *node
	right  *node
	height int
	char   rune
}

// newNode allocates a node with a fresh ID. Leaf height is 1.
func newNode(ids *engine.IDSource, value int) *node {
	return &node{id: ids.Next(), value: value, height: 1}
}

// measure recomputes the height of every node in the subtree and returns
// the subtree height. A nil subtree has height 0.
func measure(n *node) int {
	if n == nil {
		return 0
	}
	n.height = max(measure(n.left), measure(n.right)) + 1
	return n.height
}

// heightOf returns the cached height, 0 for nil.
func heightOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

// balanceOf returns height(left) - height(right) using cached heights.
func balanceOf(n *node) int {
	if n == nil {
		return 0
	}
	return heightOf(n.left) - heightOf(n.right)
}

// insertOrdered places value in BST order, returning the new subtree root
// and whether a node was added. Duplicates are a no-op.
func insertOrdered(n *node, value int, alloc func(int) *node) (*node, bool) {
	if n == nil {
		return alloc(value), true
	}
	switch {
	case value < n.value:
		child, added := insertOrdered(n.left, value, alloc)
		n.left = child
		return n, added
	case value > n.value:
		child, added := insertOrdered(n.right, value, alloc)
		n.right = child
		return n, added
	default:
		return n, false
	}
}

// removeOrdered deletes value in BST order, returning the new subtree
// root and whether a node was removed. A two-children node takes its
// in-order successor's value, then the successor is deleted from the
// right subtree.
func removeOrdered(n *node, value int) (*node, bool) {
	if n == nil {
		return nil, false
	}
	switch {
	case value < n.value:
		child, removed := removeOrdered(n.left, value)
		n.left = child
		return n, removed
	case value > n.value:
		child, removed := removeOrdered(n.right, value)
		n.right = child
		return n, removed
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		succ := minNode(n.right)
		n.value = succ.value
		child, _ := removeOrdered(n.right, succ.value)
		n.right = child
		return n, true
	}
}

// minNode returns the leftmost node of a non-nil subtree.
func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// searchOrdered walks from n toward value, appending every visited node
// value. Returns whether value was found.
func searchOrdered(n *node, value int) (bool, []int) {
	path := []int{}
	for n != nil {
		path = append(path, n.value)
		switch {
		case value == n.value:
			return true, path
		case value < n.value:
			n = n.left
		default:
			n = n.right
		}
	}
	return false, path
}

// inorderValues appends the subtree's values in sorted (in-order) order.
func inorderValues(n *node, out *[]int) {
	if n == nil {
		return
	}
	inorderValues(n.left, out)
	*out = append(*out, n.value)
	inorderValues(n.right, out)
}

// capture builds a snapshot of the subtree rooted at root. Heights and
// balance factors are recomputed so the snapshot never depends on cached
// engine state. Nodes appear in level order.
func capture(typ command.StructureType, root *node, size int) snapshot.Tree {
	snap := snapshot.Tree{
		Type:  typ.String(),
		Nodes: []snapshot.Node{},
		Edges: []snapshot.Edge{},
		Size:  size,
	}
	if root == nil {
		return snap
	}

	snap.Height = measure(root)
	captureInto(&snap, root, 0)
	return snap
}

// captureForest builds a snapshot of several partial trees, as seen
// mid-way through a Huffman build. Roots appear in the given order.
func captureForest(typ command.StructureType, roots []*node, size int) snapshot.Tree {
	snap := snapshot.Tree{
		Type:  typ.String(),
		Nodes: []snapshot.Node{},
		Edges: []snapshot.Edge{},
		Size:  size,
	}
	for _, r := range roots {
		if r == nil {
			continue
		}
		if h := measure(r); h > snap.Height {
			snap.Height = h
		}
		captureInto(&snap, r, 0)
	}
	return snap
}

// captureInto walks one rooted subtree breadth-first, appending nodes and
// edges. Heights must already be up to date (see measure).
func captureInto(snap *snapshot.Tree, root *node, parent uint64) {
	type entry struct {
		n      *node
		parent uint64
	}
	queue := []entry{{root, parent}}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		n := e.n

		sn := snapshot.Node{
			ID:      n.id,
			Value:   n.value,
			Parent:  e.parent,
			Height:  n.height,
			Balance: heightOf(n.left) - heightOf(n.right),
		}
		if n.char != 0 {
			sn.Char = string(n.char)
		}
		snap.Nodes = append(snap.Nodes, sn)

		if n.left != nil {
			snap.Edges = append(snap.Edges, snapshot.Edge{From: n.id, To: n.left.id, Dir: "left"})
			queue = append(queue, entry{n.left, n.id})
		}
		if n.right != nil {
			snap.Edges = append(snap.Edges, snapshot.Edge{From: n.id, To: n.right.id, Dir: "right"})
			queue = append(queue, entry{n.right, n.id})
		}
	}
}

// countNodes returns the number of nodes in the subtree.
func countNodes(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + countNodes(n.left) + countNodes(n.right)
}
