// Package snapshot defines the serializable views of structure state that
// engines produce and external renderers consume: point-in-time snapshots
// of linear and tree structures, and the step traces recorded by
// multi-step operations.
package snapshot

// Linear is the view of an array list, linked list, or stack.
type Linear struct {
	// Type is the canonical structure type name.
	Type string `json:"type"`

	// Elements holds the element values in structure order. For stacks
	// the last element is the top.
	Elements []int `json:"elements"`

	// Size is the element count.
	Size int `json:"size"`

	// Capacity is the backing capacity; zero for unbounded structures.
	Capacity int `json:"capacity,omitempty"`
}

// Node is one tree node in a snapshot. Parent is a back-reference only;
// ownership always runs top-down through the edge list.
type Node struct {
	// ID is the session-unique node identifier.
	ID uint64 `json:"id"`

	// Value is the node value. For Huffman nodes this is the frequency.
	Value int `json:"value"`

	// Parent is the parent node ID, zero for the root.
	Parent uint64 `json:"parent,omitempty"`

	// Height is the cached subtree height where the engine tracks one.
	Height int `json:"height"`

	// Balance is height(left) - height(right) for AVL nodes.
	Balance int `json:"balance"`

	// Char is the source character carried by Huffman leaves.
	Char string `json:"char,omitempty"`
}

// Edge is one parent-to-child link.
type Edge struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`

	// Dir is "left" or "right".
	Dir string `json:"dir"`
}

// Tree is the view of a binary tree, BST, AVL, or Huffman tree. Nodes are
// listed in level order so renderers can lay them out without re-walking.
type Tree struct {
	// Type is the canonical structure type name.
	Type string `json:"type"`

	// Nodes lists every node, level order.
	Nodes []Node `json:"nodes"`

	// Edges lists every parent-to-child link.
	Edges []Edge `json:"edges"`

	// Size is the node count.
	Size int `json:"size"`

	// Height is the tree height; zero for an empty tree.
	Height int `json:"height"`

	// Codes is the Huffman code table, present only on frames captured
	// after code generation.
	Codes map[string]string `json:"codes,omitempty"`
}

// IsEmpty reports whether the snapshot holds no nodes.
func (t Tree) IsEmpty() bool {
	return len(t.Nodes) == 0
}

// NodeByID returns the node with the given ID, if present.
func (t Tree) NodeByID(id uint64) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
