package tree

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// Binary is the unordered complete binary tree. Plain inserts place the
// new node breadth-first into the first free child slot; explicit
// root-relative left/right paths address arbitrary positions.
type Binary struct {
	root *node
	size int
	ids  *engine.IDSource
}

// NewBinary creates an empty binary tree. A nil id source gets a private
// one; the session passes its shared source so IDs stay unique across
// structure lifetimes.
func NewBinary(ids *engine.IDSource) *Binary {
	if ids == nil {
		ids = engine.NewIDSource()
	}
	return &Binary{ids: ids}
}

// NewBinaryFrom creates a binary tree built level-order from values.
func NewBinaryFrom(ids *engine.IDSource, values []int) *Binary {
	t := NewBinary(ids)
	t.BuildFromList(values)
	return t
}

// Type returns command.StructureBinaryTree.
func (t *Binary) Type() command.StructureType {
	return command.StructureBinaryTree
}

// Len returns the node count.
func (t *Binary) Len() int {
	return t.size
}

// Height returns the tree height, 0 when empty.
func (t *Binary) Height() int {
	return measure(t.root)
}

// BuildFromList replaces the tree contents with a level-order build.
func (t *Binary) BuildFromList(values []int) {
	t.Clear()
	for _, v := range values {
		t.Insert(v)
	}
}

// Insert places value breadth-first into the first node missing a left
// or right child.
func (t *Binary) Insert(value int) {
	fresh := newNode(t.ids, value)
	t.size++

	if t.root == nil {
		t.root = fresh
		return
	}

	queue := []*node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.left == nil {
			n.left = fresh
			return
		}
		queue = append(queue, n.left)

		if n.right == nil {
			n.right = fresh
			return
		}
		queue = append(queue, n.right)
	}
}

// InsertAt places value at the explicit path. The empty path creates the
// root and is valid only on an empty tree. Every intermediate node must
// exist and the final slot must be free.
func (t *Binary) InsertAt(value int, path []command.Dir) error {
	if len(path) == 0 {
		if t.root != nil {
			return fmt.Errorf("%w: root already exists", engine.ErrOutOfRange)
		}
		t.root = newNode(t.ids, value)
		t.size = 1
		return nil
	}

	parent := t.walk(path[:len(path)-1])
	if parent == nil {
		return fmt.Errorf("%w: path %s does not resolve", engine.ErrOutOfRange, pathString(path))
	}

	last := path[len(path)-1]
	slot := &parent.left
	if last == command.DirRight {
		slot = &parent.right
	}
	if *slot != nil {
		return fmt.Errorf("%w: position %s is occupied", engine.ErrOutOfRange, pathString(path))
	}

	*slot = newNode(t.ids, value)
	t.size++
	return nil
}

// DeleteAt removes the node at the explicit path together with its
// subtree. The empty path removes the root, emptying the tree. When
// expect is non-nil the resolved node's value must match.
func (t *Binary) DeleteAt(path []command.Dir, expect *int) (int, error) {
	target := t.walk(path)
	if target == nil {
		return 0, fmt.Errorf("%w: path %s does not resolve", engine.ErrOutOfRange, pathString(path))
	}
	if expect != nil && target.value != *expect {
		return 0, fmt.Errorf("%w: value at path %s is %d, expected %d",
			engine.ErrNotFound, pathString(path), target.value, *expect)
	}

	removed := countNodes(target)
	if len(path) == 0 {
		t.root = nil
	} else {
		parent := t.walk(path[:len(path)-1])
		if path[len(path)-1] == command.DirRight {
			parent.right = nil
		} else {
			parent.left = nil
		}
	}
	t.size -= removed

	return target.value, nil
}

// Traverse returns the value sequence for the given walk order.
func (t *Binary) Traverse(order command.Traversal) []int {
	out := []int{}
	switch order {
	case command.TraversePre:
		preorder(t.root, &out)
	case command.TraverseIn:
		inorderValues(t.root, &out)
	case command.TraversePost:
		postorder(t.root, &out)
	case command.TraverseLevel:
		levelorder(t.root, &out)
	}
	return out
}

// Clear removes all nodes.
func (t *Binary) Clear() {
	t.root = nil
	t.size = 0
}

// Snapshot returns a serializable view of the tree.
func (t *Binary) Snapshot() snapshot.Tree {
	return capture(t.Type(), t.root, t.size)
}

// walk follows path from the root, returning nil when any step is
// missing. The empty path returns the root.
func (t *Binary) walk(path []command.Dir) *node {
	n := t.root
	for _, d := range path {
		if n == nil {
			return nil
		}
		if d == command.DirRight {
			n = n.right
		} else {
			n = n.left
		}
	}
	return n
}

// pathString renders a path as its 0/1 digits, "root" for the empty path.
func pathString(path []command.Dir) string {
	if len(path) == 0 {
		return "root"
	}
	digits := make([]byte, len(path))
	for i, d := range path {
		digits[i] = '0' + byte(d)
	}
	return string(digits)
}

func preorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	*out = append(*out, n.value)
	preorder(n.left, out)
	preorder(n.right, out)
}

func postorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	postorder(n.left, out)
	postorder(n.right, out)
	*out = append(*out, n.value)
}

func levelorder(n *node, out *[]int) {
	if n == nil {
		return
	}
	queue := []*node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		*out = append(*out, cur.value)
		if cur.left != nil {
			queue = append(queue, cur.left)
		}
		if cur.right != nil {
			queue = append(queue, cur.right)
		}
	}
}
