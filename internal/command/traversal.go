package command

import "strings"

// Traversal identifies a binary tree walk order.
type Traversal uint8

const (
	// TraverseNone is the zero traversal.
	TraverseNone Traversal = iota
	// TraversePre visits node, left subtree, right subtree.
	TraversePre
	// TraverseIn visits left subtree, node, right subtree.
	TraverseIn
	// TraversePost visits left subtree, right subtree, node.
	TraversePost
	// TraverseLevel visits nodes breadth-first, level by level.
	TraverseLevel
)

// String returns the surface name of the traversal order.
func (t Traversal) String() string {
	switch t {
	case TraversePre:
		return "preorder"
	case TraverseIn:
		return "inorder"
	case TraversePost:
		return "postorder"
	case TraverseLevel:
		return "levelorder"
	default:
		return "none"
	}
}

// ParseTraversal maps a surface order name to a traversal. Accepts both
// the joined ("inorder") and split ("in_order") spellings.
func ParseTraversal(name string) Traversal {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	switch key {
	case "preorder", "pre":
		return TraversePre
	case "inorder", "in":
		return TraverseIn
	case "postorder", "post":
		return TraversePost
	case "levelorder", "level", "bfs":
		return TraverseLevel
	default:
		return TraverseNone
	}
}
