package command

import "strings"

// StructureType identifies one of the seven supported structure kinds.
type StructureType uint8

const (
	// StructureNone indicates no specific structure.
	StructureNone StructureType = iota
	// StructureArrayList is the array-backed list.
	StructureArrayList
	// StructureLinkedList is the singly linked list.
	StructureLinkedList
	// StructureStack is the array-backed stack.
	StructureStack
	// StructureBinaryTree is the unordered complete binary tree.
	StructureBinaryTree
	// StructureBST is the binary search tree.
	StructureBST
	// StructureAVL is the self-balancing AVL tree.
	StructureAVL
	// StructureHuffman is the Huffman coding tree.
	StructureHuffman
)

// String returns the canonical snake-case name of the structure type.
func (t StructureType) String() string {
	switch t {
	case StructureArrayList:
		return "array_list"
	case StructureLinkedList:
		return "linked_list"
	case StructureStack:
		return "stack"
	case StructureBinaryTree:
		return "binary_tree"
	case StructureBST:
		return "bst"
	case StructureAVL:
		return "avl"
	case StructureHuffman:
		return "huffman"
	default:
		return "none"
	}
}

// Family returns the family the structure type belongs to.
func (t StructureType) Family() Family {
	switch t {
	case StructureArrayList, StructureLinkedList, StructureStack:
		return FamilyLinear
	case StructureBinaryTree, StructureBST, StructureAVL, StructureHuffman:
		return FamilyTree
	default:
		return FamilyUnknown
	}
}

// ParseStructureType canonicalizes a surface structure name. Alias
// spellings (camel case squashed, hyphens, "tree" suffixes) all resolve
// to the same type. Returns StructureNone for unknown names.
func ParseStructureType(name string) StructureType {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "array_list", "arraylist", "array":
		return StructureArrayList
	case "linked_list", "linkedlist", "list":
		return StructureLinkedList
	case "stack":
		return StructureStack
	case "binary_tree", "binarytree", "btree":
		return StructureBinaryTree
	case "bst", "binary_search_tree", "binarysearchtree":
		return StructureBST
	case "avl", "avl_tree", "avltree":
		return StructureAVL
	case "huffman", "huffman_tree", "huffmantree":
		return StructureHuffman
	default:
		return StructureNone
	}
}
