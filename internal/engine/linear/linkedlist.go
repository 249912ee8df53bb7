package linear

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// LinkedList is a singly linked list with a head pointer. It has no
// backing capacity; size always equals the count of reachable nodes.
type LinkedList struct {
	head *listNode
	size int
}

type listNode struct {
	value int
	next  *listNode
}

// NewLinkedList creates an empty linked list.
func NewLinkedList() *LinkedList {
	return &LinkedList{}
}

// NewLinkedListFrom creates a linked list seeded with values.
func NewLinkedListFrom(values []int) *LinkedList {
	l := NewLinkedList()
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Type returns command.StructureLinkedList.
func (l *LinkedList) Type() command.StructureType {
	return command.StructureLinkedList
}

// Len returns the element count.
func (l *LinkedList) Len() int {
	return l.size
}

// Insert places value at index. index may equal Len(), which appends.
func (l *LinkedList) Insert(index, value int) error {
	if index < 0 || index > l.size {
		return fmt.Errorf("%w: insert index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}

	node := &listNode{value: value}
	if index == 0 {
		node.next = l.head
		l.head = node
	} else {
		prev := l.nodeAt(index - 1)
		node.next = prev.next
		prev.next = node
	}
	l.size++

	return nil
}

// Append adds value at the end.
func (l *LinkedList) Append(value int) {
	_ = l.Insert(l.size, value)
}

// Delete removes and returns the element at index.
func (l *LinkedList) Delete(index int) (int, error) {
	if index < 0 || index >= l.size {
		return 0, fmt.Errorf("%w: delete index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}

	var removed int
	if index == 0 {
		removed = l.head.value
		l.head = l.head.next
	} else {
		prev := l.nodeAt(index - 1)
		removed = prev.next.value
		prev.next = prev.next.next
	}
	l.size--

	return removed, nil
}

// Get returns the element at index.
func (l *LinkedList) Get(index int) (int, error) {
	if index < 0 || index >= l.size {
		return 0, fmt.Errorf("%w: get index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}
	return l.nodeAt(index).value, nil
}

// Set overwrites the element at index.
func (l *LinkedList) Set(index, value int) error {
	if index < 0 || index >= l.size {
		return fmt.Errorf("%w: set index %d with size %d", engine.ErrOutOfRange, index, l.size)
	}
	l.nodeAt(index).value = value
	return nil
}

// IndexOf returns the first index holding value, or -1.
func (l *LinkedList) IndexOf(value int) int {
	for i, n := 0, l.head; n != nil; i, n = i+1, n.next {
		if n.value == value {
			return i
		}
	}
	return -1
}

// Clear removes all elements.
func (l *LinkedList) Clear() {
	l.head = nil
	l.size = 0
}

// Snapshot returns a serializable view of the list.
func (l *LinkedList) Snapshot() snapshot.Linear {
	elems := make([]int, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		elems = append(elems, n.value)
	}
	return snapshot.Linear{
		Type:     l.Type().String(),
		Elements: elems,
		Size:     l.size,
	}
}

// nodeAt returns the node at index. The caller has already checked bounds.
func (l *LinkedList) nodeAt(index int) *listNode {
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}
