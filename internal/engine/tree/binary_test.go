package tree

import (
	"errors"
	"testing"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
)

func TestBinaryLevelOrderInsert(t *testing.T) {
	b := NewBinary(nil)
	for _, v := range []int{1, 2, 3, 4, 5, 6, 7} {
		b.Insert(v)
	}

	if b.Len() != 7 {
		t.Fatalf("expected size 7, got %d", b.Len())
	}
	if b.Height() != 3 {
		t.Errorf("expected height 3 for a complete 7-node tree, got %d", b.Height())
	}

	got := b.Traverse(command.TraverseLevel)
	want := []int{1, 2, 3, 4, 5, 6, 7}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("level order position %d = %d, want %d", i, got[i], w)
		}
	}
}

func TestBinaryTraversals(t *testing.T) {
	// Level-order build of:
	//       1
	//      / \
	//     2   3
	//    / \
	//   4   5
	b := NewBinaryFrom(nil, []int{1, 2, 3, 4, 5})

	tests := []struct {
		name  string
		order command.Traversal
		want  []int
	}{
		{"preorder", command.TraversePre, []int{1, 2, 4, 5, 3}},
		{"inorder", command.TraverseIn, []int{4, 2, 5, 1, 3}},
		{"postorder", command.TraversePost, []int{4, 5, 2, 3, 1}},
		{"levelorder", command.TraverseLevel, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Traverse(tt.order)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d", len(tt.want), len(got))
			}
			for i, w := range tt.want {
				if got[i] != w {
					t.Errorf("position %d = %d, want %d", i, got[i], w)
				}
			}
		})
	}
}

func TestBinaryInsertAt(t *testing.T) {
	b := NewBinary(nil)

	// Empty path creates the root on an empty tree.
	if err := b.InsertAt(1, []command.Dir{}); err != nil {
		t.Fatalf("root insert failed: %v", err)
	}
	// A second root insert fails.
	if err := b.InsertAt(9, []command.Dir{}); !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for occupied root, got %v", err)
	}

	if err := b.InsertAt(2, []command.Dir{command.DirLeft}); err != nil {
		t.Fatalf("left insert failed: %v", err)
	}
	if err := b.InsertAt(3, []command.Dir{command.DirRight}); err != nil {
		t.Fatalf("right insert failed: %v", err)
	}
	if err := b.InsertAt(4, []command.Dir{command.DirLeft, command.DirRight}); err != nil {
		t.Fatalf("path 01 insert failed: %v", err)
	}

	// Occupied slot fails.
	if err := b.InsertAt(9, []command.Dir{command.DirLeft}); !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for occupied slot, got %v", err)
	}
	// Missing intermediate node fails.
	err := b.InsertAt(9, []command.Dir{command.DirRight, command.DirRight, command.DirLeft})
	if !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for unresolvable path, got %v", err)
	}

	got := b.Traverse(command.TraverseLevel)
	want := []int{1, 2, 3, 4}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("level order position %d = %d, want %d", i, got[i], w)
		}
	}
}

func TestBinaryDeleteAt(t *testing.T) {
	b := NewBinaryFrom(nil, []int{1, 2, 3, 4, 5})

	// Deleting node 2 removes its subtree (4 and 5 go with it).
	removed, err := b.DeleteAt([]command.Dir{command.DirLeft}, nil)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected removed value 2, got %d", removed)
	}
	if b.Len() != 2 {
		t.Errorf("expected size 2 after subtree removal, got %d", b.Len())
	}

	// Unresolvable path fails.
	if _, err := b.DeleteAt([]command.Dir{command.DirLeft}, nil); !errors.Is(err, engine.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestBinaryDeleteAtExpectMismatch(t *testing.T) {
	b := NewBinaryFrom(nil, []int{1, 2, 3})

	wrong := 99
	_, err := b.DeleteAt([]command.Dir{command.DirRight}, &wrong)
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for value mismatch, got %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("failed delete must not mutate; size = %d", b.Len())
	}

	right := 3
	removed, err := b.DeleteAt([]command.Dir{command.DirRight}, &right)
	if err != nil {
		t.Fatalf("matching delete failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected removed 3, got %d", removed)
	}
}

func TestBinaryDeleteRootEmptiesTree(t *testing.T) {
	b := NewBinaryFrom(nil, []int{1, 2, 3, 4})

	if _, err := b.DeleteAt([]command.Dir{}, nil); err != nil {
		t.Fatalf("root delete failed: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty tree, got size %d", b.Len())
	}
	if !b.Snapshot().IsEmpty() {
		t.Error("snapshot should be empty after root delete")
	}
}

func TestBinarySnapshotShape(t *testing.T) {
	b := NewBinaryFrom(nil, []int{1, 2, 3})
	snap := b.Snapshot()

	if snap.Type != "binary_tree" {
		t.Errorf("expected type binary_tree, got %q", snap.Type)
	}
	if snap.Size != 3 || len(snap.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got size %d with %d nodes", snap.Size, len(snap.Nodes))
	}
	if len(snap.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(snap.Edges))
	}

	root := snap.Nodes[0]
	if root.Parent != 0 {
		t.Errorf("root parent should be 0, got %d", root.Parent)
	}
	for _, n := range snap.Nodes[1:] {
		if n.Parent != root.ID {
			t.Errorf("node %d parent = %d, want root %d", n.ID, n.Parent, root.ID)
		}
	}

	dirs := map[string]bool{}
	for _, e := range snap.Edges {
		if e.From != root.ID {
			t.Errorf("edge from %d, want root %d", e.From, root.ID)
		}
		dirs[e.Dir] = true
	}
	if !dirs["left"] || !dirs["right"] {
		t.Errorf("expected one left and one right edge, got %v", dirs)
	}
}

func TestBinaryNodeIDsNotReusedAcrossClear(t *testing.T) {
	ids := engine.NewIDSource()
	b := NewBinaryFrom(ids, []int{1, 2, 3})

	seen := map[uint64]bool{}
	for _, n := range b.Snapshot().Nodes {
		seen[n.ID] = true
	}

	b.Clear()
	b.BuildFromList([]int{4, 5, 6})

	for _, n := range b.Snapshot().Nodes {
		if seen[n.ID] {
			t.Errorf("node ID %d reused across clear", n.ID)
		}
	}
}
