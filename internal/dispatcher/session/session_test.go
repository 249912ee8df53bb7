package session_test

import (
	"errors"
	"testing"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/engine/linear"
	"github.com/dshills/structlab/internal/engine/tree"
)

func TestNew(t *testing.T) {
	s := session.New()

	if s.ID.String() == "" {
		t.Error("expected session ID to be set")
	}
	if s.IDs() == nil {
		t.Error("expected ID source to be initialized")
	}
	if s.Linear() != nil {
		t.Error("expected empty linear slot")
	}
	if s.Tree() != nil {
		t.Error("expected empty tree slot")
	}
	if s.Build() != nil {
		t.Error("expected no build state")
	}
}

func TestValidateEmptySlots(t *testing.T) {
	s := session.New()

	if err := s.ValidateLinear(); !errors.Is(err, session.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if err := s.ValidateTree(); !errors.Is(err, session.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestSetLinear(t *testing.T) {
	s := session.New()
	s.SetLinear(linear.NewArrayList())

	if err := s.ValidateLinear(); err != nil {
		t.Errorf("expected live slot to validate, got %v", err)
	}
	if got := s.LinearType(); got != command.StructureArrayList {
		t.Errorf("expected array_list, got %v", got)
	}

	// A later create replaces the slot wholesale.
	s.SetLinear(linear.NewStack())
	if got := s.LinearType(); got != command.StructureStack {
		t.Errorf("expected stack after replacement, got %v", got)
	}
}

func TestSetTree(t *testing.T) {
	s := session.New()
	s.SetTree(tree.NewBST(s.IDs()))

	if err := s.ValidateTree(); err != nil {
		t.Errorf("expected live slot to validate, got %v", err)
	}
	if got := s.TreeType(); got != command.StructureBST {
		t.Errorf("expected bst, got %v", got)
	}
}

func TestEmptyTypes(t *testing.T) {
	s := session.New()

	if got := s.LinearType(); got != command.StructureNone {
		t.Errorf("expected StructureNone for empty linear slot, got %v", got)
	}
	if got := s.TreeType(); got != command.StructureNone {
		t.Errorf("expected StructureNone for empty tree slot, got %v", got)
	}
}

func TestClearTreeDiscardsBuild(t *testing.T) {
	s := session.New()
	s.SetTree(tree.NewBST(s.IDs()))
	s.StartBuild(session.NewValueBuild(command.StructureBST, "bst.build", []int{5, 3, 8}))

	if !s.Building() {
		t.Fatal("expected build in progress")
	}

	s.ClearTree()

	if s.Tree() != nil {
		t.Error("expected tree slot to be empty")
	}
	if s.Build() != nil {
		t.Error("expected build state to be discarded")
	}
	if s.Building() {
		t.Error("expected no build in progress")
	}
}

func TestSetTreeDiscardsBuild(t *testing.T) {
	s := session.New()
	s.SetTree(tree.NewAVL(s.IDs()))
	s.StartBuild(session.NewValueBuild(command.StructureAVL, "avl.build", []int{1, 2}))

	s.SetTree(tree.NewBST(s.IDs()))

	if s.Build() != nil {
		t.Error("expected replacement create to discard the build")
	}
}

func TestClearAll(t *testing.T) {
	s := session.New()
	s.SetLinear(linear.NewLinkedList())
	s.SetTree(tree.NewBinary(s.IDs()))

	s.ClearAll()

	if s.Linear() != nil || s.Tree() != nil {
		t.Error("expected both slots to be empty")
	}
}

func TestClearLinearKeepsBuild(t *testing.T) {
	s := session.New()
	s.SetTree(tree.NewBST(s.IDs()))
	s.StartBuild(session.NewValueBuild(command.StructureBST, "bst.build", []int{1}))

	s.ClearLinear()

	if !s.Building() {
		t.Error("expected linear clear to leave the tree build running")
	}
}
