package dispatcher_test

import (
	"testing"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/engine/tree"
)

func TestAdvanceBuildNoBuild(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	result := d.AdvanceBuild()
	if result.Status != handler.StatusNoOp {
		t.Errorf("expected no-op, got %v", result.Status)
	}
	if result.Message != "no build in progress" {
		t.Errorf("expected no build in progress, got %q", result.Message)
	}
}

func TestAdvanceBuildBST(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureBST,
		Values:    []int{5, 3, 8},
	})

	step := d.AdvanceBuild()
	if step.Status != handler.StatusOK {
		t.Fatalf("expected a step result, got %v", step.Error)
	}
	if step.Message != "inserted 5" {
		t.Errorf("expected inserted 5, got %q", step.Message)
	}
	if remaining, _ := step.GetInt("remaining"); remaining != 2 {
		t.Errorf("expected 2 remaining, got %d", remaining)
	}

	d.AdvanceBuild()
	final := d.AdvanceBuild()
	if final.Message != "built bst with 3 nodes" {
		t.Errorf("expected the completion message, got %q", final.Message)
	}
	trace, ok := final.Trace()
	if !ok {
		t.Fatal("expected the full trace on the final step")
	}
	if trace.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", trace.Len())
	}

	sess := d.Session()
	if sess.Building() {
		t.Error("expected the build to be done")
	}
	got := sess.Tree().(*tree.BST).InOrder()
	want := []int{3, 5, 8}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expected inorder %v, got %v", want, got)
		}
	}
}

func TestAdvanceBuildAVLRotates(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureAVL,
		Values:    []int{10, 20, 30},
	})

	d.AdvanceBuild()
	d.AdvanceBuild()
	final := d.AdvanceBuild()

	if final.Status != handler.StatusOK {
		t.Fatalf("expected success, got %v", final.Error)
	}
	snap, _ := final.TreeSnapshot()
	if snap.Nodes[0].Value != 20 {
		t.Errorf("expected rotation to make 20 the root, got %d", snap.Nodes[0].Value)
	}

	trace, _ := final.Trace()
	var sawRotation bool
	for _, step := range trace.Steps {
		if step.Description == "right-right case: rotate left at 10" {
			sawRotation = true
		}
	}
	if !sawRotation {
		t.Error("expected the trace to record the rotation")
	}
}

func TestAdvanceBuildHuffman(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureHuffman,
		Freqs: []command.FreqPair{
			{Char: 'a', Count: 5},
			{Char: 'b', Count: 9},
			{Char: 'c', Count: 12},
		},
	})

	var steps int
	for d.Session().Building() {
		result := d.AdvanceBuild()
		if result.IsError() {
			t.Fatalf("step %d failed: %v", steps, result.Error)
		}
		steps++
	}
	if steps != 4 {
		t.Errorf("expected 4 steps, got %d", steps)
	}

	b := d.Session().Build()
	if b.Phase != session.PhaseDone {
		t.Errorf("expected phase done, got %v", b.Phase)
	}
	if b.Trace.Len() != 4 {
		t.Errorf("expected all 4 frames in the trace, got %d", b.Trace.Len())
	}
}

func TestAdvanceBuildReplaysQueue(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	var replayed []string
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(cmd *command.Command, sess *session.Session, result *handler.Result) {
		if cmd.Source == command.SourceReplay {
			replayed = append(replayed, cmd.Key())
		}
	}))

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureBST,
		Values:    []int{5, 3},
	})
	d.Dispatch(command.Command{Family: command.FamilyTree, Op: command.OpInsert, Value: intp(8)})
	d.Dispatch(command.Command{Family: command.FamilyTree, Op: command.OpInsert, Value: intp(1)})

	d.AdvanceBuild()
	d.AdvanceBuild()

	if len(replayed) != 2 {
		t.Fatalf("expected 2 replayed commands, got %d", len(replayed))
	}
	if replayed[0] != "tree.insert" || replayed[1] != "tree.insert" {
		t.Errorf("expected tree.insert replays, got %v", replayed)
	}

	got := d.Session().Tree().(*tree.BST).InOrder()
	want := []int{1, 3, 5, 8}
	if len(got) != len(want) {
		t.Fatalf("expected %v after replay, got %v", want, got)
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expected %v after replay, got %v", want, got)
		}
	}
}

func TestQueuedBuildStartsAfterCurrent(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureBST,
		Values:    []int{5},
	})
	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureAVL,
		Values:    []int{1, 2},
	})

	d.AdvanceBuild()

	// The replayed build replaced the finished BST with a fresh AVL build.
	sess := d.Session()
	if !sess.Building() {
		t.Fatal("expected the queued build to be in progress")
	}
	if sess.Build().Structure != command.StructureAVL {
		t.Errorf("expected an avl build, got %v", sess.Build().Structure)
	}
	if sess.TreeType() != command.StructureAVL {
		t.Errorf("expected an avl in the slot, got %v", sess.TreeType())
	}
}

func TestAdvanceBuildDuplicateValue(t *testing.T) {
	d := newTestDispatcher(dispatcher.DefaultConfig())

	d.Dispatch(command.Command{
		Family:    command.FamilyTree,
		Op:        command.OpBuild,
		Structure: command.StructureBST,
		Values:    []int{5, 5},
	})

	d.AdvanceBuild()
	final := d.AdvanceBuild()

	if final.Status != handler.StatusOK {
		t.Fatalf("expected the build to finish, got %v", final.Error)
	}
	if d.Session().Tree().Len() != 1 {
		t.Errorf("expected 1 node, got %d", d.Session().Tree().Len())
	}
	trace, _ := final.Trace()
	last := trace.Steps[len(trace.Steps)-1]
	if last.Description != "value 5 already present, tree unchanged" {
		t.Errorf("expected the duplicate frame, got %q", last.Description)
	}
}
