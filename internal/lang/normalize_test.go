package lang

import (
	"errors"
	"testing"

	"github.com/dshills/structlab/internal/command"
)

func intp(v int) *int { return &v }

func mustCompile(t *testing.T, text string) command.Command {
	t.Helper()
	cmd, err := Compile(text)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", text, err)
	}
	return cmd
}

func TestNormalizeValueTarget(t *testing.T) {
	cmd := mustCompile(t, "delete 5 from arraylist")
	if cmd.Target == nil || cmd.Target.Kind != command.TargetValue || cmd.Target.Value != 5 {
		t.Errorf("target = %+v, want value 5", cmd.Target)
	}
	if cmd.Value != nil {
		t.Errorf("value should be folded into the target, got %v", cmd.Value)
	}
}

func TestNormalizePositionTarget(t *testing.T) {
	cmd := mustCompile(t, "get at 2 from linkedlist")
	if cmd.Target == nil || cmd.Target.Kind != command.TargetPosition || cmd.Target.Value != 2 {
		t.Errorf("target = %+v, want position 2", cmd.Target)
	}
}

func TestNormalizeExpectPromotion(t *testing.T) {
	cmd := mustCompile(t, "delete 7 at 0,1 from binarytree")
	if cmd.Expect == nil || *cmd.Expect != 7 {
		t.Errorf("expect = %v, want 7", cmd.Expect)
	}
	if cmd.Value != nil {
		t.Errorf("value should be promoted to expect, got %v", cmd.Value)
	}
	if cmd.Target != nil {
		t.Errorf("path delete should carry no target, got %+v", cmd.Target)
	}
	if len(cmd.Path) != 2 {
		t.Errorf("path = %v, want two steps", cmd.Path)
	}

	pathOnly := mustCompile(t, "delete at 0 from binarytree")
	if pathOnly.Expect != nil {
		t.Errorf("path-only delete should have no expectation, got %v", pathOnly.Expect)
	}
}

func TestNormalizeMissingTarget(t *testing.T) {
	_, err := Normalize(command.Command{
		Family:    command.FamilyLinear,
		Op:        command.OpDelete,
		Structure: command.StructureArrayList,
	})
	if !errors.Is(err, ErrNormalize) {
		t.Errorf("expected ErrNormalize, got %v", err)
	}
}

func TestNormalizeFamilyInference(t *testing.T) {
	cmd, err := Normalize(command.Command{
		Op:    command.OpPush,
		Name:  "stack",
		Value: intp(1),
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cmd.Family != command.FamilyLinear {
		t.Errorf("family = %v, want linear", cmd.Family)
	}
	if cmd.Structure != command.StructureStack {
		t.Errorf("structure = %v, want stack", cmd.Structure)
	}
}

func TestNormalizeAliasCanonicalization(t *testing.T) {
	cmd, err := Normalize(command.Command{
		Op:   command.OpCreate,
		Name: "ArrayList",
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cmd.Structure != command.StructureArrayList {
		t.Errorf("structure = %v, want array_list", cmd.Structure)
	}
	if cmd.Name != "array_list" {
		t.Errorf("name = %q, want canonical array_list", cmd.Name)
	}
}

func TestNormalizeEncodeDefaultsToHuffman(t *testing.T) {
	cmd, err := Normalize(command.Command{
		Family: command.FamilyTree,
		Op:     command.OpEncode,
		Text:   "abc",
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cmd.Structure != command.StructureHuffman {
		t.Errorf("structure = %v, want huffman", cmd.Structure)
	}
}

func TestNormalizeSet(t *testing.T) {
	ok := command.Command{
		Family:    command.FamilyLinear,
		Op:        command.OpSet,
		Structure: command.StructureArrayList,
		Value:     intp(9),
		Target:    &command.Target{Kind: command.TargetPosition, Value: 1},
	}
	if _, err := Normalize(ok); err != nil {
		t.Errorf("valid set rejected: %v", err)
	}

	noPos := command.Command{
		Family:    command.FamilyLinear,
		Op:        command.OpSet,
		Structure: command.StructureArrayList,
		Value:     intp(9),
	}
	if _, err := Normalize(noPos); !errors.Is(err, ErrNormalize) {
		t.Errorf("expected ErrNormalize for set without position, got %v", err)
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.Command
	}{
		{"no operation", command.Command{Family: command.FamilyLinear}},
		{"unknown structure", command.Command{Op: command.OpCreate, Name: "rope"}},
		{"no family no structure", command.Command{Op: command.OpInsert, Value: intp(1)}},
		{"family structure mismatch", command.Command{
			Family: command.FamilyLinear, Op: command.OpCreate, Name: "bst",
		}},
		{"op not in family", command.Command{
			Family: command.FamilyTree, Op: command.OpPush, Name: "bst", Value: intp(1),
		}},
		{"traverse without order", command.Command{
			Family: command.FamilyTree, Op: command.OpTraverse,
		}},
		{"negative capacity", command.Command{
			Family: command.FamilyLinear, Op: command.OpCreate,
			Name: "stack", Capacity: -1,
		}},
		{"build on binary tree", command.Command{
			Family: command.FamilyTree, Op: command.OpBuild, Name: "binary_tree",
		}},
		{"encode through bst", command.Command{
			Family: command.FamilyTree, Op: command.OpEncode, Name: "bst", Text: "x",
		}},
		{"insert without value", command.Command{
			Family: command.FamilyLinear, Op: command.OpInsert, Name: "stack",
		}},
		{"path on a linear delete", command.Command{
			Family: command.FamilyLinear, Op: command.OpDelete,
			Name: "arraylist", Path: []command.Dir{command.DirLeft},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.cmd); !errors.Is(err, ErrNormalize) {
				t.Errorf("expected ErrNormalize, got %v", err)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := mustCompile(t, "delete 5 from arraylist")
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("second normalize failed: %v", err)
	}
	if twice.Target == nil || *twice.Target != *once.Target {
		t.Errorf("normalize not idempotent: %+v then %+v", once.Target, twice.Target)
	}
}

func TestCompile(t *testing.T) {
	cmd := mustCompile(t, "create arraylist with 1,2,3 size 3")
	if cmd.Op != command.OpCreate || cmd.Structure != command.StructureArrayList {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if cmd.Capacity != 3 || len(cmd.Values) != 3 {
		t.Errorf("values/capacity lost: %+v", cmd)
	}

	if _, err := Compile("total nonsense"); !errors.Is(err, ErrClassify) {
		t.Errorf("expected ErrClassify, got %v", err)
	}
}
