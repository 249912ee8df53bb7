package lang

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
)

// Normalize resolves a parsed command into its canonical dispatchable
// form: surface argument shapes become tagged targets, structure aliases
// collapse to canonical names, and the family is inferred for commands
// built programmatically. The returned command is safe to treat as
// immutable.
func Normalize(cmd command.Command) (command.Command, error) {
	if cmd.Op == command.OpNone {
		return command.Command{}, fmt.Errorf("%w: command has no operation", ErrNormalize)
	}

	if cmd.Structure == command.StructureNone && cmd.Name != "" {
		st := command.ParseStructureType(cmd.Name)
		if st == command.StructureNone {
			return command.Command{}, fmt.Errorf("%w: unknown structure %q", ErrNormalize, cmd.Name)
		}
		cmd.Structure = st
	}
	if cmd.Structure != command.StructureNone {
		cmd.Name = cmd.Structure.String()
	}

	if cmd.Family == command.FamilyUnknown {
		if cmd.Structure == command.StructureNone {
			return command.Command{}, fmt.Errorf("%w: command has no family and no structure", ErrNormalize)
		}
		cmd.Family = cmd.Structure.Family()
	}
	if cmd.Structure != command.StructureNone && cmd.Family != command.FamilyGlobal &&
		cmd.Structure.Family() != cmd.Family {
		return command.Command{}, fmt.Errorf("%w: %s is not a %s structure", ErrNormalize, cmd.Structure, cmd.Family)
	}
	if !opAllowed(cmd.Family, cmd.Op) {
		return command.Command{}, fmt.Errorf("%w: %q is not a %s operation", ErrNormalize, cmd.Op, cmd.Family)
	}

	switch cmd.Op {
	case command.OpDelete, command.OpGet:
		norm, err := normalizeTarget(cmd)
		if err != nil {
			return command.Command{}, err
		}
		cmd = norm

	case command.OpInsert, command.OpPush, command.OpSearch, command.OpIndexOf:
		if cmd.Value == nil {
			return command.Command{}, fmt.Errorf("%w: %s needs a value", ErrNormalize, cmd.Op)
		}

	case command.OpSet:
		if cmd.Value == nil {
			return command.Command{}, fmt.Errorf("%w: set needs a value", ErrNormalize)
		}
		if cmd.Target == nil || cmd.Target.Kind != command.TargetPosition {
			return command.Command{}, fmt.Errorf("%w: set needs a position target", ErrNormalize)
		}

	case command.OpTraverse:
		if cmd.Order == command.TraverseNone {
			return command.Command{}, fmt.Errorf("%w: traverse needs an order", ErrNormalize)
		}

	case command.OpCreate:
		if cmd.Structure == command.StructureNone {
			return command.Command{}, fmt.Errorf("%w: create needs a structure type", ErrNormalize)
		}
		if cmd.Capacity < 0 {
			return command.Command{}, fmt.Errorf("%w: capacity cannot be negative", ErrNormalize)
		}

	case command.OpBuild:
		switch cmd.Structure {
		case command.StructureBST, command.StructureAVL, command.StructureHuffman:
		default:
			return command.Command{}, fmt.Errorf("%w: build supports bst, avl, and huffman", ErrNormalize)
		}

	case command.OpEncode, command.OpDecode:
		if cmd.Structure == command.StructureNone {
			cmd.Structure = command.StructureHuffman
			cmd.Name = cmd.Structure.String()
		}
		if cmd.Structure != command.StructureHuffman {
			return command.Command{}, fmt.Errorf("%w: %s works through the huffman tree", ErrNormalize, cmd.Op)
		}
	}

	return cmd, nil
}

// normalizeTarget resolves the ambiguous delete/get argument into a
// tagged target or an explicit path. A value alongside a path becomes the
// expected value at that path. Absence of any target is an error, never a
// silent default.
func normalizeTarget(cmd command.Command) (command.Command, error) {
	switch {
	case cmd.HasPath():
		if cmd.Family != command.FamilyTree {
			return command.Command{}, fmt.Errorf("%w: a path target needs a tree structure", ErrNormalize)
		}
		if cmd.Target != nil {
			return command.Command{}, fmt.Errorf("%w: %s cannot take both a path and a position", ErrNormalize, cmd.Op)
		}
		if cmd.Value != nil {
			cmd.Expect = cmd.Value
			cmd.Value = nil
		}

	case cmd.Target != nil:
		if cmd.Value != nil {
			return command.Command{}, fmt.Errorf("%w: %s cannot take both a value and a position", ErrNormalize, cmd.Op)
		}

	case cmd.Value != nil:
		cmd.Target = &command.Target{Kind: command.TargetValue, Value: *cmd.Value}
		cmd.Value = nil

	default:
		return command.Command{}, fmt.Errorf("%w: %s needs a value or a position target", ErrNormalize, cmd.Op)
	}
	return cmd, nil
}

// opAllowed reports whether the operation belongs to the family's
// vocabulary.
func opAllowed(family command.Family, op command.Op) bool {
	switch family {
	case command.FamilyGlobal:
		return op == command.OpClear
	case command.FamilyLinear:
		switch op {
		case command.OpCreate, command.OpInsert, command.OpDelete, command.OpGet,
			command.OpSet, command.OpIndexOf, command.OpPush, command.OpPop,
			command.OpPeek, command.OpClear:
			return true
		}
	case command.FamilyTree:
		switch op {
		case command.OpCreate, command.OpInsert, command.OpDelete, command.OpSearch,
			command.OpTraverse, command.OpBuild, command.OpEncode, command.OpDecode,
			command.OpClear:
			return true
		}
	}
	return false
}

// Compile runs the full front end: classify, parse, normalize.
func Compile(text string) (command.Command, error) {
	cmd, err := Parse(text)
	if err != nil {
		return command.Command{}, err
	}
	return Normalize(cmd)
}
