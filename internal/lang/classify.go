package lang

import (
	"strings"

	"github.com/dshills/structlab/internal/command"
)

// Classify assigns raw text to a command family. It is a pure function:
// it never mutates state and always returns the same family for the same
// text.
//
// The decision is keyword-driven. The single token "clear" is the global
// command; a "tree." prefix selects the tree family; otherwise the first
// structure name or traversal order found decides (linear names win when
// both appear), and failing that, an operation word belonging to exactly
// one family decides. Text matching none of these is FamilyUnknown.
func Classify(text string) command.Family {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return command.FamilyUnknown
	}
	if len(fields) == 1 && fields[0] == "clear" {
		return command.FamilyGlobal
	}
	if strings.HasPrefix(fields[0], "tree.") {
		return command.FamilyTree
	}

	sawTree := false
	for _, f := range fields {
		if t := command.ParseStructureType(f); t != command.StructureNone {
			if t.Family() == command.FamilyLinear {
				return command.FamilyLinear
			}
			sawTree = true
			continue
		}
		if command.ParseTraversal(f) != command.TraverseNone {
			sawTree = true
		}
	}
	if sawTree {
		return command.FamilyTree
	}

	switch command.ParseOp(fields[0]) {
	case command.OpPush, command.OpPop, command.OpPeek:
		return command.FamilyLinear
	case command.OpSearch, command.OpTraverse, command.OpBuild, command.OpEncode, command.OpDecode:
		return command.FamilyTree
	default:
		return command.FamilyUnknown
	}
}
