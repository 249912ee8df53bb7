// Package tree provides the handler for tree structure commands,
// including the multi-step build entry points.
package tree

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/engine/tree"
)

// Command keys for tree operations.
const (
	KeyCreate   = "tree.create"
	KeyInsert   = "tree.insert"
	KeyDelete   = "tree.delete"
	KeySearch   = "tree.search"
	KeyTraverse = "tree.traverse"
	KeyBuild    = "tree.build"
	KeyEncode   = "tree.encode"
	KeyDecode   = "tree.decode"
	KeyClear    = "tree.clear"
)

// Handler executes tree family commands against the session's tree slot.
type Handler struct{}

// NewHandler creates a tree command handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the tree namespace.
func (h *Handler) Namespace() string {
	return "tree"
}

// CanHandle returns true if this handler can process the key.
func (h *Handler) CanHandle(key string) bool {
	switch key {
	case KeyCreate, KeyInsert, KeyDelete, KeySearch, KeyTraverse,
		KeyBuild, KeyEncode, KeyDecode, KeyClear:
		return true
	}
	return false
}

// HandleCommand processes a tree command.
func (h *Handler) HandleCommand(cmd command.Command, sess *session.Session) handler.Result {
	switch cmd.Op {
	case command.OpCreate:
		return h.create(cmd, sess)
	case command.OpBuild:
		return h.build(cmd, sess)
	}

	if err := sess.ValidateTree(); err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}
	if err := checkStructure(cmd, sess); err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}

	switch cmd.Op {
	case command.OpInsert:
		return h.insert(cmd, sess)
	case command.OpDelete:
		return h.delete(cmd, sess)
	case command.OpSearch:
		return h.search(cmd, sess)
	case command.OpTraverse:
		return h.traverse(cmd, sess)
	case command.OpEncode:
		return h.encode(cmd, sess)
	case command.OpDecode:
		return h.decode(cmd, sess)
	case command.OpClear:
		return h.clear(sess)
	default:
		return handler.Errorf("unknown tree operation: %s", cmd.Op)
	}
}

// checkStructure rejects commands naming a structure type other than the
// one live in the slot.
func checkStructure(cmd command.Command, sess *session.Session) error {
	if cmd.Structure == command.StructureNone {
		return nil
	}
	if live := sess.TreeType(); cmd.Structure != live {
		return fmt.Errorf("%w: command names %s but %s is live", handler.ErrTypeMismatch, cmd.Structure, live)
	}
	return nil
}

func requireValue(cmd command.Command) (int, error) {
	if cmd.Value == nil {
		return 0, fmt.Errorf("%w: %s needs a value", engine.ErrInvalidArgument, cmd.Op)
	}
	return *cmd.Value, nil
}

// create constructs a tree eagerly. The multi-step form is build.
func (h *Handler) create(cmd command.Command, sess *session.Session) handler.Result {
	switch cmd.Structure {
	case command.StructureBinaryTree:
		t := tree.NewBinaryFrom(sess.IDs(), cmd.Values)
		sess.SetTree(t)
		return created(t)

	case command.StructureBST:
		t := tree.NewBSTFrom(sess.IDs(), cmd.Values)
		sess.SetTree(t)
		return created(t)

	case command.StructureAVL:
		t := tree.NewAVL(sess.IDs())
		for _, v := range cmd.Values {
			t.Insert(v)
		}
		sess.SetTree(t)
		return created(t)

	case command.StructureHuffman:
		t := tree.NewHuffman(sess.IDs())
		if len(cmd.Freqs) > 0 {
			trace, err := t.Build(cmd.Freqs)
			if err != nil {
				return handler.Error(err).WithTarget(command.FamilyTree)
			}
			sess.SetTree(t)
			return created(t).WithTrace(trace)
		}
		sess.SetTree(t)
		return created(t)

	default:
		return handler.Errorf("%w: %s is not a tree structure", engine.ErrInvalidArgument, cmd.Structure).
			WithTarget(command.FamilyTree)
	}
}

func created(t tree.Engine) handler.Result {
	return handler.Successf("created %s with %d nodes", t.Type(), t.Len()).
		WithTarget(command.FamilyTree).
		WithTreeSnapshot(t.Snapshot())
}

// build installs a multi-step construction. BST and AVL builds insert one
// value per step; Huffman builds run eagerly and surface one captured
// frame per step. The external driver advances the build through the
// dispatcher.
func (h *Handler) build(cmd command.Command, sess *session.Session) handler.Result {
	if cmd.Structure != command.StructureHuffman && len(cmd.Values) == 0 {
		return handler.Errorf("%w: build needs values", engine.ErrInvalidArgument).
			WithTarget(command.FamilyTree)
	}

	switch cmd.Structure {
	case command.StructureBST:
		sess.SetTree(tree.NewBST(sess.IDs()))
		sess.StartBuild(session.NewValueBuild(command.StructureBST, "bst.build", cmd.Values))

	case command.StructureAVL:
		sess.SetTree(tree.NewAVL(sess.IDs()))
		sess.StartBuild(session.NewValueBuild(command.StructureAVL, "avl.build", cmd.Values))

	case command.StructureHuffman:
		t := tree.NewHuffman(sess.IDs())
		trace, err := t.Build(cmd.Freqs)
		if err != nil {
			return handler.Error(err).WithTarget(command.FamilyTree)
		}
		sess.SetTree(t)
		sess.StartBuild(session.NewPreparedBuild(command.StructureHuffman, trace))

	default:
		return handler.Errorf("%w: build supports bst, avl, and huffman, not %s", engine.ErrInvalidArgument, cmd.Structure).
			WithTarget(command.FamilyTree)
	}

	b := sess.Build()
	return handler.Successf("building %s, %d steps", cmd.Structure, b.StepsLeft()).
		WithTarget(command.FamilyTree).
		WithData("steps", b.StepsLeft())
}

func (h *Handler) insert(cmd command.Command, sess *session.Session) handler.Result {
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}

	switch t := sess.Tree().(type) {
	case *tree.Binary:
		if cmd.HasPath() {
			if err := t.InsertAt(value, cmd.Path); err != nil {
				return handler.Error(err).WithTarget(command.FamilyTree)
			}
			return handler.Successf("inserted %d at path", value).
				WithTarget(command.FamilyTree).
				WithTreeSnapshot(t.Snapshot())
		}
		t.Insert(value)
		return handler.Successf("inserted %d level-order", value).
			WithTarget(command.FamilyTree).
			WithTreeSnapshot(t.Snapshot())

	case *tree.BST:
		if cmd.HasPath() {
			return pathNotOrdered(sess)
		}
		if !t.Insert(value) {
			return handler.NoOpWithMessage(fmt.Sprintf("value %d already in the bst", value)).
				WithTarget(command.FamilyTree).
				WithTreeSnapshot(t.Snapshot())
		}
		return handler.Successf("inserted %d", value).
			WithTarget(command.FamilyTree).
			WithTreeSnapshot(t.Snapshot())

	case *tree.AVL:
		if cmd.HasPath() {
			return pathNotOrdered(sess)
		}
		trace, inserted := t.Insert(value)
		if !inserted {
			return handler.NoOpWithMessage(fmt.Sprintf("value %d already in the avl", value)).
				WithTarget(command.FamilyTree).
				WithTreeSnapshot(t.Snapshot())
		}
		return handler.Successf("inserted %d", value).
			WithTarget(command.FamilyTree).
			WithTrace(trace).
			WithTreeSnapshot(t.Snapshot())

	default:
		return handler.Errorf("%w: %s does not support insert", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}
}

// pathNotOrdered rejects an explicit path on the ordered trees, which
// place values by comparison.
func pathNotOrdered(sess *session.Session) handler.Result {
	return handler.Errorf("%w: %s places values by ordering, not by path", handler.ErrTypeMismatch, sess.TreeType()).
		WithTarget(command.FamilyTree)
}

func (h *Handler) delete(cmd command.Command, sess *session.Session) handler.Result {
	switch t := sess.Tree().(type) {
	case *tree.Binary:
		if !cmd.HasPath() {
			return handler.Errorf("%w: binary_tree delete needs a path", engine.ErrInvalidArgument).
				WithTarget(command.FamilyTree)
		}
		removed, err := t.DeleteAt(cmd.Path, cmd.Expect)
		if err != nil {
			return handler.Error(err).WithTarget(command.FamilyTree)
		}
		return handler.Successf("deleted %d and its subtree", removed).
			WithTarget(command.FamilyTree).
			WithData("value", removed).
			WithTreeSnapshot(t.Snapshot())

	case *tree.BST:
		if cmd.HasPath() {
			return pathNotOrdered(sess)
		}
		value, err := deleteValue(cmd)
		if err != nil {
			return handler.Error(err).WithTarget(command.FamilyTree)
		}
		if !t.Delete(value) {
			return notFound(value, sess)
		}
		return handler.Successf("deleted %d", value).
			WithTarget(command.FamilyTree).
			WithTreeSnapshot(t.Snapshot())

	case *tree.AVL:
		if cmd.HasPath() {
			return pathNotOrdered(sess)
		}
		value, err := deleteValue(cmd)
		if err != nil {
			return handler.Error(err).WithTarget(command.FamilyTree)
		}
		trace, deleted := t.Delete(value)
		if !deleted {
			return notFound(value, sess)
		}
		return handler.Successf("deleted %d", value).
			WithTarget(command.FamilyTree).
			WithTrace(trace).
			WithTreeSnapshot(t.Snapshot())

	default:
		return handler.Errorf("%w: %s does not support delete", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}
}

// deleteValue extracts the by-value argument of an ordered-tree delete.
func deleteValue(cmd command.Command) (int, error) {
	if cmd.Target != nil && cmd.Target.Kind == command.TargetValue {
		return cmd.Target.Value, nil
	}
	if cmd.Value != nil {
		return *cmd.Value, nil
	}
	return 0, fmt.Errorf("%w: delete needs a value", engine.ErrInvalidArgument)
}

func notFound(value int, sess *session.Session) handler.Result {
	return handler.Errorf("%w: value %d is not in the %s", engine.ErrNotFound, value, sess.TreeType()).
		WithTarget(command.FamilyTree)
}

func (h *Handler) search(cmd command.Command, sess *session.Session) handler.Result {
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}

	var found bool
	var path []int
	switch t := sess.Tree().(type) {
	case *tree.BST:
		found, path = t.Search(value)
	case *tree.AVL:
		found, path = t.Search(value)
	default:
		return handler.Errorf("%w: search needs an ordered tree, %s is live", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}

	msg := fmt.Sprintf("found %d", value)
	if !found {
		msg = fmt.Sprintf("value %d is not in the %s", value, sess.TreeType())
	}
	return handler.SuccessWithMessage(msg).
		WithTarget(command.FamilyTree).
		WithData("found", found).
		WithData("path", path)
}

func (h *Handler) traverse(cmd command.Command, sess *session.Session) handler.Result {
	t, ok := sess.Tree().(*tree.Binary)
	if !ok {
		return handler.Errorf("%w: traverse is a binary_tree operation, %s is live", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}
	if cmd.Order == command.TraverseNone {
		return handler.Errorf("%w: traverse needs an order", engine.ErrInvalidArgument).
			WithTarget(command.FamilyTree)
	}

	values := t.Traverse(cmd.Order)
	return handler.Successf("%s traversal visited %d nodes", cmd.Order, len(values)).
		WithTarget(command.FamilyTree).
		WithData("values", values)
}

func (h *Handler) encode(cmd command.Command, sess *session.Session) handler.Result {
	t, ok := sess.Tree().(*tree.Huffman)
	if !ok {
		return handler.Errorf("%w: encode is a huffman operation, %s is live", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}

	bits, err := t.Encode(cmd.Text)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}
	return handler.Successf("encoded %q", cmd.Text).
		WithTarget(command.FamilyTree).
		WithData("bits", bits)
}

func (h *Handler) decode(cmd command.Command, sess *session.Session) handler.Result {
	t, ok := sess.Tree().(*tree.Huffman)
	if !ok {
		return handler.Errorf("%w: decode is a huffman operation, %s is live", handler.ErrTypeMismatch, sess.TreeType()).
			WithTarget(command.FamilyTree)
	}

	text, err := t.Decode(cmd.Bits)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyTree)
	}
	return handler.Successf("decoded %q", text).
		WithTarget(command.FamilyTree).
		WithData("text", text)
}

// clear destroys the live instance and discards any build in progress;
// the slot returns to uninitialized.
func (h *Handler) clear(sess *session.Session) handler.Result {
	cleared := sess.TreeType()
	sess.ClearTree()
	return handler.Successf("cleared %s", cleared).
		WithTarget(command.FamilyTree)
}
