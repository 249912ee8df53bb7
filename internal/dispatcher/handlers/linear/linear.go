// Package linear provides the handler for linear structure commands.
package linear

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/engine/linear"
)

// Command keys for linear operations.
const (
	KeyCreate  = "linear.create"
	KeyInsert  = "linear.insert"
	KeyDelete  = "linear.delete"
	KeyGet     = "linear.get"
	KeySet     = "linear.set"
	KeyIndexOf = "linear.index_of"
	KeyPush    = "linear.push"
	KeyPop     = "linear.pop"
	KeyPeek    = "linear.peek"
	KeyClear   = "linear.clear"
)

// Handler executes linear family commands against the session's linear
// slot.
type Handler struct{}

// NewHandler creates a linear command handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the linear namespace.
func (h *Handler) Namespace() string {
	return "linear"
}

// CanHandle returns true if this handler can process the key.
func (h *Handler) CanHandle(key string) bool {
	switch key {
	case KeyCreate, KeyInsert, KeyDelete, KeyGet, KeySet, KeyIndexOf,
		KeyPush, KeyPop, KeyPeek, KeyClear:
		return true
	}
	return false
}

// HandleCommand processes a linear command.
func (h *Handler) HandleCommand(cmd command.Command, sess *session.Session) handler.Result {
	if cmd.Op == command.OpCreate {
		return h.create(cmd, sess)
	}

	if err := sess.ValidateLinear(); err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	if err := checkStructure(cmd, sess); err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	switch cmd.Op {
	case command.OpInsert:
		return h.insert(cmd, sess)
	case command.OpDelete:
		return h.delete(cmd, sess)
	case command.OpGet:
		return h.get(cmd, sess)
	case command.OpSet:
		return h.set(cmd, sess)
	case command.OpIndexOf:
		return h.indexOf(cmd, sess)
	case command.OpPush:
		return h.push(cmd, sess)
	case command.OpPop:
		return h.pop(cmd, sess)
	case command.OpPeek:
		return h.peek(cmd, sess)
	case command.OpClear:
		return h.clear(sess)
	default:
		return handler.Errorf("unknown linear operation: %s", cmd.Op)
	}
}

// checkStructure rejects commands naming a structure type other than the
// one live in the slot.
func checkStructure(cmd command.Command, sess *session.Session) error {
	if cmd.Structure == command.StructureNone {
		return nil
	}
	if live := sess.LinearType(); cmd.Structure != live {
		return fmt.Errorf("%w: command names %s but %s is live", handler.ErrTypeMismatch, cmd.Structure, live)
	}
	return nil
}

// indexed narrows the slot to the position-addressable structures.
func indexed(cmd command.Command, sess *session.Session) (linear.Indexed, error) {
	eng, ok := sess.Linear().(linear.Indexed)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a %s operation", handler.ErrTypeMismatch, cmd.Op, sess.LinearType())
	}
	return eng, nil
}

// stack narrows the slot to the stack.
func stack(cmd command.Command, sess *session.Session) (*linear.Stack, error) {
	st, ok := sess.Linear().(*linear.Stack)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a stack operation, %s is live", handler.ErrTypeMismatch, cmd.Op, sess.LinearType())
	}
	return st, nil
}

func requireValue(cmd command.Command) (int, error) {
	if cmd.Value == nil {
		return 0, fmt.Errorf("%w: %s needs a value", engine.ErrInvalidArgument, cmd.Op)
	}
	return *cmd.Value, nil
}

func (h *Handler) create(cmd command.Command, sess *session.Session) handler.Result {
	var eng linear.Engine
	switch cmd.Structure {
	case command.StructureArrayList:
		eng = linear.NewArrayListFrom(cmd.Values, capacityOptions(cmd)...)
	case command.StructureLinkedList:
		eng = linear.NewLinkedListFrom(cmd.Values)
	case command.StructureStack:
		eng = linear.NewStackFrom(cmd.Values, capacityOptions(cmd)...)
	default:
		return handler.Errorf("%w: %s is not a linear structure", engine.ErrInvalidArgument, cmd.Structure)
	}

	sess.SetLinear(eng)
	return handler.Successf("created %s with %d elements", eng.Type(), eng.Len()).
		WithTarget(command.FamilyLinear).
		WithLinearSnapshot(eng.Snapshot())
}

// capacityOptions maps the size clause onto engine options. The linked
// list has no backing capacity, so the clause only reaches the
// array-backed structures.
func capacityOptions(cmd command.Command) []linear.Option {
	if cmd.Capacity > 0 {
		return []linear.Option{linear.WithCapacity(cmd.Capacity)}
	}
	return nil
}

func (h *Handler) insert(cmd command.Command, sess *session.Session) handler.Result {
	eng, err := indexed(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	if cmd.Target == nil {
		eng.Append(value)
		return handler.Successf("inserted %d at end of %s", value, eng.Type()).
			WithTarget(command.FamilyLinear).
			WithLinearSnapshot(eng.Snapshot())
	}

	pos := cmd.Target.Value
	if err := eng.Insert(pos, value); err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	return handler.Successf("inserted %d at position %d", value, pos).
		WithTarget(command.FamilyLinear).
		WithLinearSnapshot(eng.Snapshot())
}

func (h *Handler) delete(cmd command.Command, sess *session.Session) handler.Result {
	eng, err := indexed(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	if cmd.Target == nil {
		return handler.Errorf("%w: delete needs a value or a position", engine.ErrInvalidArgument).
			WithTarget(command.FamilyLinear)
	}

	pos := cmd.Target.Value
	if cmd.Target.Kind == command.TargetValue {
		pos = eng.IndexOf(cmd.Target.Value)
		if pos < 0 {
			return handler.Errorf("%w: value %d is not in the %s", engine.ErrNotFound, cmd.Target.Value, eng.Type()).
				WithTarget(command.FamilyLinear)
		}
	}

	removed, err := eng.Delete(pos)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	return handler.Successf("deleted %d from position %d", removed, pos).
		WithTarget(command.FamilyLinear).
		WithData("value", removed).
		WithLinearSnapshot(eng.Snapshot())
}

func (h *Handler) get(cmd command.Command, sess *session.Session) handler.Result {
	eng, err := indexed(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	if cmd.Target == nil {
		return handler.Errorf("%w: get needs a value or a position", engine.ErrInvalidArgument).
			WithTarget(command.FamilyLinear)
	}

	if cmd.Target.Kind == command.TargetPosition {
		value, err := eng.Get(cmd.Target.Value)
		if err != nil {
			return handler.Error(err).WithTarget(command.FamilyLinear)
		}
		return handler.Successf("position %d holds %d", cmd.Target.Value, value).
			WithTarget(command.FamilyLinear).
			WithData("value", value)
	}

	// By value: report where the value lives.
	idx := eng.IndexOf(cmd.Target.Value)
	if idx < 0 {
		return handler.Errorf("%w: value %d is not in the %s", engine.ErrNotFound, cmd.Target.Value, eng.Type()).
			WithTarget(command.FamilyLinear)
	}
	return handler.Successf("value %d is at position %d", cmd.Target.Value, idx).
		WithTarget(command.FamilyLinear).
		WithData("index", idx)
}

func (h *Handler) set(cmd command.Command, sess *session.Session) handler.Result {
	eng, err := indexed(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	if cmd.Target == nil || cmd.Target.Kind != command.TargetPosition {
		return handler.Errorf("%w: set needs a position", engine.ErrInvalidArgument).
			WithTarget(command.FamilyLinear)
	}

	if err := eng.Set(cmd.Target.Value, value); err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	return handler.Successf("set position %d to %d", cmd.Target.Value, value).
		WithTarget(command.FamilyLinear).
		WithLinearSnapshot(eng.Snapshot())
}

func (h *Handler) indexOf(cmd command.Command, sess *session.Session) handler.Result {
	eng, err := indexed(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	idx := eng.IndexOf(value)
	msg := fmt.Sprintf("value %d is at position %d", value, idx)
	if idx < 0 {
		msg = fmt.Sprintf("value %d is not in the %s", value, eng.Type())
	}
	return handler.SuccessWithMessage(msg).
		WithTarget(command.FamilyLinear).
		WithData("index", idx)
}

func (h *Handler) push(cmd command.Command, sess *session.Session) handler.Result {
	st, err := stack(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	value, err := requireValue(cmd)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	st.Push(value)
	return handler.Successf("pushed %d", value).
		WithTarget(command.FamilyLinear).
		WithLinearSnapshot(st.Snapshot())
}

func (h *Handler) pop(cmd command.Command, sess *session.Session) handler.Result {
	st, err := stack(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	value, err := st.Pop()
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	return handler.Successf("popped %d", value).
		WithTarget(command.FamilyLinear).
		WithData("value", value).
		WithLinearSnapshot(st.Snapshot())
}

func (h *Handler) peek(cmd command.Command, sess *session.Session) handler.Result {
	st, err := stack(cmd, sess)
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}

	value, err := st.Peek()
	if err != nil {
		return handler.Error(err).WithTarget(command.FamilyLinear)
	}
	return handler.Successf("top is %d", value).
		WithTarget(command.FamilyLinear).
		WithData("value", value)
}

// clear destroys the live instance; the slot returns to uninitialized.
func (h *Handler) clear(sess *session.Session) handler.Result {
	cleared := sess.LinearType()
	sess.ClearLinear()
	return handler.Successf("cleared %s", cleared).
		WithTarget(command.FamilyLinear)
}
