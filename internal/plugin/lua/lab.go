package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/lang"
	"github.com/dshills/structlab/internal/snapshot"
)

// labModule exposes the command pipeline to Lua scripts.
type labModule struct {
	d *dispatcher.Dispatcher
}

// registerLab installs the lab module as a global table. The package
// library stays closed, so scripts reach it as `lab`, not require.
func registerLab(L *lua.LState, d *dispatcher.Dispatcher) {
	m := &labModule{d: d}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"exec":     m.exec,
		"size":     m.size,
		"snapshot": m.snapshot,
		"set":      m.set,
		"index_of": m.indexOf,
		"clear":    m.clear,
	})
	L.SetGlobal("lab", mod)
}

// exec(text) -> ok, message
//
// Compiles and dispatches one command. A build command runs to
// completion before exec returns.
func (m *labModule) exec(L *lua.LState) int {
	text := L.CheckString(1)

	cmd, err := lang.Compile(text)
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	result := m.d.Dispatch(cmd.WithSource(command.SourceLua))
	for !result.IsError() && m.d.Session().Building() {
		step := m.d.AdvanceBuild()
		result = step
		if step.IsError() {
			break
		}
	}
	return pushOutcome(L, result)
}

// size(family) -> n
//
// Returns the element count of the live instance, 0 when the slot is
// empty.
func (m *labModule) size(L *lua.LState) int {
	sess := m.d.Session()

	switch checkFamily(L, 1) {
	case command.FamilyLinear:
		if eng := sess.Linear(); eng != nil {
			L.Push(lua.LNumber(eng.Len()))
			return 1
		}
	case command.FamilyTree:
		if eng := sess.Tree(); eng != nil {
			L.Push(lua.LNumber(eng.Len()))
			return 1
		}
	}
	L.Push(lua.LNumber(0))
	return 1
}

// snapshot() -> table|nil
//
// Returns the current tree snapshot if a tree is live, else the linear
// snapshot, else nil.
func (m *labModule) snapshot(L *lua.LState) int {
	sess := m.d.Session()

	if t := sess.Tree(); t != nil {
		L.Push(treeToTable(L, t.Snapshot()))
		return 1
	}
	if lin := sess.Linear(); lin != nil {
		L.Push(linearToTable(L, lin.Snapshot()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

// set(family, pos, value) -> ok, message
func (m *labModule) set(L *lua.LState) int {
	family := checkFamily(L, 1)
	pos := L.CheckInt(2)
	value := L.CheckInt(3)

	result := m.d.Dispatch(command.Command{
		Family: family,
		Op:     command.OpSet,
		Value:  &value,
		Target: &command.Target{Kind: command.TargetPosition, Value: pos},
		Source: command.SourceLua,
	})
	return pushOutcome(L, result)
}

// index_of(family, value) -> n
//
// Returns the first position holding value, -1 when absent. Raises a
// Lua error when the slot is empty or the family has no index surface.
func (m *labModule) indexOf(L *lua.LState) int {
	family := checkFamily(L, 1)
	value := L.CheckInt(2)

	result := m.d.Dispatch(command.Command{
		Family: family,
		Op:     command.OpIndexOf,
		Value:  &value,
		Source: command.SourceLua,
	})
	if result.IsError() {
		L.RaiseError("index_of: %v", result.Error)
		return 0
	}
	idx, _ := result.GetInt("index")
	L.Push(lua.LNumber(idx))
	return 1
}

// clear() -> ok, message
func (m *labModule) clear(L *lua.LState) int {
	result := m.d.Dispatch(command.Command{
		Family: command.FamilyGlobal,
		Op:     command.OpClear,
		Source: command.SourceLua,
	})
	return pushOutcome(L, result)
}

// checkFamily reads a "linear" or "tree" argument.
func checkFamily(L *lua.LState, n int) command.Family {
	switch strings.ToLower(L.CheckString(n)) {
	case "linear":
		return command.FamilyLinear
	case "tree":
		return command.FamilyTree
	default:
		L.ArgError(n, `family must be "linear" or "tree"`)
		return command.FamilyUnknown
	}
}

// pushOutcome pushes the ok flag and message of a dispatch result.
func pushOutcome(L *lua.LState, result handler.Result) int {
	if result.IsError() {
		L.Push(lua.LFalse)
		L.Push(lua.LString(result.Error.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	L.Push(lua.LString(result.Message))
	return 2
}

// linearToTable converts a linear snapshot to a Lua table.
func linearToTable(L *lua.LState, s snapshot.Linear) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "type", lua.LString(s.Type))
	L.SetField(t, "size", lua.LNumber(s.Size))
	if s.Capacity > 0 {
		L.SetField(t, "capacity", lua.LNumber(s.Capacity))
	}

	elements := L.NewTable()
	for i, v := range s.Elements {
		elements.RawSetInt(i+1, lua.LNumber(v))
	}
	L.SetField(t, "elements", elements)
	return t
}

// treeToTable converts a tree snapshot to a Lua table.
func treeToTable(L *lua.LState, s snapshot.Tree) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "type", lua.LString(s.Type))
	L.SetField(t, "size", lua.LNumber(s.Size))
	L.SetField(t, "height", lua.LNumber(s.Height))

	nodes := L.NewTable()
	for i, n := range s.Nodes {
		node := L.NewTable()
		L.SetField(node, "id", lua.LNumber(n.ID))
		L.SetField(node, "value", lua.LNumber(n.Value))
		L.SetField(node, "parent", lua.LNumber(n.Parent))
		L.SetField(node, "height", lua.LNumber(n.Height))
		L.SetField(node, "balance", lua.LNumber(n.Balance))
		if n.Char != "" {
			L.SetField(node, "char", lua.LString(n.Char))
		}
		nodes.RawSetInt(i+1, node)
	}
	L.SetField(t, "nodes", nodes)

	edges := L.NewTable()
	for i, e := range s.Edges {
		edge := L.NewTable()
		L.SetField(edge, "from", lua.LNumber(e.From))
		L.SetField(edge, "to", lua.LNumber(e.To))
		L.SetField(edge, "dir", lua.LString(e.Dir))
		edges.RawSetInt(i+1, edge)
	}
	L.SetField(t, "edges", edges)

	if len(s.Codes) > 0 {
		codes := L.NewTable()
		for char, bits := range s.Codes {
			codes.RawSetString(char, lua.LString(bits))
		}
		L.SetField(t, "codes", codes)
	}
	return t
}
