package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// newState creates a sandboxed Lua state. Only the base, table, string,
// and math libraries are opened; io, os, debug, and package stay closed,
// and the load family of functions is removed so scripts cannot pull in
// code from outside the state.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
