// Package lua provides the Lua scripting surface over the dispatcher.
//
// gopher-lua's LState is not goroutine-safe, so the Executor owns one
// sandboxed state and a single goroutine that all Lua runs on; Do
// round-trips a request to that goroutine. The lab module is installed
// into the state and drives the command pipeline:
//
//	lab.exec(text) -> ok, message    compile and dispatch one command
//	lab.size(family) -> n            element count of the live instance
//	lab.snapshot() -> table|nil      current tree, else linear, else nil
//	lab.set(family, pos, value)      overwrite by position
//	lab.index_of(family, value)      first position of value, -1 if absent
//	lab.clear() -> ok, message       destroy both instances
//
// exec drives any build it starts to completion, so Lua scripts observe
// builds as synchronous operations.
package lua
