// Package engine holds what the structure engines share: the error
// sentinels the dispatcher converts into command results, and the node
// identifier source that guarantees no ID reuse across a clear.
//
// The engines themselves live in the linear and tree sub-packages. Each
// engine is single-threaded by contract: no method blocks, and every
// operation either fully applies or leaves the structure unchanged.
package engine
