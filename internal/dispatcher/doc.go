// Package dispatcher routes typed commands to handlers and coordinates
// execution against a session.
//
// Commands arrive already parsed and normalized. The dispatcher resolves
// each one by its key ("linear.push", "tree.insert") through a namespace
// router backed by an exact-key registry, runs it against the session's
// live structures, and returns a handler.Result. Pre-dispatch hooks may
// cancel a command; post-dispatch hooks observe every result, which is
// how the event feed sees traffic.
//
// The dispatcher also owns the multi-step build discipline. While a
// build is in progress, tree commands other than clear are queued on the
// session instead of executing. An external driver pulls one step at a
// time through AdvanceBuild; when the last step lands, the queue is
// replayed in arrival order.
package dispatcher
