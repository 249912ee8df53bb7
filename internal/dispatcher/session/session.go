// Package session holds the execution state command handlers run against:
// the single live linear instance, the single live tree instance, the
// shared node ID source, and any multi-step build in progress.
package session

import (
	"github.com/google/uuid"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/engine/linear"
	"github.com/dshills/structlab/internal/engine/tree"
)

// Session is the mutable workspace state for one command stream. Each
// family owns at most one live instance; a later create replaces the slot
// wholesale. Sessions are not safe for concurrent use; callers serialize
// access through the dispatcher.
type Session struct {
	// ID uniquely identifies the session.
	ID uuid.UUID

	linear linear.Engine
	tree   tree.Engine
	build  *BuildState
	ids    *engine.IDSource
}

// New creates an empty session with a fresh node ID source.
func New() *Session {
	return &Session{
		ID:  uuid.New(),
		ids: engine.NewIDSource(),
	}
}

// IDs returns the node ID source shared by every engine in the session.
func (s *Session) IDs() *engine.IDSource {
	return s.ids
}

// Linear returns the live linear instance, or nil when the slot is empty.
func (s *Session) Linear() linear.Engine {
	return s.linear
}

// Tree returns the live tree instance, or nil when the slot is empty.
func (s *Session) Tree() tree.Engine {
	return s.tree
}

// LinearType returns the live linear structure type, or StructureNone
// when the slot is empty.
func (s *Session) LinearType() command.StructureType {
	if s.linear == nil {
		return command.StructureNone
	}
	return s.linear.Type()
}

// TreeType returns the live tree structure type, or StructureNone when
// the slot is empty.
func (s *Session) TreeType() command.StructureType {
	if s.tree == nil {
		return command.StructureNone
	}
	return s.tree.Type()
}

// SetLinear replaces the linear slot wholesale.
func (s *Session) SetLinear(e linear.Engine) {
	s.linear = e
}

// SetTree replaces the tree slot wholesale. Any build in progress is
// discarded along with its queued commands.
func (s *Session) SetTree(e tree.Engine) {
	s.tree = e
	s.build = nil
}

// ClearLinear empties the linear slot.
func (s *Session) ClearLinear() {
	s.linear = nil
}

// ClearTree empties the tree slot. Any build in progress is discarded
// along with its queued commands.
func (s *Session) ClearTree() {
	s.tree = nil
	s.build = nil
}

// ClearAll empties both slots.
func (s *Session) ClearAll() {
	s.ClearLinear()
	s.ClearTree()
}

// ValidateLinear returns ErrNotInitialized when no linear instance is live.
func (s *Session) ValidateLinear() error {
	if s.linear == nil {
		return ErrNotInitialized
	}
	return nil
}

// ValidateTree returns ErrNotInitialized when no tree instance is live.
func (s *Session) ValidateTree() error {
	if s.tree == nil {
		return ErrNotInitialized
	}
	return nil
}

// Build returns the current build state, or nil when none was started.
// The state of a completed build stays readable until the next create,
// build, or clear.
func (s *Session) Build() *BuildState {
	return s.build
}

// StartBuild installs a build state, discarding any previous one.
func (s *Session) StartBuild(b *BuildState) {
	s.build = b
}

// Building reports whether a build is mid-flight.
func (s *Session) Building() bool {
	return s.build != nil && s.build.Phase == PhaseInProgress
}
