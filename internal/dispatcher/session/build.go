package session

import (
	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/snapshot"
)

// Phase is the lifecycle stage of a multi-step build.
type Phase uint8

const (
	// PhaseNotStarted means no build has begun.
	PhaseNotStarted Phase = iota
	// PhaseInProgress means steps remain; tree commands are queued.
	PhaseInProgress
	// PhaseDone means every step was applied and the queue replayed.
	PhaseDone
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// BuildState tracks one multi-step construction. BST and AVL builds hold
// the values not yet inserted; Huffman builds run eagerly and hold the
// captured frames not yet surfaced. While the phase is PhaseInProgress,
// commands addressing the tree family wait in Queue in arrival order.
type BuildState struct {
	// Structure is the type under construction.
	Structure command.StructureType

	// Phase is the lifecycle stage.
	Phase Phase

	// Remaining holds the values not yet inserted (BST, AVL).
	Remaining []int

	// Prepared holds the captured frames not yet surfaced (Huffman).
	Prepared []snapshot.Step

	// Trace accumulates the frames applied so far.
	Trace *snapshot.Trace

	// Queue holds the commands deferred until the build completes.
	Queue []command.Command
}

// NewValueBuild starts an insertion-driven build over values. The op
// names the trace, e.g. "bst.build".
func NewValueBuild(structure command.StructureType, op string, values []int) *BuildState {
	return &BuildState{
		Structure: structure,
		Phase:     PhaseInProgress,
		Remaining: append([]int(nil), values...),
		Trace:     snapshot.NewTrace(op),
	}
}

// NewPreparedBuild starts a build whose frames were captured up front.
// The source trace's frames are surfaced one per step.
func NewPreparedBuild(structure command.StructureType, trace *snapshot.Trace) *BuildState {
	return &BuildState{
		Structure: structure,
		Phase:     PhaseInProgress,
		Prepared:  append([]snapshot.Step(nil), trace.Steps...),
		Trace:     snapshot.NewTrace(trace.Op),
	}
}

// StepsLeft returns the number of steps not yet applied.
func (b *BuildState) StepsLeft() int {
	if b == nil {
		return 0
	}
	return len(b.Remaining) + len(b.Prepared)
}

// Enqueue defers cmd until the build completes. It reports false when
// limit is positive and the queue is already full.
func (b *BuildState) Enqueue(cmd command.Command, limit int) bool {
	if limit > 0 && len(b.Queue) >= limit {
		return false
	}
	b.Queue = append(b.Queue, cmd)
	return true
}

// DrainQueue empties the queue and returns the deferred commands in
// arrival order.
func (b *BuildState) DrainQueue() []command.Command {
	q := b.Queue
	b.Queue = nil
	return q
}
