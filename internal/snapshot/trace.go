package snapshot

import "github.com/google/uuid"

// Step is one frame of a step trace: a description of what just happened,
// the tree state after it happened, and the nodes involved.
type Step struct {
	// Description is a human-readable account of the step.
	Description string `json:"description"`

	// State is the tree as of the end of this step.
	State Tree `json:"state"`

	// Highlights lists the IDs of the nodes this step acted on.
	Highlights []uint64 `json:"highlights,omitempty"`
}

// Trace is the ordered frame sequence produced by one logical multi-step
// operation. It is captured data: replaying it any number of times yields
// identical frames.
type Trace struct {
	// ID uniquely identifies this trace.
	ID string `json:"id"`

	// Op names the operation that produced the trace, e.g. "avl.insert".
	Op string `json:"op"`

	// Steps holds the frames in execution order.
	Steps []Step `json:"steps"`
}

// NewTrace starts an empty trace for the named operation.
func NewTrace(op string) *Trace {
	return &Trace{
		ID: uuid.New().String(),
		Op: op,
	}
}

// Add appends a frame to the trace.
func (t *Trace) Add(description string, state Tree, highlights ...uint64) {
	t.Steps = append(t.Steps, Step{
		Description: description,
		State:       state,
		Highlights:  highlights,
	})
}

// Len returns the number of frames.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// Last returns the final frame, if any.
func (t *Trace) Last() (Step, bool) {
	if t == nil || len(t.Steps) == 0 {
		return Step{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}
