package dispatcher

import (
	"fmt"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/engine/tree"
)

// AdvanceBuild performs one step of the build in progress and returns
// its result. The step result carries the frame description and the
// snapshot after the step; the final step's result carries the full
// trace, after which any commands queued during the build are replayed
// in arrival order.
//
// With no build in progress it returns a no-op result.
func (d *Dispatcher) AdvanceBuild() handler.Result {
	d.mu.RLock()
	sess := d.session
	d.mu.RUnlock()

	if sess == nil {
		return handler.Error(ErrNoSession)
	}

	build := sess.Build()
	if build == nil || build.Phase != session.PhaseInProgress {
		return handler.NoOpWithMessage("no build in progress")
	}

	if err := d.applyBuildStep(sess, build); err != nil {
		return handler.Error(err)
	}

	if build.StepsLeft() > 0 {
		last, _ := build.Trace.Last()
		return handler.SuccessWithMessage(last.Description).
			WithTarget(command.FamilyTree).
			WithTreeSnapshot(sess.Tree().Snapshot()).
			WithData("remaining", build.StepsLeft())
	}

	return d.finishBuild(sess, build)
}

// applyBuildStep consumes one pending step, appending its frames to the
// build trace. Value-driven builds insert the next value into the live
// tree; prepared builds surface the next precomputed frame.
func (d *Dispatcher) applyBuildStep(sess *session.Session, build *session.BuildState) error {
	switch {
	case len(build.Remaining) > 0:
		value := build.Remaining[0]
		build.Remaining = build.Remaining[1:]
		return d.insertBuildValue(sess, build, value)

	case len(build.Prepared) > 0:
		step := build.Prepared[0]
		build.Prepared = build.Prepared[1:]
		build.Trace.Steps = append(build.Trace.Steps, step)
		return nil

	default:
		return fmt.Errorf("build for %s has no steps left", build.Structure)
	}
}

// insertBuildValue applies one value to the tree under construction.
func (d *Dispatcher) insertBuildValue(sess *session.Session, build *session.BuildState, value int) error {
	switch t := sess.Tree().(type) {
	case *tree.BST:
		if t.Insert(value) {
			build.Trace.Add(fmt.Sprintf("inserted %d", value), t.Snapshot())
		} else {
			build.Trace.Add(fmt.Sprintf("value %d already present, tree unchanged", value), t.Snapshot())
		}
		return nil

	case *tree.AVL:
		stepTrace, _ := t.Insert(value)
		build.Trace.Steps = append(build.Trace.Steps, stepTrace.Steps...)
		return nil

	default:
		return fmt.Errorf("build step does not apply to %s", sess.TreeType())
	}
}

// finishBuild marks the build done and replays the queue. Replayed
// commands go through the normal dispatch path, so their results reach
// the post-dispatch hooks; a queued build simply starts the next one and
// the rest of the queue waits behind it.
func (d *Dispatcher) finishBuild(sess *session.Session, build *session.BuildState) handler.Result {
	build.Phase = session.PhaseDone

	eng := sess.Tree()
	result := handler.Successf("built %s with %d nodes", eng.Type(), eng.Len()).
		WithTarget(command.FamilyTree).
		WithTreeSnapshot(eng.Snapshot()).
		WithTrace(build.Trace)

	for _, queued := range build.DrainQueue() {
		d.Dispatch(queued.WithSource(command.SourceReplay))
	}
	return result
}
