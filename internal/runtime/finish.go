package runtime

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
)

// advance moves to the next state, or ends the run after the last one.
func (o *Operator) advance() (domain.Report, error) {
	i := o.rs.index
	wasNumeric := o.rs.current().numeric

	if i+1 < o.tool.Table.Count() {
		o.leaveState()
		o.enterState(i + 1)
		if o.State().NoEvent {
			return o.evaluate(true)
		}
		if wasNumeric {
			return o.evaluate(false)
		}
		return o.report(domain.ResultRunning), nil
	}

	if o.opFailed {
		// keep the session open so the input can be adjusted
		return o.report(domain.ResultRunning), nil
	}
	if o.tool.ContinuousDraw && o.tool.Table.Count() > 1 &&
		(o.tool.ContinueDraw == nil || o.tool.ContinueDraw(o)) {
		return o.chain(), nil
	}
	return o.end(true), nil
}

// chain closes the current run and starts the next one from its last pointer.
func (o *Operator) chain() domain.Report {
	last := o.Pointer(o.rs.index)
	o.leaveState()
	o.host.PushCheckpoint(o.tool.DisplayName())
	if o.tool.Fini != nil {
		o.tool.Fini(o, true)
	}
	o.emit(o.hooks.OnFinish, true)
	o.logger.Debug("continuous draw", "seed", last.String())

	coords, lastMove, hasMove := o.rs.coords, o.rs.lastMove, o.rs.hasMove
	o.reset()
	o.rs.coords, o.rs.lastMove, o.rs.hasMove = coords, lastMove, hasMove

	seed := o.rs.at(0)
	seed.pointer, seed.existing = last, true
	o.emit(o.hooks.OnInvoke, false)
	o.enterState(1)

	rep := o.report(domain.ResultRunning)
	rep.Chained = true
	return rep
}

// runToEnd replays creation, runs Main and ends the run without waiting for events.
func (o *Operator) runToEnd() (domain.Report, error) {
	if err := o.redo(); err != nil {
		return o.end(false), err
	}
	if !o.checkProps() {
		rep := o.end(false)
		return rep, fmt.Errorf("run %s: %w", o.tool.ID, domain.ErrIncomplete)
	}
	if !o.runMain() {
		return o.end(false), nil
	}
	return o.end(true), nil
}

// end terminates the run. A cancelled run leaves the host as it was before
// invocation unless the tool skips undo.
func (o *Operator) end(success bool) domain.Report {
	o.host.SetCursor(domain.CursorDefault)
	if o.tool.Fini != nil {
		o.tool.Fini(o, success)
	}
	o.rs.ignore = nil
	o.host.SetStatus("")

	result := domain.ResultFinished
	if success {
		o.host.PushCheckpoint(o.tool.DisplayName())
		o.emit(o.hooks.OnFinish, true)
		o.logger.Debug("operator finished")
	} else {
		result = domain.ResultCancelled
		if !o.tool.SkipUndo {
			o.host.PushCheckpoint(o.tool.DisplayName())
			o.host.Undo()
		}
		o.emit(o.hooks.OnCancel, false)
		o.logger.Debug("operator cancelled")
	}
	o.running = false
	return o.report(result)
}
