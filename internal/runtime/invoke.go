package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/stencil/internal/input"
	"github.com/aretw0/stencil/pkg/domain"
)

// Invoke starts a run of the tool. The invoking event is consumed as the
// first typed digit when it is one; otherwise the selection may prefill the
// leading states and the event is then handled like any later event.
func (o *Operator) Invoke(ctx context.Context, ev domain.Event) (domain.Report, error) {
	o.ctx = ctx
	o.reset()
	o.running = true
	o.opFailed = false
	moved := o.trackPointer(ev)

	o.emit(o.hooks.OnInvoke, false)
	o.logger.Debug("operator invoked", "event", ev.Type.String())
	o.host.SetCursor(domain.CursorCrosshair)

	if o.tool.Init != nil && !o.tool.Init(o, ev) {
		o.logger.Debug("init declined")
		return o.end(false), nil
	}
	o.enterState(0)

	class := input.Classify(ev)
	if class.StartsNumeric() && o.acceptsNumeric(0) {
		o.beginNumeric()
		o.rs.current().buffer.Apply(o.rs.substate, class)
		return o.evaluate(false)
	}

	if o.tool.WaitForInput {
		o.prefill()
		if o.checkProps() {
			o.logger.Debug("selection resolves every required state")
			return o.runToEnd()
		}
	}
	if o.State().NoEvent {
		return o.evaluate(true)
	}
	rep, err := o.modal(ev, class, moved)
	if rep.Result == domain.ResultPassThrough {
		rep.Result = domain.ResultRunning
	}
	return rep, err
}

// HandleEvent feeds one event to a running operator.
func (o *Operator) HandleEvent(ctx context.Context, ev domain.Event) (domain.Report, error) {
	if !o.running {
		return domain.Report{Tool: o.tool.ID, Result: domain.ResultCancelled}, domain.ErrNotRunning
	}
	o.ctx = ctx
	o.opFailed = false
	moved := o.trackPointer(ev)
	return o.modal(ev, input.Classify(ev), moved)
}

// Cancel ends a running operator and rolls its changes back.
func (o *Operator) Cancel(ctx context.Context) (domain.Report, error) {
	if !o.running {
		return domain.Report{Tool: o.tool.ID, Result: domain.ResultCancelled}, domain.ErrNotRunning
	}
	o.ctx = ctx
	return o.end(false), nil
}

// Values seeds a non-modal run. Pointers are keyed by state name.
type Values struct {
	Properties map[string][]float64              `json:"properties,omitempty" yaml:"properties,omitempty" mapstructure:"properties"`
	Pointers   map[string]domain.ImplicitPointer `json:"pointers,omitempty" yaml:"pointers,omitempty" mapstructure:"pointers"`
}

// Execute runs the tool without events, from property values and pointers
// given up front. States without a pointer are synthesized from their values.
func (o *Operator) Execute(ctx context.Context, v Values) (domain.Report, error) {
	if o.running {
		return o.report(domain.ResultRunning), fmt.Errorf("execute %s: operator is already running", o.tool.ID)
	}
	o.ctx = ctx
	o.reset()
	o.running = true
	o.opFailed = false

	for name, vals := range v.Properties {
		p, ok := o.props[name]
		if !ok {
			o.running = false
			return o.report(domain.ResultCancelled), &domain.ToolConfigError{Tool: o.tool.ID,
				Err: fmt.Errorf("%w: %q", domain.ErrUnknownProperty, name)}
		}
		p.Set(vals)
	}
	for i := 0; i < o.tool.Table.Count(); i++ {
		o.rs.at(i)
	}
	for name, ptr := range v.Pointers {
		i, ok := o.tool.Table.IndexOf(name)
		if !ok {
			o.running = false
			return o.report(domain.ResultCancelled), &domain.ToolConfigError{Tool: o.tool.ID, State: name,
				Err: domain.ErrUnknownState}
		}
		o.setPointer(i, ptr, true)
	}
	o.emit(o.hooks.OnInvoke, false)
	o.rs.index = o.tool.Table.Count() - 1
	return o.runToEnd()
}

// trackPointer records the cursor position carried by pointer events and
// reports whether the event is a real movement.
func (o *Operator) trackPointer(ev domain.Event) bool {
	switch ev.Type {
	case domain.EventMouseMove:
	case domain.EventMouseButton, domain.EventWheel, domain.EventTrackpad:
		o.rs.coords = ev.Pos
		o.rs.lastMove, o.rs.hasMove = ev.Pos, true
		return false
	default:
		return false
	}
	o.rs.coords = ev.Pos
	if o.rs.hasMove && ev.Pos.Dist(o.rs.lastMove) <= o.moveThreshold {
		return false
	}
	o.rs.lastMove, o.rs.hasMove = ev.Pos, true
	return true
}

func (o *Operator) emit(h func(context.Context, *domain.OperatorEvent), success bool) {
	if h == nil {
		return
	}
	h(o.ctx, &domain.OperatorEvent{
		Timestamp:  time.Now(),
		Tool:       o.tool.ID,
		StateIndex: o.rs.index,
		StateName:  o.State().Name,
		Success:    success,
	})
}

// report describes the operator after the current event and refreshes the
// host status line while it keeps running.
func (o *Operator) report(r domain.Result) domain.Report {
	rep := domain.Report{
		Tool:            o.tool.ID,
		Result:          r,
		StateIndex:      o.rs.index,
		StateName:       o.State().Name,
		Executed:        o.rs.executed,
		OperationFailed: o.opFailed,
	}
	if r.Done() {
		return rep
	}
	rep.Status = o.StatusText()
	rep.NumericEdit = o.NumericEdit()
	o.host.SetStatus(rep.Status)
	return rep
}
