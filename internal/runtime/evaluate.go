package runtime

import (
	"github.com/aretw0/stencil/pkg/domain"
)

// evaluate resolves the active state from the cursor or the typed values,
// rebuilds the preview and runs Main once every required state is set.
// A triggered evaluation advances, or cancels when nothing was resolved.
func (o *Operator) evaluate(triggered bool) (domain.Report, error) {
	i := o.rs.index
	st := o.State()
	d := o.rs.current()
	coords := o.rs.coords

	var (
		p      domain.ImplicitPointer
		picked bool
	)
	if !d.numeric && st.HasPointer() {
		p, picked = o.pick(i, st, coords)
	}

	assigned := false
	if !picked && st.Creates() {
		assigned = o.assignValues(i, st, d, coords)
	}

	ok := false
	switch {
	case !st.HasPointer():
		ok = assigned
	case picked:
		ok = o.setPointer(i, p, true)
	case assigned:
		// synthesized by the next replay
		d.pointer, d.existing = domain.NoPointer, false
		ok = true
	default:
		d.pointer, d.existing = domain.NoPointer, false
		if prop := o.StateProperty(i); prop != nil && st.UseCreate {
			prop.Reset()
		}
	}

	if assigned {
		o.rs.pendingUndo = true
	}
	if o.rs.pendingUndo {
		if err := o.redo(); err != nil {
			o.logger.Error("replay failed", "err", err)
			return o.end(false), err
		}
	}
	if o.checkProps() {
		o.runMain()
	}

	if !triggered {
		return o.report(domain.ResultRunning), nil
	}
	if !ok {
		o.logger.Debug("confirm resolved nothing", "state", st.Name)
		return o.end(false), nil
	}
	return o.advance()
}

// assignValues computes the values of state i, from the typed text in
// numeric edit or from the state's cursor callback otherwise.
func (o *Operator) assignValues(i int, st domain.StateDefinition, d *stateData, coords domain.Vec2) bool {
	prop := o.StateProperty(i)
	if prop == nil {
		return false
	}
	if d.numeric {
		live := prop.Values()
		if v, ok := o.stateFunc(st, d, coords); ok {
			live = v
		}
		prop.Set(d.buffer.ResolveAll(prop.Descriptor(), o.host, live))
		return true
	}
	v, ok := o.stateFunc(st, d, coords)
	if !ok {
		return false
	}
	prop.Set(v)
	return true
}

func (o *Operator) stateFunc(st domain.StateDefinition, d *stateData, coords domain.Vec2) ([]float64, bool) {
	if st.StateFunc == nil {
		return nil, false
	}
	if !d.hasInit {
		d.initCoords, d.hasInit = coords, true
	}
	return st.StateFunc(o, coords)
}

// checkProps reports whether every required state holds a pointer, or a
// value when it has no pointer.
func (o *Operator) checkProps() bool {
	for i, st := range o.tool.Table.States() {
		if st.Optional {
			continue
		}
		if st.HasPointer() {
			if o.Pointer(i).IsZero() {
				return false
			}
			continue
		}
		prop := o.StateProperty(i)
		if prop == nil || !prop.IsSet() {
			return false
		}
	}
	return true
}

func (o *Operator) runMain() bool {
	ok := o.tool.Main(o)
	o.rs.executed = true
	o.rs.pendingUndo = true
	if !ok {
		o.opFailed = true
		o.logger.Warn("operation failed", "state", o.State().Name)
	}
	o.emit(o.hooks.OnOperation, ok)
	return ok
}
