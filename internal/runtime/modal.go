package runtime

import (
	"github.com/aretw0/stencil/pkg/domain"
)

// modal dispatches one classified event.
func (o *Operator) modal(ev domain.Event, class domain.Class, moved bool) (domain.Report, error) {
	if class.Category == domain.CategoryCancel {
		return o.end(false), nil
	}
	if class.Category == domain.CategoryNavigation && ev.Type != domain.EventMouseMove {
		return o.report(domain.ResultPassThrough), nil
	}

	st := o.State()
	d := o.rs.current()

	numericEvent := false
	switch {
	case class.IsNumeric() && o.acceptsNumeric(o.rs.index) && (d.numeric || class.StartsNumeric()):
		if !d.numeric {
			o.beginNumeric()
		}
		d.buffer.Apply(o.rs.substate, class)
		numericEvent = true
	case d.numeric && class.Category == domain.CategoryNextComponent:
		o.nextComponent()
		return o.report(domain.ResultRunning), nil
	}

	triggered := class.Category == domain.CategoryConfirm ||
		(o.rs.index == 0 && !o.tool.WaitForInput && !d.numeric)

	if !triggered && !numericEvent && (!st.Interactive || !moved) {
		return o.report(domain.ResultPassThrough), nil
	}
	return o.evaluate(triggered)
}

// acceptsNumeric reports whether state i can take typed values.
func (o *Operator) acceptsNumeric(i int) bool {
	st, ok := o.tool.Table.At(i)
	return ok && st.Creates() && o.StateProperty(i) != nil
}

func (o *Operator) beginNumeric() {
	d := o.rs.current()
	d.numeric = true
	d.buffer.Reset()
	o.rs.substate = 0
	o.emit(o.hooks.OnNumericEdit, false)
	o.logger.Debug("numeric edit", "state", o.State().Name)
}

// nextComponent moves typing to the next vector component, wrapping to 0.
func (o *Operator) nextComponent() {
	n := 1
	if p := o.StateProperty(o.rs.index); p != nil {
		n = p.Descriptor().Components()
	}
	o.rs.substate = (o.rs.substate + 1) % n
}

func (o *Operator) enterState(i int) {
	o.rs.index = i
	d := o.rs.at(i)
	d.hasInit = false
	d.numeric = false
	d.buffer.Reset()
	o.rs.substate = 0
	o.emit(o.hooks.OnStateEnter, false)
	o.logger.Debug("state entered", "state", o.State().Name, "index", i)
}

func (o *Operator) leaveState() {
	o.emit(o.hooks.OnStateLeave, false)
}
