package runtime

import (
	"github.com/aretw0/stencil/pkg/domain"
)

// globalObject returns the object shared by the mesh-element states, if any.
func (o *Operator) globalObject() string {
	if !o.tool.GlobalObject {
		return ""
	}
	d, ok := o.rs.data[0]
	if !ok || d.pointer.Kind != domain.PointerObject {
		return ""
	}
	return d.pointer.Name
}

// sharesGlobal reports whether state i stores its object in the global slot.
func (o *Operator) sharesGlobal(i int, p domain.ImplicitPointer) bool {
	return o.tool.GlobalObject && i > 0 && p.Kind.IsMeshElement()
}

// acceptable rejects mesh elements that belong to another object than the
// one already held by the global slot.
func (o *Operator) acceptable(i int, p domain.ImplicitPointer) bool {
	if !o.sharesGlobal(i, p) {
		return true
	}
	g := o.globalObject()
	return g == "" || g == p.Name
}

// pick hit-tests the scene for state i at coords.
func (o *Operator) pick(i int, st domain.StateDefinition, coords domain.Vec2) (domain.ImplicitPointer, bool) {
	var (
		p  domain.ImplicitPointer
		ok bool
	)
	if st.PickElement != nil {
		p, ok = st.PickElement(o, coords)
	} else {
		p, ok = o.host.PickNearest(coords, st.Pointer, o.rs.ignored)
	}
	if !ok || p.IsZero() || !st.Pointer.Has(p.Kind) {
		return domain.NoPointer, false
	}
	if !o.acceptable(i, p) {
		o.logger.Debug("pick rejected by global object", "state", st.Name, "pointer", p.String())
		return domain.NoPointer, false
	}
	return p, true
}

// setPointer stores p for state i. Mesh elements of a global-object tool keep
// their object name in state 0 instead of locally.
func (o *Operator) setPointer(i int, p domain.ImplicitPointer, existing bool) bool {
	if !o.acceptable(i, p) {
		return false
	}
	d := o.rs.at(i)
	if o.sharesGlobal(i, p) {
		g := o.rs.at(0)
		if g.pointer.IsZero() {
			g.pointer = domain.EntityPointer(domain.PointerObject, p.Name)
			g.existing = true
		}
		p.Name = ""
	}
	d.pointer = p
	d.existing = existing
	return true
}

// fromSelection resolves the active state from the selection.
func (o *Operator) fromSelection(sel *domain.Selection) (domain.ImplicitPointer, bool) {
	i := o.rs.index
	st := o.State()
	if st.ParseSelection != nil {
		return st.ParseSelection(o, sel)
	}
	return sel.Pop(st.Pointer, func(p domain.ImplicitPointer) bool {
		return o.acceptable(i, p)
	})
}

// prefill consumes the selection state by state and stops at the first state
// it cannot resolve.
func (o *Operator) prefill() {
	sel := domain.NewSelection(o.host.Selection())
	for sel.Len() > 0 {
		i := o.rs.index
		st := o.State()
		if !st.AllowPrefill || !st.HasPointer() {
			return
		}
		p, ok := o.fromSelection(sel)
		if !ok || !o.setPointer(i, p, true) {
			return
		}
		o.logger.Debug("state prefilled", "state", st.Name, "pointer", p.String())
		if i+1 >= o.tool.Table.Count() {
			return
		}
		o.enterState(i + 1)
	}
}
