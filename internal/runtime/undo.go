package runtime

import (
	"github.com/aretw0/stencil/pkg/domain"
)

// redo rolls the host back to the last checkpoint and synthesizes again the
// element of every state up to the active one that did not pick an existing
// element. A drag therefore never accumulates intermediate elements.
func (o *Operator) redo() error {
	o.host.PushCheckpoint(o.tool.DisplayName())
	o.host.Undo()
	o.rs.ignore = o.rs.ignore[:0]
	o.rs.pendingUndo = false

	for i := 0; i <= o.rs.index; i++ {
		d, ok := o.rs.data[i]
		if !ok || d.existing {
			continue
		}
		st, _ := o.tool.Table.At(i)
		if !st.HasPointer() {
			continue
		}
		prop := o.StateProperty(i)
		if prop == nil || !prop.IsSet() {
			continue
		}
		if st.CreateElement == nil {
			return &domain.ToolConfigError{Tool: o.tool.ID, State: st.Name, Err: domain.ErrMissingCreate}
		}
		p, err := st.CreateElement(o, prop.Values())
		if err != nil {
			o.logger.Warn("create element failed", "state", st.Name, "err", err)
			d.pointer = domain.NoPointer
			continue
		}
		d.pointer = p
		o.rs.ignore = append(o.rs.ignore, p)
	}
	o.logger.Debug("replayed creation", "index", o.rs.index, "created", len(o.rs.ignore))
	return nil
}
