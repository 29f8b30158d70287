package runtime

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
)

// Validate reports tool authoring mistakes as *domain.ToolConfigError.
func Validate(t *domain.Tool) error {
	if t == nil {
		return &domain.ToolConfigError{Err: domain.ErrToolNotFound}
	}
	if t.Main == nil {
		return &domain.ToolConfigError{Tool: t.ID, Err: domain.ErrMissingMain}
	}
	if t.Table.Count() == 0 {
		return &domain.ToolConfigError{Tool: t.ID, Err: domain.ErrEmptyTable}
	}

	for _, st := range t.Table.States() {
		if st.Property.Name != "" {
			if _, ok := t.Property(st.Property.Name); !ok {
				return &domain.ToolConfigError{Tool: t.ID, State: st.Name,
					Err: fmt.Errorf("%w: %q", domain.ErrUnknownProperty, st.Property.Name)}
			}
		}
		if !st.HasPointer() || !st.UseCreate {
			continue
		}
		if st.CreateElement == nil {
			return &domain.ToolConfigError{Tool: t.ID, State: st.Name, Err: domain.ErrMissingCreate}
		}
		if !st.HasProperty() {
			return &domain.ToolConfigError{Tool: t.ID, State: st.Name,
				Err: fmt.Errorf("%w: creatable state has no property", domain.ErrUnknownProperty)}
		}
	}

	if t.GlobalObject {
		first, _ := t.Table.At(0)
		if !first.Pointer.Has(domain.PointerObject) {
			return &domain.ToolConfigError{Tool: t.ID, State: first.Name, Err: domain.ErrGlobalObject}
		}
	}
	return nil
}
