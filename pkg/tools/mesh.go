package tools

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/sketch"
)

// NewPointFromVertex builds the tool copying a mesh vertex into the sketch.
// The object is shared by the vertex state, so picking a vertex selects it.
func NewPointFromVertex(scene *sketch.Scene) (*domain.Tool, error) {
	return dsl.New(PointFromVertex).
		Label("Point From Vertex").
		Doc("Add a sketch point on a mesh vertex.").
		GlobalObject().
		WaitForInput().
		State("Object").Describe("Pick a mesh").Pick(domain.PointerObject).Prefill().Optional().
		SelectWith(objectFromSelection).Done().
		State("Vertex").Describe("Pick a vertex").Pick(domain.PointerVertex).Prefill().Interactive().Done().
		Main(func(s domain.Session) bool {
			h, ok := s.Resolve(1)
			if !ok {
				return false
			}
			el, ok := h.(*sketch.MeshElement)
			if !ok {
				return false
			}
			scene.Document().AddPoint(el.Mesh.Verts[el.Index])
			return true
		}).
		Build()
}

// objectFromSelection takes a selected object, or else the owner of the first
// selected mesh element, which stays in the selection for the next state.
func objectFromSelection(_ domain.Session, sel *domain.Selection) (domain.ImplicitPointer, bool) {
	if p, ok := sel.Pop(domain.Kinds(domain.PointerObject), nil); ok {
		return p, true
	}
	for _, p := range sel.Items() {
		if p.Kind.IsMeshElement() {
			return domain.EntityPointer(domain.PointerObject, p.Name), true
		}
	}
	return domain.NoPointer, false
}
