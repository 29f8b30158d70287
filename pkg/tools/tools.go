// Package tools holds the stock sketch tools.
package tools

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/registry"
	"github.com/aretw0/stencil/pkg/sketch"
)

// Tool ids.
const (
	Point           = "point"
	Line            = "line"
	Circle          = "circle"
	Distance        = "distance"
	Coincident      = "coincident"
	Horizontal      = "horizontal"
	Vertical        = "vertical"
	PointFromVertex = "point_from_vertex"
)

// Register adds every stock tool to r.
func Register(r *registry.Registry) {
	r.Register(Point, NewPoint)
	r.Register(Line, NewLine)
	r.Register(Circle, NewCircle)
	r.Register(Distance, NewDistance)
	r.Register(Coincident, NewCoincident)
	r.Register(Horizontal, func(s *sketch.Scene) (*domain.Tool, error) { return newAxis(s, sketch.Horizontal) })
	r.Register(Vertical, func(s *sketch.Scene) (*domain.Tool, error) { return newAxis(s, sketch.Vertical) })
	r.Register(PointFromVertex, NewPointFromVertex)
}

// Default returns a registry holding every stock tool.
func Default() *registry.Registry {
	r := registry.NewRegistry()
	Register(r)
	return r
}

func pointProperty(name, label string) domain.PropertyDescriptor {
	return domain.PropertyDescriptor{
		Name:   name,
		Label:  label,
		Size:   2,
		Unit:   domain.UnitLength,
		Labels: []string{"x", "y"},
	}
}

// worldPos maps the cursor into sketch space.
func worldPos(scene *sketch.Scene) domain.StateFunc {
	return func(_ domain.Session, coords domain.Vec2) ([]float64, bool) {
		w := scene.ToWorld(coords)
		return []float64{w.X, w.Y}, true
	}
}

// addPoint synthesizes a sketch point from an x/y property.
func addPoint(scene *sketch.Scene) domain.CreateFunc {
	return func(_ domain.Session, v []float64) (domain.ImplicitPointer, error) {
		if len(v) < 2 {
			return domain.NoPointer, fmt.Errorf("point needs 2 components, got %d", len(v))
		}
		name := scene.Document().AddPoint(domain.Vec2{X: v[0], Y: v[1]})
		return domain.EntityPointer(sketch.KindPoint, name), nil
	}
}

// pointAt resolves the sketch point held by state i.
func pointAt(s domain.Session, i int) (*sketch.Point, bool) {
	h, ok := s.Resolve(i)
	if !ok {
		return nil, false
	}
	p, ok := h.(*sketch.Point)
	return p, ok && p != nil
}
