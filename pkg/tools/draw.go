package tools

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/sketch"
)

// NewPoint builds the tool adding a single point.
func NewPoint(scene *sketch.Scene) (*domain.Tool, error) {
	b := dsl.New(Point).
		Label("Add Point").
		Doc("Add a point to the sketch.").
		Property(pointProperty("co", "Location"))

	b.State("Location").
		Describe("Place the point").
		Pick(sketch.KindPoint).
		Prop("co").
		Interactive().
		Func(worldPos(scene)).
		Create(addPoint(scene))

	return b.Main(func(domain.Session) bool { return scene.Solve() }).Build()
}

// NewLine builds the polyline tool: each segment starts where the last one ended.
func NewLine(scene *sketch.Scene) (*domain.Tool, error) {
	b := dsl.New(Line).
		Label("Add Line").
		Doc("Add a chain of line segments. Cancel to stop drawing.").
		Property(pointProperty("p1", "Start")).
		Property(pointProperty("p2", "End")).
		ContinuousDraw(nil)

	b.State("Start").
		Describe("Pick or place the start point").
		Pick(sketch.KindPoint).
		Prop("p1").
		Interactive().
		Prefill().
		Func(worldPos(scene)).
		Create(addPoint(scene))

	b.State("End").
		Describe("Pick or place the end point").
		Pick(sketch.KindPoint).
		Prop("p2").
		Interactive().
		Prefill().
		Func(worldPos(scene)).
		Create(addPoint(scene))

	return b.Main(func(s domain.Session) bool {
		a, b := s.Pointer(0), s.Pointer(1)
		if a.Name == b.Name {
			return false
		}
		if _, err := scene.Document().AddLine(a.Name, b.Name); err != nil {
			return false
		}
		return scene.Solve()
	}).Build()
}

// NewCircle builds the tool adding a circle from its center and a dragged radius.
func NewCircle(scene *sketch.Scene) (*domain.Tool, error) {
	b := dsl.New(Circle).
		Label("Add Circle").
		Doc("Add a circle around a center point.").
		Property(pointProperty("center", "Center")).
		Scalar("radius", domain.UnitLength, 1)

	b.State("Center").
		Describe("Pick or place the center").
		Pick(sketch.KindPoint).
		Prop("center").
		Interactive().
		Prefill().
		Func(worldPos(scene)).
		Create(addPoint(scene))

	b.State("Radius").
		DescribeFunc(func(s domain.Session) string {
			if p := s.Property("radius"); p != nil && p.IsSet() {
				return "Drag to set the radius"
			}
			return "Move away from the center"
		}).
		Prop("radius").
		Interactive().
		Func(func(s domain.Session, coords domain.Vec2) ([]float64, bool) {
			c, ok := pointAt(s, 0)
			if !ok {
				return nil, false
			}
			return []float64{scene.ToWorld(coords).Dist(c.Co)}, true
		})

	return b.Main(func(s domain.Session) bool {
		r := s.Property("radius").Float()
		if r <= 0 {
			return false
		}
		if _, err := scene.Document().AddCircle(s.Pointer(0).Name, r); err != nil {
			return false
		}
		return scene.Solve()
	}).Build()
}
