package tools

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/sketch"
)

// constraintBase is the two-point head shared by point pair constraints.
var constraintBase = dsl.New("pair").
	State("First").Describe("Pick the first point").Pick(sketch.KindPoint).Prefill().Done().
	State("Second").Describe("Pick the second point").Pick(sketch.KindPoint).Prefill().Done().
	Table()

// NewDistance builds the tool constraining the distance between two points.
// The distance defaults to the current one and can be typed in.
func NewDistance(scene *sketch.Scene) (*domain.Tool, error) {
	b := dsl.New(Distance).
		Label("Distance").
		Doc("Constrain the distance between two points.").
		Base(constraintBase).
		Scalar("distance", domain.UnitLength, 1).
		WaitForInput()

	b.State("Value").
		Describe("Confirm or type the distance").
		Prop("distance").
		Interactive().
		Func(func(s domain.Session, _ domain.Vec2) ([]float64, bool) {
			a, okA := pointAt(s, 0)
			c, okC := pointAt(s, 1)
			if !okA || !okC {
				return nil, false
			}
			return []float64{a.Co.Dist(c.Co)}, true
		})

	return b.Main(func(s domain.Session) bool {
		d := s.Property("distance").Float()
		if d < 0 {
			return false
		}
		_, err := scene.Document().AddConstraint(sketch.Distance, d, s.Pointer(0).Name, s.Pointer(1).Name)
		if err != nil {
			return false
		}
		return scene.Solve()
	}).Build()
}

// NewCoincident builds the tool merging two points.
func NewCoincident(scene *sketch.Scene) (*domain.Tool, error) {
	return dsl.New(Coincident).
		Label("Coincident").
		Doc("Make two points coincide.").
		Base(constraintBase).
		WaitForInput().
		Main(func(s domain.Session) bool {
			a, c := s.Pointer(0).Name, s.Pointer(1).Name
			if a == c {
				return false
			}
			if _, err := scene.Document().AddConstraint(sketch.Coincident, 0, a, c); err != nil {
				return false
			}
			return scene.Solve()
		}).
		Build()
}

// newAxis builds the horizontal or vertical line constraint.
func newAxis(scene *sketch.Scene, t sketch.ConstraintType) (*domain.Tool, error) {
	id, label := Horizontal, "Horizontal"
	if t == sketch.Vertical {
		id, label = Vertical, "Vertical"
	}
	return dsl.New(id).
		Label(label).
		Doc("Align a line with the " + id + " axis.").
		WaitForInput().
		State("Line").Describe("Pick a line").Pick(sketch.KindLine).Prefill().Done().
		Main(func(s domain.Session) bool {
			if _, err := scene.Document().AddConstraint(t, 0, s.Pointer(0).Name); err != nil {
				return false
			}
			return scene.Solve()
		}).
		Build()
}
