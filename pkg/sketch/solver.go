package sketch

import (
	"math"

	"github.com/aretw0/stencil/pkg/domain"
)

// Solver enforces the document's constraints.
type Solver interface {
	// Solve moves points to satisfy the constraints. It returns false when a
	// constraint cannot be met.
	Solve(doc *Document) bool
}

// DirectSolver applies each constraint once, in declaration order, moving the
// second entity of every constraint.
type DirectSolver struct{}

// Solve implements Solver.
func (DirectSolver) Solve(doc *Document) bool {
	ok := true
	for _, c := range doc.Constraints {
		if !applyConstraint(doc, c) {
			ok = false
		}
	}
	return ok
}

func applyConstraint(doc *Document, c Constraint) bool {
	switch c.Type {
	case Coincident:
		a, b, found := pointPair(doc, c.Entities)
		if !found {
			return false
		}
		b.Co = a.Co
		return true
	case Distance:
		a, b, found := pointPair(doc, c.Entities)
		if !found || c.Value < 0 {
			return false
		}
		dir := b.Co.Sub(a.Co)
		l := dir.Len()
		if l < 1e-12 {
			// direction is undefined; fall back to +X
			dir, l = domain.Vec2{X: 1}, 1
		}
		b.Co = a.Co.Add(dir.Scale(c.Value / l))
		return true
	case Horizontal, Vertical:
		a, b, found := endpoints(doc, c.Entities)
		if !found {
			return false
		}
		if c.Type == Horizontal {
			b.Co.Y = a.Co.Y
		} else {
			b.Co.X = a.Co.X
		}
		return true
	}
	return false
}

func pointPair(doc *Document, entities []string) (*Point, *Point, bool) {
	if len(entities) == 1 {
		return endpoints(doc, entities)
	}
	if len(entities) != 2 {
		return nil, nil, false
	}
	a, ok := doc.Point(entities[0])
	if !ok {
		return nil, nil, false
	}
	b, ok := doc.Point(entities[1])
	if !ok {
		return nil, nil, false
	}
	return a, b, true
}

// endpoints resolves a single line, or a pair of points.
func endpoints(doc *Document, entities []string) (*Point, *Point, bool) {
	if len(entities) == 1 {
		l, ok := doc.Line(entities[0])
		if !ok {
			return nil, nil, false
		}
		return pointPair(doc, []string{l.P1, l.P2})
	}
	return pointPair(doc, entities)
}

// SegmentDistance returns the distance from p to segment ab.
func SegmentDistance(p, a, b domain.Vec2) float64 {
	ab := b.Sub(a)
	den := ab.X*ab.X + ab.Y*ab.Y
	if den == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / den
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
