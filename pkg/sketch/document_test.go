package sketch

import (
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_AddAndLookup(t *testing.T) {
	doc := NewDocument()
	a := doc.AddPoint(domain.Vec2{X: 0, Y: 0})
	b := doc.AddPoint(domain.Vec2{X: 3, Y: 4})
	assert.Equal(t, "Point.001", a)
	assert.Equal(t, "Point.002", b)

	l, err := doc.AddLine(a, b)
	require.NoError(t, err)
	assert.Equal(t, "Line.003", l)

	_, err = doc.AddLine(a, "Point.999")
	assert.ErrorIs(t, err, domain.ErrUnknownElement)

	c, err := doc.AddCircle(a, 2)
	require.NoError(t, err)
	circle, ok := doc.Circle(c)
	require.True(t, ok)
	assert.Equal(t, 2.0, circle.Radius)

	_, err = doc.AddConstraint(Distance, 5, a, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownElement)

	assert.Equal(t, Stats{Points: 2, Lines: 1, Circles: 1}, doc.Stats())
	assert.True(t, doc.Has(l))
	assert.False(t, doc.Has("nope"))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := NewDocument()
	a := doc.AddPoint(domain.Vec2{X: 1, Y: 1})
	doc.AddMesh(Mesh{Verts: []domain.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, Edges: [][2]int{{0, 1}}})
	doc.Select(domain.EntityPointer(KindPoint, a))

	clone := doc.Clone()
	p, _ := clone.Point(a)
	p.Co = domain.Vec2{X: 9, Y: 9}
	clone.Meshes[0].Verts[0].X = 42
	clone.ClearSelection()

	orig, _ := doc.Point(a)
	assert.Equal(t, domain.Vec2{X: 1, Y: 1}, orig.Co)
	assert.Equal(t, 0.0, doc.Meshes[0].Verts[0].X)
	assert.Len(t, doc.Selected, 1)
	assert.Equal(t, doc.Seq, clone.Seq)
}

func TestHistory_PushUndoRedo(t *testing.T) {
	doc := NewDocument()
	h := NewHistory(doc, 0)

	doc.AddPoint(domain.Vec2{})
	h.Push("one", doc)
	doc.AddPoint(domain.Vec2{X: 1})
	h.Push("two", doc)
	assert.Equal(t, []string{"baseline", "one", "two"}, h.Labels())

	prev, ok := h.Undo()
	require.True(t, ok)
	assert.Len(t, prev.Points, 1)

	next, ok := h.Redo()
	require.True(t, ok)
	assert.Len(t, next.Points, 2)

	_, ok = h.Redo()
	assert.False(t, ok)

	// a push after undo drops the redo branch
	_, _ = h.Undo()
	h.Push("three", prev)
	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, []string{"baseline", "one", "three"}, h.Labels())
}

func TestHistory_Limit(t *testing.T) {
	doc := NewDocument()
	h := NewHistory(doc, 2)
	for i := 0; i < 5; i++ {
		doc.AddPoint(domain.Vec2{X: float64(i)})
		h.Push("p", doc)
	}
	assert.Equal(t, 2, h.Len())
	d, ok := h.Undo()
	require.True(t, ok)
	assert.Len(t, d.Points, 4)
}

func TestDirectSolver(t *testing.T) {
	doc := NewDocument()
	a := doc.AddPoint(domain.Vec2{X: 0, Y: 0})
	b := doc.AddPoint(domain.Vec2{X: 3, Y: 4})
	c := doc.AddPoint(domain.Vec2{X: 7, Y: 7})
	l, _ := doc.AddLine(a, c)

	_, err := doc.AddConstraint(Distance, 10, a, b)
	require.NoError(t, err)
	_, err = doc.AddConstraint(Horizontal, 0, l)
	require.NoError(t, err)

	assert.True(t, DirectSolver{}.Solve(doc))
	pb, _ := doc.Point(b)
	assert.InDelta(t, 6, pb.Co.X, 1e-9)
	assert.InDelta(t, 8, pb.Co.Y, 1e-9)
	pc, _ := doc.Point(c)
	assert.Equal(t, 0.0, pc.Co.Y)

	doc.Constraints = append(doc.Constraints, Constraint{Type: Coincident, Entities: []string{a}})
	assert.False(t, DirectSolver{}.Solve(doc))
}

func TestSegmentDistance(t *testing.T) {
	a, b := domain.Vec2{X: 0, Y: 0}, domain.Vec2{X: 10, Y: 0}
	assert.InDelta(t, 2, SegmentDistance(domain.Vec2{X: 5, Y: 2}, a, b), 1e-9)
	assert.InDelta(t, 5, SegmentDistance(domain.Vec2{X: 13, Y: 4}, a, b), 1e-9)
	assert.InDelta(t, 5, SegmentDistance(domain.Vec2{X: 3, Y: 4}, a, a), 1e-9)
}
