package tools_test

import (
	"context"
	"testing"

	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/aretw0/stencil/pkg/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y float64) domain.Vec2 { return domain.Vec2{X: x, Y: y} }

func click(x, y float64) domain.Event { return domain.ButtonPress(domain.ButtonLeft, vec(x, y)) }

func start(t *testing.T, scene *sketch.Scene, id string, ev domain.Event) (*runtime.Operator, domain.Report) {
	t.Helper()
	tool, err := tools.Default().Build(id, scene)
	require.NoError(t, err)
	op, err := runtime.New(tool, scene)
	require.NoError(t, err)
	rep, err := op.Invoke(context.Background(), ev)
	require.NoError(t, err)
	return op, rep
}

func send(t *testing.T, op *runtime.Operator, events ...domain.Event) domain.Report {
	t.Helper()
	var rep domain.Report
	for _, ev := range events {
		var err error
		rep, err = op.HandleEvent(context.Background(), ev)
		require.NoError(t, err)
	}
	return rep
}

func TestDefault_RegistersEveryTool(t *testing.T) {
	scene := sketch.NewScene(nil)
	r := tools.Default()
	assert.Equal(t, []string{"circle", "coincident", "distance", "horizontal", "line", "point", "point_from_vertex", "vertical"}, r.IDs())
	for _, id := range r.IDs() {
		tool, err := r.Build(id, scene)
		require.NoError(t, err, id)
		assert.Equal(t, id, tool.ID)
	}
}

func TestPoint(t *testing.T) {
	scene := sketch.NewScene(nil)
	_, rep := start(t, scene, tools.Point, click(5, 6))
	assert.Equal(t, domain.ResultFinished, rep.Result)
	require.Len(t, scene.Document().Points, 1)
	assert.Equal(t, vec(5, 6), scene.Document().Points[0].Co)
}

func TestLine_Polyline(t *testing.T) {
	scene := sketch.NewScene(nil)
	op, _ := start(t, scene, tools.Line, click(0, 0))
	send(t, op, click(100, 0), click(100, 100))
	rep := send(t, op, domain.KeyPress(domain.KeyEscape, domain.Vec2{}))
	assert.Equal(t, domain.ResultCancelled, rep.Result)

	doc := scene.Document()
	assert.Len(t, doc.Points, 3)
	assert.Len(t, doc.Lines, 2)
	assert.Equal(t, 2, scene.History().Len())
}

func TestCircle_RadiusFromDrag(t *testing.T) {
	scene := sketch.NewScene(nil)
	op, _ := start(t, scene, tools.Circle, click(50, 50))
	send(t, op, domain.MouseMove(vec(53, 54)))
	rep := send(t, op, domain.KeyPress(domain.KeyEnter, domain.Vec2{}))
	assert.Equal(t, domain.ResultFinished, rep.Result)

	require.Len(t, scene.Document().Circles, 1)
	assert.InDelta(t, 5, scene.Document().Circles[0].Radius, 1e-9)
}

func TestDistance_TypedValue(t *testing.T) {
	doc := sketch.NewDocument()
	a := doc.AddPoint(vec(0, 0))
	b := doc.AddPoint(vec(3, 4))
	doc.Select(domain.EntityPointer(sketch.KindPoint, a))
	doc.Select(domain.EntityPointer(sketch.KindPoint, b))
	scene := sketch.NewScene(doc)

	op, rep := start(t, scene, tools.Distance, domain.Event{})
	assert.Equal(t, 2, rep.StateIndex)

	send(t, op, domain.RunePress('2', domain.Vec2{}), domain.RunePress('5', domain.Vec2{}))
	rep = send(t, op, domain.KeyPress(domain.KeyEnter, domain.Vec2{}))
	assert.Equal(t, domain.ResultFinished, rep.Result)

	require.Len(t, scene.Document().Constraints, 1)
	assert.Equal(t, 25.0, scene.Document().Constraints[0].Value)
	moved, _ := scene.Document().Point(b)
	assert.InDelta(t, 15, moved.Co.X, 1e-9)
	assert.InDelta(t, 20, moved.Co.Y, 1e-9)
}

func TestCoincident_FromSelection(t *testing.T) {
	doc := sketch.NewDocument()
	a := doc.AddPoint(vec(1, 2))
	b := doc.AddPoint(vec(7, 9))
	doc.Select(domain.EntityPointer(sketch.KindPoint, a))
	doc.Select(domain.EntityPointer(sketch.KindPoint, b))
	scene := sketch.NewScene(doc)

	_, rep := start(t, scene, tools.Coincident, domain.Event{})
	assert.Equal(t, domain.ResultFinished, rep.Result)
	moved, _ := scene.Document().Point(b)
	assert.Equal(t, vec(1, 2), moved.Co)
}

func TestHorizontal(t *testing.T) {
	doc := sketch.NewDocument()
	a := doc.AddPoint(vec(0, 0))
	b := doc.AddPoint(vec(10, 3))
	l, err := doc.AddLine(a, b)
	require.NoError(t, err)
	scene := sketch.NewScene(doc)

	op, rep := start(t, scene, tools.Horizontal, domain.Event{})
	assert.Equal(t, domain.ResultRunning, rep.Result)
	rep = send(t, op, click(5, 1.5))
	assert.Equal(t, domain.ResultFinished, rep.Result)

	require.Len(t, scene.Document().Constraints, 1)
	assert.Equal(t, []string{l}, scene.Document().Constraints[0].Entities)
	end, _ := scene.Document().Point(b)
	assert.Equal(t, 0.0, end.Co.Y)
}

func cube() sketch.Mesh {
	return sketch.Mesh{
		Name:  "Cube",
		Verts: []domain.Vec2{vec(100, 0), vec(200, 0), vec(200, 100)},
		Edges: [][2]int{{0, 1}, {1, 2}},
	}
}

func TestPointFromVertex_Picking(t *testing.T) {
	doc := sketch.NewDocument()
	doc.AddMesh(cube())
	scene := sketch.NewScene(doc)

	op, _ := start(t, scene, tools.PointFromVertex, domain.Event{})
	send(t, op, click(200, 101))
	assert.Equal(t, "Cube", op.Pointer(0).Name)
	rep := send(t, op, click(200, 101))
	assert.Equal(t, domain.ResultFinished, rep.Result)

	require.Len(t, scene.Document().Points, 1)
	assert.Equal(t, vec(200, 100), scene.Document().Points[0].Co)
}

func TestPointFromVertex_VertexSelection(t *testing.T) {
	doc := sketch.NewDocument()
	doc.AddMesh(cube())
	doc.Select(domain.ElementPointer(domain.PointerVertex, "Cube", 1))
	scene := sketch.NewScene(doc)

	_, rep := start(t, scene, tools.PointFromVertex, domain.Event{})
	assert.Equal(t, domain.ResultFinished, rep.Result)
	require.Len(t, scene.Document().Points, 1)
	assert.Equal(t, vec(200, 0), scene.Document().Points[0].Co)
}
