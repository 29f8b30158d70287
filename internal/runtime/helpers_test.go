package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/stretchr/testify/require"
)

// recordingHost wraps a sketch scene and records chrome and undo traffic.
type recordingHost struct {
	*sketch.Scene
	pushes   int
	undos    int
	statuses []string
	cursors  []domain.CursorKind
}

func newHost(doc *sketch.Document) *recordingHost {
	return &recordingHost{Scene: sketch.NewScene(doc)}
}

func (h *recordingHost) PushCheckpoint(label string) {
	h.pushes++
	h.Scene.PushCheckpoint(label)
}

func (h *recordingHost) Undo() {
	h.undos++
	h.Scene.Undo()
}

func (h *recordingHost) SetStatus(text string) {
	h.statuses = append(h.statuses, text)
	h.Scene.SetStatus(text)
}

func (h *recordingHost) SetCursor(c domain.CursorKind) {
	h.cursors = append(h.cursors, c)
	h.Scene.SetCursor(c)
}

// checkpoints is the number of undo steps that survived.
func (h *recordingHost) checkpoints() int {
	return h.History().Len()
}

func vec(x, y float64) domain.Vec2 { return domain.Vec2{X: x, Y: y} }

func pointProp(name string) domain.PropertyDescriptor {
	return domain.PropertyDescriptor{Name: name, Size: 2, Unit: domain.UnitLength, Labels: []string{"x", "y"}}
}

func pointState(h *recordingHost, name, prop string) domain.StateDefinition {
	return domain.StateDefinition{
		Name:         name,
		Description:  domain.FixedText("Pick or place a point"),
		Pointer:      domain.Kinds(sketch.KindPoint),
		Property:     domain.PropertyName(prop),
		Interactive:  true,
		UseCreate:    true,
		AllowPrefill: true,
		StateFunc: func(_ domain.Session, c domain.Vec2) ([]float64, bool) {
			w := h.ToWorld(c)
			return []float64{w.X, w.Y}, true
		},
		CreateElement: func(_ domain.Session, v []float64) (domain.ImplicitPointer, error) {
			name := h.Document().AddPoint(vec(v[0], v[1]))
			return domain.EntityPointer(sketch.KindPoint, name), nil
		},
	}
}

func lineTool(h *recordingHost) *domain.Tool {
	return &domain.Tool{
		ID:         "line",
		Label:      "Line",
		Doc:        "Add a line between two points.",
		Properties: []domain.PropertyDescriptor{pointProp("p1"), pointProp("p2")},
		Table: domain.NewStateTable(
			pointState(h, "Start", "p1"),
			pointState(h, "End", "p2"),
		),
		Main: func(s domain.Session) bool {
			_, err := h.Document().AddLine(s.Pointer(0).Name, s.Pointer(1).Name)
			return err == nil
		},
	}
}

func coincidentTool(h *recordingHost) *domain.Tool {
	pick := func(name string) domain.StateDefinition {
		return domain.StateDefinition{
			Name:         name,
			Pointer:      domain.Kinds(sketch.KindPoint),
			AllowPrefill: true,
		}
	}
	return &domain.Tool{
		ID:           "coincident",
		WaitForInput: true,
		Table:        domain.NewStateTable(pick("First"), pick("Second")),
		Main: func(s domain.Session) bool {
			_, err := h.Document().AddConstraint(sketch.Coincident, 0, s.Pointer(0).Name, s.Pointer(1).Name)
			return err == nil
		},
	}
}

func newOperator(t *testing.T, tool *domain.Tool, h *recordingHost, opts ...runtime.Option) *runtime.Operator {
	t.Helper()
	op, err := runtime.New(tool, h, opts...)
	require.NoError(t, err)
	return op
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

func click(x, y float64) domain.Event { return domain.ButtonPress(domain.ButtonLeft, vec(x, y)) }
func move(x, y float64) domain.Event  { return domain.MouseMove(vec(x, y)) }
func key(r rune) domain.Event         { return domain.RunePress(r, domain.Vec2{}) }
func press(k domain.Key) domain.Event { return domain.KeyPress(k, domain.Vec2{}) }
