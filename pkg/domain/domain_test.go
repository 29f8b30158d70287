package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSet(t *testing.T) {
	s := Kinds(PointerVertex, PointerEdge, PointerNone)
	assert.True(t, s.Has(PointerVertex))
	assert.True(t, s.Has(PointerEdge))
	assert.False(t, s.Has(PointerFace))
	assert.False(t, s.Has(PointerNone), "none is never a member")
	assert.Equal(t, []PointerKind{PointerVertex, PointerEdge}, s.List())
	assert.Equal(t, "vertex, edge", s.String())
	assert.True(t, Kinds().Empty())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want PointerKind
		ok   bool
	}{
		{"object", PointerObject, true},
		{"face", PointerFace, true},
		{"entity", PointerEntity, true},
		{"spline", PointerNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := ParseKind(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestImplicitPointerString(t *testing.T) {
	assert.Equal(t, "<none>", NoPointer.String())
	assert.True(t, NoPointer.IsZero())
	assert.Equal(t, "vertex:Cube[3]", ElementPointer(PointerVertex, "Cube", 3).String())
	assert.Equal(t, "object:Cube", EntityPointer(PointerObject, "Cube").String())
}

func TestSelectionPop(t *testing.T) {
	a := EntityPointer(PointerObject, "A")
	v := ElementPointer(PointerVertex, "A", 0)
	w := ElementPointer(PointerVertex, "A", 1)
	sel := NewSelection([]ImplicitPointer{a, v, w})

	p, ok := sel.Pop(Kinds(PointerVertex), func(p ImplicitPointer) bool { return p.Index == 1 })
	require.True(t, ok)
	assert.Equal(t, w, p)

	p, ok = sel.Pop(Kinds(PointerVertex), nil)
	require.True(t, ok)
	assert.Equal(t, v, p)

	_, ok = sel.Pop(Kinds(PointerVertex), nil)
	assert.False(t, ok)
	assert.Equal(t, []ImplicitPointer{a}, sel.Items())

	var empty *Selection
	assert.Zero(t, empty.Len())
	_, ok = empty.Pop(Kinds(PointerObject), nil)
	assert.False(t, ok)
}

func TestStateTable(t *testing.T) {
	base := NewStateTable(StateDefinition{Name: "Start"}, StateDefinition{Name: "End"})
	ext := base.Extend(StateDefinition{Name: "Distance"}, StateDefinition{Name: "Start"})

	assert.Equal(t, 2, base.Count(), "extending leaves the base untouched")
	assert.Equal(t, 4, ext.Count())

	i, ok := ext.IndexOf("Distance")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = ext.IndexOf("Start")
	require.True(t, ok)
	assert.Equal(t, 0, i, "first state wins on duplicate names")

	_, ok = ext.At(4)
	assert.False(t, ok)
	_, ok = ext.At(-1)
	assert.False(t, ok)
}

func TestProperty(t *testing.T) {
	p := NewProperty(PropertyDescriptor{Name: "co", Size: 2, Default: []float64{1, 2}})
	assert.False(t, p.IsSet())
	assert.Equal(t, Vec2{1, 2}, p.Vec2())

	p.Set([]float64{5})
	assert.True(t, p.IsSet())
	assert.Equal(t, []float64{5, 2}, p.Values(), "missing components keep their default")

	p.Reset()
	assert.False(t, p.IsSet())
	assert.Equal(t, []float64{1, 2}, p.Values())
	assert.Zero(t, p.Value(7))

	n := NewProperty(PropertyDescriptor{Name: "segments", Integer: true})
	n.Set([]float64{2.6})
	assert.Equal(t, 3.0, n.Float())
}

func TestPropertyLabels(t *testing.T) {
	scalar := PropertyDescriptor{Name: "radius"}
	assert.Equal(t, "radius", scalar.ComponentLabel(0))
	assert.Equal(t, 1, scalar.Components())

	vec := PropertyDescriptor{Name: "co", Size: 3}
	assert.Equal(t, "y", vec.ComponentLabel(1))

	named := PropertyDescriptor{Name: "co", Label: "Location", Size: 2, Labels: []string{"u", "v"}}
	assert.Equal(t, "v", named.ComponentLabel(1))
	assert.Equal(t, "Location", named.DisplayName())
}

func TestStateDefinitionFlags(t *testing.T) {
	prop := StateDefinition{Property: PropertyName("distance")}
	assert.True(t, prop.Creates(), "property-only states always compute")
	assert.False(t, prop.HasPointer())

	pick := StateDefinition{Pointer: Kinds(PointerEntity)}
	assert.False(t, pick.Creates())
	assert.False(t, pick.HasProperty())

	pick.UseCreate = true
	assert.True(t, pick.Creates())
}

func TestResult(t *testing.T) {
	assert.True(t, ResultFinished.Done())
	assert.True(t, ResultCancelled.Done())
	assert.False(t, ResultPassThrough.Done())

	text, err := ResultPassThrough.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "pass_through", string(text))
}

func TestHooksMerge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnInvoke: func(context.Context, *OperatorEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnInvoke: func(context.Context, *OperatorEvent) { calls = append(calls, "b") },
		OnCancel: func(context.Context, *OperatorEvent) { calls = append(calls, "cancel") },
	}

	h := a.Merge(b)
	h.OnInvoke(context.Background(), &OperatorEvent{})
	h.OnCancel(context.Background(), &OperatorEvent{})
	assert.Nil(t, h.OnFinish)
	assert.Equal(t, []string{"a", "b", "cancel"}, calls)
}

func TestParseNames(t *testing.T) {
	k, ok := ParseKey("esc")
	require.True(t, ok)
	assert.Equal(t, KeyEscape, k)

	b, ok := ParseButton("middle")
	require.True(t, ok)
	assert.Equal(t, ButtonMiddle, b)

	et, ok := ParseEventType("wheel")
	require.True(t, ok)
	assert.Equal(t, EventWheel, et)

	_, ok = ParseKey("hyper")
	assert.False(t, ok)
}
