package stencil_test

import (
	"context"
	"testing"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/pkg/config"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(x, y float64) domain.Event {
	return domain.ButtonPress(domain.ButtonLeft, domain.Vec2{X: x, Y: y})
}

func TestToolkit_InvokeLine(t *testing.T) {
	kit := stencil.New()
	scene := kit.NewScene(nil)
	ctx := context.Background()

	op, rep, err := kit.Invoke(ctx, "line", scene, click(0, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultRunning, rep.Result)

	rep, err = op.HandleEvent(ctx, click(50, 0))
	require.NoError(t, err)
	assert.True(t, rep.Chained)

	rep, err = op.Cancel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultCancelled, rep.Result)
	assert.Len(t, scene.Document().Lines, 1)
}

func TestToolkit_ConfigOverrides(t *testing.T) {
	off := false
	cfg := config.Default()
	cfg.Tools["line"] = config.ToolOverride{ContinuousDraw: &off}
	cfg.Keymap["line"] = "G"

	kit := stencil.New(stencil.WithConfig(cfg))
	scene := kit.NewScene(nil)
	ctx := context.Background()

	op, _, err := kit.Invoke(ctx, "line", scene, click(0, 0))
	require.NoError(t, err)
	rep, err := op.HandleEvent(ctx, click(50, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultFinished, rep.Result)
	assert.Equal(t, "G", op.KeymapHint())

	desc, err := kit.Describe("line")
	require.NoError(t, err)
	assert.Contains(t, desc, "Shortcut: G")
}

func TestToolkit_Hooks(t *testing.T) {
	invoked := 0
	kit := stencil.New(
		stencil.WithLifecycleHooks(domain.LifecycleHooks{
			OnInvoke: func(context.Context, *domain.OperatorEvent) { invoked++ },
		}),
		stencil.WithLifecycleHooks(domain.LifecycleHooks{
			OnInvoke: func(context.Context, *domain.OperatorEvent) { invoked++ },
		}),
	)
	_, _, err := kit.Invoke(context.Background(), "point", kit.NewScene(nil), click(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, invoked)
}

func TestToolkit_UnknownTool(t *testing.T) {
	kit := stencil.New()
	_, _, err := kit.Invoke(context.Background(), "spline", kit.NewScene(nil), click(0, 0))
	assert.ErrorIs(t, err, domain.ErrToolNotFound)

	_, err = kit.Describe("spline")
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}
