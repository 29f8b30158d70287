package terminal

import (
	"context"
	"testing"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/pkg/adapters/memory"
	"github.com/aretw0/stencil/pkg/session"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*App, tcell.SimulationScreen, *session.Manager) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	kit := stencil.New()
	mgr := session.NewManager(memory.NewStore(), kit)
	require.NoError(t, mgr.Open(context.Background(), "doc"))
	return New(screen, mgr, "doc", WithKeymap(kit.Config().Keymap)), screen, mgr
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouse(col, row int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(col, row, b, tcell.ModNone)
}

func feed(t *testing.T, app *App, events ...tcell.Event) {
	t.Helper()
	for _, ev := range events {
		quit, err := app.Handle(context.Background(), ev)
		require.NoError(t, err)
		require.False(t, quit)
	}
}

func TestApp_DrawLine(t *testing.T) {
	app, screen, mgr := newApp(t)
	ctx := context.Background()

	feed(t, app,
		key('l'),
		mouse(1, 1, tcell.Button1), mouse(1, 1, tcell.ButtonNone),
		mouse(6, 1, tcell.Button1), mouse(6, 1, tcell.ButtonNone),
	)
	assert.Equal(t, "line: chained", app.Message())

	feed(t, app, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, "line: cancelled", app.Message())

	doc, err := mgr.Document(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)

	require.NoError(t, app.Draw(ctx))
	glyph, _, _, _ := screen.GetContent(1, 1)
	assert.Equal(t, glyphPoint, glyph)
	glyph, _, _, _ = screen.GetContent(6, 1)
	assert.Equal(t, glyphPoint, glyph)
	glyph, _, _, _ = screen.GetContent(3, 1)
	assert.Equal(t, glyphLine, glyph)

	status, _, _, _ := screen.GetContent(0, 19)
	assert.Equal(t, 'l', status)
}

func TestApp_StatusWhileRunning(t *testing.T) {
	app, screen, mgr := newApp(t)
	ctx := context.Background()

	feed(t, app, key('c'), mouse(5, 5, tcell.Button1))
	info, err := mgr.Info(ctx, "doc")
	require.NoError(t, err)
	require.True(t, info.Running)

	require.NoError(t, app.Draw(ctx))
	_, _, style, _ := screen.GetContent(0, 19)
	assert.Equal(t, styleStatus, style)
}

func TestApp_IdleKeys(t *testing.T) {
	app, _, mgr := newApp(t)
	ctx := context.Background()

	feed(t, app, key('z'), mouse(3, 3, tcell.Button1))
	info, err := mgr.Info(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, info.Running, "unbound keys and clicks do nothing while idle")

	quit, err := app.Handle(ctx, key('q'))
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestApp_CtrlCCancels(t *testing.T) {
	app, _, mgr := newApp(t)
	ctx := context.Background()

	feed(t, app, key('l'), mouse(2, 2, tcell.Button1))
	quit, err := app.Handle(ctx, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	require.NoError(t, err)
	assert.True(t, quit)

	info, err := mgr.Info(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, info.Running)
	assert.Zero(t, info.Stats.Points)
}
