package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/pkg/adapters/memory"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/runner"
	"github.com/aretw0/stencil/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessions() (*session.Manager, *memory.Store) {
	store := memory.NewStore()
	return session.NewManager(store, stencil.New()), store
}

func TestRunner_TextScript(t *testing.T) {
	script := `
# a segment, then a circle
tool line
click 0 0
click 50 0
esc

tool circle
click 100 100
move 103 104
enter
`
	sessions, store := newSessions()
	var out bytes.Buffer
	r := runner.NewRunner(sessions,
		runner.WithSessionID("sketch"),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(script), &out)),
	)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runner.Summary{Commands: 8, Finished: 2, Cancelled: 1}, sum)

	doc, err := store.Load(context.Background(), "sketch")
	require.NoError(t, err)
	assert.Len(t, doc.Lines, 1)
	require.Len(t, doc.Circles, 1)
	assert.InDelta(t, 5, doc.Circles[0].Radius, 1e-9)

	text := out.String()
	assert.Contains(t, text, "(chained)")
	assert.Contains(t, text, "[cancelled]")
	assert.Contains(t, text, "[finished]")
}

func TestRunner_ErrorsAreReported(t *testing.T) {
	script := "jump 1 2\ntool spline\nclick 0 0\nclick 5 5\n"
	sessions, _ := newSessions()
	var out bytes.Buffer
	r := runner.NewRunner(sessions, runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(script), &out)))

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Errors)
	assert.Contains(t, out.String(), "! line 1:")
	assert.Contains(t, out.String(), "spline")
}

func TestRunner_StopOnError(t *testing.T) {
	sessions, _ := newSessions()
	r := runner.NewRunner(sessions,
		runner.WithStopOnError(true),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("tool spline\nclick 0 0\n"), &bytes.Buffer{})),
	)
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestRunner_JSON(t *testing.T) {
	input := `{"cmd":"tool","tool":"point"}
{"cmd":"click","x":5,"y":6}
{"cmd":"exec","tool":"line","properties":{"p2":[9,9]},"pointers":{"Start":{"kind":"point","name":"Point.001"}}}
`
	sessions, store := newSessions()
	var out bytes.Buffer
	r := runner.NewRunner(sessions,
		runner.WithSessionID("json"),
		runner.WithInputHandler(runner.NewJSONHandler(strings.NewReader(input), &out)),
	)
	_, err := r.Run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var rep map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rep))
		assert.Equal(t, "finished", rep["result"])
	}

	doc, err := store.Load(context.Background(), "json")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Point.001", doc.Lines[0].P1)
}

func TestRunner_ContextCancel(t *testing.T) {
	sessions, _ := newSessions()
	pr, pw := io.Pipe()
	defer pw.Close()

	r := runner.NewRunner(sessions, runner.WithInputHandler(runner.NewTextHandler(pr, &bytes.Buffer{})))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
