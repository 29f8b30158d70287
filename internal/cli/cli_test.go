package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/stencil/pkg/adapters/redis"
	"github.com/aretw0/stencil/pkg/config"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stencil.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func fileEnv(t *testing.T, extra string) *Env {
	t.Helper()
	dir := t.TempDir()
	path := writeConfig(t, fmt.Sprintf("store:\n  kind: file\n  path: %s\n%s", dir, extra))
	env, err := Setup(Options{ConfigPath: path, Stderr: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	return env
}

func TestSetup_Defaults(t *testing.T) {
	env, err := Setup(Options{Stderr: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, env.Config.Store.Kind)
	assert.Nil(t, env.Locker)
	assert.Nil(t, env.Metrics)
	assert.Contains(t, env.Kit.Tools(), "line")
}

func TestSetup_Errors(t *testing.T) {
	_, err := Setup(Options{Store: "tape", Stderr: io.Discard})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = Setup(Options{LogLevel: "loud", Stderr: io.Discard})
	assert.Error(t, err)
}

func TestSetup_DebugLogsOperatorHooks(t *testing.T) {
	var logs bytes.Buffer
	env, err := Setup(Options{LogLevel: "debug", LogJSON: true, Stderr: &logs})
	require.NoError(t, err)

	_, err = RunScript(context.Background(), env, RunOptions{
		Input:  strings.NewReader("tool point\nclick 1 1\n"),
		Output: io.Discard,
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"operator_invoke"`)
}

func TestRunScript_SavesToFileStore(t *testing.T) {
	env := fileEnv(t, "")
	ctx := context.Background()

	var out bytes.Buffer
	sum, err := RunScript(ctx, env, RunOptions{
		Input:     strings.NewReader("tool line\nclick 0 0\nclick 40 0\nesc\n"),
		Output:    &out,
		SessionID: "plan",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Cancelled)
	assert.Contains(t, out.String(), "(chained)")
	assert.Equal(t, "4 commands, 0 finished, 1 cancelled, 0 errors", FormatSummary(sum))

	var list bytes.Buffer
	require.NoError(t, ListDocuments(ctx, &list, env))
	assert.Contains(t, list.String(), "- plan (2 points, 1 lines, 0 circles, 0 constraints)")

	var doc bytes.Buffer
	require.NoError(t, InspectDocument(ctx, &doc, env, "plan", "yaml"))
	assert.Contains(t, doc.String(), "lines:")
	doc.Reset()
	require.NoError(t, InspectDocument(ctx, &doc, env, "plan", "json"))
	assert.Contains(t, doc.String(), `"lines": [`)
	assert.Error(t, InspectDocument(ctx, &doc, env, "plan", "xml"))

	var rm bytes.Buffer
	require.NoError(t, RemoveDocuments(ctx, &rm, env, []string{"plan"}))
	assert.Contains(t, rm.String(), "Removed document 'plan'")
	list.Reset()
	require.NoError(t, ListDocuments(ctx, &list, env))
	assert.Equal(t, "No documents found.\n", list.String())
}

func TestRunScript_JSON(t *testing.T) {
	env, err := Setup(Options{Stderr: io.Discard})
	require.NoError(t, err)

	var out bytes.Buffer
	sum, err := RunScript(context.Background(), env, RunOptions{
		Input:  strings.NewReader(`{"cmd":"exec","tool":"point","properties":{"co":[1,2]}}` + "\n"),
		Output: &out,
		JSON:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Finished)
	assert.Contains(t, out.String(), `"result":"finished"`)
}

func TestSetup_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	path := writeConfig(t, fmt.Sprintf("store:\n  kind: redis\n  redis:\n    addr: %s\n    prefix: \"test:\"\n", mr.Addr()))
	env, err := Setup(Options{ConfigPath: path, Stderr: io.Discard})
	require.NoError(t, err)
	defer env.Close()

	require.IsType(t, &redis.Store{}, env.Store)
	require.NotNil(t, env.Locker)

	_, err = RunScript(context.Background(), env, RunOptions{
		Input:     strings.NewReader("exec point co=3,4\n"),
		Output:    io.Discard,
		SessionID: "remote",
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:doc:remote"))
}

func TestTools(t *testing.T) {
	env, err := Setup(Options{Stderr: io.Discard})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ListTools(&buf, env))
	assert.Regexp(t, `line\s+Add Line\s+L\s+2`, buf.String())

	buf.Reset()
	require.NoError(t, DescribeTool(&buf, env, "circle", true))
	assert.Contains(t, buf.String(), "# Add Circle")

	buf.Reset()
	require.NoError(t, GraphTool(&buf, env, "line"))
	assert.True(t, strings.HasPrefix(buf.String(), "graph TD\n"))

	assert.Error(t, DescribeTool(&buf, env, "nope", false))
}

func TestServe_MetricsAndShutdown(t *testing.T) {
	env := fileEnv(t, "metrics:\n  enabled: true\n  namespace: test\n")
	ctx, cancel := context.WithCancel(context.Background())

	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, env, "127.0.0.1:0", ready) }()

	var addr string
	select {
	case addr = <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Post("http://"+addr+"/sessions/s1/execute", "application/json",
		strings.NewReader(`{"tool":"point","properties":{"co":[0,0]}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `test_operator_invocations_total{tool="point"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_ListenError(t *testing.T) {
	env, err := Setup(Options{Stderr: io.Discard})
	require.NoError(t, err)
	assert.Error(t, Serve(context.Background(), env, "bad::addr", nil))
}

func TestEditOn_QuitSavesDocument(t *testing.T) {
	env := fileEnv(t, "")
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 20)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, EditOn(context.Background(), env, screen, "sketch"))

	_, err := env.Store.Load(context.Background(), "sketch")
	assert.NoError(t, err)
}

func TestNewMCPServer(t *testing.T) {
	env, err := Setup(Options{Stderr: io.Discard})
	require.NoError(t, err)
	assert.NotNil(t, NewMCPServer(env).MCPServer())
}
