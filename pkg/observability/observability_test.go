package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(state string, success bool) *domain.OperatorEvent {
	return &domain.OperatorEvent{Tool: "line", StateName: state, Success: success}
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics("test")
	h := m.Hooks()
	ctx := context.Background()

	h.OnInvoke(ctx, event("Start", false))
	h.OnStateEnter(ctx, event("Start", false))
	h.OnStateEnter(ctx, event("End", false))
	h.OnOperation(ctx, event("End", true))
	h.OnFinish(ctx, event("End", true))
	h.OnInvoke(ctx, event("Start", false))
	h.OnCancel(ctx, event("Start", false))

	expected := `
# HELP test_operator_outcomes_total Operator runs by final outcome
# TYPE test_operator_outcomes_total counter
test_operator_outcomes_total{outcome="cancelled",tool="line"} 1
test_operator_outcomes_total{outcome="finished",tool="line"} 1
# HELP test_operators_active Number of operators currently running
# TYPE test_operators_active gauge
test_operators_active 0
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"test_operator_outcomes_total", "test_operators_active"))

	count, err := testutil.GatherAndCount(m.Registry(), "test_operator_state_visits_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics("stencil")
	m.Hooks().OnInvoke(context.Background(), event("Start", false))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `stencil_operator_invocations_total{tool="line"} 1`)
	assert.Contains(t, body, "stencil_operators_active 1")
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := observability.LoggingHooks(logger)

	h.OnStateEnter(context.Background(), event("End", false))
	h.OnFinish(context.Background(), event("End", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "operator_finish", rec["msg"])
	assert.Equal(t, "line", rec["tool"])
	assert.Equal(t, "End", rec["state"])
	assert.Equal(t, true, rec["success"])
}
