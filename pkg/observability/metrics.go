package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the operator collectors on a dedicated registry.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	stateVisits *prometheus.CounterVec
	operations  *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewMetrics creates and registers the collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_invocations_total",
			Help:      "Total number of operator invocations",
		}, []string{"tool"}),
		stateVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_state_visits_total",
			Help:      "Total number of operator state entries",
		}, []string{"tool", "state"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_operations_total",
			Help:      "Total number of main operation runs",
		}, []string{"tool", "success"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_outcomes_total",
			Help:      "Operator runs by final outcome",
		}, []string{"tool", "outcome"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operators_active",
			Help:      "Number of operators currently running",
		}),
	}
	m.registry.MustRegister(m.invocations, m.stateVisits, m.operations, m.outcomes, m.active)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvoke: func(_ context.Context, e *domain.OperatorEvent) {
			m.invocations.WithLabelValues(e.Tool).Inc()
			m.active.Inc()
		},
		OnStateEnter: func(_ context.Context, e *domain.OperatorEvent) {
			m.stateVisits.WithLabelValues(e.Tool, e.StateName).Inc()
		},
		OnOperation: func(_ context.Context, e *domain.OperatorEvent) {
			m.operations.WithLabelValues(e.Tool, strconv.FormatBool(e.Success)).Inc()
		},
		OnFinish: func(_ context.Context, e *domain.OperatorEvent) {
			m.outcomes.WithLabelValues(e.Tool, "finished").Inc()
			m.active.Dec()
		},
		OnCancel: func(_ context.Context, e *domain.OperatorEvent) {
			m.outcomes.WithLabelValues(e.Tool, "cancelled").Inc()
			m.active.Dec()
		},
	}
}
