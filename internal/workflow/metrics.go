package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics shared by the lifecycle services.
type Metrics struct {
	Transitions  *prometheus.CounterVec
	AuthzDenials *prometheus.CounterVec
}

// NewMetrics creates and registers the workflow metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailspend_transitions_total",
			Help: "Total lifecycle transition attempts by entity, action and outcome",
		}, []string{"entity", "action", "outcome"}),
		AuthzDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tailspend_authz_denials_total",
			Help: "Total authorization denials by role and resource",
		}, []string{"role", "resource"}),
	}
}

// RecordTransition counts one transition attempt. Nil-safe so services can
// run without metrics in tests.
func (m *Metrics) RecordTransition(entity, action, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(entity, action, outcome).Inc()
}

// RecordDenial counts one authorization denial.
func (m *Metrics) RecordDenial(role, resource string) {
	if m == nil {
		return
	}
	m.AuthzDenials.WithLabelValues(role, resource).Inc()
}
