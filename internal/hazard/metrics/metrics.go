package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the hazard module.
type Metrics struct {
	HazardsReported *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
}

// New creates a new Metrics instance with all hazard module metrics registered.
func New() *Metrics {
	return &Metrics{
		HazardsReported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_hazards_reported_total",
			Help: "Hazard reports created, by severity",
		}, []string{"severity"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_hazard_transitions_total",
			Help: "Applied lifecycle transitions, by source and target status",
		}, []string{"from", "to"}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_hazard_transitions_rejected_total",
			Help: "Transition requests refused, by reason",
		}, []string{"reason"}),
	}
}

// IncrementReported records a created report.
func (m *Metrics) IncrementReported(severity string) {
	if m != nil {
		m.HazardsReported.WithLabelValues(severity).Inc()
	}
}

// IncrementTransition records an applied edge.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

// IncrementRejected records a refused transition.
func (m *Metrics) IncrementRejected(reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(reason).Inc()
	}
}
