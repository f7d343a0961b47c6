package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for compliance aggregation.
type Metrics struct {
	AggregationDuration *prometheus.HistogramVec
	AggregationFailures *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		AggregationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontier_compliance_aggregation_duration_seconds",
			Help:    "Time to read and aggregate collections, by report",
			Buckets: prometheus.DefBuckets,
		}, []string{"report"}),
		AggregationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_compliance_aggregation_failures_total",
			Help: "Aggregations abandoned because a collection read failed",
		}, []string{"report", "collection"}),
	}
}

func (m *Metrics) ObserveDuration(report string, d time.Duration) {
	if m != nil {
		m.AggregationDuration.WithLabelValues(report).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementFailure(report, collection string) {
	if m != nil {
		m.AggregationFailures.WithLabelValues(report, collection).Inc()
	}
}
