package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections  *prometheus.CounterVec
	StoreErrors prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_ratelimit_rejections_total",
			Help: "Requests rejected by the per-caller rate limit",
		}, []string{"class"}),
		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frontier_ratelimit_store_errors_total",
			Help: "Rate limit checks that failed open because the bucket store errored",
		}),
	}
}

func (m *Metrics) IncrementRejections(class string) {
	if m != nil {
		m.Rejections.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) IncrementStoreErrors() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}
