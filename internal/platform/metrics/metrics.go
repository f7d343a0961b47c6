package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-wide HTTP and session metrics.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	ActiveUsers    prometheus.Gauge
	UsersCreated   prometheus.Counter
}

// New creates and registers all platform metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontier_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),
		ActiveUsers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "frontier_active_users",
			Help: "Users currently present according to the authentication stream",
		}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "frontier_users_provisioned_total",
			Help: "Total number of user records created on first login",
		}),
	}
}

// ObserveRequest records one request latency.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// SetActiveUsers reports the current number of present users.
func (m *Metrics) SetActiveUsers(n int) {
	if m != nil {
		m.ActiveUsers.Set(float64(n))
	}
}

// IncrementUsersCreated increments the provisioned users counter by 1
func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
