package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission results.
const (
	ResultSuccess    = "success"
	ResultInvalid    = "invalid"
	ResultWriteError = "write_error"
)

var (
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wizard",
		Subsystem: "submit",
		Name:      "total",
		Help:      "Wizard submissions broken down by role type and result.",
	}, []string{"role_type", "result"})

	submitLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wizard",
		Subsystem: "submit",
		Name:      "latency_seconds",
		Help:      "Time spent writing a submission to the employee resources.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"role_type", "result"})
)

func RecordSubmission(roleType, result string, latency time.Duration) {
	labels := prometheus.Labels{"role_type": roleType, "result": result}
	submissions.With(labels).Inc()
	submitLatency.With(labels).Observe(latency.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
