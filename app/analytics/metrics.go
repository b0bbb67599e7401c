package analytics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluator_errors_total",
		Help: "Logged warnings and errors by level.",
	}, []string{"level"})

	submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluator_submissions_total",
		Help: "Processed submissions by final status.",
	}, []string{"status"})

	cyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluator_cycles_total",
		Help: "Polling cycles by result.",
	}, []string{"result"})

	cycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "evaluator_cycle_duration_seconds",
		Help:    "Duration of one polling cycle.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

func init() {
	registry.MustRegister(
		errorsTotal,
		submissionsTotal,
		cyclesTotal,
		cycleDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func TrackSubmissionStatus(status string) {
	submissionsTotal.WithLabelValues(status).Inc()
}

func TrackCycle(startedAt time.Time, err error) {
	res := "ok"
	if err != nil {
		res = "fail"
	}
	cyclesTotal.WithLabelValues(res).Inc()
	cycleDuration.Observe(time.Since(startedAt).Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
