package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	requestLatencySeconds *prometheus.HistogramVec
	attemptsStartedTotal  prometheus.Counter
	attemptsCompleted     prometheus.Counter
	answerUpdatesTotal    prometheus.Counter
	integrityVerdicts     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		attemptsStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attempts_started_total",
			Help: "Total number of assessment attempts started.",
		})

		attemptsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attempts_completed_total",
			Help: "Total number of assessment attempts completed and sealed.",
		})

		answerUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "answer_updates_total",
			Help: "Total number of answer updates, including clears.",
		})

		integrityVerdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "integrity_verdicts_total",
			Help: "Proctoring verdicts recomputed, by outcome.",
		}, []string{"verdict"})

		prometheus.MustRegister(
			requestsTotal,
			requestLatencySeconds,
			attemptsStartedTotal,
			attemptsCompleted,
			answerUpdatesTotal,
			integrityVerdicts,
		)
	})
}

// Requests exposes the counter for HTTP requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// RequestLatency exposes the latency histogram for HTTP requests.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// AttemptsStarted exposes the counter for started attempts.
func AttemptsStarted() prometheus.Counter {
	RegisterMetrics()
	return attemptsStartedTotal
}

// AttemptsCompleted exposes the counter for sealed attempts.
func AttemptsCompleted() prometheus.Counter {
	RegisterMetrics()
	return attemptsCompleted
}

// AnswerUpdates exposes the counter for answer edits.
func AnswerUpdates() prometheus.Counter {
	RegisterMetrics()
	return answerUpdatesTotal
}

// IntegrityVerdicts exposes the verdict counter labelled by outcome.
func IntegrityVerdicts() *prometheus.CounterVec {
	RegisterMetrics()
	return integrityVerdicts
}
