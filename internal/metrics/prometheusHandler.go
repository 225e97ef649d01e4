package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var activeSessionCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_session_count",
	Help: "Number of live chat sessions",
})

var documentsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "documents_processed_total",
	Help: "Documents successfully extracted and indexed",
})

var cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "semantic_cache_hits_total",
	Help: "Questions answered from the semantic cache",
})

// HttpStatusRecorder remembers the status a handler wrote so the request
// counter can label it. Handlers that never call WriteHeader get the implicit
// 200.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementActiveSessionCount() {
	activeSessionCount.Inc()
}

func DecrementActiveSessionCount() {
	activeSessionCount.Dec()
}

func AddDocumentsProcessed(n int) {
	documentsProcessedTotal.Add(float64(n))
}

func IncrementCacheHits() {
	cacheHitsTotal.Inc()
}

var actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "session_action_duration_seconds",
	Help:    "Total time spent processing documents or answering a question.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"action"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of pipeline steps and external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureActionMetrics(label string, timeElapsed time.Duration) {
	actionDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
