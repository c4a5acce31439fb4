package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/solarleads/internal/usecase"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	followUpPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "followup_passes_total",
			Help: "Total number of follow-up passes",
		},
	)

	followUpPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "followup_pass_duration_seconds",
			Help:    "Duration of follow-up passes in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	followUpLeads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_leads_total",
			Help: "Leads evaluated by follow-up passes, by outcome",
		},
		[]string{"outcome"},
	)

	followUpDispatch = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followup_dispatch_total",
			Help: "Follow-up dispatch attempts by rule and outcome",
		},
		[]string{"rule", "outcome"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão do chi para não explodir a cardinalidade com IDs.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// FollowUpRecorder publica as métricas das passadas de follow-up.
type FollowUpRecorder struct{}

func (FollowUpRecorder) RecordPass(result usecase.PassResult) {
	followUpPasses.Inc()
	followUpPassDuration.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	followUpLeads.WithLabelValues("fired").Add(float64(result.Fired))
	followUpLeads.WithLabelValues("failed").Add(float64(result.Failed))
	followUpLeads.WithLabelValues("skipped").Add(float64(result.Skipped))
	followUpLeads.WithLabelValues("locked").Add(float64(result.Locked))
}

func (FollowUpRecorder) RecordDispatch(ruleID, outcome string) {
	followUpDispatch.WithLabelValues(ruleID, outcome).Inc()
}
