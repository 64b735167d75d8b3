// Package metrics collects and exposes Prometheus metrics for the app.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lessonhub_http_requests_total",
		Help: "HTTP requests by status code.",
	}, []string{"status_code"})

	gateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lessonhub_gate_decisions_total",
		Help: "Access-gate outcomes by requested screen.",
	}, []string{"screen", "outcome"})
)

// GateDecision records one access-gate outcome: "render", "redirect", or
// "error".
func GateDecision(screen, outcome string) {
	gateDecisions.WithLabelValues(screen, outcome).Inc()
}

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// CountRequests is middleware that records response status codes.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpRequests.WithLabelValues(strconv.Itoa(rec.status)).Inc()
	})
}
