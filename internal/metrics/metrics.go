package metrics

import (
	"net/http"

	"github.com/mderbes/bookvault/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth flow

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookvault",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	PasswordResetsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookvault",
		Name:      "password_resets_total",
		Help:      "Password reset flow events, by stage.",
	}, []string{"stage"})

	// Janitor

	JanitorPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookvault",
		Name:      "janitor_purged_total",
		Help:      "Expired tokens cleared by the janitor.",
	})

	JanitorSweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bookvault",
		Name:      "janitor_sweep_duration_seconds",
		Help:      "Time taken for one janitor sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookvault",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookvault",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		LoginsTotal,
		PasswordResetsTotal,
		JanitorPurgedTotal,
		JanitorSweepDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the liveness/readiness endpoints on the
// internal port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		health.WriteJSON(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		health.WriteJSON(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}
