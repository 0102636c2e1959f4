package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ResultOK label of a successful run
	ResultOK = "ok"
	// ResultError label of a failed run
	ResultError = "error"
)

var (
	// PollTotal synchronizer ticks by poller and result
	PollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthpool_poll_total",
		Help: "Synchronizer poll ticks",
	}, []string{"poller", "result"})

	// IngestTotal price history runs by result
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthpool_ingest_total",
		Help: "Price history ingestions",
	}, []string{"result"})

	// ActionTotal submitted write actions by action and result
	ActionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synthpool_action_total",
		Help: "Write actions submitted to chain",
	}, []string{"action", "result"})

	// SnapshotUpdated unix time of the last published snapshot half
	SnapshotUpdated = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "synthpool_snapshot_updated_seconds",
		Help: "Unix time of the last published snapshot",
	}, []string{"kind"})

	// HTTPRequestDuration api latency by route and status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synthpool_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route", "status"})
)

// Result ok or error label of err
func Result(err error) string {
	if err != nil {
		return ResultError
	}

	return ResultOK
}

// Handler prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware record request latency, labelled by the chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
