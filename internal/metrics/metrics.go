package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "orders_created_total",
		Help:      "Orders persisted with their stock reservation.",
	})
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "order_status_transitions_total",
		Help:      "Applied order status transitions.",
	}, []string{"from", "to"})
	PaymentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "payment_status_total",
		Help:      "Payment status changes by resulting status.",
	}, []string{"status"})
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})
	ProductCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "product_cache_lookups_total",
		Help:      "Product cache lookups by result.",
	}, []string{"result"})
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopease",
		Name:      "emails_total",
		Help:      "Transactional emails by delivery status.",
	}, []string{"status"})
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func RecordCacheLookup(hit bool) {
	if hit {
		ProductCacheLookups.WithLabelValues("hit").Inc()
		return
	}

	ProductCacheLookups.WithLabelValues("miss").Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests with the matched mux pattern rather than the raw path,
// so ids in URLs do not create new series.
func Middleware(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		_, pattern := mux.Handler(r)
		if pattern == "" {
			pattern = "unmatched"
		}

		defer func() {
			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, pattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		mux.ServeHTTP(rw, r)
	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
