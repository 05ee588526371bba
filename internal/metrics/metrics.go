package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	applicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobhub_applications_submitted_total",
		Help: "Count of job applications successfully submitted",
	})

	jobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobhub_jobs_created_total",
		Help: "Count of job postings created",
	})
)

// ObserveHTTPRequest records one handled request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveApplicationSubmitted increments the submitted-applications counter.
func ObserveApplicationSubmitted() {
	applicationsSubmitted.Inc()
}

// ObserveJobCreated increments the created-jobs counter.
func ObserveJobCreated() {
	jobsCreated.Inc()
}

// Middleware instruments requests with the HTTP metrics above.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		ObserveHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(ww.status), time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
