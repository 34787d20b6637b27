package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/studygo-backend/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func recorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorder(w)

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		status := strconv.Itoa(rec.status)
		metrics.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		metrics.RequestLatency.WithLabelValues(r.Method, route, status).
			Observe(time.Since(start).Seconds())
	})
}

// routePattern keeps label cardinality bounded: unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if patt := rc.RoutePattern(); patt != "" {
			return patt
		}
	}
	return "unmatched"
}
