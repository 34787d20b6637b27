package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// register | login_ok | login_failed | token_invalid
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Authentication events by outcome",
		},
		[]string{"event"},
	)

	// create | delete
	Posts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_total",
			Help: "Post writes by operation",
		},
		[]string{"op"},
	)
	ProgressUpserts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progress_upserts_total",
			Help: "Progress reports written",
		},
	)

	Uploads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Files stored",
		},
	)
	UploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upload_bytes_total",
			Help: "Bytes stored by uploads",
		},
	)

	CacheErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Feed cache errors by redis command",
		},
		[]string{"op"},
	)

	initOnce sync.Once
)

var Handler = promhttp.Handler

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			AuthEvents,
			Posts,
			ProgressUpserts,
			Uploads,
			UploadBytes,
			CacheErrors,
		)
	})
}
