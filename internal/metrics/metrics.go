package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_admin_http_requests_total",
			Help: "HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_admin_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_admin_backend_requests_total",
			Help: "Calls to the REST backend, by resource, operation and outcome.",
		},
		[]string{"resource", "operation", "outcome"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_admin_backend_request_duration_seconds",
			Help:    "REST backend call latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "operation"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_admin_cache_lookups_total",
			Help: "List cache lookups, by resource and result (hit or miss).",
		},
		[]string{"resource", "result"},
	)

	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_admin_realtime_clients",
			Help: "Open WebSocket connections receiving change events.",
		},
	)
)
