package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the dedicated Prometheus registry for the service.
var Registry = prometheus.NewRegistry()

var (
	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamRequests counts calls to external providers by provider,
	// operation, and outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_requests_total", Help: "Upstream provider calls by outcome."},
		[]string{"provider", "operation", "outcome"},
	)
)

var registerOnce sync.Once

// Register installs the service collectors on the registry.
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(UpstreamRequests)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
