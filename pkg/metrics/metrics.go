package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesinspect_api_requests_total",
			Help: "Total number of API requests by HTTP status (\"error\" for transport failures)",
		},
		[]string{"status"},
	)

	APIRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vesinspect_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Mapping metrics
	MappingDiagnosticsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesinspect_mapping_diagnostics_total",
			Help: "Total number of diagnostics raised while mapping resources",
		},
		[]string{"kind", "code"},
	)

	MappingFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesinspect_mapping_failures_total",
			Help: "Total number of resources that failed to map",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(MappingDiagnosticsTotal)
	prometheus.MustRegister(MappingFailuresTotal)
}

// StatusLabel returns the status label for an HTTP status code, or "error"
// when the request never got a response
func StatusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
