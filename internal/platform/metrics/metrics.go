package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the client's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parts_client",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by the view server.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parts_client",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of view server requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	backendCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parts_client",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Calls issued to the marketplace backend, by outcome.",
		},
		[]string{"method", "status"},
	)

	refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parts_client",
			Subsystem: "refresh",
			Name:      "results_total",
			Help:      "Resource refresh outcomes (committed, stale, failed, swallowed).",
		},
		[]string{"resource", "outcome"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, backendCalls, refreshes)
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, route string, status int, dur time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveBackendCall records one backend call. status 0 means a network failure.
func ObserveBackendCall(method string, status int) {
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendCalls.WithLabelValues(method, label).Inc()
}

func ObserveRefresh(resource, outcome string) {
	refreshes.WithLabelValues(resource, outcome).Inc()
}
