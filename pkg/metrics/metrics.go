// Package metrics holds the Prometheus collectors shared by the client packages.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igclient_http_requests_total",
			Help: "Outbound HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "igclient_http_request_duration_seconds",
			Help:    "Outbound HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	pagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igclient_pages_fetched_total",
			Help: "Pages fetched by paginated listings",
		},
		[]string{"listing"},
	)

	paginationStopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igclient_pagination_stops_total",
			Help: "Paginated listings finished, by reason",
		},
		[]string{"reason"},
	)

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "igclient_cache_hits_total",
		Help: "Username cache hits",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "igclient_cache_misses_total",
		Help: "Username cache misses",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igclient_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveRequest records one outbound request. Status 0 means a network failure.
func ObserveRequest(method string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// PageFetched counts one page of a paginated listing
func PageFetched(listing string) {
	pagesFetchedTotal.WithLabelValues(listing).Inc()
}

// PaginationStopped counts why a listing ended
func PaginationStopped(reason string) {
	paginationStopsTotal.WithLabelValues(reason).Inc()
}

func CacheHit()  { cacheHitsTotal.Inc() }
func CacheMiss() { cacheMissesTotal.Inc() }

// LoginOutcome counts a login by outcome (reused, authenticated, challenge, failed)
func LoginOutcome(outcome string) {
	loginsTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
