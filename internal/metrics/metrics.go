// Package metrics defines Prometheus metrics for diggerweb-backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diggerweb"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Discogs API metrics.
var (
	DiscogsAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discogs_api_calls_total",
		Help:      "Total Discogs API calls by operation.",
	}, []string{"operation"})

	DiscogsAPIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discogs_api_errors_total",
		Help:      "Total Discogs API errors by operation.",
	}, []string{"operation"})
)

// Inventory enrichment metrics.
var (
	EnrichmentListingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_listings_total",
		Help:      "Total inventory listings processed by the enrichment pipeline.",
	})

	EnrichmentStatsFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_stats_failures_total",
		Help:      "Total marketplace statistics lookups that failed and were contained.",
	})

	EnrichmentDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_degraded_total",
		Help:      "Total listings emitted as degraded records.",
	})
)

// OAuth metrics.
var (
	OAuthExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_exchanges_total",
		Help:      "Total OAuth access token exchanges by result (ok, mismatch, error).",
	}, []string{"result"})
)
