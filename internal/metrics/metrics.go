// Package metrics defines Prometheus metrics for ml-explorer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mlx"

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
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last /readyz probe succeeded (1) or failed (0).",
	})
)

// Marketplace API metrics.
var (
	// MarketplaceCallsTotal counts outbound calls by operation
	// (search, exchange, refresh) and outcome (ok, unauthorized, rejected, error).
	MarketplaceCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_calls_total",
		Help:      "Total outbound Mercado Livre API calls.",
	}, []string{"operation", "outcome"})

	MarketplaceCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "marketplace_call_duration_seconds",
		Help:      "Duration of outbound Mercado Livre API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	MarketplaceRateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_rate_limit_hits_total",
		Help:      "Total number of searches rejected by the local daily limit.",
	})

	MarketplaceQuotaUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "marketplace_quota_used",
		Help:      "Outbound search calls counted in the current daily window.",
	})
)

// Catalog metrics.
var (
	MockFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mock_fallbacks_total",
		Help:      "Total searches answered with mock products, by reason.",
	}, []string{"reason"})

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_token_refreshes_total",
		Help:      "Total refresh-and-retry attempts after a 401, by result.",
	}, []string{"result"})

	ProductsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_products_returned",
		Help:      "Number of products returned per search.",
		Buckets:   prometheus.LinearBuckets(0, 10, 6), // 0, 10, ..., 50
	})
)

// Session metrics.
var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total login attempts by mode (oauth, mock) and result.",
	}, []string{"mode", "result"})
)
