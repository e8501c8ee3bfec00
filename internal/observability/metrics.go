package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodgram_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ShoppingListExports counts shopping list downloads by format.
	ShoppingListExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_shopping_list_exports_total",
		Help: "Total number of shopping list downloads",
	}, []string{"format"})

	// OrphanImagesPurged counts images removed by the cleanup job by result.
	OrphanImagesPurged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_orphan_images_purged_total",
		Help: "Total number of orphan image deletions by result",
	}, []string{"result"})

	// TagCacheLookups counts tag list cache lookups by result (hit, miss, error).
	TagCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_tag_cache_lookups_total",
		Help: "Total number of tag list cache lookups",
	}, []string{"result"})
)
