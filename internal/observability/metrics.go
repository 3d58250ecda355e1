package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts remote API calls by operation and HTTP status.
	// Calls that never reached the network are recorded with status "local".
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "damagesnap_api_requests_total",
		Help: "Total number of DamageSnap API calls by operation and status",
	}, []string{"operation", "status"})

	// APIRequestLatency records remote API latency by operation.
	APIRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "damagesnap_api_request_latency_seconds",
		Help:    "DamageSnap API call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// GeocodeRequests counts geocoding outcomes (ok, not_found, invalid, error).
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "damagesnap_geocode_requests_total",
		Help: "Total number of geocoding requests by outcome",
	}, []string{"outcome"})

	// GeocodeCacheHits counts geocoding answers served from Redis.
	GeocodeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "damagesnap_geocode_cache_hits_total",
		Help: "Total number of geocoding results served from cache",
	})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "damagesnap_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)
