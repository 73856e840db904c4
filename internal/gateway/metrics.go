package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup metrics are fed from tool invocation events, so they count calls
// from every surface once the gateway has installed its observer.
var (
	lookupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_lookup_requests_total",
			Help: "Total lookup tool invocations by outcome",
		},
		[]string{"tool", "outcome"},
	)

	lookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insight_lookup_duration_seconds",
			Help:    "Lookup tool invocation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_gateway_requests_total",
			Help: "Total HTTP requests served by the gateway",
		},
		[]string{"method", "path", "status"},
	)
)
