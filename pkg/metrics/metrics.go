package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GatewayOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "usergateway", Name: "gateway_operations_total", Help: "Gateway operations by collection, operation and outcome."},
		[]string{"collection", "op", "outcome"},
	)
	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "usergateway", Name: "gateway_operation_seconds", Help: "Latency of gateway operations.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "usergateway", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "usergateway", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(GatewayOperations)
	reg.MustRegister(GatewayDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
