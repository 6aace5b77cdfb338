package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream labels.
const (
	UpstreamShopify = "shopify"
	UpstreamGoogle  = "google"
)

var upstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Outbound API calls by upstream and outcome.",
	},
	[]string{"upstream", "operation", "outcome"},
)

var upstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Latency of outbound API calls.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"upstream", "operation"},
)

// ObserveUpstream records one outbound call.
func ObserveUpstream(upstream, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(upstream, operation, outcome).Inc()
	upstreamDuration.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
}
