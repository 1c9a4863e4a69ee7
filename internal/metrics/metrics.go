package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook outcomes.
const (
	OutcomeRejected  = "rejected"
	OutcomeIgnored   = "ignored"
	OutcomeInventory = "inventory"
	OutcomeFallback  = "fallback"
	OutcomeError     = "error"
)

// Upstream calls.
const (
	CallCompletion = "completion"
	CallLookup     = "lookup"
	CallReply      = "reply"
)

var (
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Webhook requests by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Duration of completion, lookup and reply calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"call", "result"},
	)
)

// ObserveUpstream records one upstream call that started at start.
func ObserveUpstream(call string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UpstreamCallDuration.WithLabelValues(call, result).Observe(time.Since(start).Seconds())
}
