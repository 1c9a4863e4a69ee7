package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.CollectAndCount(UpstreamCallDuration)

	ObserveUpstream(CallCompletion, time.Now(), nil)
	ObserveUpstream(CallCompletion, time.Now(), errors.New("boom"))

	assert.Equal(t, before+2, testutil.CollectAndCount(UpstreamCallDuration))
}

func TestWebhookRequests(t *testing.T) {
	before := testutil.ToFloat64(WebhookRequests.WithLabelValues(OutcomeIgnored))
	WebhookRequests.WithLabelValues(OutcomeIgnored).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(WebhookRequests.WithLabelValues(OutcomeIgnored)))
}
