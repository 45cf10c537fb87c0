package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(paymentsCaptured.WithLabelValues("wallet"))
	IncPaymentCaptured("wallet")
	assert.Equal(t, before+1, testutil.ToFloat64(paymentsCaptured.WithLabelValues("wallet")))

	beforeHTTP := testutil.ToFloat64(httpRequests.WithLabelValues("/api/services", "GET", "200"))
	ObserveHTTP("/api/services", "GET", 200, 15*time.Millisecond)
	assert.Equal(t, beforeHTTP+1, testutil.ToFloat64(httpRequests.WithLabelValues("/api/services", "GET", "200")))
}
