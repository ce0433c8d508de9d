package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPaymentsApplied(t *testing.T) {
	before := testutil.ToFloat64(PaymentsApplied.WithLabelValues("USD"))
	PaymentsApplied.WithLabelValues("USD").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PaymentsApplied.WithLabelValues("USD")))
}

func TestCollectorsLint(t *testing.T) {
	problems, err := testutil.CollectAndLint(HTTPRequests)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
