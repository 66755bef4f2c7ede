package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector, err := NewDashboardCollector(registry)
	require.NoError(t, err)

	collector.TransactionSubmitted("vote_topic")
	collector.TransactionSubmitted("vote_topic")
	collector.TransactionSubmissionFailed("vote_topic")
	collector.TransactionSealed(3 * time.Second)
	collector.TransactionFailed(time.Second)
	collector.TransactionWatchCanceled()
	collector.ScriptExecuted("get_founders", 10*time.Millisecond, nil)
	collector.ScriptExecuted("get_founders", 10*time.Millisecond, errors.New("unavailable"))
	collector.SnapshotRefreshed(time.Second, nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(collector.transactionSubmitted.WithLabelValues("vote_topic", ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.transactionSubmitted.WithLabelValues("vote_topic", ResultFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.watchOutcome.WithLabelValues(OutcomeSealed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.watchOutcome.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.watchOutcome.WithLabelValues(OutcomeCanceled)))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.sealLatency))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.scriptDuration))
}

func TestNewDashboardCollector_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewDashboardCollector(registry)
	require.NoError(t, err)

	_, err = NewRestCollector(registry)
	assert.Error(t, err)
}

func TestAccessClientMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	clientMetrics, err := NewAccessClientMetrics(registry)
	require.NoError(t, err)
	require.NotNil(t, clientMetrics.UnaryClientInterceptor())

	_, err = NewAccessClientMetrics(registry)
	assert.Error(t, err, "client metrics can only be registered once")
}
