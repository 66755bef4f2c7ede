package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/dao-dashboard/module"
)

// DashboardCollector implements module.DashboardMetrics on top of prometheus.
type DashboardCollector struct {
	*RestCollector

	scriptDuration       *prometheus.HistogramVec
	transactionSubmitted *prometheus.CounterVec
	watchOutcome         *prometheus.CounterVec
	sealLatency          prometheus.Histogram
	refreshDuration      *prometheus.HistogramVec
}

var _ module.DashboardMetrics = (*DashboardCollector)(nil)

func NewDashboardCollector(registerer prometheus.Registerer) (*DashboardCollector, error) {
	rest, err := NewRestCollector(registerer)
	if err != nil {
		return nil, err
	}

	factory := promauto.With(registerer)

	return &DashboardCollector{
		RestCollector: rest,
		scriptDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceDAO,
			Subsystem: subsystemScripts,
			Name:      "execution_duration_seconds",
			Help:      "the duration of script executions against the access node",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{LabelScript, LabelResult}),
		transactionSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceDAO,
			Subsystem: subsystemTransactions,
			Name:      "submitted_total",
			Help:      "counter for the success/failure of transaction submissions",
		}, []string{LabelTransaction, LabelResult}),
		watchOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceDAO,
			Subsystem: subsystemTransactions,
			Name:      "watch_outcomes_total",
			Help:      "counter for the terminal outcome of watched transactions",
		}, []string{LabelOutcome}),
		sealLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceDAO,
			Subsystem: subsystemTransactions,
			Name:      "time_to_sealed_seconds",
			Help:      "the duration between the start of a watch and the sealed result",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120, 300, 600},
		}),
		refreshDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceDAO,
			Subsystem: subsystemSnapshot,
			Name:      "refresh_duration_seconds",
			Help:      "the duration of a full DAO snapshot refresh",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}, []string{LabelResult}),
	}, nil
}

func (c *DashboardCollector) ScriptExecuted(name string, dur time.Duration, err error) {
	c.scriptDuration.WithLabelValues(name, result(err)).Observe(dur.Seconds())
}

func (c *DashboardCollector) TransactionSubmitted(name string) {
	c.transactionSubmitted.WithLabelValues(name, ResultSuccess).Inc()
}

func (c *DashboardCollector) TransactionSubmissionFailed(name string) {
	c.transactionSubmitted.WithLabelValues(name, ResultFailure).Inc()
}

func (c *DashboardCollector) TransactionSealed(dur time.Duration) {
	c.watchOutcome.WithLabelValues(OutcomeSealed).Inc()
	c.sealLatency.Observe(dur.Seconds())
}

func (c *DashboardCollector) TransactionFailed(dur time.Duration) {
	c.watchOutcome.WithLabelValues(OutcomeFailed).Inc()
	c.sealLatency.Observe(dur.Seconds())
}

func (c *DashboardCollector) TransactionWatchCanceled() {
	c.watchOutcome.WithLabelValues(OutcomeCanceled).Inc()
}

func (c *DashboardCollector) SnapshotRefreshed(dur time.Duration, err error) {
	c.refreshDuration.WithLabelValues(result(err)).Observe(dur.Seconds())
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
