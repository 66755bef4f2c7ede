package metrics

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/onflow/dao-dashboard/module"
)

type NoopCollector struct{}

var _ module.DashboardMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) ScriptExecuted(name string, dur time.Duration, err error) {}
func (nc *NoopCollector) TransactionSubmitted(name string)                         {}
func (nc *NoopCollector) TransactionSubmissionFailed(name string)                  {}
func (nc *NoopCollector) TransactionSealed(dur time.Duration)                      {}
func (nc *NoopCollector) TransactionFailed(dur time.Duration)                      {}
func (nc *NoopCollector) TransactionWatchCanceled()                                {}
func (nc *NoopCollector) SnapshotRefreshed(dur time.Duration, err error)           {}
func (nc *NoopCollector) ObserveHTTPRequestDuration(context.Context, httpmetrics.HTTPReqProperties, time.Duration) {
}
func (nc *NoopCollector) ObserveHTTPResponseSize(context.Context, httpmetrics.HTTPReqProperties, int64) {
}
func (nc *NoopCollector) AddInflightRequests(context.Context, httpmetrics.HTTPProperties, int) {}
func (nc *NoopCollector) AddTotalRequests(context.Context, string, string)                  {}
