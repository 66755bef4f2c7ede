package module

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"
)

// ScriptMetrics tracks read-only script executions against the access node.
type ScriptMetrics interface {
	// ScriptExecuted records the duration of a script execution, labelled with the
	// script name and whether it failed.
	ScriptExecuted(name string, dur time.Duration, err error)
}

type TransactionMetrics interface {
	// TransactionSubmitted should be called once a signed transaction was accepted by the access node.
	TransactionSubmitted(name string)

	// TransactionSubmissionFailed should be called whenever we try to submit a transaction and it fails
	TransactionSubmissionFailed(name string)

	// TransactionSealed reports the time spent between the start of a watch and a successful seal.
	TransactionSealed(dur time.Duration)

	// TransactionFailed reports the time spent between the start of a watch and a failed
	// outcome (non-zero status code, expiry or seal timeout).
	TransactionFailed(dur time.Duration)

	// TransactionWatchCanceled tracks watches dropped by their owner before a terminal outcome.
	TransactionWatchCanceled()
}

type RefreshMetrics interface {
	// SnapshotRefreshed records the duration of a full DAO snapshot refresh.
	SnapshotRefreshed(dur time.Duration, err error)
}

type RestMetrics interface {
	// Example recorder taken from:
	// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
	httpmetrics.Recorder
	AddTotalRequests(ctx context.Context, method string, routeName string)
}

type DashboardMetrics interface {
	ScriptMetrics
	TransactionMetrics
	RefreshMetrics
	RestMetrics
}
