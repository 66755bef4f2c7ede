package txwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"

	"github.com/onflow/dao-dashboard/module"
	"github.com/onflow/dao-dashboard/module/txerrors"
	"github.com/onflow/dao-dashboard/utils/logging"
)

const MessageExpired = "Transaction expired before it was sealed"

// Reporter receives the progress of a watched transaction. Calls are serialized.
// A Reporter must not call Watch.Cancel from within a callback.
type Reporter interface {
	OnStatus(txID sdk.Identifier, status sdk.TransactionStatus, message string)
	OnSuccess(txID sdk.Identifier, result *Result)
	OnFailure(txID sdk.Identifier, message string)
}

// Callbacks adapts functions to a Reporter. Nil functions are skipped.
type Callbacks struct {
	Status  func(txID sdk.Identifier, status sdk.TransactionStatus, message string)
	Success func(txID sdk.Identifier, result *Result)
	Failure func(txID sdk.Identifier, message string)
}

var _ Reporter = Callbacks{}

func (c Callbacks) OnStatus(txID sdk.Identifier, status sdk.TransactionStatus, message string) {
	if c.Status != nil {
		c.Status(txID, status, message)
	}
}

func (c Callbacks) OnSuccess(txID sdk.Identifier, result *Result) {
	if c.Success != nil {
		c.Success(txID, result)
	}
}

func (c Callbacks) OnFailure(txID sdk.Identifier, message string) {
	if c.Failure != nil {
		c.Failure(txID, message)
	}
}

// Watcher starts watches over submitted transactions.
type Watcher struct {
	log         zerolog.Logger
	subscriber  Subscriber
	metrics     module.TransactionMetrics
	sealTimeout time.Duration
}

// NewWatcher returns a Watcher. A zero sealTimeout waits for the terminal result
// until the watch context ends.
func NewWatcher(log zerolog.Logger, subscriber Subscriber, metrics module.TransactionMetrics, sealTimeout time.Duration) *Watcher {
	return &Watcher{
		log:         log.With().Str("component", "tx_watcher").Logger(),
		subscriber:  subscriber,
		metrics:     metrics,
		sealTimeout: sealTimeout,
	}
}

// Watch starts following the transaction. The returned Watch reports every lifecycle
// status in order, followed by exactly one of OnSuccess or OnFailure, unless it is
// canceled first.
func (w *Watcher) Watch(ctx context.Context, txID sdk.Identifier, reporter Reporter) (*Watch, error) {
	ctx, cancel := context.WithCancel(ctx)

	sub, err := w.subscriber.Subscribe(ctx, txID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not subscribe to transaction %s: %w", txID, err)
	}

	watch := &Watch{
		log:         w.log.With().Hex("tx_id", logging.ID(txID)).Str("subscription_id", sub.ID()).Logger(),
		txID:        txID,
		subscriber:  w.subscriber,
		sub:         sub,
		reporter:    reporter,
		metrics:     w.metrics,
		sealTimeout: w.sealTimeout,
		started:     time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		last:        sdk.TransactionStatusUnknown,
		done:        make(chan struct{}),
	}

	watch.wg.Add(2)
	go watch.forwardStatuses()
	go watch.awaitSealed()
	go func() {
		watch.wg.Wait()
		close(watch.done)
	}()

	watch.log.Debug().Msg("watching transaction")
	return watch, nil
}

// Watch is a single watched transaction.
type Watch struct {
	log         zerolog.Logger
	txID        sdk.Identifier
	subscriber  Subscriber
	sub         Subscription
	reporter    Reporter
	metrics     module.TransactionMetrics
	sealTimeout time.Duration
	started     time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
	once   sync.Once

	// mu guards closed and last, and serializes reporter calls
	mu     sync.Mutex
	closed bool
	last   sdk.TransactionStatus
}

func (w *Watch) TransactionID() sdk.Identifier {
	return w.txID
}

// Done returns a channel that is closed once the watch ended and all of its goroutines exited.
func (w *Watch) Done() <-chan struct{} {
	return w.done
}

// Cancel stops the watch. No report is delivered after Cancel returns and a result
// resolving concurrently is discarded. Cancel is a no-op after the terminal report.
func (w *Watch) Cancel() {
	w.cancel()

	w.mu.Lock()
	wasClosed := w.closed
	w.closed = true
	w.mu.Unlock()

	if !wasClosed {
		w.metrics.TransactionWatchCanceled()
		w.log.Debug().Msg("watch canceled")
	}
	w.teardown()
}

func (w *Watch) teardown() {
	w.once.Do(func() {
		w.cancel()
		w.sub.Unsubscribe()
	})
}

func (w *Watch) forwardStatuses() {
	defer w.wg.Done()

	ch := w.sub.Channel()
	for {
		select {
		case <-w.ctx.Done():
			return
		case status, ok := <-ch:
			if !ok {
				if err := w.sub.Err(); err != nil && w.ctx.Err() == nil {
					w.log.Warn().Err(err).Msg("status subscription ended early")
				}
				return
			}
			w.mu.Lock()
			if !w.closed {
				w.reportStatusLocked(status)
			}
			w.mu.Unlock()
		}
	}
}

// reportStatusLocked reports every lifecycle status up to and including the given one
// that was not reported yet. Statuses outside the lifecycle are reported with the
// generic message and leave the progression unchanged.
func (w *Watch) reportStatusLocked(status sdk.TransactionStatus) {
	if !inLifecycle(status) {
		w.reporter.OnStatus(w.txID, status, StatusMessage(status))
		return
	}

	for _, s := range lifecycle {
		if s <= w.last {
			continue
		}
		if s > status {
			break
		}
		w.last = s
		w.reporter.OnStatus(w.txID, s, StatusMessage(s))
	}
}

func (w *Watch) awaitSealed() {
	defer w.wg.Done()

	ctx := w.ctx
	if w.sealTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(w.ctx, w.sealTimeout)
		defer cancel()
	}

	result, err := w.subscriber.WaitForSealed(ctx, w.txID)
	if w.ctx.Err() != nil {
		// the owner lost interest, any result is discarded
		w.abandon()
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			w.fail(fmt.Sprintf("Transaction was not sealed within %s", w.sealTimeout))
			return
		}
		w.log.Error().Err(err).Msg("could not wait for sealed transaction")
		w.fail(txerrors.HumanizeError(err))
		return
	}

	w.resolve(result)
}

// abandon closes the watch without a terminal report.
func (w *Watch) abandon() {
	w.mu.Lock()
	wasClosed := w.closed
	w.closed = true
	w.mu.Unlock()

	if !wasClosed {
		w.metrics.TransactionWatchCanceled()
	}
	w.teardown()
}

func (w *Watch) resolve(result *Result) {
	switch {
	case result.Expired():
		w.fail(MessageExpired)
	case result.StatusCode != 0:
		w.log.Info().
			Uint("status_code", result.StatusCode).
			Str("error_message", result.ErrorMessage).
			Msg("transaction failed")
		w.finish(func() {
			w.reportStatusLocked(result.Status)
			w.reporter.OnFailure(w.txID, txerrors.Humanize(result.ErrorMessage))
		}, false)
	default:
		w.finish(func() {
			w.reportStatusLocked(result.Status)
			w.reporter.OnSuccess(w.txID, result)
		}, true)
	}
}

func (w *Watch) fail(message string) {
	w.finish(func() {
		w.reporter.OnFailure(w.txID, message)
	}, false)
}

// finish delivers the terminal report unless the watch was already closed.
func (w *Watch) finish(report func(), succeeded bool) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	report()
	w.mu.Unlock()

	dur := time.Since(w.started)
	if succeeded {
		w.metrics.TransactionSealed(dur)
	} else {
		w.metrics.TransactionFailed(dur)
	}
	w.log.Debug().Bool("succeeded", succeeded).Dur("duration", dur).Msg("watch finished")

	w.teardown()
}
