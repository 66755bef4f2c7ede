package txwatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/onflow/dao-dashboard/utils/logging"
)

var errNotFinal = errors.New("transaction is not final yet")

// PollingSubscriber implements Subscriber by polling the access API for transaction results.
type PollingSubscriber struct {
	log      zerolog.Logger
	fetcher  ResultFetcher
	interval time.Duration
}

var _ Subscriber = (*PollingSubscriber)(nil)

func NewPollingSubscriber(log zerolog.Logger, fetcher ResultFetcher, interval time.Duration) *PollingSubscriber {
	return &PollingSubscriber{
		log:      log.With().Str("component", "polling_subscriber").Logger(),
		fetcher:  fetcher,
		interval: interval,
	}
}

// Subscribe starts polling the transaction result. Only status changes are published.
func (p *PollingSubscriber) Subscribe(ctx context.Context, txID sdk.Identifier) (Subscription, error) {
	if p.interval <= 0 {
		return nil, fmt.Errorf("invalid poll interval %s", p.interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &pollingSubscription{
		id:     uuid.New().String(),
		ch:     make(chan sdk.TransactionStatus),
		cancel: cancel,
	}

	log := p.log.With().
		Str("subscription_id", sub.id).
		Hex("tx_id", logging.ID(txID)).
		Logger()

	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()
		defer close(sub.ch)
		sub.setErr(p.poll(ctx, log, txID, sub.ch))
	}()

	return sub, nil
}

// poll publishes status changes until the transaction reached a final status.
// It returns nil once a final status was published.
func (p *PollingSubscriber) poll(ctx context.Context, log zerolog.Logger, txID sdk.Identifier, ch chan<- sdk.TransactionStatus) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	last := sdk.TransactionStatusUnknown
	for {
		result, err := p.fetcher.GetTransactionResult(ctx, txID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// transient failures are retried on the next tick
			log.Debug().Err(err).Msg("could not get transaction result")
		} else if result.Status != last {
			last = result.Status
			select {
			case ch <- last:
			case <-ctx.Done():
				return ctx.Err()
			}
			if IsFinal(last) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForSealed polls the transaction result at a constant interval until it is sealed or expired.
func (p *PollingSubscriber) WaitForSealed(ctx context.Context, txID sdk.Identifier) (*Result, error) {
	constRetry := retry.NewConstant(p.interval)

	var result *Result
	err := retry.Do(ctx, constRetry, func(ctx context.Context) error {
		res, err := p.fetcher.GetTransactionResult(ctx, txID)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("could not get transaction result: %w", err))
		}
		if !IsFinal(res.Status) {
			return retry.RetryableError(errNotFinal)
		}

		result = NewResult(txID, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type pollingSubscription struct {
	id     string
	ch     chan sdk.TransactionStatus
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu  sync.Mutex
	err error
}

func (s *pollingSubscription) ID() string {
	return s.id
}

func (s *pollingSubscription) Channel() <-chan sdk.TransactionStatus {
	return s.ch
}

func (s *pollingSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *pollingSubscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *pollingSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}
