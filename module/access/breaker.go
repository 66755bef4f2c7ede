package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrCircuitOpen is returned without contacting the access node while the circuit breaker is open.
var ErrCircuitOpen = errors.New("access node circuit breaker is open")

// CircuitBreakerConfig is a configuration for the circuit breaker guarding the access node.
type CircuitBreakerConfig struct {
	// Enabled specifies whether the circuit breaker is enabled.
	Enabled bool
	// RestoreTimeout specifies the duration after which the circuit breaker will restore the connection to the client
	// after closing it due to failures.
	RestoreTimeout time.Duration
	// MaxFailures specifies the maximum number of failed calls to the client that will cause the circuit breaker
	// to close the connection.
	MaxFailures uint32
	// MaxRequests specifies the maximum number of requests to check if connection restored after timeout.
	MaxRequests uint32
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:        true,
		RestoreTimeout: 60 * time.Second,
		MaxFailures:    5,
		MaxRequests:    1,
	}
}

// BreakerClient guards every call to the wrapped client with a circuit breaker.
type BreakerClient struct {
	client  Client
	breaker *gobreaker.CircuitBreaker
}

var _ Client = (*BreakerClient)(nil)

// NewBreakerClient wraps the client. When the breaker is disabled the client is returned as is.
func NewBreakerClient(log zerolog.Logger, c Client, config CircuitBreakerConfig) Client {
	if !config.Enabled {
		return c
	}

	log = log.With().Str("component", "access_circuit_breaker").Logger()
	return &BreakerClient{
		client: c,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "access",
			Timeout:     config.RestoreTimeout,
			MaxRequests: config.MaxRequests,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= config.MaxFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn().
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			},
			IsSuccessful: isSuccessful,
		}),
	}
}

// isSuccessful treats errors caused by the request rather than by the access node as successes.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	switch status.Code(err) {
	case codes.Canceled, codes.InvalidArgument, codes.NotFound, codes.Unimplemented, codes.OutOfRange:
		return true
	}
	return false
}

func (b *BreakerClient) execute(call func() (interface{}, error)) (interface{}, error) {
	res, err := b.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return res, err
}

func (b *BreakerClient) ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, arguments []cadence.Value) (cadence.Value, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.client.ExecuteScriptAtLatestBlock(ctx, script, arguments)
	})
	if err != nil {
		return nil, err
	}
	v, _ := res.(cadence.Value)
	return v, nil
}

func (b *BreakerClient) SendTransaction(ctx context.Context, tx sdk.Transaction) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, b.client.SendTransaction(ctx, tx)
	})
	return err
}

func (b *BreakerClient) GetTransactionResult(ctx context.Context, txID sdk.Identifier) (*sdk.TransactionResult, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.client.GetTransactionResult(ctx, txID)
	})
	if err != nil {
		return nil, err
	}
	v, _ := res.(*sdk.TransactionResult)
	return v, nil
}

func (b *BreakerClient) GetLatestBlockHeader(ctx context.Context, isSealed bool) (*sdk.BlockHeader, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.client.GetLatestBlockHeader(ctx, isSealed)
	})
	if err != nil {
		return nil, err
	}
	v, _ := res.(*sdk.BlockHeader)
	return v, nil
}

func (b *BreakerClient) GetAccountAtLatestBlock(ctx context.Context, address sdk.Address) (*sdk.Account, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.client.GetAccountAtLatestBlock(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	v, _ := res.(*sdk.Account)
	return v, nil
}

func (b *BreakerClient) Close() error {
	return b.client.Close()
}
