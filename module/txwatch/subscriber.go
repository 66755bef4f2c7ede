package txwatch

import (
	"context"

	sdk "github.com/onflow/flow-go-sdk"
)

// Subscriber provides the two views of a transaction a Watcher consumes: a stream of
// intermediate statuses and a blocking wait for its terminal result.
type Subscriber interface {
	// Subscribe opens a status subscription for the transaction. The subscription's
	// channel is closed once the transaction reached a final status, the context is
	// canceled or Unsubscribe is called.
	Subscribe(ctx context.Context, txID sdk.Identifier) (Subscription, error)

	// WaitForSealed blocks until the transaction is sealed or expired, or the context ends.
	WaitForSealed(ctx context.Context, txID sdk.Identifier) (*Result, error)
}

type Subscription interface {
	// ID returns a unique identifier of the subscription.
	ID() string

	// Channel returns the channel statuses are published on.
	Channel() <-chan sdk.TransactionStatus

	// Err returns the reason the subscription ended before a final status, if any.
	// It is only meaningful once Channel is closed.
	Err() error

	// Unsubscribe releases the subscription and waits for its resources to be freed.
	// It is safe to call more than once.
	Unsubscribe()
}

// ResultFetcher is the part of the access API needed to poll transaction results.
type ResultFetcher interface {
	GetTransactionResult(ctx context.Context, txID sdk.Identifier) (*sdk.TransactionResult, error)
}
