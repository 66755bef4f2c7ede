// Package access provides the parts of the Flow access API used by the dashboard.
package access

import (
	"context"
	"fmt"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	client "github.com/onflow/flow-go-sdk/access/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client is the subset of the Flow access API the dashboard depends on.
type Client interface {
	ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, arguments []cadence.Value) (cadence.Value, error)
	SendTransaction(ctx context.Context, tx sdk.Transaction) error
	GetTransactionResult(ctx context.Context, txID sdk.Identifier) (*sdk.TransactionResult, error)
	GetLatestBlockHeader(ctx context.Context, isSealed bool) (*sdk.BlockHeader, error)
	GetAccountAtLatestBlock(ctx context.Context, address sdk.Address) (*sdk.Account, error)
	Close() error
}

var _ Client = (*client.Client)(nil)

// NewClient dials the access node at the given address. The interceptors run on every
// unary call, in order.
func NewClient(address string, maxMsgSize int, interceptors ...grpc.UnaryClientInterceptor) (Client, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if len(interceptors) > 0 {
		opts = append(opts, grpc.WithChainUnaryInterceptor(interceptors...))
	}
	if maxMsgSize > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxMsgSize)))
	}

	c, err := client.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create access client for %s: %w", address, err)
	}
	return c, nil
}
