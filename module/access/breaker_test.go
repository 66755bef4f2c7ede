package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/dao-dashboard/module/access"
	accessmock "github.com/onflow/dao-dashboard/module/access/mock"
	"github.com/onflow/dao-dashboard/utils/unittest"
)

func breakerConfig(restore time.Duration) access.CircuitBreakerConfig {
	return access.CircuitBreakerConfig{
		Enabled:        true,
		RestoreTimeout: restore,
		MaxFailures:    2,
		MaxRequests:    1,
	}
}

func TestBreakerClient_Trips(t *testing.T) {
	ctx := context.Background()
	restore := 200 * time.Millisecond

	inner := accessmock.NewClient(t)
	c := access.NewBreakerClient(unittest.Logger(), inner, breakerConfig(restore))

	unavailable := status.Error(codes.Unavailable, "access node down")
	inner.On("GetLatestBlockHeader", testifymock.Anything, true).Return(nil, unavailable).Twice()

	for i := 0; i < 2; i++ {
		_, err := c.GetLatestBlockHeader(ctx, true)
		assert.Equal(t, codes.Unavailable, status.Code(err))
	}

	// the breaker is open, the inner client is not called
	_, err := c.GetLatestBlockHeader(ctx, true)
	assert.ErrorIs(t, err, access.ErrCircuitOpen)
	inner.AssertNumberOfCalls(t, "GetLatestBlockHeader", 2)

	header := unittest.BlockHeaderFixture(10)
	inner.On("GetLatestBlockHeader", testifymock.Anything, true).Return(header, nil).Once()

	time.Sleep(restore + 100*time.Millisecond)

	got, err := c.GetLatestBlockHeader(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, header, got)
}

func TestBreakerClient_RequestErrorsDoNotTrip(t *testing.T) {
	ctx := context.Background()

	inner := accessmock.NewClient(t)
	c := access.NewBreakerClient(unittest.Logger(), inner, breakerConfig(time.Minute))

	invalid := status.Error(codes.InvalidArgument, "failed to execute script: Topic is closed")
	inner.On("ExecuteScriptAtLatestBlock", testifymock.Anything, testifymock.Anything, testifymock.Anything).
		Return(nil, invalid).Times(3)

	for i := 0; i < 3; i++ {
		_, err := c.ExecuteScriptAtLatestBlock(ctx, []byte("access(all) fun main() {}"), nil)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.NotErrorIs(t, err, access.ErrCircuitOpen)
	}

	value := cadence.NewUInt64(7)
	inner.On("ExecuteScriptAtLatestBlock", testifymock.Anything, testifymock.Anything, testifymock.Anything).
		Return(value, nil).Once()

	got, err := c.ExecuteScriptAtLatestBlock(ctx, []byte("access(all) fun main(): UInt64 { return 7 }"), nil)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestBreakerClient_Passthrough(t *testing.T) {
	ctx := context.Background()

	inner := accessmock.NewClient(t)
	c := access.NewBreakerClient(unittest.Logger(), inner, breakerConfig(time.Minute))

	addr := unittest.AddressFixture()
	account := unittest.AccountFixture(addr, unittest.PrivateKeyFixture(t), 3)
	inner.On("GetAccountAtLatestBlock", testifymock.Anything, addr).Return(account, nil).Once()

	txID := unittest.IdentifierFixture()
	result := &sdk.TransactionResult{Status: sdk.TransactionStatusSealed}
	inner.On("GetTransactionResult", testifymock.Anything, txID).Return(result, nil).Once()

	tx := sdk.NewTransaction().SetScript([]byte("transaction {}"))
	inner.On("SendTransaction", testifymock.Anything, *tx).Return(nil).Once()
	inner.On("Close").Return(nil).Once()

	gotAccount, err := c.GetAccountAtLatestBlock(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, account, gotAccount)

	gotResult, err := c.GetTransactionResult(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, result, gotResult)

	require.NoError(t, c.SendTransaction(ctx, *tx))
	require.NoError(t, c.Close())
}

func TestNewBreakerClient_Disabled(t *testing.T) {
	inner := accessmock.NewClient(t)
	c := access.NewBreakerClient(unittest.Logger(), inner, access.CircuitBreakerConfig{})
	assert.Same(t, inner, c)
}
