package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	mockapi "github.com/onflow/dao-dashboard/engine/dashboard/rest/mock"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/metrics"
	"github.com/onflow/dao-dashboard/utils/unittest"
)

type streamFixture struct {
	api      *mockapi.API
	server   *httptest.Server
	txID     sdk.Identifier
	events   chan dashboard.Event
	releases *atomic.Int32
	released chan struct{}
}

func newStreamFixture(t *testing.T) *streamFixture {
	f := &streamFixture{
		api:      mockapi.NewAPI(t),
		txID:     unittest.IdentifierFixture(),
		events:   make(chan dashboard.Event, 8),
		releases: atomic.NewInt32(0),
		released: make(chan struct{}),
	}

	config := StreamConfig{
		MaxMessagesPerSecond: 1000,
		PongWait:             time.Second,
		WriteWait:            time.Second,
	}
	router := NewRouter(f.api, unittest.Logger(), metrics.NewNoopCollector(), config)
	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *streamFixture) expectListen() {
	stop := func() {
		if f.releases.Inc() == 1 {
			close(f.released)
		}
	}
	f.api.On("Listen", f.txID).Return((<-chan dashboard.Event)(f.events), stop, nil).Once()
}

func (f *streamFixture) dial(t *testing.T, id string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/v1/transactions/" + id + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return conn
}

func TestStream_Success(t *testing.T) {
	f := newStreamFixture(t)
	f.expectListen()

	f.events <- dashboard.Event{TransactionID: f.txID, Kind: dashboard.EventStatus, Status: sdk.TransactionStatusPending, Message: "Transaction pending"}
	f.events <- dashboard.Event{TransactionID: f.txID, Kind: dashboard.EventStatus, Status: sdk.TransactionStatusSealed, Message: "Transaction sealed"}
	f.events <- dashboard.Event{TransactionID: f.txID, Kind: dashboard.EventSuccess, Status: sdk.TransactionStatusSealed, Message: dashboard.MessageSealed}
	close(f.events)

	conn := f.dial(t, f.txID.String())
	defer conn.Close()

	var received []TransactionEvent
	var closeErr error
	for {
		var event TransactionEvent
		if err := conn.ReadJSON(&event); err != nil {
			closeErr = err
			break
		}
		received = append(received, event)
	}

	require.Len(t, received, 3)
	assert.Equal(t, TransactionEvent{
		TransactionID: f.txID.String(),
		Kind:          "status",
		Status:        "PENDING",
		Message:       "Transaction pending",
	}, received[0])
	assert.Equal(t, TransactionEvent{
		TransactionID: f.txID.String(),
		Kind:          "success",
		Status:        "SEALED",
		Message:       dashboard.MessageSealed,
		Final:         true,
	}, received[2])
	assert.True(t, websocket.IsCloseError(closeErr, websocket.CloseNormalClosure), "unexpected close: %v", closeErr)

	unittest.RequireCloseBefore(t, f.released, time.Second, "listener not released")
	assert.Equal(t, int32(1), f.releases.Load())
}

func TestStream_ClientLeaves(t *testing.T) {
	f := newStreamFixture(t)
	f.expectListen()

	f.events <- dashboard.Event{TransactionID: f.txID, Kind: dashboard.EventStatus, Status: sdk.TransactionStatusPending, Message: "Transaction pending"}

	conn := f.dial(t, "0x"+f.txID.String())
	var event TransactionEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "PENDING", event.Status)

	require.NoError(t, conn.Close())

	// closing the socket only releases the listener of this stream
	unittest.RequireCloseBefore(t, f.released, time.Second, "listener not released")
	assert.Equal(t, int32(1), f.releases.Load())
}

func TestStream_InvalidID(t *testing.T) {
	f := newStreamFixture(t)

	resp, err := http.Get(f.server.URL + "/v1/transactions/not-an-id/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStream_ListenError(t *testing.T) {
	f := newStreamFixture(t)
	f.api.On("Listen", f.txID).Return(nil, nil, component.ErrComponentShutdown).Once()

	resp, err := http.Get(f.server.URL + "/v1/transactions/" + f.txID.String() + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestParseTransactionID(t *testing.T) {
	txID := unittest.IdentifierFixture()

	parsed, err := parseTransactionID(txID.String())
	require.NoError(t, err)
	assert.Equal(t, txID, parsed)

	parsed, err = parseTransactionID("0x" + strings.ToUpper(txID.String()))
	require.NoError(t, err)
	assert.Equal(t, txID, parsed)

	for _, invalid := range []string{"", "0x", "abc", strings.Repeat("z", 64), txID.String() + "00"} {
		_, err := parseTransactionID(invalid)
		var statusErr StatusError
		require.True(t, errors.As(err, &statusErr), invalid)
		assert.Equal(t, http.StatusBadRequest, statusErr.Status())
	}
}
