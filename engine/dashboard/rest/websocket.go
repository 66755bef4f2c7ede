package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/utils/logging"
)

const (
	// PongWait specifies the maximum time to wait for a pong response message from the peer
	// after sending a ping
	PongWait = 10 * time.Second

	// PingPeriod specifies the interval at which ping messages are sent to the client.
	// This value must be less than pongWait.
	PingPeriod = (PongWait * 9) / 10

	// WriteWait specifies a timeout for the write operation. If the write
	// isn't completed within this duration, it fails.
	WriteWait = 10 * time.Second

	DefaultMaxMessagesPerSecond = 10
)

var errStreamFinished = errors.New("transaction stream finished")

type StreamConfig struct {
	// MaxMessagesPerSecond limits the events written to a single stream, 0 disables the limit.
	MaxMessagesPerSecond float64
	PingPeriod           time.Duration
	PongWait             time.Duration
	WriteWait            time.Duration
}

func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		MaxMessagesPerSecond: DefaultMaxMessagesPerSecond,
		PingPeriod:           PingPeriod,
		PongWait:             PongWait,
		WriteWait:            WriteWait,
	}
}

// StreamHandler upgrades requests to a WebSocket streaming the events of one transaction.
type StreamHandler struct {
	*Handler
	config   StreamConfig
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger zerolog.Logger, api API, config StreamConfig) *StreamHandler {
	defaults := DefaultStreamConfig()
	if config.PongWait <= 0 {
		config.PongWait = defaults.PongWait
	}
	if config.PingPeriod <= 0 || config.PingPeriod >= config.PongWait {
		config.PingPeriod = (config.PongWait * 9) / 10
	}
	if config.WriteWait <= 0 {
		config.WriteWait = defaults.WriteWait
	}

	return &StreamHandler{
		Handler: NewHandler(logger, api, nil, http.StatusOK),
		config:  config,
		upgrader: websocket.Upgrader{
			// origins are checked by the CORS layer
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With().Str("request_url", r.URL.String()).Logger()

	txID, err := parseTransactionID(mux.Vars(r)["id"])
	if err != nil {
		h.errorHandler(w, err, logger)
		return
	}

	events, stop, err := h.api.Listen(txID)
	if err != nil {
		if errors.Is(err, component.ErrComponentShutdown) {
			err = NewRestError(http.StatusServiceUnavailable, "dashboard is shutting down", err)
		}
		h.errorHandler(w, err, logger)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already replied to the client
		logger.Debug().Err(err).Msg("could not upgrade to websocket")
		stop()
		return
	}

	c := newStreamController(logger, h.config, conn, txID, events, stop)
	c.run(r.Context())
}

// streamController writes the events of a transaction to a WebSocket until the terminal
// event, or until the client leaves. Its listener is released when the stream ends.
type streamController struct {
	log     zerolog.Logger
	config  StreamConfig
	conn    *websocket.Conn
	limiter *rate.Limiter

	events <-chan dashboard.Event
	stop   func()
}

func newStreamController(
	log zerolog.Logger,
	config StreamConfig,
	conn *websocket.Conn,
	txID sdk.Identifier,
	events <-chan dashboard.Event,
	stop func(),
) *streamController {
	var limiter *rate.Limiter
	if config.MaxMessagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.MaxMessagesPerSecond), 1)
	}

	return &streamController{
		log:     log.With().Hex("tx_id", logging.ID(txID)).Logger(),
		config:  config,
		conn:    conn,
		limiter: limiter,
		events:  events,
		stop:    stop,
	}
}

func (c *streamController) run(ctx context.Context) {
	defer c.stop()

	if err := c.configureKeepalive(); err != nil {
		c.log.Error().Err(err).Msg("error configuring keepalive connection")
		_ = c.conn.Close()
		return
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.keepalive(gCtx)
	})
	g.Go(func() error {
		return c.writeEvents(gCtx)
	})
	g.Go(func() error {
		return c.readMessages()
	})
	g.Go(func() error {
		// unblocks the reader once any of the routines ended
		<-gCtx.Done()
		_ = c.conn.Close()
		return nil
	})

	err := g.Wait()
	switch {
	case errors.Is(err, errStreamFinished), errors.Is(err, context.Canceled):
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		c.log.Debug().Msg("client closed the stream")
	default:
		c.log.Debug().Err(err).Msg("stream ended")
	}
}

// configureKeepalive sets up the read deadline, which is extended on every pong.
func (c *streamController) configureKeepalive() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait)); err != nil {
		return fmt.Errorf("failed to set the initial read deadline: %w", err)
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	})
	return nil
}

// keepalive sends a ping to the client every ping period.
func (c *streamController) keepalive(ctx context.Context) error {
	pingTicker := time.NewTicker(c.config.PingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pingTicker.C:
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.config.WriteWait))
			if err != nil {
				return fmt.Errorf("error sending ping: %w", err)
			}
		}
	}
}

// writeEvents forwards the events to the client and closes the stream after the last one.
func (c *streamController) writeEvents(ctx context.Context) error {
	finished := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-c.events:
			if !ok {
				return c.closeStream(finished)
			}

			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			var message TransactionEvent
			message.Build(event)

			if err := c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait)); err != nil {
				return fmt.Errorf("failed to set the write deadline: %w", err)
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return fmt.Errorf("failed to write event: %w", err)
			}
			finished = event.Final()
		}
	}
}

func (c *streamController) closeStream(finished bool) error {
	code, text := websocket.CloseGoingAway, "tracking stopped"
	if finished {
		code, text = websocket.CloseNormalClosure, "transaction finished"
	}

	err := c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(c.config.WriteWait))
	if err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return errStreamFinished
}

// readMessages discards client messages. It returns once the connection is closed or
// the client stopped answering pings.
func (c *streamController) readMessages() error {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return err
		}
	}
}
