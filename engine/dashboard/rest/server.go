package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/onflow/dao-dashboard/module"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	ListenAddress string
	Stream        StreamConfig
}

// Server serves the dashboard API until its context is canceled.
type Server struct {
	*component.ComponentManager
	log    zerolog.Logger
	config Config
	server *http.Server

	addrLock sync.RWMutex
	addr     net.Addr
}

// NewServer returns an HTTP server initialized with the dashboard API handlers
func NewServer(api API, config Config, logger zerolog.Logger, restCollector module.RestMetrics) *Server {
	logger = logger.With().Str("component", "rest_server").Logger()
	router := NewRouter(api, logger, restCollector, config.Stream)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodHead},
	})

	s := &Server{
		log:    logger,
		config: config,
		server: &http.Server{
			Addr:         config.ListenAddress,
			Handler:      c.Handler(router),
			WriteTimeout: time.Second * 15,
			ReadTimeout:  time.Second * 15,
			IdleTimeout:  time.Second * 60,
		},
	}

	s.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(s.serve).
		Build()

	return s
}

// serve listens before reporting ready, a listen failure is irrecoverable.
func (s *Server) serve(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	l, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		ctx.Throw(err)
	}

	s.addrLock.Lock()
	s.addr = l.Addr()
	s.addrLock.Unlock()

	s.log.Info().Str("address", l.Addr().String()).Msg("starting REST server")
	ready()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(l)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			ctx.Throw(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("error stopping REST server")
		}
		<-serveErr
	}
}

// Address returns the address the server listens on, nil before it is ready.
func (s *Server) Address() net.Addr {
	s.addrLock.RLock()
	defer s.addrLock.RUnlock()
	return s.addr
}
