package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/handler"
	"github.com/MKhiriev/secure-vault/internal/logger"
)

// transport is one listening server managed by [server].
type transport interface {
	// serve blocks until the transport stops. A graceful stop returns nil.
	serve() error
	Shutdown()
}

// server runs every configured transport and stops them together.
type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handlers == nil {
		return nil, errNilHandlers
	}

	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		s.gRPCServer = grpcSrv
	}

	if len(s.transports()) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) transports() []transport {
	var ts []transport
	if s.httpServer != nil {
		ts = append(ts, s.httpServer)
	}
	if s.gRPCServer != nil {
		ts = append(ts, s.gRPCServer)
	}
	return ts
}

// RunServer blocks until a termination signal arrives or a transport fails.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("error running server")
	}
}

// Shutdown stops every transport gracefully.
func (s *server) Shutdown() {
	for _, t := range s.transports() {
		t.Shutdown()
	}
}

// run serves every transport until ctx is done or one of them fails, and then
// stops all of them. The failure, if any, is returned.
func (s *server) run(ctx context.Context) error {
	ts := s.transports()
	if len(ts) == 0 {
		return errNoServersAreCreated
	}

	stopped := make(chan error, len(ts))
	for _, t := range ts {
		go func() { stopped <- t.serve() }()
	}

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err = <-stopped:
		s.logger.Warn().Err(err).Msg("a transport stopped, shutting down the rest")
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}
