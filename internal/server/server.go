package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/handler"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer starts every created server and blocks until SIGTERM, SIGINT or
// SIGQUIT, then shuts them down.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown() {
	// gRPC first, health flips to NOT_SERVING while HTTP drains
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}

func (s *server) run(ctx context.Context) {
	done := make(chan struct{})

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(done)
	}()

	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching gRPC server")
		go s.gRPCServer.RunServer()
	}

	<-done
	s.logger.Info().Msg("server Shutdown gracefully")
}
