package server

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-field-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-field-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogging))
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		server:  s,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	if err := g.serve(); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server stopped")
	}
}

func (g *grpcServer) serve() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", g.address, err)
	}

	g.logger.Info().Str("address", g.address).Msg("gRPC server listening")
	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
