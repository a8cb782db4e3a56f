// Package grpc exposes the sync server over gRPC. Only the standard
// grpc.health.v1 service is served: load balancers and orchestrators poll it
// while device traffic stays on the HTTP API.
package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// SyncServiceName is the health service name reporting the sync API.
const SyncServiceName = "fieldsync.v1.Sync"

// traceIDKey is the metadata key mirroring the HTTP X-Trace-ID header.
const traceIDKey = "x-trace-id"

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server
	logger *logger.Logger
}

// NewHandler returns a handler whose health server already reports the sync
// service as SERVING.
func NewHandler(logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus(SyncServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Shutdown reports every service as NOT_SERVING so health checks drain traffic
// before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogging tags the call with a trace id taken from the incoming
// metadata, or a fresh one, and writes one access line per call.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := uuid.NewString()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 && values[0] != "" {
			traceID = values[0]
		}
	}

	ctx, log := h.logger.WithTraceID(ctx, traceID)

	start := time.Now()
	resp, err := handler(ctx, req)

	log.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
