package http

import (
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// Request headers read by the sync API.
const (
	headerDeviceID   = "X-Device-ID"
	headerAppVersion = "X-App-Version"
	headerHash       = "HashSHA256"
	headerTraceID    = "X-Trace-ID"
)

type Handler struct {
	services *service.Services

	// hasher verifies body signatures; nil disables the check.
	hasher *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	if cfg.HashKey != "" {
		h.hasher = utils.NewHasher(cfg.HashKey)
	}

	logger.Info().Bool("body_signature", h.hasher != nil).Msg("http handler created")
	return h
}
