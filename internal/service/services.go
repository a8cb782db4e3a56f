package service

import (
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	syncService := NewSyncValidationService(cfg.App.MaxPushBatch).
		Wrap(NewSyncService(storages, utils.NewUUIDGenerator(), logger))

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		SyncService:    syncService,
		AppInfoService: appInfoService,
	}, nil
}
