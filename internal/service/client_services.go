package service

import (
	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientApp, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		SyncService: NewClientSyncService(storages, serverAdapter, cfg, logger),
	}
}
