package workers

import (
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewServerWorkers schedules the sync queue cleanup.
func NewServerWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	cleanup, err := newCleanupWorker(services.SyncService, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating cleanup worker: %w", err)
	}

	return &Workers{workers: []Worker{cleanup}}, nil
}

// NewClientWorkers runs the device sync every cfg.SyncInterval.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		newSyncWorker(services.SyncService, cfg.SyncInterval, logger),
	}}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop halts the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
