package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// Storages groups the server repositories over one PostgreSQL pool.
type Storages struct {
	EntityVersionRepository EntityVersionRepository
	RecordRepository        RecordRepository
	ChangeStorage           ChangeStorage
	ConflictRepository      ConflictRepository
	SyncLogRepository       SyncLogRepository
	SyncQueueRepository     SyncQueueRepository
	DeviceRepository        DeviceRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// every repository to the pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db), nil
}

func newStorages(db *DB) *Storages {
	return &Storages{
		EntityVersionRepository: NewEntityVersionRepository(db),
		RecordRepository:        NewRecordRepository(db),
		ChangeStorage:           NewChangeStorage(db),
		ConflictRepository:      NewConflictRepository(db),
		SyncLogRepository:       NewSyncLogRepository(db),
		SyncQueueRepository:     NewSyncQueueRepository(db),
		DeviceRepository:        NewDeviceRepository(db),
		db:                      db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
