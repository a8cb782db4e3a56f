package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// ClientStorages groups the device repositories over the local SQLite file.
type ClientStorages struct {
	OutboxRepository      OutboxRepository
	LocalRecordRepository LocalRecordRepository
	SyncStateRepository   SyncStateRepository

	db *DB
}

// NewClientStorages opens the SQLite file named by cfg.DSN, creating it if
// needed, applies the device migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db), nil
}

func newClientStorages(db *DB) *ClientStorages {
	return &ClientStorages{
		OutboxRepository:      NewOutboxRepository(db),
		LocalRecordRepository: NewLocalRecordRepository(db),
		SyncStateRepository:   NewSyncStateRepository(db),
		db:                    db,
	}
}

// Close releases the database file.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
