package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type syncStateRepository struct {
	*DB
}

func NewSyncStateRepository(db *DB) SyncStateRepository {
	return &syncStateRepository{DB: db}
}

// GetSyncState returns a zero state for a device that never synced.
func (r *syncStateRepository) GetSyncState(ctx context.Context) (models.SyncState, error) {
	var lastPullAt, lastSyncAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, selectSyncState).Scan(&lastPullAt, &lastSyncAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.GetSyncState").
			Msg("failed to read sync state")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var state models.SyncState
	if lastPullAt.Valid {
		state.LastPullAt = &lastPullAt.Time
	}
	if lastSyncAt.Valid {
		state.LastSyncAt = &lastSyncAt.Time
	}

	return state, nil
}

func (r *syncStateRepository) SaveSyncState(ctx context.Context, state models.SyncState) error {
	_, err := r.DB.ExecContext(ctx, upsertSyncState, nullTime(state.LastPullAt), nullTime(state.LastSyncAt))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.SaveSyncState").
			Msg("failed to save sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
