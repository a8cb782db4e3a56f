package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type localRecordRepository struct {
	*DB
}

func NewLocalRecordRepository(db *DB) LocalRecordRepository {
	return &localRecordRepository{DB: db}
}

// SaveRecord upserts the device copy of a record.
func (r *localRecordRepository) SaveRecord(ctx context.Context, rec models.LocalRecord) error {
	_, err := r.DB.ExecContext(ctx, upsertLocalRecord,
		rec.EntityType.String(),
		rec.EntityID,
		nullableJSON(rec.Data),
		rec.Version,
		rec.Deleted,
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRecordRepository.SaveRecord").
			Str("entity", rec.Key().String()).
			Msg("failed to save local record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetRecord returns [ErrRecordNotFound] for records the device never stored.
func (r *localRecordRepository) GetRecord(ctx context.Context, key models.EntityKey) (models.LocalRecord, error) {
	var (
		rec        models.LocalRecord
		entityType string
		data       []byte
	)
	err := r.DB.QueryRowContext(ctx, selectLocalRecord, key.EntityType.String(), key.EntityID).
		Scan(&entityType, &rec.EntityID, &data, &rec.Version, &rec.Deleted, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRecordRepository.GetRecord").
			Str("entity", key.String()).
			Msg("failed to read local record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rec.EntityType = models.EntityType(entityType)
	rec.Data = data

	return rec, nil
}

// SetVersion records the server version acknowledged for a local record.
// Unknown records are ignored.
func (r *localRecordRepository) SetVersion(ctx context.Context, key models.EntityKey, version int64) error {
	_, err := r.DB.ExecContext(ctx, setLocalRecordVersion, version, key.EntityType.String(), key.EntityID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRecordRepository.SetVersion").
			Str("entity", key.String()).
			Int64("version", version).
			Msg("failed to set local record version")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
