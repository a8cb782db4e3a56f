package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// recordRepository reads the per-type backing tables and the tombstone table.
type recordRepository struct {
	*DB
}

func NewRecordRepository(db *DB) RecordRepository {
	return &recordRepository{DB: db}
}

func (r *recordRepository) ListUpdatedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUpdatedSinceQuery(ctx, entityType, since)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListUpdatedSince").
			Str("entity_type", entityType.String()).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListUpdatedSince").
			Str("entity_type", entityType.String()).
			Time("since", since).
			Msg("failed to query changed records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		var (
			rec  models.Record
			data []byte
		)
		if err := rows.Scan(&rec.ID, &data, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			log.Err(err).
				Str("func", "recordRepository.ListUpdatedSince").
				Str("entity_type", entityType.String()).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Data = data
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListUpdatedSince").
			Str("entity_type", entityType.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) ListDeletedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDeletedSinceQuery(ctx, entityType, since)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListDeletedSince").
			Str("entity_type", entityType.String()).
			Msg("failed to query tombstones")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
