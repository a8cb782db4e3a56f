package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type syncQueueRepository struct {
	*DB
	now func() time.Time
}

func NewSyncQueueRepository(db *DB) SyncQueueRepository {
	return &syncQueueRepository{DB: db, now: time.Now}
}

// EnqueueItems inserts the whole batch in one statement. An empty batch is a no-op.
func (r *syncQueueRepository) EnqueueItems(ctx context.Context, items []models.SyncQueueItem) error {
	if len(items) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildEnqueueQuery(ctx, items)
	if err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.EnqueueItems").
			Msg("failed to create query")
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.EnqueueItems").
			Str("sync_log_id", items[0].SyncLogID).
			Int("items", len(items)).
			Msg("failed to enqueue sync items")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *syncQueueRepository) UpdateQueueStatus(ctx context.Context, itemID string, status models.QueueStatus, errorMessage string) error {
	_, err := r.DB.ExecContext(ctx, updateQueueStatus, string(status), errorMessage, r.now().UTC(), itemID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncQueueRepository.UpdateQueueStatus").
			Str("queue_item_id", itemID).
			Str("status", string(status)).
			Msg("failed to update sync queue item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// CountQueueByStatus counts pending, syncing and failed rows. A blank
// deviceID counts across all devices of the user.
func (r *syncQueueRepository) CountQueueByStatus(ctx context.Context, userID int64, deviceID string) (models.QueueCounts, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountQueueQuery(ctx, userID, deviceID)
	if err != nil {
		return models.QueueCounts{}, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.CountQueueByStatus").
			Int64("user_id", userID).
			Msg("failed to count sync queue")
		return models.QueueCounts{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var counts models.QueueCounts
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return models.QueueCounts{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		switch models.QueueStatus(status) {
		case models.QueueStatusPending:
			counts.Pending = n
		case models.QueueStatusSyncing:
			counts.Syncing = n
		case models.QueueStatusFailed:
			counts.Failed = n
		}
	}

	if err := rows.Err(); err != nil {
		return models.QueueCounts{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

// DeleteSyncedBefore removes synced rows last touched before cutoff and
// returns how many were removed.
func (r *syncQueueRepository) DeleteSyncedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteSyncedQueueItems, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.DeleteSyncedBefore").
			Time("cutoff", cutoff).
			Msg("failed to delete synced queue items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}
