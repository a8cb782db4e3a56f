package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type syncLogRepository struct {
	*DB
}

func NewSyncLogRepository(db *DB) SyncLogRepository {
	return &syncLogRepository{DB: db}
}

// OpenSyncLog inserts a new entry in status syncing.
func (r *syncLogRepository) OpenSyncLog(ctx context.Context, entry models.SyncLogEntry) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, insertSyncLog,
		entry.ID,
		entry.UserID,
		entry.DeviceID,
		string(entry.SyncType),
		entry.ItemsAttempted,
		string(models.SyncStatusSyncing),
		entry.StartedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.OpenSyncLog").
			Str("sync_log_id", entry.ID).
			Msg("failed to insert sync log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// CloseSyncLog finalizes an entry that is still syncing. Closing an entry
// twice is a no-op, so completed entries stay immutable.
func (r *syncLogRepository) CloseSyncLog(ctx context.Context, entry models.SyncLogEntry) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, closeSyncLog,
		entry.ItemsAttempted,
		entry.ItemsSynced,
		entry.ItemsFailed,
		entry.Conflicts,
		entry.DurationMs,
		string(entry.Status),
		nullTime(entry.CompletedAt),
		entry.ErrorMessage,
		entry.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.CloseSyncLog").
			Str("sync_log_id", entry.ID).
			Msg("failed to close sync log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Warn().
			Str("func", "syncLogRepository.CloseSyncLog").
			Str("sync_log_id", entry.ID).
			Msg("sync log already completed or missing")
	}

	return nil
}

// GetLastSyncLog returns nil without error when the user has no sync history.
func (r *syncLogRepository) GetLastSyncLog(ctx context.Context, userID int64, deviceID string) (*models.SyncLogEntry, error) {
	entries, err := r.ListSyncLogs(ctx, userID, deviceID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

// ListSyncLogs returns up to limit entries, newest first.
func (r *syncLogRepository) ListSyncLogs(ctx context.Context, userID int64, deviceID string, limit int) ([]models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSyncLogsQuery(ctx, userID, deviceID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.ListSyncLogs").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.ListSyncLogs").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to query sync logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.SyncLogEntry, 0, limit)
	for rows.Next() {
		var (
			e                models.SyncLogEntry
			syncType, status string
			completedAt      sql.NullTime
			errorMessage     sql.NullString
		)
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.DeviceID,
			&syncType,
			&e.ItemsAttempted,
			&e.ItemsSynced,
			&e.ItemsFailed,
			&e.Conflicts,
			&e.DurationMs,
			&status,
			&e.StartedAt,
			&completedAt,
			&errorMessage,
		)
		if err != nil {
			log.Err(err).
				Str("func", "syncLogRepository.ListSyncLogs").
				Int64("user_id", userID).
				Msg("failed to scan sync log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		e.SyncType = models.SyncType(syncType)
		e.Status = models.SyncStatus(status)
		e.ErrorMessage = errorMessage.String
		if completedAt.Valid {
			at := completedAt.Time
			e.CompletedAt = &at
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.ListSyncLogs").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
