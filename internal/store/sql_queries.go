package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	selectEntityVersion = `SELECT entity_type, entity_id, version, content_hash, updated_by, updated_at
		FROM entity_versions
		WHERE entity_type = $1 AND entity_id = $2;`

	selectVersion = `SELECT version FROM entity_versions
		WHERE entity_type = $1 AND entity_id = $2;`

	lockEntityVersion = `SELECT version FROM entity_versions
		WHERE entity_type = $1 AND entity_id = $2
		FOR UPDATE;`

	advanceEntityVersion = `UPDATE entity_versions
		SET version = $1, content_hash = $2, updated_by = $3, updated_at = $4
		WHERE entity_type = $5 AND entity_id = $6 AND version = $7;`

	insertEntityVersion = `INSERT INTO entity_versions (entity_type, entity_id, version, content_hash, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity_type, entity_id) DO NOTHING;`

	upsertEntityVersion = `INSERT INTO entity_versions (entity_type, entity_id, version, content_hash, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity_type, entity_id) DO UPDATE
		SET version = EXCLUDED.version, content_hash = EXCLUDED.content_hash,
			updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at;`

	upsertTombstone = `INSERT INTO sync_tombstones (entity_type, entity_id, deleted_by, deleted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity_type, entity_id) DO UPDATE
		SET deleted_by = EXCLUDED.deleted_by, deleted_at = EXCLUDED.deleted_at;`

	removeTombstone = `DELETE FROM sync_tombstones WHERE entity_type = $1 AND entity_id = $2;`

	insertConflict = `INSERT INTO conflicts (id, entity_type, entity_id, operation, local_version, server_version,
			local_data, server_data, user_id, device_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	selectConflictColumns = `SELECT id, entity_type, entity_id, operation, local_version, server_version,
			local_data, server_data, user_id, device_id, resolved, resolution, resolved_at, created_at
		FROM conflicts`

	selectConflictByID = selectConflictColumns + ` WHERE id = $1;`

	lockConflict = `SELECT entity_type, entity_id, local_version, server_version, user_id, resolved
		FROM conflicts
		WHERE id = $1
		FOR UPDATE;`

	markConflictResolved = `UPDATE conflicts
		SET resolved = TRUE, resolution = $1, resolved_at = $2
		WHERE id = $3 AND resolved = FALSE;`

	countOpenConflicts = `SELECT COUNT(*) FROM conflicts WHERE user_id = $1 AND resolved = FALSE;`

	insertSyncLog = `INSERT INTO sync_logs (id, user_id, device_id, sync_type, items_attempted, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`

	closeSyncLog = `UPDATE sync_logs
		SET items_attempted = $1, items_synced = $2, items_failed = $3, conflicts = $4,
			duration_ms = $5, status = $6, completed_at = $7, error_message = $8
		WHERE id = $9 AND status = 'syncing';`

	updateQueueStatus = `UPDATE sync_queue
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4;`

	deleteSyncedQueueItems = `DELETE FROM sync_queue WHERE status = 'synced' AND updated_at < $1;`

	upsertDevice = `INSERT INTO devices (user_id, device_id, app_version, last_sync_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, device_id) DO UPDATE
		SET app_version = COALESCE(NULLIF(EXCLUDED.app_version, ''), devices.app_version),
			last_sync_at = EXCLUDED.last_sync_at;`

	selectDevice = `SELECT user_id, device_id, app_version, last_sync_at
		FROM devices
		WHERE user_id = $1 AND device_id = $2;`
)

// tableFor returns the backing table of t.
func tableFor(t models.EntityType) (string, error) {
	table := t.Table()
	if table == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	return table, nil
}

// Record statements are rendered per table. Table names come from the closed
// entity type enum, never from request data.

func selectRecordDataQuery(table string) string {
	return fmt.Sprintf(`SELECT data FROM %s WHERE id = $1;`, table)
}

func insertRecordQuery(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (id, data, created_at, updated_at) VALUES ($1, $2, $3, $3);`, table)
}

func updateRecordQuery(table string) string {
	return fmt.Sprintf(`UPDATE %s SET data = $1, updated_at = $2 WHERE id = $3;`, table)
}

func deleteRecordQuery(table string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1;`, table)
}

func upsertRecordQuery(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (id, data, created_at, updated_at) VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;`, table)
}

// buildListUpdatedSinceQuery selects records of t changed strictly after since,
// joined with their current version, oldest change first.
func buildListUpdatedSinceQuery(ctx context.Context, t models.EntityType, since time.Time) (string, []any, error) {
	table, err := tableFor(t)
	if err != nil {
		return "", nil, err
	}

	query, args, err := psql.
		Select("r.id", "r.data", "COALESCE(ev.version, 0)", "r.created_at", "r.updated_at").
		From(table+" r").
		LeftJoin("entity_versions ev ON ev.entity_type = ? AND ev.entity_id = r.id", t.String()).
		Where(sq.Gt{"r.updated_at": since}).
		OrderBy("r.updated_at ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListDeletedSinceQuery selects ids of records of t deleted strictly after since.
func buildListDeletedSinceQuery(ctx context.Context, t models.EntityType, since time.Time) (string, []any, error) {
	query, args, err := psql.
		Select("entity_id").
		From("sync_tombstones").
		Where(sq.Eq{"entity_type": t.String()}).
		Where(sq.Gt{"deleted_at": since}).
		OrderBy("deleted_at ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListOpenConflictsQuery selects unresolved conflicts of a user, newest first.
func buildListOpenConflictsQuery(ctx context.Context, userID int64) (string, []any, error) {
	query, args, err := psql.
		Select("id", "entity_type", "entity_id", "operation", "local_version", "server_version",
			"local_data", "server_data", "user_id", "device_id", "resolved", "resolution", "resolved_at", "created_at").
		From("conflicts").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"resolved": false}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

var syncLogColumns = []string{
	"id", "user_id", "device_id", "sync_type", "items_attempted", "items_synced", "items_failed",
	"conflicts", "duration_ms", "status", "started_at", "completed_at", "error_message",
}

// buildListSyncLogsQuery selects the newest sync log entries of a user,
// optionally narrowed to one device.
func buildListSyncLogsQuery(ctx context.Context, userID int64, deviceID string, limit int) (string, []any, error) {
	builder := psql.
		Select(syncLogColumns...).
		From("sync_logs").
		Where(sq.Eq{"user_id": userID})

	if deviceID != "" {
		builder = builder.Where(sq.Eq{"device_id": deviceID})
	}

	query, args, err := builder.
		OrderBy("started_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCountQueueQuery counts sync queue rows by status for a user and
// optionally one device.
func buildCountQueueQuery(ctx context.Context, userID int64, deviceID string) (string, []any, error) {
	builder := psql.
		Select("status", "COUNT(*)").
		From("sync_queue").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"status": []string{
			string(models.QueueStatusPending),
			string(models.QueueStatusSyncing),
			string(models.QueueStatusFailed),
		}})

	if deviceID != "" {
		builder = builder.Where(sq.Eq{"device_id": deviceID})
	}

	query, args, err := builder.GroupBy("status").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildEnqueueQuery renders one multi-row INSERT for a batch of queue items.
func buildEnqueueQuery(ctx context.Context, items []models.SyncQueueItem) (string, []any, error) {
	if len(items) == 0 {
		return "", nil, fmt.Errorf("%w: no queue items", ErrBuildingSQLQuery)
	}

	builder := psql.
		Insert("sync_queue").
		Columns("id", "sync_log_id", "user_id", "device_id", "entity_type", "entity_id",
			"operation", "status", "created_at", "updated_at")

	for _, item := range items {
		builder = builder.Values(item.ID, item.SyncLogID, item.UserID, item.DeviceID,
			item.EntityType.String(), item.EntityID, string(item.Operation), string(item.Status),
			item.CreatedAt, item.UpdatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
