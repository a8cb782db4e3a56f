package store

const (
	selectPendingOutboxForEntity = `SELECT id, operation
		FROM outbox
		WHERE entity_type = ? AND entity_id = ? AND status = 'pending'
		ORDER BY id DESC
		LIMIT 1;`

	insertOutboxChange = `INSERT INTO outbox (entity_type, entity_id, operation, data, base_version, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'pending', ?, ?);`

	replaceOutboxChange = `UPDATE outbox SET operation = ?, data = ?, updated_at = ? WHERE id = ?;`

	deleteOutboxChange = `DELETE FROM outbox WHERE id = ?;`

	selectPendingOutbox = `SELECT id, entity_type, entity_id, operation, data, base_version, status,
			conflict_id, error_message, created_at, updated_at
		FROM outbox
		WHERE status = 'pending'
		ORDER BY id ASC
		LIMIT ?;`

	selectOutboxByConflict = `SELECT id, entity_type, entity_id, operation, data, base_version, status,
			conflict_id, error_message, created_at, updated_at
		FROM outbox
		WHERE conflict_id = ?
		ORDER BY id DESC
		LIMIT 1;`

	markOutboxChange = `UPDATE outbox SET status = ?, conflict_id = ?, error_message = ?, updated_at = ? WHERE id = ?;`

	countOutboxByStatus = `SELECT status, COUNT(*) FROM outbox GROUP BY status;`

	upsertLocalRecord = `INSERT INTO local_records (entity_type, entity_id, data, version, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, entity_id) DO UPDATE
		SET data = excluded.data, version = excluded.version,
			deleted = excluded.deleted, updated_at = excluded.updated_at;`

	selectLocalRecord = `SELECT entity_type, entity_id, data, version, deleted, updated_at
		FROM local_records
		WHERE entity_type = ? AND entity_id = ?;`

	setLocalRecordVersion = `UPDATE local_records SET version = ? WHERE entity_type = ? AND entity_id = ?;`

	selectSyncState = `SELECT last_pull_at, last_sync_at FROM sync_state WHERE id = 1;`

	upsertSyncState = `INSERT INTO sync_state (id, last_pull_at, last_sync_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET last_pull_at = excluded.last_pull_at, last_sync_at = excluded.last_sync_at;`
)
