package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type outboxRepository struct {
	*DB
	now func() time.Time
}

func NewOutboxRepository(db *DB) OutboxRepository {
	return &outboxRepository{DB: db, now: time.Now}
}

// coalesceAction says what to do with a pending outbox row when a new change
// for the same record arrives.
type coalesceAction int

const (
	// appendChange keeps the pending row and queues the new change after it.
	appendChange coalesceAction = iota
	// replaceChange rewrites the pending row with the new operation and data.
	replaceChange
	// dropChange removes the pending row and queues nothing.
	dropChange
)

// coalesce folds next into pending. The returned operation is what the
// pending row becomes on replaceChange.
//
//	create + update -> create
//	create + delete -> nothing (the server never saw the record)
//	update + update -> update
//	update + delete -> delete
//	delete + create -> update (the server still holds the record)
func coalesce(pending, next models.Operation) (coalesceAction, models.Operation) {
	switch pending {
	case models.OperationCreate:
		switch next {
		case models.OperationCreate, models.OperationUpdate:
			return replaceChange, models.OperationCreate
		case models.OperationDelete:
			return dropChange, ""
		}
	case models.OperationUpdate:
		switch next {
		case models.OperationCreate, models.OperationUpdate:
			return replaceChange, models.OperationUpdate
		case models.OperationDelete:
			return replaceChange, models.OperationDelete
		}
	case models.OperationDelete:
		switch next {
		case models.OperationCreate, models.OperationUpdate:
			return replaceChange, models.OperationUpdate
		case models.OperationDelete:
			return replaceChange, models.OperationDelete
		}
	}

	return appendChange, next
}

func (r *outboxRepository) AddChange(ctx context.Context, change models.OutboxChange) error {
	log := logger.FromContext(ctx)

	err := r.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		now := r.now().UTC()

		var (
			pendingID int64
			pendingOp string
		)
		err := tx.QueryRowContext(ctx, selectPendingOutboxForEntity, change.EntityType.String(), change.EntityID).
			Scan(&pendingID, &pendingOp)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		action, op := appendChange, change.Operation
		if err == nil {
			action, op = coalesce(models.Operation(pendingOp), change.Operation)
		}

		var data any
		if op != models.OperationDelete {
			data = nullableJSON(change.Data)
		}

		switch action {
		case replaceChange:
			_, err = tx.ExecContext(ctx, replaceOutboxChange, string(op), data, now, pendingID)
		case dropChange:
			_, err = tx.ExecContext(ctx, deleteOutboxChange, pendingID)
		default:
			_, err = tx.ExecContext(ctx, insertOutboxChange,
				change.EntityType.String(), change.EntityID, string(op), data, change.BaseVersion, now, now)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.AddChange").
			Str("entity", change.Key().String()).
			Str("operation", string(change.Operation)).
			Msg("failed to queue local change")
		return err
	}

	return nil
}

// ListPending returns up to limit pending changes in the order they were recorded.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]models.OutboxChange, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectPendingOutbox, limit)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.ListPending").
			Msg("failed to query outbox")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	changes := make([]models.OutboxChange, 0)
	for rows.Next() {
		c, err := scanOutboxChange(rows)
		if err != nil {
			log.Err(err).
				Str("func", "outboxRepository.ListPending").
				Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, nil
}

// GetChangeByConflict returns the change the server answered with conflictID.
func (r *outboxRepository) GetChangeByConflict(ctx context.Context, conflictID string) (models.OutboxChange, error) {
	change, err := scanOutboxChange(r.DB.QueryRowContext(ctx, selectOutboxByConflict, conflictID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.OutboxChange{}, ErrOutboxChangeNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.GetChangeByConflict").
			Str("conflict_id", conflictID).
			Msg("failed to read outbox change")
		return models.OutboxChange{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return change, nil
}

func scanOutboxChange(row rowScanner) (models.OutboxChange, error) {
	var (
		c                             models.OutboxChange
		entityType, operation, status string
		data                          []byte
	)
	err := row.Scan(&c.ID, &entityType, &c.EntityID, &operation, &data, &c.BaseVersion, &status,
		&c.ConflictID, &c.ErrorMessage, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.OutboxChange{}, err
	}

	c.EntityType = models.EntityType(entityType)
	c.Operation = models.Operation(operation)
	c.Status = models.OutboxStatus(status)
	if len(data) > 0 {
		c.Data = data
	}

	return c, nil
}

func (r *outboxRepository) MarkChange(ctx context.Context, id int64, status models.OutboxStatus, conflictID, message string) error {
	_, err := r.DB.ExecContext(ctx, markOutboxChange, string(status), conflictID, message, r.now().UTC(), id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.MarkChange").
			Int64("outbox_id", id).
			Msg("failed to mark outbox change")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RemoveChanges deletes the given rows. Without ids it is a no-op.
func (r *outboxRepository) RemoveChanges(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := sq.Delete("outbox").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.RemoveChanges").
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.RemoveChanges").
			Int("count", len(ids)).
			Msg("failed to remove outbox changes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *outboxRepository) CountOutbox(ctx context.Context) (models.OutboxCounts, error) {
	rows, err := r.DB.QueryContext(ctx, countOutboxByStatus)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "outboxRepository.CountOutbox").
			Msg("failed to count outbox")
		return models.OutboxCounts{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var counts models.OutboxCounts
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return models.OutboxCounts{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		switch models.OutboxStatus(status) {
		case models.OutboxStatusPending:
			counts.Pending = n
		case models.OutboxStatusConflict:
			counts.Conflicts = n
		case models.OutboxStatusFailed:
			counts.Failed = n
		}
	}

	if err := rows.Err(); err != nil {
		return models.OutboxCounts{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}
