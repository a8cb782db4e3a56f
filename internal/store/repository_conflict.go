package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type conflictRepository struct {
	*DB
}

func NewConflictRepository(db *DB) ConflictRepository {
	return &conflictRepository{DB: db}
}

func (r *conflictRepository) CreateConflict(ctx context.Context, c models.Conflict) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, insertConflict,
		c.ID,
		c.EntityType.String(),
		c.EntityID,
		string(c.Operation),
		c.LocalVersion,
		c.ServerVersion,
		nullableJSON(c.LocalData),
		nullableJSON(c.ServerData),
		c.UserID,
		c.DeviceID,
		c.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.CreateConflict").
			Str("conflict_id", c.ID).
			Str("entity", c.Key().String()).
			Msg("failed to insert conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetConflict returns [ErrConflictNotFound] for unknown ids.
func (r *conflictRepository) GetConflict(ctx context.Context, conflictID string) (models.Conflict, error) {
	log := logger.FromContext(ctx)

	c, err := scanConflict(r.DB.QueryRowContext(ctx, selectConflictByID, conflictID))
	if errors.Is(err, sql.ErrNoRows) || isInvalidTextRepresentation(err) {
		return models.Conflict{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.GetConflict").
			Str("conflict_id", conflictID).
			Msg("failed to read conflict")
		return models.Conflict{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return c, nil
}

func (r *conflictRepository) ListOpenConflicts(ctx context.Context, userID int64) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOpenConflictsQuery(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("failed to query open conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.Conflict, 0)
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			log.Err(err).
				Str("func", "conflictRepository.ListOpenConflicts").
				Int64("user_id", userID).
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		conflicts = append(conflicts, c)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (r *conflictRepository) CountOpenConflicts(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, countOpenConflicts, userID).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conflictRepository.CountOpenConflicts").
			Int64("user_id", userID).
			Msg("failed to count open conflicts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConflict(row rowScanner) (models.Conflict, error) {
	var (
		c                     models.Conflict
		entityType, operation string
		localData, serverData []byte
		resolution            sql.NullString
		resolvedAt            sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&entityType,
		&c.EntityID,
		&operation,
		&c.LocalVersion,
		&c.ServerVersion,
		&localData,
		&serverData,
		&c.UserID,
		&c.DeviceID,
		&c.Resolved,
		&resolution,
		&resolvedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return models.Conflict{}, err
	}

	c.EntityType = models.EntityType(entityType)
	c.Operation = models.Operation(operation)
	c.LocalData = localData
	c.ServerData = serverData
	if resolution.Valid {
		res := models.Resolution(resolution.String)
		c.Resolution = &res
	}
	if resolvedAt.Valid {
		at := resolvedAt.Time
		c.ResolvedAt = &at
	}

	return c, nil
}

// nullableJSON stores absent payloads as SQL NULL instead of an empty document.
func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}
