package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type entityVersionRepository struct {
	*DB
}

func NewEntityVersionRepository(db *DB) EntityVersionRepository {
	return &entityVersionRepository{DB: db}
}

// GetEntityVersion returns [ErrEntityVersionNotFound] for records never written.
func (r *entityVersionRepository) GetEntityVersion(ctx context.Context, key models.EntityKey) (models.EntityVersion, error) {
	log := logger.FromContext(ctx)

	var (
		v          models.EntityVersion
		entityType string
	)
	err := r.DB.QueryRowContext(ctx, selectEntityVersion, key.EntityType.String(), key.EntityID).
		Scan(&entityType, &v.EntityID, &v.Version, &v.ContentHash, &v.UpdatedBy, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EntityVersion{}, ErrEntityVersionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityVersionRepository.GetEntityVersion").
			Str("entity", key.String()).
			Msg("failed to read entity version")
		return models.EntityVersion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	v.EntityType = models.EntityType(entityType)

	return v, nil
}
