package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type conflictService struct {
	conflicts store.ConflictRepository
	changes   store.ChangeStorage
	versions  store.EntityVersionRepository

	logger *logger.Logger
}

func NewConflictService(storages *store.Storages, logger *logger.Logger) ConflictService {
	return &conflictService{
		conflicts: storages.ConflictRepository,
		changes:   storages.ChangeStorage,
		versions:  storages.EntityVersionRepository,
		logger:    logger,
	}
}

// ListOpenConflicts returns the user's unresolved conflicts, newest first,
// each with the record's current stored version.
func (s *conflictService) ListOpenConflicts(ctx context.Context, userID int64) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	conflicts, err := s.conflicts.ListOpenConflicts(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictService.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("failed to list open conflicts")
		return nil, fmt.Errorf("list open conflicts: %w", err)
	}

	for i := range conflicts {
		current, err := s.versions.GetEntityVersion(ctx, conflicts[i].Key())
		switch {
		case errors.Is(err, store.ErrEntityVersionNotFound):
			conflicts[i].CurrentVersion = conflicts[i].ServerVersion
		case err != nil:
			log.Err(err).
				Str("func", "conflictService.ListOpenConflicts").
				Str("conflict_id", conflicts[i].ID).
				Msg("failed to read current version")
			return nil, fmt.Errorf("read version of %s: %w", conflicts[i].Key(), err)
		default:
			conflicts[i].CurrentVersion = current.Version
		}
	}

	return conflicts, nil
}

// ResolveConflict settles an open conflict owned by req.UserID.
//
// The final payload depends on the strategy:
//   - local_wins: the payload the device pushed; nothing if it pushed a delete.
//   - server_wins: the payload stored when the conflict was detected; nothing
//     if the record was deleted on the server.
//   - merge, manual: req.MergedData.
//
// A missing final payload deletes the record. The write, the version advance
// and the resolved mark happen in one transaction; a second resolution of the
// same conflict fails with ErrConflictAlreadyResolved.
func (s *conflictService) ResolveConflict(ctx context.Context, req models.ConflictResolution) (models.ResolvedConflict, error) {
	log := logger.FromContext(ctx)

	conflict, err := s.conflicts.GetConflict(ctx, req.ConflictID)
	if err != nil {
		return models.ResolvedConflict{}, mapConflictError(err)
	}
	if conflict.UserID != req.UserID {
		log.Warn().
			Str("func", "conflictService.ResolveConflict").
			Str("conflict_id", req.ConflictID).
			Int64("user_id", req.UserID).
			Msg("conflict belongs to another user")
		return models.ResolvedConflict{}, ErrConflictNotFound
	}
	if conflict.Resolved {
		return models.ResolvedConflict{}, ErrConflictAlreadyResolved
	}

	finalData, err := chooseFinalData(conflict, req)
	if err != nil {
		return models.ResolvedConflict{}, err
	}

	resolved, err := s.changes.ResolveConflict(ctx, store.ResolveChange{
		ConflictID: req.ConflictID,
		UserID:     req.UserID,
		Resolution: req.Resolution,
		FinalData:  finalData,
	})
	if err != nil {
		log.Err(err).
			Str("func", "conflictService.ResolveConflict").
			Str("conflict_id", req.ConflictID).
			Str("resolution", string(req.Resolution)).
			Msg("failed to resolve conflict")
		return models.ResolvedConflict{}, mapConflictError(err)
	}

	log.Info().
		Str("conflict_id", req.ConflictID).
		Str("entity", conflict.Key().String()).
		Str("resolution", string(req.Resolution)).
		Int64("final_version", resolved.FinalVersion).
		Msg("conflict resolved")

	return resolved, nil
}

func chooseFinalData(conflict models.Conflict, req models.ConflictResolution) (json.RawMessage, error) {
	switch req.Resolution {
	case models.ResolutionLocalWins:
		if conflict.Operation == models.OperationDelete {
			return nil, nil
		}
		return conflict.LocalData, nil
	case models.ResolutionServerWins:
		if len(conflict.ServerData) == 0 {
			return nil, nil
		}
		return conflict.ServerData, nil
	case models.ResolutionMerge, models.ResolutionManual:
		trimmed := bytes.TrimSpace(req.MergedData)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return nil, fmt.Errorf("%w: %s requires merged data", ErrInvalidResolution, req.Resolution)
		}
		return req.MergedData, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidResolution, req.Resolution)
	}
}

func mapConflictError(err error) error {
	switch {
	case errors.Is(err, store.ErrConflictNotFound):
		return fmt.Errorf("%w: %w", ErrConflictNotFound, err)
	case errors.Is(err, store.ErrConflictAlreadyResolved):
		return fmt.Errorf("%w: %w", ErrConflictAlreadyResolved, err)
	default:
		return fmt.Errorf("resolve conflict: %w", err)
	}
}
