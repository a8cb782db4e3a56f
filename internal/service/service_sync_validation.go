package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

// SyncValidationService rejects malformed requests before they reach the
// wrapped SyncService. Rejections wrap ErrValidation, or ErrInvalidResolution
// for resolution requests with a bad strategy or merged data.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService(maxPushBatch int) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewSyncValidator(maxPushBatch),
	}
}

func (v *SyncValidationService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Push(ctx, req)
}

func (v *SyncValidationService) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Pull(ctx, req)
}

func (v *SyncValidationService) FullSync(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.FullSyncResponse{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.FullSync(ctx, req)
}

func (v *SyncValidationService) ListOpenConflicts(ctx context.Context, userID int64) ([]models.Conflict, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, validators.ErrInvalidUserID)
	}

	return v.inner.ListOpenConflicts(ctx, userID)
}

func (v *SyncValidationService) ResolveConflict(ctx context.Context, req models.ConflictResolution) (models.ResolvedConflict, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		if errors.Is(err, validators.ErrInvalidResolution) ||
			errors.Is(err, validators.ErrMissingMergedData) ||
			errors.Is(err, validators.ErrDataNotObject) {
			return models.ResolvedConflict{}, fmt.Errorf("%w: %w", ErrInvalidResolution, err)
		}
		return models.ResolvedConflict{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.ResolveConflict(ctx, req)
}

func (v *SyncValidationService) GetSyncStatus(ctx context.Context, userID int64, deviceID string) (models.SyncStatusSnapshot, error) {
	if userID <= 0 {
		return models.SyncStatusSnapshot{}, fmt.Errorf("%w: %w", ErrValidation, validators.ErrInvalidUserID)
	}

	return v.inner.GetSyncStatus(ctx, userID, deviceID)
}

func (v *SyncValidationService) GetSyncHistory(ctx context.Context, req models.SyncHistoryRequest) ([]models.SyncLogEntry, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.GetSyncHistory(ctx, req)
}

func (v *SyncValidationService) CleanupOldSyncItems(ctx context.Context, daysOld int) (int64, error) {
	return v.inner.CleanupOldSyncItems(ctx, daysOld)
}

func (v *SyncValidationService) Wrap(wrapped SyncService) SyncService {
	v.inner = wrapped
	return v
}
