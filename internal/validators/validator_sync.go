package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-field-sync/models"
)

const (
	FieldUserID      = "user_id"
	FieldItems       = "items"
	FieldEntityType  = "entity_type"
	FieldEntityID    = "entity_id"
	FieldOperation   = "operation"
	FieldVersion     = "version"
	FieldData        = "data"
	FieldEntityTypes = "entity_types"
	FieldConflictID  = "conflict_id"
	FieldResolution  = "resolution"
	FieldMergedData  = "merged_data"
)

// SyncValidator validates push, pull, full sync, resolution and history requests.
type SyncValidator struct {
	maxBatch int
}

// NewSyncValidator returns a validator that rejects push batches larger than
// maxBatch. A non-positive maxBatch disables the size check.
func NewSyncValidator(maxBatch int) Validator {
	return &SyncValidator{maxBatch: maxBatch}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncItem:
		return v.validateSyncItem(ctx, value, fields...)
	case *models.SyncItem:
		return v.validateSyncItem(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.PullRequest:
		return v.validatePullRequest(ctx, value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(ctx, *value, fields...)

	case models.FullSyncRequest:
		return v.validateFullSyncRequest(ctx, value)
	case *models.FullSyncRequest:
		return v.validateFullSyncRequest(ctx, *value)

	case models.ConflictResolution:
		return v.validateConflictResolution(ctx, value, fields...)
	case *models.ConflictResolution:
		return v.validateConflictResolution(ctx, *value, fields...)

	case models.SyncHistoryRequest:
		return v.validateHistoryRequest(ctx, value)
	case *models.SyncHistoryRequest:
		return v.validateHistoryRequest(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateSyncItem(ctx context.Context, item models.SyncItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldOperation, FieldVersion, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if !item.EntityType.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntityType, item.EntityType)
			}
		case FieldEntityID:
			if item.EntityID == "" {
				return ErrInvalidEntityID
			}
		case FieldOperation:
			if !item.Operation.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperation, item.Operation)
			}
		case FieldVersion:
			if item.Version < 0 {
				return ErrInvalidVersion
			}
		case FieldData:
			// deletes carry no payload
			if item.Operation == models.OperationDelete {
				continue
			}
			if err := validateObject(item.Data); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validatePushRequest(ctx context.Context, request models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldItems}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldItems:
			if len(request.Items) == 0 {
				return ErrEmptyItems
			}
			if v.maxBatch > 0 && len(request.Items) > v.maxBatch {
				return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(request.Items), v.maxBatch)
			}
			for i, item := range request.Items {
				if err := v.validateSyncItem(ctx, item); err != nil {
					return fmt.Errorf("items[%d]: %w", i, err)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validatePullRequest(ctx context.Context, request models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEntityTypes}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEntityTypes:
			for _, name := range request.EntityTypes {
				if _, err := models.ParseEntityType(name); err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidEntityType, err)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateFullSyncRequest checks the pull half always and the push half only
// when the request carries items.
func (v *SyncValidator) validateFullSyncRequest(ctx context.Context, request models.FullSyncRequest) error {
	if len(request.Items) > 0 {
		if err := v.validatePushRequest(ctx, request.PushRequest()); err != nil {
			return err
		}
	}

	return v.validatePullRequest(ctx, request.PullRequest())
}

func (v *SyncValidator) validateConflictResolution(ctx context.Context, request models.ConflictResolution, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldConflictID, FieldUserID, FieldResolution, FieldMergedData}
	}

	for _, f := range fields {
		switch f {
		case FieldConflictID:
			if request.ConflictID == "" {
				return ErrInvalidConflictID
			}
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldResolution:
			if !request.Resolution.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidResolution, request.Resolution)
			}
		case FieldMergedData:
			if !request.Resolution.RequiresData() {
				continue
			}
			if len(request.MergedData) == 0 || bytes.Equal(bytes.TrimSpace(request.MergedData), []byte("null")) {
				return ErrMissingMergedData
			}
			if err := validateObject(request.MergedData); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validateHistoryRequest(ctx context.Context, request models.SyncHistoryRequest) error {
	if request.UserID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// validateObject requires data to be a well-formed JSON object.
func validateObject(data json.RawMessage) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyData
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return ErrDataNotObject
	}
	return nil
}
