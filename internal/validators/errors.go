package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrEmptyItems        = errors.New("items list cannot be empty")
	ErrBatchTooLarge     = errors.New("too many items in batch")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidEntityID   = errors.New("entity id is required")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInvalidVersion    = errors.New("invalid version")
	ErrEmptyData         = errors.New("data is required")
	ErrDataNotObject     = errors.New("data must be a JSON object")
	ErrInvalidConflictID = errors.New("conflict id is required")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrMissingMergedData = errors.New("merged data is required for this resolution")
)
