// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service error.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrConflictNotFound, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflictAlreadyResolved, err)
	case errors.Is(err, adapter.ErrUnprocessable):
		return fmt.Errorf("%w: %w", ErrInvalidResolution, err)
	}

	return err
}
