// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the device agent to the sync server.
//
// [ServerAdapter] hides the transport from the client services. The package
// ships an HTTP implementation built on resty ([NewHTTPServerAdapter]).
// Non-2xx responses are mapped to the sentinels in errors.go so callers can
// use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the device view of the sync API. The device and user are
// identified by the configured device id and bearer token.
type ServerAdapter interface {
	// SetToken replaces the bearer token sent with every request.
	SetToken(token string)
	Token() string

	// FullSync pushes the device outbox and pulls server changes in one call.
	FullSync(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResponse, error)

	// ListConflicts returns the user's open conflicts.
	ListConflicts(ctx context.Context) ([]models.Conflict, error)

	// ResolveConflict settles one conflict. Returns [ErrNotFound] for unknown
	// conflicts and [ErrConflict] for conflicts already resolved.
	ResolveConflict(ctx context.Context, req models.ConflictResolution) (models.ResolvedConflict, error)

	// Status returns the server view of this device's sync state.
	Status(ctx context.Context) (models.SyncStatusSnapshot, error)

	// ServerVersion reports the version of the sync server.
	ServerVersion(ctx context.Context) (string, error)
}
