package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-field-sync/models"
)

// ClientSyncService is the device side of the sync protocol. Local edits go
// to an outbox; Sync pushes the outbox and applies what the server sends back.
type ClientSyncService interface {
	// RecordChange stores a local edit in the device replica and queues it
	// for the next push. The base version is the version of the local copy.
	RecordChange(ctx context.Context, entityType models.EntityType, entityID string, op models.Operation, data json.RawMessage) error

	// Sync runs one full sync round: push pending changes, record their
	// outcomes, apply pulled changes and store the new watermark.
	// Only one round runs at a time.
	Sync(ctx context.Context) (models.SyncReport, error)

	// Conflicts lists the user's open conflicts on the server.
	Conflicts(ctx context.Context) ([]models.Conflict, error)

	// ResolveConflict settles a conflict on the server and replaces the local
	// copy and the parked outbox change with the result.
	ResolveConflict(ctx context.Context, conflictID string, resolution models.Resolution, mergedData json.RawMessage) (models.ResolvedConflict, error)

	// Status combines local outbox counts with the server status snapshot.
	Status(ctx context.Context) (ClientStatus, error)
}

// ClientStatus is what the device knows about its own sync state.
type ClientStatus struct {
	Outbox models.OutboxCounts        `json:"outbox"`
	Local  models.SyncState           `json:"local"`
	Server *models.SyncStatusSnapshot `json:"server,omitempty"`
}
