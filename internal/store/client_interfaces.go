package store

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// OutboxRepository is the device queue of local changes awaiting push.
type OutboxRepository interface {
	// AddChange queues a change, folding it into a pending change for the
	// same record when there is one.
	AddChange(ctx context.Context, change models.OutboxChange) error
	ListPending(ctx context.Context, limit int) ([]models.OutboxChange, error)
	GetChangeByConflict(ctx context.Context, conflictID string) (models.OutboxChange, error)
	MarkChange(ctx context.Context, id int64, status models.OutboxStatus, conflictID, message string) error
	RemoveChanges(ctx context.Context, ids ...int64) error
	CountOutbox(ctx context.Context) (models.OutboxCounts, error)
}

// LocalRecordRepository stores the device copy of records.
type LocalRecordRepository interface {
	SaveRecord(ctx context.Context, record models.LocalRecord) error
	GetRecord(ctx context.Context, key models.EntityKey) (models.LocalRecord, error)
	SetVersion(ctx context.Context, key models.EntityKey, version int64) error
}

// SyncStateRepository keeps the single sync bookkeeping row of the device.
type SyncStateRepository interface {
	GetSyncState(ctx context.Context) (models.SyncState, error)
	SaveSyncState(ctx context.Context, state models.SyncState) error
}
