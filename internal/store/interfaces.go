package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EntityVersionRepository reads authoritative record versions.
// Versions are written only by [ChangeStorage].
type EntityVersionRepository interface {
	GetEntityVersion(ctx context.Context, key models.EntityKey) (models.EntityVersion, error)
}

// RecordRepository reads the backing collections for pull.
type RecordRepository interface {
	ListUpdatedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.Record, error)
	ListDeletedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]string, error)
}

// ChangeStorage applies versioned writes atomically.
type ChangeStorage interface {
	// ApplyChange runs the version check and the write of one push item in a
	// single transaction. Item-level outcomes (synced, conflict, failed) are
	// reported in the result; a non-nil error means an infrastructure failure.
	ApplyChange(ctx context.Context, item models.SyncItem) (ApplyResult, error)

	// ResolveConflict writes the final payload of an open conflict and marks
	// it resolved in one transaction.
	ResolveConflict(ctx context.Context, change ResolveChange) (models.ResolvedConflict, error)
}

// ConflictRepository persists conflicts.
type ConflictRepository interface {
	CreateConflict(ctx context.Context, conflict models.Conflict) error
	GetConflict(ctx context.Context, conflictID string) (models.Conflict, error)
	ListOpenConflicts(ctx context.Context, userID int64) ([]models.Conflict, error)
	CountOpenConflicts(ctx context.Context, userID int64) (int, error)
}

// SyncLogRepository persists push and pull sessions.
type SyncLogRepository interface {
	OpenSyncLog(ctx context.Context, entry models.SyncLogEntry) error
	CloseSyncLog(ctx context.Context, entry models.SyncLogEntry) error
	GetLastSyncLog(ctx context.Context, userID int64, deviceID string) (*models.SyncLogEntry, error)
	ListSyncLogs(ctx context.Context, userID int64, deviceID string, limit int) ([]models.SyncLogEntry, error)
}

// SyncQueueRepository tracks push items through their lifecycle.
type SyncQueueRepository interface {
	EnqueueItems(ctx context.Context, items []models.SyncQueueItem) error
	UpdateQueueStatus(ctx context.Context, itemID string, status models.QueueStatus, errorMessage string) error
	CountQueueByStatus(ctx context.Context, userID int64, deviceID string) (models.QueueCounts, error)
	DeleteSyncedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeviceRepository keeps per-device metadata.
type DeviceRepository interface {
	TouchDevice(ctx context.Context, device models.Device) error
	GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error)
}

// ApplyResult is the item-level outcome of [ChangeStorage.ApplyChange].
type ApplyResult struct {
	Status models.ItemStatus

	// Version is the new stored version when synced, or the stored version
	// that beat the client when in conflict.
	Version int64

	// ServerData is the stored payload on conflict; nil when the record
	// is deleted on the server.
	ServerData json.RawMessage

	// ErrorMessage explains a failed item.
	ErrorMessage string
}

// ResolveChange is the input of [ChangeStorage.ResolveConflict].
// A nil FinalData deletes the record.
type ResolveChange struct {
	ConflictID string
	UserID     int64
	Resolution models.Resolution
	FinalData  json.RawMessage
}
