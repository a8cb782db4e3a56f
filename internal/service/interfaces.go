package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=SyncServiceWrapper,idGenerator

// PushService applies a batch of device changes.
type PushService interface {
	// Push applies items in order. Per-item failures and conflicts are part of
	// the response; an error means the batch could not be processed at all.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
}

// PullService computes server changes since a device watermark.
type PullService interface {
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)
}

// ConflictService lists and settles conflicts.
type ConflictService interface {
	ListOpenConflicts(ctx context.Context, userID int64) ([]models.Conflict, error)
	ResolveConflict(ctx context.Context, req models.ConflictResolution) (models.ResolvedConflict, error)
}

// SyncService is the full sync surface exposed to transports.
type SyncService interface {
	PushService
	PullService
	ConflictService

	// FullSync runs the push half when items are present, then always pulls.
	FullSync(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResponse, error)

	GetSyncStatus(ctx context.Context, userID int64, deviceID string) (models.SyncStatusSnapshot, error)
	GetSyncHistory(ctx context.Context, req models.SyncHistoryRequest) ([]models.SyncLogEntry, error)

	// CleanupOldSyncItems removes synced queue rows older than daysOld days
	// and returns how many were removed.
	CleanupOldSyncItems(ctx context.Context, daysOld int) (int64, error)
}

// SyncServiceWrapper decorates a SyncService, e.g. with request validation.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

type AuthService interface {
	// ParseToken validates a bearer token and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// idGenerator produces unique string ids for conflicts, logs and queue rows.
type idGenerator interface {
	Generate() string
}
