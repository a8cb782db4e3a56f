package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// History page limits.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// syncService composes push, pull and conflict handling and answers the
// status and history queries.
type syncService struct {
	PushService
	PullService
	ConflictService

	conflicts store.ConflictRepository
	logs      store.SyncLogRepository
	queue     store.SyncQueueRepository
	devices   store.DeviceRepository

	now func() time.Time

	logger *logger.Logger
}

func NewSyncService(storages *store.Storages, ids idGenerator, logger *logger.Logger) SyncService {
	return &syncService{
		PushService:     NewPushService(storages, ids, logger),
		PullService:     NewPullService(storages, ids, logger),
		ConflictService: NewConflictService(storages, logger),
		conflicts:       storages.ConflictRepository,
		logs:            storages.SyncLogRepository,
		queue:           storages.SyncQueueRepository,
		devices:         storages.DeviceRepository,
		now:             time.Now,
		logger:          logger,
	}
}

// FullSync pushes req.Items when there are any and then pulls. A failed push
// is reported in PushError and never prevents the pull.
func (s *syncService) FullSync(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResponse, error) {
	log := logger.FromContext(ctx)
	started := s.now()

	var resp models.FullSyncResponse

	if len(req.Items) > 0 {
		push, err := s.Push(ctx, req.PushRequest())
		if err != nil {
			log.Err(err).
				Str("func", "syncService.FullSync").
				Int64("user_id", req.UserID).
				Str("device_id", req.DeviceID).
				Msg("push half failed, pulling anyway")
			resp.PushError = err.Error()
		} else {
			resp.Push = &push
		}
	}

	pull, err := s.Pull(ctx, req.PullRequest())
	if err != nil {
		log.Err(err).
			Str("func", "syncService.FullSync").
			Int64("user_id", req.UserID).
			Msg("pull half failed")
		return models.FullSyncResponse{}, fmt.Errorf("pull: %w", err)
	}
	resp.Pull = &pull
	resp.DurationMs = s.now().Sub(started).Milliseconds()

	return resp, nil
}

// GetSyncStatus builds the status snapshot of one device. Without a device id
// the queue counts and last sync cover all devices of the user.
func (s *syncService) GetSyncStatus(ctx context.Context, userID int64, deviceID string) (models.SyncStatusSnapshot, error) {
	var (
		snapshot models.SyncStatusSnapshot
		counts   models.QueueCounts
		open     int
		last     *models.SyncLogEntry
		device   *models.Device
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.queue.CountQueueByStatus(gctx, userID, deviceID)
		return err
	})
	g.Go(func() (err error) {
		open, err = s.conflicts.CountOpenConflicts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		last, err = s.logs.GetLastSyncLog(gctx, userID, deviceID)
		return err
	})
	if deviceID != "" {
		g.Go(func() error {
			d, err := s.devices.GetDevice(gctx, userID, deviceID)
			if errors.Is(err, store.ErrDeviceNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			device = &d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncService.GetSyncStatus").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to build sync status")
		return snapshot, fmt.Errorf("sync status: %w", err)
	}

	snapshot = models.SyncStatusSnapshot{
		Pending:       counts.Pending,
		Syncing:       counts.Syncing,
		Failed:        counts.Failed,
		OpenConflicts: open,
		LastSync:      last,
		Device:        device,
	}

	return snapshot, nil
}

// GetSyncHistory returns the newest sync log entries first.
func (s *syncService) GetSyncHistory(ctx context.Context, req models.SyncHistoryRequest) ([]models.SyncLogEntry, error) {
	entries, err := s.logs.ListSyncLogs(ctx, req.UserID, req.DeviceID, clampHistoryLimit(req.Limit))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncService.GetSyncHistory").
			Int64("user_id", req.UserID).
			Msg("failed to list sync history")
		return nil, fmt.Errorf("sync history: %w", err)
	}

	return entries, nil
}

func (s *syncService) CleanupOldSyncItems(ctx context.Context, daysOld int) (int64, error) {
	log := logger.FromContext(ctx)

	if daysOld <= 0 {
		return 0, fmt.Errorf("%w: daysOld must be positive, got %d", ErrValidation, daysOld)
	}

	cutoff := s.now().AddDate(0, 0, -daysOld)
	removed, err := s.queue.DeleteSyncedBefore(ctx, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "syncService.CleanupOldSyncItems").
			Time("cutoff", cutoff).
			Msg("failed to clean up sync queue")
		return 0, fmt.Errorf("cleanup sync queue: %w", err)
	}

	log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("sync queue cleaned up")

	return removed, nil
}

func clampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
