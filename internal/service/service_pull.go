package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// pullFetchLimit bounds how many entity types are fetched at once.
const pullFetchLimit = 4

// pullService computes the delta a device has not seen yet.
//
// Identical pulls that arrive while one is running (same user, device,
// watermark and types) share the running call's result.
type pullService struct {
	records store.RecordRepository
	logs    store.SyncLogRepository
	devices store.DeviceRepository

	ids idGenerator
	now func() time.Time

	inflight singleflight.Group

	logger *logger.Logger
}

func NewPullService(storages *store.Storages, ids idGenerator, logger *logger.Logger) PullService {
	return newPullService(storages, ids, logger)
}

func newPullService(storages *store.Storages, ids idGenerator, logger *logger.Logger) *pullService {
	return &pullService{
		records: storages.RecordRepository,
		logs:    storages.SyncLogRepository,
		devices: storages.DeviceRepository,
		ids:     ids,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *pullService) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	types, err := resolveEntityTypes(req.EntityTypes)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	result, err, shared := s.inflight.Do(pullKey(req, types), func() (any, error) {
		return s.pull(ctx, req, types)
	})
	if err != nil {
		return models.PullResponse{}, err
	}

	if shared {
		logger.FromContext(ctx).Debug().
			Int64("user_id", req.UserID).
			Str("device_id", req.DeviceID).
			Msg("pull coalesced with a running identical pull")
	}

	return result.(models.PullResponse), nil
}

func (s *pullService) pull(ctx context.Context, req models.PullRequest, types []models.EntityType) (models.PullResponse, error) {
	log := logger.FromContext(ctx)

	// captured before any fetch: rows written during the fetch are sent again next time
	watermark := s.now()

	var since time.Time
	if req.LastSyncTimestamp != nil {
		since = *req.LastSyncTimestamp
	}

	entry := models.SyncLogEntry{
		ID:             s.ids.Generate(),
		UserID:         req.UserID,
		DeviceID:       req.DeviceID,
		SyncType:       models.SyncTypePull,
		ItemsAttempted: len(types),
		Status:         models.SyncStatusSyncing,
		StartedAt:      watermark,
	}
	if err := s.logs.OpenSyncLog(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "pullService.pull").
			Int64("user_id", req.UserID).
			Msg("failed to open sync log")
		return models.PullResponse{}, fmt.Errorf("open sync log: %w", err)
	}

	resp := models.PullResponse{
		LastSyncTimestamp: watermark,
		Changes:           make(map[string][]models.Record, len(types)),
		DeletedIDs:        make(map[string][]string, len(types)),
	}

	var (
		mu       sync.Mutex
		failures []error
		g        errgroup.Group
	)
	g.SetLimit(pullFetchLimit)

	for _, entityType := range types {
		g.Go(func() error {
			records, deleted, err := s.fetch(ctx, entityType, since)

			mu.Lock()
			defer mu.Unlock()

			key := entityType.Plural()
			if err != nil {
				if resp.Errors == nil {
					resp.Errors = make(map[string]string)
				}
				resp.Errors[key] = err.Error()
				failures = append(failures, fmt.Errorf("%s: %w", key, err))
				return nil
			}

			resp.Changes[key] = records
			resp.DeletedIDs[key] = deleted
			resp.TotalChanges += len(records) + len(deleted)
			return nil
		})
	}
	_ = g.Wait()

	completed := s.now()
	entry.ItemsFailed = len(failures)
	entry.ItemsSynced = len(types) - len(failures)
	entry.DurationMs = completed.Sub(watermark).Milliseconds()
	entry.CompletedAt = &completed

	switch {
	case len(failures) == 0:
		entry.Status = models.SyncStatusSuccess
	case len(failures) < len(types):
		entry.Status = models.SyncStatusPartial
		entry.ErrorMessage = errors.Join(failures...).Error()
	default:
		entry.Status = models.SyncStatusFailed
		entry.ErrorMessage = errors.Join(failures...).Error()
	}

	if err := s.logs.CloseSyncLog(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "pullService.pull").
			Str("sync_log_id", entry.ID).
			Msg("failed to close sync log")
		return models.PullResponse{}, fmt.Errorf("close sync log: %w", err)
	}

	if entry.Status == models.SyncStatusFailed {
		err := fmt.Errorf("%w: %w", ErrPullFailed, errors.Join(failures...))
		log.Err(err).
			Str("func", "pullService.pull").
			Int64("user_id", req.UserID).
			Msg("pull failed")
		return models.PullResponse{}, err
	}

	touchDevice(ctx, s.devices, req.UserID, req.DeviceID, "", completed)

	log.Info().
		Str("sync_log_id", entry.ID).
		Int64("user_id", req.UserID).
		Str("device_id", req.DeviceID).
		Int("total_changes", resp.TotalChanges).
		Int("failed_types", len(failures)).
		Msg("pull computed")

	return resp, nil
}

// fetch reads one entity type. Slices are never nil so they encode as [].
func (s *pullService) fetch(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.Record, []string, error) {
	records, err := s.records.ListUpdatedSince(ctx, entityType, since)
	if err != nil {
		return nil, nil, fmt.Errorf("list updated records: %w", err)
	}

	deleted, err := s.records.ListDeletedSince(ctx, entityType, since)
	if err != nil {
		return nil, nil, fmt.Errorf("list deleted records: %w", err)
	}

	if records == nil {
		records = []models.Record{}
	}
	if deleted == nil {
		deleted = []string{}
	}

	return records, deleted, nil
}

// resolveEntityTypes maps wire names to entity types, dropping duplicates.
// No names means every known type.
func resolveEntityTypes(names []string) ([]models.EntityType, error) {
	if len(names) == 0 {
		return models.AllEntityTypes(), nil
	}

	seen := make(map[models.EntityType]struct{}, len(names))
	types := make([]models.EntityType, 0, len(names))
	for _, name := range names {
		t, err := models.ParseEntityType(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}

	return types, nil
}

func pullKey(req models.PullRequest, types []models.EntityType) string {
	watermark := "-"
	if req.LastSyncTimestamp != nil {
		watermark = req.LastSyncTimestamp.UTC().Format(time.RFC3339Nano)
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return fmt.Sprintf("%d|%s|%s|%s", req.UserID, req.DeviceID, watermark, strings.Join(names, ","))
}
