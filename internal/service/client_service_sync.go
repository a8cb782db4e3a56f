package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

type clientSyncService struct {
	outbox  store.OutboxRepository
	records store.LocalRecordRepository
	state   store.SyncStateRepository
	adapter adapter.ServerAdapter

	validator validators.Validator

	deviceID   string
	appVersion string
	batchSize  int

	now func() time.Time

	// mu serializes sync rounds with local edits so an edit never lands
	// between reading the outbox and removing the synced rows.
	mu sync.Mutex

	logger *logger.Logger
}

func NewClientSyncService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientApp, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		outbox:     storages.OutboxRepository,
		records:    storages.LocalRecordRepository,
		state:      storages.SyncStateRepository,
		adapter:    serverAdapter,
		validator:  validators.NewSyncValidator(0),
		deviceID:   cfg.DeviceID,
		appVersion: cfg.AppVersion,
		batchSize:  config.DefaultMaxPushBatch,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *clientSyncService) RecordChange(ctx context.Context, entityType models.EntityType, entityID string, op models.Operation, data json.RawMessage) error {
	log := logger.FromContext(ctx)

	if op == models.OperationDelete {
		data = nil
	}
	item := models.SyncItem{EntityType: entityType, EntityID: entityID, Operation: op, Data: data}
	if err := s.validator.Validate(ctx, item); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	local, err := s.records.GetRecord(ctx, key)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("read local record: %w", err)
	}

	record := models.LocalRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Data:       data,
		Version:    local.Version,
		Deleted:    op == models.OperationDelete,
		UpdatedAt:  s.now(),
	}
	if err := s.records.SaveRecord(ctx, record); err != nil {
		return fmt.Errorf("save local record: %w", err)
	}

	err = s.outbox.AddChange(ctx, models.OutboxChange{
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   op,
		Data:        data,
		BaseVersion: local.Version,
	})
	if err != nil {
		return fmt.Errorf("queue local change: %w", err)
	}

	log.Debug().
		Str("entity", key.String()).
		Str("operation", string(op)).
		Int64("base_version", local.Version).
		Msg("local change recorded")

	return nil
}

func (s *clientSyncService) Sync(ctx context.Context) (models.SyncReport, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var report models.SyncReport

	state, err := s.state.GetSyncState(ctx)
	if err != nil {
		return report, fmt.Errorf("read sync state: %w", err)
	}

	pending, err := s.outbox.ListPending(ctx, s.batchSize)
	if err != nil {
		return report, fmt.Errorf("read outbox: %w", err)
	}

	items := make([]models.SyncItem, len(pending))
	for i, change := range pending {
		items[i] = change.SyncItem()
	}

	resp, err := s.adapter.FullSync(ctx, models.FullSyncRequest{
		DeviceID:          s.deviceID,
		AppVersion:        s.appVersion,
		Items:             items,
		LastSyncTimestamp: state.LastPullAt,
	})
	if err != nil {
		log.Err(err).
			Str("func", "clientSyncService.Sync").
			Int("pending", len(pending)).
			Msg("full sync request failed")
		return report, mapAdapterError(err)
	}

	// records with local changes the server has not accepted keep their local copy
	unsynced := make(map[models.EntityKey]struct{}, len(pending))
	for _, change := range pending {
		unsynced[change.Key()] = struct{}{}
	}

	switch {
	case resp.Push != nil:
		if err := s.applyPushResults(ctx, pending, *resp.Push, unsynced, &report); err != nil {
			return report, err
		}
	case len(pending) > 0:
		report.PushError = resp.PushError
		log.Warn().
			Str("push_error", resp.PushError).
			Int("pending", len(pending)).
			Msg("server did not accept the push, changes stay queued")
	}

	if resp.Pull == nil {
		return report, fmt.Errorf("%w: no pull result", ErrUnexpectedPushResult)
	}
	if err := s.applyPull(ctx, *resp.Pull, unsynced, &report); err != nil {
		return report, err
	}

	now := s.now()
	state.LastSyncAt = &now
	report.Watermark = resp.Pull.LastSyncTimestamp
	if len(resp.Pull.Errors) == 0 {
		watermark := resp.Pull.LastSyncTimestamp
		state.LastPullAt = &watermark
	} else {
		// types that failed must be pulled again from the old watermark
		log.Warn().
			Any("errors", resp.Pull.Errors).
			Msg("pull was partial, keeping the previous watermark")
	}

	if err := s.state.SaveSyncState(ctx, state); err != nil {
		return report, fmt.Errorf("save sync state: %w", err)
	}

	log.Info().
		Int("pushed", report.Pushed).
		Int("conflicts", report.Conflicts).
		Int("failed", report.Failed).
		Int("pulled", report.Pulled).
		Int("deleted", report.Deleted).
		Msg("sync round finished")

	return report, nil
}

// applyPushResults records per-change outcomes. The server answers items in
// the order they were sent.
func (s *clientSyncService) applyPushResults(ctx context.Context, pending []models.OutboxChange, push models.PushResponse,
	unsynced map[models.EntityKey]struct{}, report *models.SyncReport) error {
	if len(push.Items) != len(pending) {
		return fmt.Errorf("%w: sent %d changes, got %d results", ErrUnexpectedPushResult, len(pending), len(push.Items))
	}

	synced := make([]int64, 0, len(pending))
	for i, change := range pending {
		result := push.Items[i]
		if result.EntityType != change.EntityType || result.EntityID != change.EntityID {
			return fmt.Errorf("%w: result %d is for %s/%s", ErrUnexpectedPushResult, i, result.EntityType, result.EntityID)
		}

		var err error
		switch result.Status {
		case models.ItemStatusSynced:
			err = s.records.SetVersion(ctx, change.Key(), result.Version)
			synced = append(synced, change.ID)
			delete(unsynced, change.Key())
			report.Pushed++
		case models.ItemStatusConflict:
			err = s.outbox.MarkChange(ctx, change.ID, models.OutboxStatusConflict, result.ConflictID, "")
			report.Conflicts++
		default:
			err = s.outbox.MarkChange(ctx, change.ID, models.OutboxStatusFailed, "", result.ErrorMessage)
			report.Failed++
		}
		if err != nil {
			return fmt.Errorf("record outcome of %s: %w", change.Key(), err)
		}
	}

	if len(synced) > 0 {
		if err := s.outbox.RemoveChanges(ctx, synced...); err != nil {
			return fmt.Errorf("remove synced changes: %w", err)
		}
	}

	return nil
}

func (s *clientSyncService) applyPull(ctx context.Context, pull models.PullResponse, unsynced map[models.EntityKey]struct{}, report *models.SyncReport) error {
	log := logger.FromContext(ctx)

	for collection, records := range pull.Changes {
		entityType, err := models.ParseEntityType(collection)
		if err != nil {
			log.Warn().Str("collection", collection).Msg("skipping unknown collection")
			continue
		}

		for _, rec := range records {
			key := models.EntityKey{EntityType: entityType, EntityID: rec.ID}
			if _, ok := unsynced[key]; ok {
				continue
			}

			err := s.records.SaveRecord(ctx, models.LocalRecord{
				EntityType: entityType,
				EntityID:   rec.ID,
				Data:       rec.Data,
				Version:    rec.Version,
				UpdatedAt:  rec.UpdatedAt,
			})
			if err != nil {
				return fmt.Errorf("save pulled %s: %w", key, err)
			}
			report.Pulled++
		}
	}

	for collection, ids := range pull.DeletedIDs {
		entityType, err := models.ParseEntityType(collection)
		if err != nil {
			log.Warn().Str("collection", collection).Msg("skipping unknown collection")
			continue
		}

		for _, id := range ids {
			key := models.EntityKey{EntityType: entityType, EntityID: id}
			if _, ok := unsynced[key]; ok {
				continue
			}

			local, err := s.records.GetRecord(ctx, key)
			if errors.Is(err, store.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("read local %s: %w", key, err)
			}
			if local.Deleted {
				continue
			}

			local.Deleted = true
			local.Data = nil
			local.UpdatedAt = s.now()
			if err := s.records.SaveRecord(ctx, local); err != nil {
				return fmt.Errorf("delete local %s: %w", key, err)
			}
			report.Deleted++
		}
	}

	return nil
}

func (s *clientSyncService) Conflicts(ctx context.Context) ([]models.Conflict, error) {
	conflicts, err := s.adapter.ListConflicts(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	return conflicts, nil
}

func (s *clientSyncService) ResolveConflict(ctx context.Context, conflictID string, resolution models.Resolution, mergedData json.RawMessage) (models.ResolvedConflict, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	resolved, err := s.adapter.ResolveConflict(ctx, models.ConflictResolution{
		ConflictID: conflictID,
		Resolution: resolution,
		MergedData: mergedData,
	})
	if err != nil {
		log.Err(err).
			Str("func", "clientSyncService.ResolveConflict").
			Str("conflict_id", conflictID).
			Msg("server rejected the resolution")
		return models.ResolvedConflict{}, mapAdapterError(err)
	}

	err = s.records.SaveRecord(ctx, models.LocalRecord{
		EntityType: resolved.Conflict.EntityType,
		EntityID:   resolved.Conflict.EntityID,
		Data:       resolved.FinalData,
		Version:    resolved.FinalVersion,
		Deleted:    len(resolved.FinalData) == 0,
		UpdatedAt:  s.now(),
	})
	if err != nil {
		return resolved, fmt.Errorf("save resolved record: %w", err)
	}

	change, err := s.outbox.GetChangeByConflict(ctx, conflictID)
	switch {
	case errors.Is(err, store.ErrOutboxChangeNotFound):
	case err != nil:
		return resolved, fmt.Errorf("find parked change: %w", err)
	default:
		if err := s.outbox.RemoveChanges(ctx, change.ID); err != nil {
			return resolved, fmt.Errorf("remove parked change: %w", err)
		}
	}

	return resolved, nil
}

// Status reports local state even when the server cannot be reached.
func (s *clientSyncService) Status(ctx context.Context) (ClientStatus, error) {
	counts, err := s.outbox.CountOutbox(ctx)
	if err != nil {
		return ClientStatus{}, fmt.Errorf("count outbox: %w", err)
	}

	state, err := s.state.GetSyncState(ctx)
	if err != nil {
		return ClientStatus{}, fmt.Errorf("read sync state: %w", err)
	}

	status := ClientStatus{Outbox: counts, Local: state}

	server, err := s.adapter.Status(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "clientSyncService.Status").
			Msg("server status unavailable")
		return status, nil
	}
	status.Server = &server

	return status, nil
}
