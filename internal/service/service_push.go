// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// pushService runs push batches against the change storage.
//
// Items of one batch are applied strictly in order, each in its own
// transaction, so an item sees the effects of every earlier item of the same
// batch. Concurrent batches are kept safe by the version compare-and-swap
// inside [store.ChangeStorage.ApplyChange].
type pushService struct {
	changes   store.ChangeStorage
	conflicts store.ConflictRepository
	logs      store.SyncLogRepository
	queue     store.SyncQueueRepository
	devices   store.DeviceRepository

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewPushService(storages *store.Storages, ids idGenerator, logger *logger.Logger) PushService {
	return newPushService(storages, ids, logger)
}

func newPushService(storages *store.Storages, ids idGenerator, logger *logger.Logger) *pushService {
	return &pushService{
		changes:   storages.ChangeStorage,
		conflicts: storages.ConflictRepository,
		logs:      storages.SyncLogRepository,
		queue:     storages.SyncQueueRepository,
		devices:   storages.DeviceRepository,
		ids:       ids,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *pushService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	started := s.now()
	entry := models.SyncLogEntry{
		ID:             s.ids.Generate(),
		UserID:         req.UserID,
		DeviceID:       req.DeviceID,
		SyncType:       models.SyncTypePush,
		ItemsAttempted: len(req.Items),
		Status:         models.SyncStatusSyncing,
		StartedAt:      started,
	}
	if err := s.logs.OpenSyncLog(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "pushService.Push").
			Int64("user_id", req.UserID).
			Str("device_id", req.DeviceID).
			Msg("failed to open sync log")
		return models.PushResponse{}, fmt.Errorf("open sync log: %w", err)
	}

	queued := make([]models.SyncQueueItem, len(req.Items))
	for i, item := range req.Items {
		queued[i] = models.SyncQueueItem{
			ID:         s.ids.Generate(),
			SyncLogID:  entry.ID,
			UserID:     req.UserID,
			DeviceID:   req.DeviceID,
			EntityType: item.EntityType,
			EntityID:   item.EntityID,
			Operation:  item.Operation,
			Status:     models.QueueStatusPending,
			CreatedAt:  started,
			UpdatedAt:  started,
		}
	}
	if err := s.queue.EnqueueItems(ctx, queued); err != nil {
		return models.PushResponse{}, s.abort(ctx, entry, fmt.Errorf("enqueue items: %w", err))
	}

	resp := models.PushResponse{
		TotalItems: len(req.Items),
		Items:      make([]models.PushItemResult, 0, len(req.Items)),
		SyncLogID:  entry.ID,
	}

	for i, item := range req.Items {
		item.UserID = req.UserID
		item.DeviceID = req.DeviceID

		result, err := s.pushItem(ctx, queued[i].ID, item)
		if err != nil {
			entry.ItemsSynced, entry.ItemsFailed, entry.Conflicts = resp.SyncedItems, resp.FailedItems, resp.Conflicts
			return models.PushResponse{}, s.abort(ctx, entry, err)
		}

		switch result.Status {
		case models.ItemStatusSynced:
			resp.SyncedItems++
		case models.ItemStatusConflict:
			resp.Conflicts++
		default:
			resp.FailedItems++
		}
		resp.Items = append(resp.Items, result)
	}
	resp.Success = resp.SyncedItems == resp.TotalItems

	completed := s.now()
	entry.ItemsSynced = resp.SyncedItems
	entry.ItemsFailed = resp.FailedItems
	entry.Conflicts = resp.Conflicts
	entry.DurationMs = completed.Sub(started).Milliseconds()
	entry.CompletedAt = &completed
	entry.Status = models.SyncStatusSuccess
	if resp.FailedItems > 0 {
		entry.Status = models.SyncStatusPartial
	}

	if err := s.logs.CloseSyncLog(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "pushService.Push").
			Str("sync_log_id", entry.ID).
			Msg("failed to close sync log")
		return models.PushResponse{}, fmt.Errorf("close sync log: %w", err)
	}
	touchDevice(ctx, s.devices, req.UserID, req.DeviceID, req.AppVersion, completed)

	log.Info().
		Str("sync_log_id", entry.ID).
		Int64("user_id", req.UserID).
		Str("device_id", req.DeviceID).
		Int("total", resp.TotalItems).
		Int("synced", resp.SyncedItems).
		Int("conflicts", resp.Conflicts).
		Int("failed", resp.FailedItems).
		Msg("push batch processed")

	return resp, nil
}

// pushItem applies one item and records its outcome in the queue and, for
// conflicts, in the conflict store. Errors are infrastructure failures.
func (s *pushService) pushItem(ctx context.Context, queueID string, item models.SyncItem) (models.PushItemResult, error) {
	if err := s.queue.UpdateQueueStatus(ctx, queueID, models.QueueStatusSyncing, ""); err != nil {
		return models.PushItemResult{}, fmt.Errorf("mark %s syncing: %w", item.Key(), err)
	}

	applied, err := s.changes.ApplyChange(ctx, item)
	if err != nil {
		if qErr := s.queue.UpdateQueueStatus(ctx, queueID, models.QueueStatusFailed, err.Error()); qErr != nil {
			logger.FromContext(ctx).Err(qErr).
				Str("func", "pushService.pushItem").
				Str("queue_id", queueID).
				Str("entity", item.Key().String()).
				Msg("failed to mark queue item failed")
		}
		return models.PushItemResult{}, fmt.Errorf("apply %s: %w", item.Key(), err)
	}

	result := models.PushItemResult{
		EntityType: item.EntityType,
		EntityID:   item.EntityID,
		Status:     applied.Status,
	}

	switch applied.Status {
	case models.ItemStatusSynced:
		result.Version = applied.Version
	case models.ItemStatusConflict:
		conflict := models.Conflict{
			ID:            s.ids.Generate(),
			EntityType:    item.EntityType,
			EntityID:      item.EntityID,
			Operation:     item.Operation,
			LocalVersion:  item.Version,
			ServerVersion: applied.Version,
			LocalData:     item.Data,
			ServerData:    applied.ServerData,
			UserID:        item.UserID,
			DeviceID:      item.DeviceID,
			CreatedAt:     s.now(),
		}
		if item.Operation == models.OperationDelete {
			conflict.LocalData = nil
		}
		if err := s.conflicts.CreateConflict(ctx, conflict); err != nil {
			return models.PushItemResult{}, fmt.Errorf("record conflict for %s: %w", item.Key(), err)
		}
		result.ConflictID = conflict.ID
	default:
		result.ErrorMessage = applied.ErrorMessage
	}

	if err := s.queue.UpdateQueueStatus(ctx, queueID, queueStatusOf(applied.Status), applied.ErrorMessage); err != nil {
		return models.PushItemResult{}, fmt.Errorf("finalize %s: %w", item.Key(), err)
	}

	return result, nil
}

// abort closes the log as failed and returns cause.
func (s *pushService) abort(ctx context.Context, entry models.SyncLogEntry, cause error) error {
	log := logger.FromContext(ctx)

	completed := s.now()
	entry.Status = models.SyncStatusFailed
	entry.ErrorMessage = cause.Error()
	entry.CompletedAt = &completed
	entry.DurationMs = completed.Sub(entry.StartedAt).Milliseconds()

	if err := s.logs.CloseSyncLog(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "pushService.abort").
			Str("sync_log_id", entry.ID).
			Msg("failed to close sync log")
	}

	log.Err(cause).
		Str("func", "pushService.Push").
		Str("sync_log_id", entry.ID).
		Msg("push aborted")

	return cause
}

func queueStatusOf(status models.ItemStatus) models.QueueStatus {
	switch status {
	case models.ItemStatusSynced:
		return models.QueueStatusSynced
	case models.ItemStatusConflict:
		return models.QueueStatusConflict
	default:
		return models.QueueStatusFailed
	}
}

// touchDevice records the last sync time of a device. Anonymous devices are skipped.
func touchDevice(ctx context.Context, devices store.DeviceRepository, userID int64, deviceID, appVersion string, at time.Time) {
	if deviceID == "" {
		return
	}

	err := devices.TouchDevice(ctx, models.Device{
		UserID:     userID,
		DeviceID:   deviceID,
		AppVersion: appVersion,
		LastSyncAt: &at,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "touchDevice").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to update device")
	}
}
