// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

var nopLogger = logger.Nop()

const testUserID = int64(7)

func patient(id string, op models.Operation, version int64, data string) models.SyncItem {
	item := models.SyncItem{EntityType: models.EntityPatient, EntityID: id, Operation: op, Version: version}
	if data != "" {
		item.Data = json.RawMessage(data)
	}
	return item
}

func pushReq(deviceID string, items ...models.SyncItem) models.PushRequest {
	return models.PushRequest{UserID: testUserID, DeviceID: deviceID, AppVersion: "1.0.0", Items: items}
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_VersionsAdvanceByOne(t *testing.T) {
	svc, fs := newTestSyncService()
	ctx := context.Background()

	resp, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{"name":"Ana"}`)))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, models.ItemStatusSynced, resp.Items[0].Status)
	assert.Equal(t, int64(1), resp.Items[0].Version)

	resp, err = svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationUpdate, 1, `{"name":"Ana Maria"}`)))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Items[0].Version)

	key := models.EntityKey{EntityType: models.EntityPatient, EntityID: "p-1"}
	assert.Equal(t, int64(2), fs.versions[key])
	assert.JSONEq(t, `{"name":"Ana Maria"}`, string(fs.records[key].data))
}

func TestPush_ItemsOfOneBatchSeeEarlierItems(t *testing.T) {
	svc, _ := newTestSyncService()

	resp, err := svc.Push(context.Background(), pushReq("tab-1",
		patient("p-1", models.OperationCreate, 0, `{"a":1}`),
		patient("p-1", models.OperationUpdate, 1, `{"a":2}`),
		patient("p-1", models.OperationDelete, 2, ""),
	))

	require.NoError(t, err)
	assert.Equal(t, 3, resp.SyncedItems)
	assert.Equal(t, []int64{1, 2, 3}, []int64{resp.Items[0].Version, resp.Items[1].Version, resp.Items[2].Version})
}

func TestPush_StaleBaseVersionBecomesConflict(t *testing.T) {
	svc, fs := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{"v":"server"}`)))
	require.NoError(t, err)

	resp, err := svc.Push(ctx, pushReq("tab-2", patient("p-1", models.OperationUpdate, 0, `{"v":"device"}`)))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	result := resp.Items[0]
	assert.Equal(t, models.ItemStatusConflict, result.Status)
	require.NotEmpty(t, result.ConflictID)
	assert.False(t, resp.Success)
	assert.Equal(t, 1, resp.Conflicts)
	assert.Zero(t, resp.FailedItems)

	conflict := fs.conflicts[result.ConflictID]
	assert.Equal(t, int64(0), conflict.LocalVersion)
	assert.Equal(t, int64(1), conflict.ServerVersion)
	assert.JSONEq(t, `{"v":"device"}`, string(conflict.LocalData))
	assert.JSONEq(t, `{"v":"server"}`, string(conflict.ServerData))
	assert.Equal(t, "tab-2", conflict.DeviceID)
	assert.False(t, conflict.Resolved)

	// nothing written
	key := models.EntityKey{EntityType: models.EntityPatient, EntityID: "p-1"}
	assert.Equal(t, int64(1), fs.versions[key])
	assert.JSONEq(t, `{"v":"server"}`, string(fs.records[key].data))

	// conflicts are not failures
	assert.Equal(t, models.SyncStatusSuccess, fs.logs[resp.SyncLogID].Status)
}

func TestPush_DeleteConflictKeepsNoLocalData(t *testing.T) {
	svc, fs := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-1",
		patient("p-1", models.OperationCreate, 0, `{"a":1}`),
		patient("p-1", models.OperationUpdate, 1, `{"a":2}`),
	))
	require.NoError(t, err)

	resp, err := svc.Push(ctx, pushReq("tab-2", patient("p-1", models.OperationDelete, 1, "")))
	require.NoError(t, err)

	conflict := fs.conflicts[resp.Items[0].ConflictID]
	assert.Equal(t, models.OperationDelete, conflict.Operation)
	assert.Nil(t, conflict.LocalData)
}

func TestPush_RejectedItemsFail(t *testing.T) {
	svc, fs := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))
	require.NoError(t, err)

	resp, err := svc.Push(ctx, pushReq("tab-1",
		patient("missing", models.OperationUpdate, 0, `{}`),
		patient("p-1", models.OperationCreate, 1, `{}`),
		patient("p-2", models.OperationCreate, 0, `{}`),
	))
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalItems)
	assert.Equal(t, 2, resp.FailedItems)
	assert.Equal(t, 1, resp.SyncedItems)
	assert.Equal(t, resp.TotalItems, resp.SyncedItems+resp.FailedItems+resp.Conflicts)

	assert.Equal(t, models.ItemStatusFailed, resp.Items[0].Status)
	assert.Equal(t, store.ErrRecordNotFound.Error(), resp.Items[0].ErrorMessage)
	assert.Equal(t, store.ErrRecordAlreadyExists.Error(), resp.Items[1].ErrorMessage)
	assert.Equal(t, models.ItemStatusSynced, resp.Items[2].Status)

	entry := fs.logs[resp.SyncLogID]
	assert.Equal(t, models.SyncStatusPartial, entry.Status)
	assert.Equal(t, 2, entry.ItemsFailed)
	require.NotNil(t, entry.CompletedAt)
}

func TestPush_ClientVersionAheadIsAccepted(t *testing.T) {
	svc, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))
	require.NoError(t, err)

	resp, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationUpdate, 5, `{"x":1}`)))
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusSynced, resp.Items[0].Status)
	assert.Equal(t, int64(6), resp.Items[0].Version)
}

func TestPush_RetryOfAcceptedBatchDegradesToConflict(t *testing.T) {
	svc, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))
	require.NoError(t, err)

	retry := pushReq("tab-1", patient("p-1", models.OperationUpdate, 1, `{"n":1}`))
	first, err := svc.Push(ctx, retry)
	require.NoError(t, err)
	require.Equal(t, models.ItemStatusSynced, first.Items[0].Status)

	second, err := svc.Push(ctx, retry)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusConflict, second.Items[0].Status)
}

func TestPush_ConcurrentWritersLoseNoUpdate(t *testing.T) {
	svc, fs := newTestSyncService()
	ctx := context.Background()

	_, err := svc.Push(ctx, pushReq("tab-0", patient("p-1", models.OperationCreate, 0, `{}`)))
	require.NoError(t, err)

	const writers = 8
	results := make([]models.PushItemResult, writers)

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Push(ctx, pushReq("tab", patient("p-1", models.OperationUpdate, 1, `{"w":1}`)))
			if assert.NoError(t, err) {
				results[i] = resp.Items[0]
			}
		}()
	}
	wg.Wait()

	var synced, conflicts int
	for _, r := range results {
		switch r.Status {
		case models.ItemStatusSynced:
			synced++
		case models.ItemStatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, synced)
	assert.Equal(t, writers-1, conflicts)
	assert.Equal(t, int64(2), fs.versions[models.EntityKey{EntityType: models.EntityPatient, EntityID: "p-1"}])
}

func TestPush_TouchesDevice(t *testing.T) {
	svc, fs := newTestSyncService()

	_, err := svc.Push(context.Background(), pushReq("tab-9", patient("p-1", models.OperationCreate, 0, `{}`)))
	require.NoError(t, err)

	device, err := fs.GetDevice(context.Background(), testUserID, "tab-9")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", device.AppVersion)
	assert.NotNil(t, device.LastSyncAt)
}

// ── Push with mocked storage ────────────────────────────────────────────────

func newMockedPushService(ctrl *gomock.Controller) (*pushService, *mock.MockChangeStorage, *mock.MockSyncLogRepository, *mock.MockSyncQueueRepository) {
	changes := mock.NewMockChangeStorage(ctrl)
	logs := mock.NewMockSyncLogRepository(ctrl)
	queue := mock.NewMockSyncQueueRepository(ctrl)

	svc := newPushService(&store.Storages{
		ChangeStorage:       changes,
		ConflictRepository:  mock.NewMockConflictRepository(ctrl),
		SyncLogRepository:   logs,
		SyncQueueRepository: queue,
		DeviceRepository:    mock.NewMockDeviceRepository(ctrl),
	}, &seqIDs{}, nopLogger)

	return svc, changes, logs, queue
}

func TestPush_InfrastructureErrorAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, changes, logs, queue := newMockedPushService(ctrl)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	var closed models.SyncLogEntry
	logs.EXPECT().OpenSyncLog(ctx, gomock.Any()).Return(nil)
	queue.EXPECT().EnqueueItems(ctx, gomock.Len(1)).Return(nil)
	queue.EXPECT().UpdateQueueStatus(ctx, gomock.Any(), models.QueueStatusSyncing, "").Return(nil)
	changes.EXPECT().ApplyChange(ctx, gomock.Any()).Return(store.ApplyResult{}, dbErr)
	queue.EXPECT().UpdateQueueStatus(ctx, gomock.Any(), models.QueueStatusFailed, gomock.Any()).Return(nil)
	logs.EXPECT().CloseSyncLog(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.SyncLogEntry) error {
			closed = entry
			return nil
		},
	)

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, models.SyncStatusFailed, closed.Status)
	assert.Contains(t, closed.ErrorMessage, "connection reset")
}

func TestPush_OpenSyncLogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, logs, _ := newMockedPushService(ctrl)
	ctx := context.Background()

	logs.EXPECT().OpenSyncLog(ctx, gomock.Any()).Return(errors.New("db down"))

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))
	assert.Error(t, err)
}

func TestPush_CloseSyncLogErrorFailsCall(t *testing.T) {
	svc, fs := newTestSyncService()
	fs.closeErr = errors.New("disk full")

	resp, err := svc.Push(context.Background(), pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.closeErr)
	assert.Zero(t, resp.SyncedItems)
	assert.False(t, resp.Success)
}

func TestPush_QueueFailureOnAbortKeepsCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, changes, logs, queue := newMockedPushService(ctrl)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	logs.EXPECT().OpenSyncLog(ctx, gomock.Any()).Return(nil)
	queue.EXPECT().EnqueueItems(ctx, gomock.Len(1)).Return(nil)
	queue.EXPECT().UpdateQueueStatus(ctx, gomock.Any(), models.QueueStatusSyncing, "").Return(nil)
	changes.EXPECT().ApplyChange(ctx, gomock.Any()).Return(store.ApplyResult{}, dbErr)
	queue.EXPECT().UpdateQueueStatus(ctx, gomock.Any(), models.QueueStatusFailed, gomock.Any()).Return(errors.New("queue gone"))
	logs.EXPECT().CloseSyncLog(ctx, gomock.Any()).Return(nil)

	_, err := svc.Push(ctx, pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`)))

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotContains(t, err.Error(), "queue gone")
}
