package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

func newValidated(t *testing.T, maxBatch int) (SyncService, *mock.MockSyncService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	inner := mock.NewMockSyncService(ctrl)
	return NewSyncValidationService(maxBatch).Wrap(inner), inner
}

func TestSyncValidation_Push(t *testing.T) {
	ctx := context.Background()
	good := pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `{}`))

	t.Run("valid request is delegated", func(t *testing.T) {
		svc, inner := newValidated(t, 10)
		inner.EXPECT().Push(ctx, good).Return(models.PushResponse{Success: true}, nil)

		resp, err := svc.Push(ctx, good)
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	tests := []struct {
		name    string
		req     models.PushRequest
		wantErr error
	}{
		{name: "no user", req: models.PushRequest{Items: good.Items}, wantErr: validators.ErrInvalidUserID},
		{name: "empty batch", req: pushReq("tab-1"), wantErr: validators.ErrEmptyItems},
		{name: "batch too large", req: pushReq("tab-1", good.Items[0], good.Items[0]), wantErr: validators.ErrBatchTooLarge},
		{name: "array payload", req: pushReq("tab-1", patient("p-1", models.OperationCreate, 0, `[1]`)), wantErr: validators.ErrDataNotObject},
		{name: "unknown type", req: pushReq("tab-1", models.SyncItem{EntityType: "invoice", EntityID: "i", Operation: models.OperationDelete}), wantErr: validators.ErrInvalidEntityType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newValidated(t, 1)

			_, err := svc.Push(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSyncValidation_Pull(t *testing.T) {
	ctx := context.Background()

	svc, inner := newValidated(t, 0)
	req := models.PullRequest{UserID: testUserID, EntityTypes: []string{"visits"}}
	inner.EXPECT().Pull(ctx, req).Return(models.PullResponse{TotalChanges: 3}, nil)

	resp, err := svc.Pull(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalChanges)

	_, err = svc.Pull(ctx, models.PullRequest{UserID: testUserID, EntityTypes: []string{"invoices"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSyncValidation_FullSyncWithoutItems(t *testing.T) {
	ctx := context.Background()

	svc, inner := newValidated(t, 0)
	req := models.FullSyncRequest{UserID: testUserID}
	inner.EXPECT().FullSync(ctx, req).Return(models.FullSyncResponse{Pull: &models.PullResponse{}}, nil)

	resp, err := svc.FullSync(ctx, req)
	require.NoError(t, err)
	assert.NotNil(t, resp.Pull)
}

func TestSyncValidation_ResolveConflict(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.ConflictResolution
		wantErr error
	}{
		{name: "missing id", req: models.ConflictResolution{UserID: testUserID, Resolution: models.ResolutionLocalWins}, wantErr: ErrValidation},
		{name: "unknown strategy", req: models.ConflictResolution{ConflictID: "c", UserID: testUserID, Resolution: "later"}, wantErr: ErrInvalidResolution},
		{name: "merge without data", req: models.ConflictResolution{ConflictID: "c", UserID: testUserID, Resolution: models.ResolutionMerge}, wantErr: ErrInvalidResolution},
		{name: "manual with scalar", req: models.ConflictResolution{ConflictID: "c", UserID: testUserID, Resolution: models.ResolutionManual, MergedData: json.RawMessage(`42`)}, wantErr: ErrInvalidResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newValidated(t, 0)

			_, err := svc.ResolveConflict(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSyncValidation_UserScopedQueries(t *testing.T) {
	ctx := context.Background()
	svc, inner := newValidated(t, 0)

	_, err := svc.ListOpenConflicts(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.GetSyncStatus(ctx, -1, "tab")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.GetSyncHistory(ctx, models.SyncHistoryRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	inner.EXPECT().ListOpenConflicts(ctx, testUserID).Return(nil, nil)
	inner.EXPECT().GetSyncStatus(ctx, testUserID, "tab").Return(models.SyncStatusSnapshot{}, nil)
	inner.EXPECT().GetSyncHistory(ctx, models.SyncHistoryRequest{UserID: testUserID}).Return(nil, nil)
	inner.EXPECT().CleanupOldSyncItems(ctx, 30).Return(int64(4), nil)

	_, err = svc.ListOpenConflicts(ctx, testUserID)
	require.NoError(t, err)
	_, err = svc.GetSyncStatus(ctx, testUserID, "tab")
	require.NoError(t, err)
	_, err = svc.GetSyncHistory(ctx, models.SyncHistoryRequest{UserID: testUserID})
	require.NoError(t, err)

	removed, err := svc.CleanupOldSyncItems(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}
