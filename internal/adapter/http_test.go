// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

const testHashKey = "testhashkey"

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second, AuthToken: " tok "}
	appCfg := config.ClientApp{DeviceID: "tablet-1", AppVersion: "1.2.0", HashKey: testHashKey}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── FullSync ────────────────────────────────────────────────────────────────

func TestFullSync_Success(t *testing.T) {
	watermark := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "tablet-1", r.Header.Get(HeaderDeviceID))
		assert.Equal(t, "1.2.0", r.Header.Get(HeaderAppVersion))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, utils.NewHasher(testHashKey).Verify(body, r.Header.Get(HeaderHash)), "body signature")

		var req models.FullSyncRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "tablet-1", req.DeviceID)
		require.Len(t, req.Items, 1)

		writeJSON(t, w, http.StatusOK, models.FullSyncResponse{
			Push: &models.PushResponse{Success: true, TotalItems: 1, SyncedItems: 1, Items: []models.PushItemResult{
				{EntityType: models.EntityPatient, EntityID: "p-1", Status: models.ItemStatusSynced, Version: 1},
			}},
			Pull: &models.PullResponse{LastSyncTimestamp: watermark, Changes: map[string][]models.Record{}, DeletedIDs: map[string][]string{}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.FullSync(context.Background(), models.FullSyncRequest{
		Items: []models.SyncItem{{EntityType: models.EntityPatient, EntityID: "p-1", Operation: models.OperationCreate, Data: json.RawMessage(`{}`)}},
	})

	require.NoError(t, err)
	require.NotNil(t, got.Push)
	assert.Equal(t, 1, got.Push.SyncedItems)
	require.NotNil(t, got.Pull)
	assert.True(t, got.Pull.LastSyncTimestamp.Equal(watermark))
}

func TestFullSync_NoHashKeyNoSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HeaderHash))
		writeJSON(t, w, http.StatusOK, models.FullSyncResponse{Pull: &models.PullResponse{}})
	}))
	defer srv.Close()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: srv.URL}, config.ClientApp{}, logger.Nop())
	require.NoError(t, err)

	_, err = a.FullSync(context.Background(), models.FullSyncRequest{})
	require.NoError(t, err)
}

func TestFullSync_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "internal", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).FullSync(context.Background(), models.FullSyncRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

// ── Conflicts ───────────────────────────────────────────────────────────────

func TestListConflicts_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/conflicts", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.Conflict{{ID: "c-1", EntityType: models.EntityVisit, EntityID: "v-1"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c-1", got[0].ID)
}

func TestResolveConflict_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/conflicts/c-7/resolve", r.URL.Path)

		var body models.ConflictResolution
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.ResolutionMerge, body.Resolution)
		assert.JSONEq(t, `{"a":1}`, string(body.MergedData))

		writeJSON(t, w, http.StatusOK, models.ResolvedConflict{
			Conflict: models.Conflict{ID: "c-7", Resolved: true}, FinalData: json.RawMessage(`{"a":1}`), FinalVersion: 5,
		})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ResolveConflict(context.Background(), models.ConflictResolution{
		ConflictID: "c-7", Resolution: models.ResolutionMerge, MergedData: json.RawMessage(`{"a":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.FinalVersion)
	assert.True(t, got.Conflict.Resolved)
}

func TestResolveConflict_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unknown conflict", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "already resolved", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "bad strategy", status: http.StatusUnprocessableEntity, wantErr: ErrUnprocessable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).ResolveConflict(context.Background(), models.ConflictResolution{ConflictID: "c-1"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Status / ServerVersion ──────────────────────────────────────────────────

func TestStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/status", r.URL.Path)
		assert.Equal(t, "tablet-1", r.URL.Query().Get("deviceId"))
		writeJSON(t, w, http.StatusOK, models.SyncStatusSnapshot{Pending: 2, OpenConflicts: 1})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 1, got.OpenConflicts)
}

func TestServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("2.0.1\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", got)
}

func TestToken(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	assert.Equal(t, "tok", a.Token())

	a.SetToken("  next ")
	assert.Equal(t, "next", a.Token())
}

// ── normalizeBaseURL ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "https://sync.example.org/", want: "https://sync.example.org"},
		{raw: "  http://10.0.0.1:9000  ", want: "http://10.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	assert.Error(t, err)
}
