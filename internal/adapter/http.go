package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// Request headers understood by the sync server.
const (
	HeaderDeviceID   = "X-Device-ID"
	HeaderAppVersion = "X-App-Version"
	HeaderHash       = "HashSHA256"
)

type httpServerAdapter struct {
	client *resty.Client

	deviceID   string
	appVersion string

	// hasher signs request bodies; nil when no hash key is configured.
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty-based [ServerAdapter].
// adapterCfg.HTTPAddress may omit the scheme, "http" is assumed then.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpServerAdapter{
		client:     client,
		deviceID:   appCfg.DeviceID,
		appVersion: appCfg.AppVersion,
		token:      strings.TrimSpace(adapterCfg.AuthToken),
		logger:     logger,
	}
	if appCfg.HashKey != "" {
		a.hasher = utils.NewHasher(appCfg.HashKey)
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// FullSync POSTs req to /api/sync. The body is signed when a hash key is set.
func (h *httpServerAdapter) FullSync(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResponse, error) {
	if req.DeviceID == "" {
		req.DeviceID = h.deviceID
	}
	if req.AppVersion == "" {
		req.AppVersion = h.appVersion
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.FullSyncResponse{}, fmt.Errorf("encode full sync request: %w", err)
	}

	var result models.FullSyncResponse
	resp, err := h.signedRequest(ctx, body).
		SetResult(&result).
		Post("/api/sync")
	if err != nil {
		h.logger.Err(err).Str("func", "httpServerAdapter.FullSync").Msg("full sync request failed")
		return models.FullSyncResponse{}, fmt.Errorf("full sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FullSyncResponse{}, err
	}

	return result, nil
}

// ListConflicts GETs /api/sync/conflicts.
func (h *httpServerAdapter) ListConflicts(ctx context.Context) ([]models.Conflict, error) {
	var conflicts []models.Conflict

	resp, err := h.authedRequest(ctx).
		SetResult(&conflicts).
		Get("/api/sync/conflicts")
	if err != nil {
		return nil, fmt.Errorf("list conflicts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return conflicts, nil
}

// ResolveConflict POSTs the chosen strategy to
// /api/sync/conflicts/{conflictID}/resolve.
func (h *httpServerAdapter) ResolveConflict(ctx context.Context, req models.ConflictResolution) (models.ResolvedConflict, error) {
	var resolved models.ResolvedConflict

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("conflictID", req.ConflictID).
		SetBody(req).
		SetResult(&resolved).
		Post("/api/sync/conflicts/{conflictID}/resolve")
	if err != nil {
		return models.ResolvedConflict{}, fmt.Errorf("resolve conflict request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ResolvedConflict{}, err
	}

	return resolved, nil
}

// Status GETs /api/sync/status for the configured device.
func (h *httpServerAdapter) Status(ctx context.Context) (models.SyncStatusSnapshot, error) {
	var snapshot models.SyncStatusSnapshot

	resp, err := h.authedRequest(ctx).
		SetQueryParam("deviceId", h.deviceID).
		SetResult(&snapshot).
		Get("/api/sync/status")
	if err != nil {
		return models.SyncStatusSnapshot{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatusSnapshot{}, err
	}

	return snapshot, nil
}

// ServerVersion GETs /api/version/, which needs no token.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if h.deviceID != "" {
		req.SetHeader(HeaderDeviceID, h.deviceID)
	}
	if h.appVersion != "" {
		req.SetHeader(HeaderAppVersion, h.appVersion)
	}
	return req
}

// signedRequest sends body as is so the signature covers the exact bytes.
func (h *httpServerAdapter) signedRequest(ctx context.Context, body []byte) *resty.Request {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hasher != nil {
		req.SetHeader(HeaderHash, h.hasher.HexSum(body))
	}
	return req
}
