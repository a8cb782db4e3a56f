package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// decodeBody reads a JSON request body into v. An empty body is accepted
// only when allowEmpty is set, leaving v untouched.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}

// caller returns the authenticated user and device of the request.
func caller(w http.ResponseWriter, r *http.Request, funcName string) (int64, string, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Str("func", funcName).Msg("no user ID was given")
		utils.WriteError(w, ErrNoUserID.Error(), http.StatusUnauthorized)
		return 0, "", false
	}
	return userID, utils.GetDeviceIDFromContext(r.Context()), true
}

// orDefault returns v, or fallback when v is empty.
func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.push"

	userID, deviceID, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	var req models.PushRequest
	if err := decodeBody(r, &req, false); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	req.UserID = userID
	req.DeviceID = orDefault(req.DeviceID, deviceID)
	req.AppVersion = orDefault(req.AppVersion, r.Header.Get(headerAppVersion))

	resp, err := h.services.SyncService.Push(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.pull"

	userID, deviceID, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	var req models.PullRequest
	if err := decodeBody(r, &req, true); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	req.UserID = userID
	req.DeviceID = orDefault(req.DeviceID, deviceID)

	resp, err := h.services.SyncService.Pull(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) fullSync(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.fullSync"

	userID, deviceID, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	var req models.FullSyncRequest
	if err := decodeBody(r, &req, true); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	req.UserID = userID
	req.DeviceID = orDefault(req.DeviceID, deviceID)
	req.AppVersion = orDefault(req.AppVersion, r.Header.Get(headerAppVersion))

	resp, err := h.services.SyncService.FullSync(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.listConflicts"

	userID, _, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	conflicts, err := h.services.SyncService.ListOpenConflicts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}

	_, _ = utils.WriteJSON(w, conflicts, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.resolveConflict"

	userID, _, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	var req models.ConflictResolution
	if err := decodeBody(r, &req, false); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	req.ConflictID = chi.URLParam(r, "conflictID")
	req.UserID = userID

	resolved, err := h.services.SyncService.ResolveConflict(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}

	_, _ = utils.WriteJSON(w, resolved, http.StatusOK)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.status"

	userID, deviceID, ok := caller(w, r, funcName)
	if !ok {
		return
	}
	deviceID = orDefault(r.URL.Query().Get("deviceId"), deviceID)

	snapshot, err := h.services.SyncService.GetSyncStatus(r.Context(), userID, deviceID)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}

	_, _ = utils.WriteJSON(w, snapshot, http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	const funcName = "*Handler.history"

	userID, _, ok := caller(w, r, funcName)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := models.SyncHistoryRequest{
		UserID:   userID,
		DeviceID: query.Get("deviceId"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, ErrInvalidLimit.Error(), http.StatusBadRequest)
			return
		}
		req.Limit = limit
	}

	entries, err := h.services.SyncService.GetSyncHistory(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, funcName, err)
		return
	}
	if entries == nil {
		entries = []models.SyncLogEntry{}
	}

	_, _ = utils.WriteJSON(w, entries, http.StatusOK)
}
