package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// errorStatuses is matched in order; storage failures come first so an error
// wrapping both a storage and a request sentinel is reported as a 500.
var errorStatuses = []struct {
	target error
	status int
}{
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrInvalidResolution, http.StatusUnprocessableEntity},
	{service.ErrConflictNotFound, http.StatusNotFound},
	{service.ErrConflictAlreadyResolved, http.StatusConflict},
	{store.ErrConflictNotFound, http.StatusNotFound},
	{store.ErrConflictAlreadyResolved, http.StatusConflict},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status mapped from err. Server-side
// failures are logged and reported without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("request failed")
		utils.WriteError(w, ErrInternalError.Error(), status)
		return
	}

	logger.FromRequest(r).Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
