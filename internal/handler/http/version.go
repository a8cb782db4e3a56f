package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// getServerVersion answers with the plain version string, or with the full
// build info when the caller accepts JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		_, _ = utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(ctx), http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(h.services.AppInfoService.GetAppVersion(ctx)))
}
