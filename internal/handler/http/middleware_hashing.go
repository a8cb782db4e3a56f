package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// checkHash verifies the HMAC-SHA256 of the raw request body against the
// HashSHA256 header. It is a no-op when the server runs without a hash key.
func (h *Handler) checkHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		sum := r.Header.Get(headerHash)
		if sum == "" {
			log.Err(ErrMissingHash).Send()
			utils.WriteError(w, ErrMissingHash.Error(), http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Msg("failed to read request body")
			utils.WriteError(w, ErrInternalError.Error(), http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, sum) {
			log.Error().Str("hash from request", sum).Msg("hashes are not equal")
			utils.WriteError(w, ErrHashMismatch.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
