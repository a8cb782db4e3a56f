package http

import (
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// auth authenticates the bearer token and stores the user id and the calling
// device id in the request context.
//
// The device id comes from the token when the token is pinned to a device,
// otherwise from the X-Device-ID header. A pinned token presented with a
// different X-Device-ID is rejected with 403.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		deviceID := r.Header.Get(headerDeviceID)
		if token.DeviceID != "" {
			if deviceID != "" && deviceID != token.DeviceID {
				log.Warn().Str("token_device", token.DeviceID).Str("header_device", deviceID).Msg("device mismatch")
				utils.WriteError(w, ErrDeviceMismatch.Error(), http.StatusForbidden)
				return
			}
			deviceID = token.DeviceID
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = utils.WithDeviceID(ctx, deviceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
