package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_ConfigVersionWins(t *testing.T) {
	build := models.NewAppBuildInfo("0.9.0", "2026-04-01", "abc123")

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, build, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "abc123", svc.GetBuildInfo(context.Background()).Commit)
}

func TestNewAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	build := models.NewAppBuildInfo("0.9.0", "", "")

	svc, err := NewAppInfoService(config.App{}, build, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "0.9.0", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "N/A", svc.GetBuildInfo(context.Background()).Date)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_VersionWithSpecialChars(t *testing.T) {
	version := "v1.2.3-beta+build.42"
	svc, err := NewAppInfoService(config.App{Version: version}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

// ─────────────────────────────────────────────
// ParseToken
// ─────────────────────────────────────────────

func TestAuthService_ParseToken(t *testing.T) {
	cfg := config.App{TokenSignKey: "secret", TokenIssuer: "field-id"}
	svc := NewAuthService(cfg, logger.Nop())
	ctx := context.Background()

	valid, err := utils.GenerateJWTToken("field-id", 42, "tab-1", time.Hour, "secret")
	require.NoError(t, err)

	token, err := svc.ParseToken(ctx, valid.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, "tab-1", token.DeviceID)

	tests := []struct {
		name   string
		issuer string
		key    string
		ttl    time.Duration
	}{
		{name: "wrong key", issuer: "field-id", key: "other", ttl: time.Hour},
		{name: "wrong issuer", issuer: "someone", key: "secret", ttl: time.Hour},
		{name: "expired", issuer: "field-id", key: "secret", ttl: -time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad, err := utils.GenerateJWTToken(tt.issuer, 42, "", tt.ttl, tt.key)
			require.NoError(t, err)

			_, err = svc.ParseToken(ctx, bad.SignedString)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}

	_, err = svc.ParseToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
