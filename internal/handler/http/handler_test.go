package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

const (
	testToken  = "good-token"
	testUserID = int64(7)
	testKey    = "hash-key"
)

type handlerMocks struct {
	sync *mock.MockSyncService
	auth *mock.MockAuthService
	info *mock.MockAppInfoService
}

// newTestHandler builds a handler over gomock services. testToken always
// authenticates as testUserID without a pinned device.
func newTestHandler(t *testing.T, hashKey string) (*Handler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		sync: mock.NewMockSyncService(ctrl),
		auth: mock.NewMockAuthService(ctrl),
		info: mock.NewMockAppInfoService(ctrl),
	}
	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()
	m.auth.EXPECT().ParseToken(gomock.Any(), gomock.Not(testToken)).Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()

	services := &service.Services{
		AuthService:    m.auth,
		SyncService:    m.sync,
		AppInfoService: m.info,
	}
	return NewHandler(services, config.App{HashKey: hashKey}, logger.Nop()), m
}

// do sends body to the full router with a valid token and device tab-1.
func do(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(headerDeviceID, "tab-1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func TestNewHandler(t *testing.T) {
	services := &service.Services{}

	h := NewHandler(services, config.App{}, logger.Nop())
	require.NotNil(t, h)
	assert.Same(t, services, h.services)
	assert.Nil(t, h.hasher)

	h = NewHandler(services, config.App{HashKey: testKey}, logger.Nop())
	assert.NotNil(t, h.hasher)
}

func TestCaller_WithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	_, _, ok := caller(rr, req, "test")

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCaller_WithUserAndDevice(t *testing.T) {
	ctx := utils.WithDeviceID(utils.WithUserID(context.Background(), 3), "tab-9")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	userID, deviceID, ok := caller(httptest.NewRecorder(), req, "test")

	require.True(t, ok)
	assert.Equal(t, int64(3), userID)
	assert.Equal(t, "tab-9", deviceID)
}
