package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/models"
)

var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/sync"},
	{http.MethodPost, "/api/sync/push"},
	{http.MethodPost, "/api/sync/pull"},
	{http.MethodGet, "/api/sync/conflicts"},
	{http.MethodPost, "/api/sync/conflicts/c-1/resolve"},
	{http.MethodGet, "/api/sync/status"},
	{http.MethodGet, "/api/sync/history"},
}

func TestInit_VersionIsPublic(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.info.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	h, _ := newTestHandler(t, "")
	router := h.Init()

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestInit_ProtectedRoutes_RejectBadToken(t *testing.T) {
	h, _ := newTestHandler(t, "")
	router := h.Init()

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer forged")

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	h, _ := newTestHandler(t, "")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/totally/wrong"},
		{http.MethodPost, "/api/sync/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := do(h, tt.method, tt.path, "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t, "")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/version/"},
		{http.MethodPost, "/api/version/"},
		{http.MethodGet, "/api/sync/push"},
		{http.MethodPut, "/api/sync/conflicts"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := do(h, tt.method, tt.path, "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_EchoesTraceID(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.sync.EXPECT().ListOpenConflicts(gomock.Any(), testUserID).Return([]models.Conflict{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/conflicts", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(headerTraceID, "trace-42")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "trace-42", rr.Header().Get(headerTraceID))
}
