package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

func TestCheckHash_RestoresBody(t *testing.T) {
	h := NewHandler(&service.Services{}, config.App{HashKey: testKey}, logger.Nop())
	body := `{"items":[]}`

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(b)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(headerHash, utils.NewHasher(testKey).HexSum([]byte(body)))
	rr := httptest.NewRecorder()
	h.checkHash(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, body, seen)
}

func TestCheckHash_DisabledWithoutKey(t *testing.T) {
	h := NewHandler(&service.Services{}, config.App{}, logger.Nop())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	h.checkHash(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestCheckHash_WrongKey(t *testing.T) {
	h := NewHandler(&service.Services{}, config.App{HashKey: testKey}, logger.Nop())
	body := `{"items":[]}`

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(headerHash, utils.NewHasher("other-key").HexSum([]byte(body)))
	rr := httptest.NewRecorder()
	h.checkHash(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrHashMismatch.Error())
}
