package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		server   config.Server
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both addresses", server: config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, wantHTTP: true, wantGRPC: true},
		{name: "only HTTP", server: config.Server{HTTPAddress: ":8080"}, wantHTTP: true},
		{name: "only gRPC", server: config.Server{GRPCAddress: ":9090"}, wantGRPC: true},
		{name: "no addresses", wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.StructuredConfig{Server: tt.server, App: config.App{HashKey: "k"}}

			h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}
