package config

import (
	"fmt"
	"os"
	"time"
)

// ClientConfig is the device agent's view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers

	// Command is the subcommand and its arguments; empty runs the sync loop.
	Command []string
}

// ClientApp identifies the device and optionally signs request bodies.
type ClientApp struct {
	DeviceID   string
	AppVersion string
	HashKey    string
	LogLevel   string
}

// ClientAdapter is the connection to the sync server.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	AuthToken      string
}

// ClientStorage holds the local SQLite database path.
type ClientStorage struct {
	DSN string
}

// ClientWorkers holds the periodic sync interval.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// GetClientConfig loads the merged configuration and maps the device agent
// fields out of it.
func GetClientConfig() (*ClientConfig, error) {
	return getClientConfig(os.Args[1:])
}

func getClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := load(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			DeviceID:   cfg.App.DeviceID,
			AppVersion: cfg.App.Version,
			HashKey:    cfg.App.HashKey,
			LogLevel:   cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AuthToken:      cfg.Adapter.AuthToken,
		},
		Storage: ClientStorage{
			DSN: cfg.Storage.DB.DSN,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Command: cfg.Command,
	}
}
