// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the merged configuration of the sync server and the
// device agent. Each binary reads the groups it needs; see [GetStructuredConfig]
// and [GetClientConfig].
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath points to an optional JSON file merged after env and flags.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`

	// Command holds the positional arguments left after the flags, e.g. the
	// device agent subcommand.
	Command []string
}

// App holds protocol and security settings.
type App struct {
	// TokenSignKey verifies device access tokens (HS256).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey enables the HashSHA256 body signature on push and full sync
	// requests. Empty disables the check.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is reported by /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// MaxPushBatch caps the number of items in one push.
	// Env: APP_MAX_PUSH_BATCH
	MaxPushBatch int `env:"MAX_PUSH_BATCH"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// DeviceID identifies the device agent to the server.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection string. The server expects a PostgreSQL
// DSN, the device agent a SQLite file path.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds listener settings of the sync server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health endpoint when set.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the device agent's connection to the sync server.
type Adapter struct {
	// HTTPAddress is the base URL of the sync server, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthToken is the bearer token issued to the device by the identity service.
	// Env: ADAPTER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// Workers holds background job settings.
type Workers struct {
	// CleanupSchedule is a cron expression or descriptor for the queue cleanup job.
	// Env: WORKERS_CLEANUP_SCHEDULE
	CleanupSchedule string `env:"CLEANUP_SCHEDULE"`

	// CleanupDaysOld is the age in days after which synced queue rows are removed.
	// Env: WORKERS_CLEANUP_DAYS_OLD
	CleanupDaysOld int `env:"CLEANUP_DAYS_OLD"`

	// SyncInterval is how often the device agent runs a full sync.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Defaults applied before any other source.
const (
	DefaultTokenIssuer     = "go-field-sync"
	DefaultMaxPushBatch    = 500
	DefaultRequestTimeout  = 30 * time.Second
	DefaultCleanupSchedule = "@daily"
	DefaultCleanupDaysOld  = 30
	DefaultSyncInterval    = time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:  DefaultTokenIssuer,
			MaxPushBatch: DefaultMaxPushBatch,
			LogLevel:     "debug",
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			CleanupSchedule: DefaultCleanupSchedule,
			CleanupDaysOld:  DefaultCleanupDaysOld,
			SyncInterval:    DefaultSyncInterval,
		},
	}
}

// GetStructuredConfig loads the server configuration from defaults,
// environment, command-line flags and the optional JSON file, in that order,
// later non-zero values overriding earlier ones, and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := load(os.Args[1:])
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func load(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	return cfg, nil
}
