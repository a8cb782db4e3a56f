package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors [StructuredConfig] with snake_case keys and string durations.
type jsonConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		HashKey      string `json:"hash_key"`
		Version      string `json:"version"`
		MaxPushBatch int    `json:"max_push_batch"`
		LogLevel     string `json:"log_level"`
		DeviceID     string `json:"device_id"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthToken      string   `json:"auth_token"`
	} `json:"adapter"`

	Workers struct {
		CleanupSchedule string   `json:"cleanup_schedule"`
		CleanupDaysOld  int      `json:"cleanup_days_old"`
		SyncInterval    Duration `json:"sync_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jc jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&jc); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: jc.App.TokenSignKey,
			TokenIssuer:  jc.App.TokenIssuer,
			HashKey:      jc.App.HashKey,
			Version:      jc.App.Version,
			MaxPushBatch: jc.App.MaxPushBatch,
			LogLevel:     jc.App.LogLevel,
			DeviceID:     jc.App.DeviceID,
		},
		Storage: Storage{
			DB: DB{DSN: jc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jc.Server.HTTPAddress,
			GRPCAddress:    jc.Server.GRPCAddress,
			RequestTimeout: time.Duration(jc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jc.Adapter.RequestTimeout),
			AuthToken:      jc.Adapter.AuthToken,
		},
		Workers: Workers{
			CleanupSchedule: jc.Workers.CleanupSchedule,
			CleanupDaysOld:  jc.Workers.CleanupDaysOld,
			SyncInterval:    time.Duration(jc.Workers.SyncInterval),
		},
	}, nil
}

// Duration accepts "1h30m" style strings or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
