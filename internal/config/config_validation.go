// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// validate checks the settings the sync server cannot start without.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.MaxPushBatch <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.CleanupDaysOld <= 0 {
		return ErrInvalidWorkerConfigs
	}
	if _, err := cron.ParseStandard(cfg.Workers.CleanupSchedule); err != nil {
		return fmt.Errorf("%w: cleanup schedule: %w", ErrInvalidWorkerConfigs, err)
	}

	return nil
}

// validate checks the settings the device agent cannot start without.
func (cfg *ClientConfig) validate() error {
	if cfg.App.DeviceID == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.AuthToken == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
