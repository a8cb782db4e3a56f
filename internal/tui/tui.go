// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interactive conflict browser of the device agent.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

type TUI struct {
	sync   service.ClientSyncService
	logger *logger.Logger
}

func New(services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{sync: services.SyncService, logger: logger}
}

// Conflicts runs the conflict browser until the operator quits or ctx ends.
func (t *TUI) Conflicts(ctx context.Context) error {
	model := newConflictsModel(ctx, t.sync, clipboard.WriteAll)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Str("func", "TUI.Conflicts").Msg("conflict browser failed")
		return fmt.Errorf("conflict browser: %w", err)
	}

	return nil
}
