// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args and blocks until it is done.
	Run(ctx context.Context, args []string) error
}

// runner is a background job set, see workers.Workers.
type runner interface {
	Run()
	Stop()
}

// conflictBrowser is the interactive conflict UI, see tui.TUI.
type conflictBrowser interface {
	Conflicts(ctx context.Context) error
}
