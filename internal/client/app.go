package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

const usage = `usage:
  field-sync-client [flags]                                  keep syncing until stopped
  field-sync-client [flags] sync                             run one sync round
  field-sync-client [flags] record <type> <id> <op> [json]   record a local change
  field-sync-client [flags] conflicts                        list open conflicts
  field-sync-client [flags] resolve <id> <strategy> [json]   resolve a conflict
  field-sync-client [flags] tui                              browse and resolve conflicts interactively
  field-sync-client [flags] status                           show sync status`

type App struct {
	sync    service.ClientSyncService
	workers runner
	browser conflictBrowser
	out     io.Writer

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, workers runner, browser conflictBrowser, out io.Writer, logger *logger.Logger) *App {
	return &App{
		sync:    services.SyncService,
		workers: workers,
		browser: browser,
		out:     out,
		logger:  logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.runLoop(ctx)
	}

	command, rest := args[0], args[1:]
	a.logger.Debug().Str("command", command).Strs("args", rest).Msg("running command")

	switch command {
	case "run":
		return a.runLoop(ctx)
	case "sync":
		return a.syncOnce(ctx)
	case "record":
		return a.record(ctx, rest)
	case "conflicts":
		return a.conflicts(ctx)
	case "resolve":
		return a.resolve(ctx, rest)
	case "tui":
		return a.browser.Conflicts(ctx)
	case "status":
		return a.status(ctx)
	case "help":
		_, err := fmt.Fprintln(a.out, usage)
		return err
	default:
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, command, usage)
	}
}

// runLoop keeps the background sync running until ctx is cancelled.
func (a *App) runLoop(ctx context.Context) error {
	a.logger.Info().Msg("device agent started")
	a.workers.Run()

	<-ctx.Done()

	a.workers.Stop()
	a.logger.Info().Msg("device agent stopped")
	return nil
}

func (a *App) syncOnce(ctx context.Context) error {
	report, err := a.sync.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return a.print(report)
}

func (a *App) record(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("%w: record <type> <id> <create|update|delete> [json]", ErrUsage)
	}

	var data json.RawMessage
	if len(args) == 4 {
		data = json.RawMessage(args[3])
	}

	entityType := models.EntityType(args[0])
	if err := a.sync.RecordChange(ctx, entityType, args[1], models.Operation(args[2]), data); err != nil {
		return fmt.Errorf("error recording change: %w", err)
	}

	return a.print(map[string]string{
		"entityType": string(entityType),
		"entityId":   args[1],
		"status":     "queued",
	})
}

func (a *App) conflicts(ctx context.Context) error {
	conflicts, err := a.sync.Conflicts(ctx)
	if err != nil {
		return fmt.Errorf("error listing conflicts: %w", err)
	}
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	return a.print(conflicts)
}

func (a *App) resolve(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: resolve <id> <local_wins|server_wins|merge|manual> [json]", ErrUsage)
	}

	var merged json.RawMessage
	if len(args) == 3 {
		merged = json.RawMessage(args[2])
	}

	resolved, err := a.sync.ResolveConflict(ctx, args[0], models.Resolution(args[1]), merged)
	if err != nil {
		return fmt.Errorf("error resolving conflict %s: %w", args[0], err)
	}
	return a.print(resolved)
}

func (a *App) status(ctx context.Context) error {
	status, err := a.sync.Status(ctx)
	if err != nil {
		return fmt.Errorf("error getting status: %w", err)
	}
	return a.print(status)
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
