package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/client"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/tui"
	"github.com/MKhiriev/go-field-sync/internal/workers"
	"github.com/MKhiriev/go-field-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("field-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("invalid log level, keeping debug")
	}
	if cfg.App.AppVersion == "" {
		cfg.App.AppVersion = buildInfo.Version
	}
	log.Info().Any("build", buildInfo).Str("device_id", cfg.App.DeviceID).Msg("starting device agent")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local storage")
	}
	defer func() {
		if err := localStorage.Close(); err != nil {
			log.Err(err).Msg("error closing local storage")
		}
	}()

	services := service.NewClientServices(localStorage, serverAdapter, cfg.App, log)
	jobs := workers.NewClientWorkers(services, cfg.Workers, log)

	app := client.NewApp(services, jobs, tui.New(services, log), os.Stdout, log)
	if err = app.Run(ctx, cfg.Command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Err(err).Msg("client run error")
		exitCode = 1
	}
}
