// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// cleanupTimeout bounds one cleanup run.
const cleanupTimeout = 5 * time.Minute

type cleanupWorker struct {
	cleaner queueCleaner
	daysOld int
	cron    *cron.Cron

	logger *logger.Logger
}

func newCleanupWorker(cleaner queueCleaner, cfg config.Workers, logger *logger.Logger) (*cleanupWorker, error) {
	cl := cronLogger{logger}
	w := &cleanupWorker{
		cleaner: cleaner,
		daysOld: cfg.CleanupDaysOld,
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:  logger,
	}

	if _, err := w.cron.AddFunc(cfg.CleanupSchedule, w.cleanup); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", cfg.CleanupSchedule, err)
	}

	return w, nil
}

func (w *cleanupWorker) Run() {
	w.logger.Info().Int("days_old", w.daysOld).Msg("cleanup worker started")
	w.cron.Start()
}

func (w *cleanupWorker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info().Msg("cleanup worker stopped")
}

func (w *cleanupWorker) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	ctx, log := w.logger.WithTraceID(ctx, uuid.NewString())

	removed, err := w.cleaner.CleanupOldSyncItems(ctx, w.daysOld)
	if err != nil {
		log.Err(err).Str("func", "*cleanupWorker.cleanup").Msg("sync queue cleanup failed")
		return
	}

	log.Info().Int64("removed", removed).Int("days_old", w.daysOld).Msg("sync queue cleaned up")
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct {
	logger *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.logger.Err(err).Fields(keysAndValues).Msg(msg)
}
