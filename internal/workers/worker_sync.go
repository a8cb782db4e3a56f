package workers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// syncWorker runs a device sync right away and then every interval.
type syncWorker struct {
	syncer   deviceSyncer
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func newSyncWorker(syncer deviceSyncer, interval time.Duration, logger *logger.Logger) *syncWorker {
	return &syncWorker{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

func (w *syncWorker) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx)
	}()
}

func (w *syncWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *syncWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.syncOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *syncWorker) syncOnce(ctx context.Context) {
	ctx, log := w.logger.WithTraceID(ctx, uuid.NewString())

	report, err := w.syncer.Sync(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Err(err).Str("func", "*syncWorker.syncOnce").Msg("sync failed")
		}
		return
	}

	event := log.Info()
	if report.PushError != "" {
		event = log.Warn().Str("push_error", report.PushError)
	}
	event.
		Int("pushed", report.Pushed).
		Int("conflicts", report.Conflicts).
		Int("failed", report.Failed).
		Int("pulled", report.Pulled).
		Int("deleted", report.Deleted).
		Time("watermark", report.Watermark).
		Msg("sync finished")
}
