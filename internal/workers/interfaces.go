// Package workers runs the background jobs of the sync server and the device
// agent: the scheduled sync queue cleanup and the periodic device sync.
package workers

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

// Worker is a background job. Run starts it without blocking; Stop halts it
// and waits for a job that is already running.
type Worker interface {
	Run()
	Stop()
}

// queueCleaner removes old synced queue rows.
type queueCleaner interface {
	CleanupOldSyncItems(ctx context.Context, daysOld int) (int64, error)
}

// deviceSyncer runs one device sync round.
type deviceSyncer interface {
	Sync(ctx context.Context) (models.SyncReport, error)
}
