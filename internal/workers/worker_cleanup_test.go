package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type fakeCleaner struct {
	mu    sync.Mutex
	calls []int
	err   error
	ran   chan struct{}
}

func (f *fakeCleaner) CleanupOldSyncItems(_ context.Context, daysOld int) (int64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, daysOld)
	f.mu.Unlock()

	if f.ran != nil {
		select {
		case f.ran <- struct{}{}:
		default:
		}
	}
	return 2, f.err
}

func TestCleanupWorker_PassesDaysOld(t *testing.T) {
	cleaner := &fakeCleaner{}
	w, err := newCleanupWorker(cleaner, config.Workers{CleanupSchedule: "@daily", CleanupDaysOld: 14}, logger.Nop())
	require.NoError(t, err)

	w.cleanup()

	cleaner.err = errors.New("database is down")
	w.cleanup()

	assert.Equal(t, []int{14, 14}, cleaner.calls)
}

func TestCleanupWorker_InvalidSchedule(t *testing.T) {
	_, err := newCleanupWorker(&fakeCleaner{}, config.Workers{CleanupSchedule: "every tuesday-ish"}, logger.Nop())
	assert.Error(t, err)
}

func TestCleanupWorker_RunsOnSchedule(t *testing.T) {
	cleaner := &fakeCleaner{ran: make(chan struct{}, 1)}
	w, err := newCleanupWorker(cleaner, config.Workers{CleanupSchedule: "@every 1s", CleanupDaysOld: 30}, logger.Nop())
	require.NoError(t, err)

	w.Run()
	defer w.Stop()

	select {
	case <-cleaner.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup did not run")
	}
}
