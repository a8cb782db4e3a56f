package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// fakeClock ticks one millisecond per reading so every write gets a
// distinct timestamp.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// seqIDs hands out readable sequential ids.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeRecord struct {
	data      json.RawMessage
	createdAt time.Time
	updatedAt time.Time
	deleted   bool
	deletedAt time.Time
}

// fakeStore keeps the server state in memory and mirrors the transactional
// semantics of the PostgreSQL storage: one lock per call plays the role of
// the version row lock.
type fakeStore struct {
	mu    sync.Mutex
	clock *fakeClock

	records   map[models.EntityKey]*fakeRecord
	versions  map[models.EntityKey]int64
	conflicts map[string]models.Conflict
	logs      map[string]models.SyncLogEntry
	queue     map[string]models.SyncQueueItem
	devices   map[string]models.Device

	// listErr makes ListUpdatedSince fail for the given types.
	listErr map[models.EntityType]error
	// closeErr makes CloseSyncLog fail, for closeErrOn only when it is set.
	closeErr   error
	closeErrOn models.SyncType
}

func newFakeStore(clock *fakeClock) *fakeStore {
	return &fakeStore{
		clock:     clock,
		records:   make(map[models.EntityKey]*fakeRecord),
		versions:  make(map[models.EntityKey]int64),
		conflicts: make(map[string]models.Conflict),
		logs:      make(map[string]models.SyncLogEntry),
		queue:     make(map[string]models.SyncQueueItem),
		devices:   make(map[string]models.Device),
		listErr:   make(map[models.EntityType]error),
	}
}

func (f *fakeStore) storages() *store.Storages {
	return &store.Storages{
		EntityVersionRepository: f,
		RecordRepository:        f,
		ChangeStorage:           f,
		ConflictRepository:      f,
		SyncLogRepository:       f,
		SyncQueueRepository:     f,
		DeviceRepository:        f,
	}
}

// ── ChangeStorage ───────────────────────────────────────────────────────────

func (f *fakeStore) ApplyChange(_ context.Context, item models.SyncItem) (store.ApplyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := item.Key()
	current, exists := f.versions[key]
	rec := f.records[key]

	if exists && current > item.Version {
		var data json.RawMessage
		if rec != nil && !rec.deleted {
			data = rec.data
		}
		return store.ApplyResult{Status: models.ItemStatusConflict, Version: current, ServerData: data}, nil
	}

	live := rec != nil && !rec.deleted
	now := f.clock.Now()
	switch item.Operation {
	case models.OperationCreate:
		if live {
			return store.ApplyResult{Status: models.ItemStatusFailed, ErrorMessage: store.ErrRecordAlreadyExists.Error()}, nil
		}
		f.records[key] = &fakeRecord{data: item.Data, createdAt: now, updatedAt: now}
	case models.OperationUpdate:
		if !live {
			return store.ApplyResult{Status: models.ItemStatusFailed, ErrorMessage: store.ErrRecordNotFound.Error()}, nil
		}
		rec.data = item.Data
		rec.updatedAt = now
	case models.OperationDelete:
		if !live {
			return store.ApplyResult{Status: models.ItemStatusFailed, ErrorMessage: store.ErrRecordNotFound.Error()}, nil
		}
		rec.data = nil
		rec.deleted = true
		rec.deletedAt = now
	}

	next := item.Version + 1
	f.versions[key] = next

	return store.ApplyResult{Status: models.ItemStatusSynced, Version: next}, nil
}

func (f *fakeStore) ResolveConflict(_ context.Context, change store.ResolveChange) (models.ResolvedConflict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.conflicts[change.ConflictID]
	if !ok || c.UserID != change.UserID {
		return models.ResolvedConflict{}, store.ErrConflictNotFound
	}
	if c.Resolved {
		return models.ResolvedConflict{}, store.ErrConflictAlreadyResolved
	}

	key := c.Key()
	finalVersion := max(c.LocalVersion, c.ServerVersion, f.versions[key])
	now := f.clock.Now()

	rec := f.records[key]
	if change.FinalData == nil {
		if rec != nil {
			rec.data = nil
			rec.deleted = true
			rec.deletedAt = now
		}
	} else {
		if rec == nil {
			rec = &fakeRecord{createdAt: now}
			f.records[key] = rec
		}
		rec.data = change.FinalData
		rec.deleted = false
		rec.updatedAt = now
	}
	f.versions[key] = finalVersion

	resolution := change.Resolution
	c.Resolved = true
	c.Resolution = &resolution
	c.ResolvedAt = &now
	f.conflicts[c.ID] = c

	return models.ResolvedConflict{Conflict: c, FinalData: change.FinalData, FinalVersion: finalVersion}, nil
}

// ── EntityVersionRepository / RecordRepository ──────────────────────────────

func (f *fakeStore) GetEntityVersion(_ context.Context, key models.EntityKey) (models.EntityVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.versions[key]
	if !ok {
		return models.EntityVersion{}, store.ErrEntityVersionNotFound
	}
	return models.EntityVersion{EntityType: key.EntityType, EntityID: key.EntityID, Version: v}, nil
}

func (f *fakeStore) ListUpdatedSince(_ context.Context, entityType models.EntityType, since time.Time) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.listErr[entityType]; err != nil {
		return nil, err
	}

	var out []models.Record
	for key, rec := range f.records {
		if key.EntityType != entityType || rec.deleted || !rec.updatedAt.After(since) {
			continue
		}
		out = append(out, models.Record{
			ID:        key.EntityID,
			Data:      rec.data,
			Version:   f.versions[key],
			CreatedAt: rec.createdAt,
			UpdatedAt: rec.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeStore) ListDeletedSince(_ context.Context, entityType models.EntityType, since time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for key, rec := range f.records {
		if key.EntityType == entityType && rec.deleted && rec.deletedAt.After(since) {
			out = append(out, key.EntityID)
		}
	}
	sort.Strings(out)

	return out, nil
}

// ── ConflictRepository ──────────────────────────────────────────────────────

func (f *fakeStore) CreateConflict(_ context.Context, conflict models.Conflict) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts[conflict.ID] = conflict
	return nil
}

func (f *fakeStore) GetConflict(_ context.Context, conflictID string) (models.Conflict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.conflicts[conflictID]
	if !ok {
		return models.Conflict{}, store.ErrConflictNotFound
	}
	return c, nil
}

func (f *fakeStore) ListOpenConflicts(_ context.Context, userID int64) ([]models.Conflict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Conflict
	for _, c := range f.conflicts {
		if c.UserID == userID && !c.Resolved {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeStore) CountOpenConflicts(ctx context.Context, userID int64) (int, error) {
	open, err := f.ListOpenConflicts(ctx, userID)
	return len(open), err
}

// ── SyncLogRepository ───────────────────────────────────────────────────────

func (f *fakeStore) OpenSyncLog(_ context.Context, entry models.SyncLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs[entry.ID] = entry
	return nil
}

func (f *fakeStore) CloseSyncLog(_ context.Context, entry models.SyncLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closeErr != nil && (f.closeErrOn == "" || f.closeErrOn == entry.SyncType) {
		return f.closeErr
	}
	f.logs[entry.ID] = entry
	return nil
}

func (f *fakeStore) GetLastSyncLog(ctx context.Context, userID int64, deviceID string) (*models.SyncLogEntry, error) {
	entries, err := f.ListSyncLogs(ctx, userID, deviceID, 1)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

func (f *fakeStore) ListSyncLogs(_ context.Context, userID int64, deviceID string, limit int) ([]models.SyncLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.SyncLogEntry
	for _, e := range f.logs {
		if e.UserID == userID && (deviceID == "" || e.DeviceID == deviceID) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// ── SyncQueueRepository ─────────────────────────────────────────────────────

func (f *fakeStore) EnqueueItems(_ context.Context, items []models.SyncQueueItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.queue[item.ID] = item
	}
	return nil
}

func (f *fakeStore) UpdateQueueStatus(_ context.Context, itemID string, status models.QueueStatus, errorMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := f.queue[itemID]
	item.Status = status
	item.ErrorMessage = errorMessage
	item.UpdatedAt = f.clock.Now()
	f.queue[itemID] = item
	return nil
}

func (f *fakeStore) CountQueueByStatus(_ context.Context, userID int64, deviceID string) (models.QueueCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var counts models.QueueCounts
	for _, item := range f.queue {
		if item.UserID != userID || (deviceID != "" && item.DeviceID != deviceID) {
			continue
		}
		switch item.Status {
		case models.QueueStatusPending:
			counts.Pending++
		case models.QueueStatusSyncing:
			counts.Syncing++
		case models.QueueStatusFailed:
			counts.Failed++
		}
	}
	return counts, nil
}

func (f *fakeStore) DeleteSyncedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for id, item := range f.queue {
		if item.Status == models.QueueStatusSynced && item.UpdatedAt.Before(cutoff) {
			delete(f.queue, id)
			removed++
		}
	}
	return removed, nil
}

// ── DeviceRepository ────────────────────────────────────────────────────────

func (f *fakeStore) TouchDevice(_ context.Context, device models.Device) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices[fmt.Sprintf("%d/%s", device.UserID, device.DeviceID)] = device
	return nil
}

func (f *fakeStore) GetDevice(_ context.Context, userID int64, deviceID string) (models.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.devices[fmt.Sprintf("%d/%s", userID, deviceID)]
	if !ok {
		return models.Device{}, store.ErrDeviceNotFound
	}
	return d, nil
}

// newTestSyncService wires a syncService over a fresh fake store sharing
// one clock.
func newTestSyncService() (*syncService, *fakeStore) {
	clock := newFakeClock()
	fs := newFakeStore(clock)
	ids := &seqIDs{}
	storages := fs.storages()

	push := newPushService(storages, ids, nopLogger)
	push.now = clock.Now
	pull := newPullService(storages, ids, nopLogger)
	pull.now = clock.Now

	svc := &syncService{
		PushService:     push,
		PullService:     pull,
		ConflictService: NewConflictService(storages, nopLogger),
		conflicts:       fs,
		logs:            fs,
		queue:           fs,
		devices:         fs,
		now:             clock.Now,
		logger:          nopLogger,
	}

	return svc, fs
}
