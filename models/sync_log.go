// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncType tells a push session from a pull session in the sync log.
type SyncType string

const (
	SyncTypePush SyncType = "push"
	SyncTypePull SyncType = "pull"
)

// SyncStatus is the lifecycle state of a [SyncLogEntry].
type SyncStatus string

const (
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLogEntry describes one push or pull session.
// It is created with status syncing and finalized once; completed entries are immutable.
type SyncLogEntry struct {
	ID             string     `json:"id"`
	UserID         int64      `json:"userId"`
	DeviceID       string     `json:"deviceId,omitempty"`
	SyncType       SyncType   `json:"syncType"`
	ItemsAttempted int        `json:"itemsAttempted"`
	ItemsSynced    int        `json:"itemsSynced"`
	ItemsFailed    int        `json:"itemsFailed"`
	Conflicts      int        `json:"conflicts"`
	DurationMs     int64      `json:"durationMs"`
	Status         SyncStatus `json:"status"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
}

// QueueStatus is the state of one item in the server-side sync queue.
type QueueStatus string

const (
	QueueStatusPending  QueueStatus = "pending"
	QueueStatusSyncing  QueueStatus = "syncing"
	QueueStatusSynced   QueueStatus = "synced"
	QueueStatusConflict QueueStatus = "conflict"
	QueueStatusFailed   QueueStatus = "failed"
)

// SyncQueueItem tracks one push item from arrival to its final outcome.
type SyncQueueItem struct {
	ID           string      `json:"id"`
	SyncLogID    string      `json:"syncLogId"`
	UserID       int64       `json:"userId"`
	DeviceID     string      `json:"deviceId,omitempty"`
	EntityType   EntityType  `json:"entityType"`
	EntityID     string      `json:"entityId"`
	Operation    Operation   `json:"operation"`
	Status       QueueStatus `json:"status"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// QueueCounts aggregates sync queue rows by status.
type QueueCounts struct {
	Pending int `json:"pending"`
	Syncing int `json:"syncing"`
	Failed  int `json:"failed"`
}

// Device holds the metadata the server keeps per user device.
type Device struct {
	UserID     int64      `json:"userId"`
	DeviceID   string     `json:"deviceId"`
	AppVersion string     `json:"appVersion,omitempty"`
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`
}

// SyncStatusSnapshot is the derived status view returned to devices.
type SyncStatusSnapshot struct {
	Pending       int           `json:"pending"`
	Syncing       int           `json:"syncing"`
	Failed        int           `json:"failed"`
	OpenConflicts int           `json:"openConflicts"`
	LastSync      *SyncLogEntry `json:"lastSync,omitempty"`
	Device        *Device       `json:"device,omitempty"`
}
