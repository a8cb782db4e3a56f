// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ItemStatus is the outcome of a single push item.
type ItemStatus string

const (
	ItemStatusSynced   ItemStatus = "synced"
	ItemStatusConflict ItemStatus = "conflict"
	ItemStatusFailed   ItemStatus = "failed"
)

// PushItemResult reports what happened to one push item.
type PushItemResult struct {
	EntityType   EntityType `json:"entityType"`
	EntityID     string     `json:"entityId"`
	Status       ItemStatus `json:"status"`
	ConflictID   string     `json:"conflictId,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`

	// Version is the new server version of the record, set only when synced.
	Version int64 `json:"version,omitempty"`
}

// PushResponse summarizes a push batch.
//
// The counters always satisfy SyncedItems + FailedItems + Conflicts == TotalItems.
// Success is true only when every item was synced.
type PushResponse struct {
	Success     bool             `json:"success"`
	TotalItems  int              `json:"totalItems"`
	SyncedItems int              `json:"syncedItems"`
	FailedItems int              `json:"failedItems"`
	Conflicts   int              `json:"conflicts"`
	Items       []PushItemResult `json:"items"`
	SyncLogID   string           `json:"syncLogId"`
}

// PullResponse carries server changes keyed by plural entity type name.
type PullResponse struct {
	// LastSyncTimestamp is the new watermark the device must send next time.
	LastSyncTimestamp time.Time           `json:"lastSyncTimestamp"`
	Changes           map[string][]Record `json:"changes"`
	DeletedIDs        map[string][]string `json:"deletedIds"`
	TotalChanges      int                 `json:"totalChanges"`

	// Errors lists entity types whose fetch failed, keyed like Changes.
	Errors map[string]string `json:"errors,omitempty"`
}

// FullSyncResponse is the result of a combined push and pull.
// Push is nil when the request carried no items or when the push failed.
type FullSyncResponse struct {
	Push       *PushResponse `json:"push"`
	PushError  string        `json:"pushError,omitempty"`
	Pull       *PullResponse `json:"pull"`
	DurationMs int64         `json:"durationMs"`
}

// Tombstone marks a record deleted on the server so pulls can propagate it.
type Tombstone struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	DeletedAt  time.Time  `json:"deletedAt"`
}
