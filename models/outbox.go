package models

import (
	"encoding/json"
	"time"
)

// OutboxStatus is the state of a local change waiting to be pushed.
type OutboxStatus string

const (
	OutboxStatusPending  OutboxStatus = "pending"
	OutboxStatusConflict OutboxStatus = "conflict"
	OutboxStatusFailed   OutboxStatus = "failed"
)

// OutboxChange is a local change recorded on the device and not yet
// accepted by the server. Synced changes are removed from the outbox.
type OutboxChange struct {
	ID          int64
	EntityType  EntityType
	EntityID    string
	Operation   Operation
	Data        json.RawMessage
	BaseVersion int64
	Status      OutboxStatus

	// ConflictID is set when the server answered with a conflict.
	ConflictID   string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Key returns the address of the changed record.
func (c OutboxChange) Key() EntityKey {
	return EntityKey{EntityType: c.EntityType, EntityID: c.EntityID}
}

// SyncItem converts the change into a push item.
func (c OutboxChange) SyncItem() SyncItem {
	createdAt := c.CreatedAt
	return SyncItem{
		EntityType:     c.EntityType,
		EntityID:       c.EntityID,
		Operation:      c.Operation,
		Data:           c.Data,
		Version:        c.BaseVersion,
		LocalTimestamp: &createdAt,
	}
}

// OutboxCounts aggregates outbox rows by status.
type OutboxCounts struct {
	Pending   int `json:"pending"`
	Conflicts int `json:"conflicts"`
	Failed    int `json:"failed"`
}

// LocalRecord is the device copy of a record. Version is the last server
// version the device has seen; zero for records never synced.
type LocalRecord struct {
	EntityType EntityType      `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Data       json.RawMessage `json:"data,omitempty"`
	Version    int64           `json:"version"`
	Deleted    bool            `json:"deleted"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Key returns the address of the record.
func (r LocalRecord) Key() EntityKey {
	return EntityKey{EntityType: r.EntityType, EntityID: r.EntityID}
}

// SyncState is the device sync bookkeeping. LastPullAt is the server
// watermark to send with the next pull.
type SyncState struct {
	LastPullAt *time.Time `json:"lastPullAt,omitempty"`
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`
}

// SyncReport summarizes one device sync round.
type SyncReport struct {
	Pushed    int       `json:"pushed"`
	Conflicts int       `json:"conflicts"`
	Failed    int       `json:"failed"`
	Pulled    int       `json:"pulled"`
	Deleted   int       `json:"deleted"`
	PushError string    `json:"pushError,omitempty"`
	Watermark time.Time `json:"watermark"`
}
