// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Operation is the mutation a device asks the server to apply.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether o is one of create, update or delete.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	default:
		return false
	}
}

// EntityKey addresses a single synchronizable record.
type EntityKey struct {
	EntityType EntityType
	EntityID   string
}

func (k EntityKey) String() string {
	return k.EntityType.String() + "/" + k.EntityID
}

// SyncItem is one local change submitted by a device inside a push batch.
// It lives only for the duration of the push call and is never persisted as is.
type SyncItem struct {
	// EntityType and EntityID address the record being changed.
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`

	// Operation is the mutation to apply.
	Operation Operation `json:"operation"`

	// Data is the full record payload. Ignored for deletes.
	Data json.RawMessage `json:"data,omitempty"`

	// Version is the server version the device based its change on.
	// Zero means the device has never seen the record on the server.
	Version int64 `json:"version"`

	// LocalTimestamp is the device clock at the moment of the change.
	LocalTimestamp *time.Time `json:"localTimestamp,omitempty"`

	// DeviceID and UserID are filled by the server from the request context.
	DeviceID string `json:"-"`
	UserID   int64  `json:"-"`
}

// Key returns the address of the record the item changes.
func (i SyncItem) Key() EntityKey {
	return EntityKey{EntityType: i.EntityType, EntityID: i.EntityID}
}

// EntityVersion is the authoritative version counter for one record.
// Only the latest version is kept.
type EntityVersion struct {
	EntityType  EntityType `json:"entityType"`
	EntityID    string     `json:"entityId"`
	Version     int64      `json:"version"`
	ContentHash string     `json:"contentHash"`
	UpdatedBy   int64      `json:"updatedBy"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Record is a stored domain record as returned by pull.
// Data is the opaque payload last written by a device or by conflict resolution.
type Record struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
