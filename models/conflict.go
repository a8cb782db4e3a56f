// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Resolution is the strategy chosen to settle a [Conflict].
type Resolution string

const (
	// ResolutionLocalWins keeps the payload the device submitted.
	ResolutionLocalWins Resolution = "local_wins"

	// ResolutionServerWins keeps the payload already stored on the server.
	ResolutionServerWins Resolution = "server_wins"

	// ResolutionMerge stores caller-supplied merged data.
	ResolutionMerge Resolution = "merge"

	// ResolutionManual stores caller-supplied data edited by a person.
	ResolutionManual Resolution = "manual"
)

// Valid reports whether r is a known resolution strategy.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionLocalWins, ResolutionServerWins, ResolutionMerge, ResolutionManual:
		return true
	default:
		return false
	}
}

// RequiresData reports whether the strategy needs caller-supplied merged data.
func (r Resolution) RequiresData() bool {
	return r == ResolutionMerge || r == ResolutionManual
}

// Conflict records a push item whose base version was behind the server.
//
// A conflict is created OPEN (Resolved == false) and transitions once to
// RESOLVED. Resolution and ResolvedAt are set at that moment and never change.
type Conflict struct {
	ID         string     `json:"id"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`

	// Operation is the rejected operation the device tried to apply.
	Operation Operation `json:"operation"`

	LocalVersion  int64 `json:"localVersion"`
	ServerVersion int64 `json:"serverVersion"`

	// CurrentVersion is the stored version when the conflict was listed. It is
	// greater than ServerVersion when the record changed after detection.
	CurrentVersion int64 `json:"currentVersion,omitempty"`

	LocalData  json.RawMessage `json:"localData,omitempty"`
	ServerData json.RawMessage `json:"serverData,omitempty"`

	UserID   int64  `json:"userId"`
	DeviceID string `json:"deviceId,omitempty"`

	Resolved   bool        `json:"resolved"`
	Resolution *Resolution `json:"resolution,omitempty"`
	ResolvedAt *time.Time  `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Key returns the address of the record the conflict is about.
func (c Conflict) Key() EntityKey {
	return EntityKey{EntityType: c.EntityType, EntityID: c.EntityID}
}

// ConflictResolution is the input of a resolve call.
type ConflictResolution struct {
	ConflictID string          `json:"-"`
	UserID     int64           `json:"-"`
	Resolution Resolution      `json:"resolution"`
	MergedData json.RawMessage `json:"mergedData,omitempty"`
}

// ResolvedConflict carries the settled payload and version written by a resolution.
type ResolvedConflict struct {
	Conflict     Conflict        `json:"conflict"`
	FinalData    json.RawMessage `json:"finalData,omitempty"`
	FinalVersion int64           `json:"finalVersion"`
}
