// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushRequest is a batch of local changes submitted by a device.
// Items are applied in the order given.
type PushRequest struct {
	UserID     int64      `json:"-"`
	DeviceID   string     `json:"deviceId,omitempty"`
	AppVersion string     `json:"appVersion,omitempty"`
	Items      []SyncItem `json:"items"`
}

// PullRequest asks for every change made on the server after a watermark.
type PullRequest struct {
	UserID   int64  `json:"-"`
	DeviceID string `json:"deviceId,omitempty"`

	// LastSyncTimestamp is the watermark returned by the previous pull.
	// Nil means the device has never pulled and wants everything.
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp,omitempty"`

	// EntityTypes restricts the pull to the listed types, singular or plural
	// names. Empty means all known types.
	EntityTypes []string `json:"entityTypes,omitempty"`
}

// FullSyncRequest combines a push and a pull into one round trip.
type FullSyncRequest struct {
	UserID            int64      `json:"-"`
	DeviceID          string     `json:"deviceId,omitempty"`
	AppVersion        string     `json:"appVersion,omitempty"`
	Items             []SyncItem `json:"items,omitempty"`
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp,omitempty"`
	EntityTypes       []string   `json:"entityTypes,omitempty"`
}

// PushRequest extracts the push half of the full sync request.
func (r FullSyncRequest) PushRequest() PushRequest {
	return PushRequest{
		UserID:     r.UserID,
		DeviceID:   r.DeviceID,
		AppVersion: r.AppVersion,
		Items:      r.Items,
	}
}

// PullRequest extracts the pull half of the full sync request.
func (r FullSyncRequest) PullRequest() PullRequest {
	return PullRequest{
		UserID:            r.UserID,
		DeviceID:          r.DeviceID,
		LastSyncTimestamp: r.LastSyncTimestamp,
		EntityTypes:       r.EntityTypes,
	}
}

// SyncHistoryRequest selects sync log entries for a user.
type SyncHistoryRequest struct {
	UserID   int64
	DeviceID string
	Limit    int
}
