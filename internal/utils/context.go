// Package utils holds small helpers shared by the server and the device
// agent: request-context keys, HMAC and content hashing, JSON responses,
// access tokens and id generation.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user id (int64) in a request context.
var UserIDCtxKey = contextKey("userID")

// DeviceIDCtxKey stores the calling device id (string) in a request context.
var DeviceIDCtxKey = contextKey("deviceID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext reports the user id stored by the auth middleware.
// ok is false when the value is missing or has the wrong type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithDeviceID returns a copy of ctx carrying deviceID. Empty ids are not stored.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	if deviceID == "" {
		return ctx
	}
	return context.WithValue(ctx, DeviceIDCtxKey, deviceID)
}

// GetDeviceIDFromContext returns the device id, or "" when none was set.
func GetDeviceIDFromContext(ctx context.Context) string {
	deviceID, _ := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID
}
