// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors returned by the auth and hashing middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrDeviceMismatch is returned when a token pinned to one device is sent
	// with another device id.
	ErrDeviceMismatch = errors.New("token is not issued for this device")

	ErrMissingHash   = errors.New("missing `HashSHA256` header")
	ErrHashMismatch  = errors.New("integrity check failed")
	ErrNoUserID      = errors.New("no user id in request context")
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrInvalidLimit  = errors.New("limit must be an integer")
	ErrInternalError = errors.New("internal server error")
)
