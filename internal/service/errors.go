package service

import "errors"

var (
	// ErrValidation wraps every request validation failure.
	ErrValidation = errors.New("validation failed")

	ErrConflictNotFound        = errors.New("conflict not found")
	ErrConflictAlreadyResolved = errors.New("conflict already resolved")

	// ErrInvalidResolution is returned for unknown strategies and for merge or
	// manual resolutions without usable merged data.
	ErrInvalidResolution = errors.New("invalid conflict resolution")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	// ErrPullFailed is returned when no requested entity type could be fetched.
	ErrPullFailed = errors.New("pull failed for every entity type")

	ErrUnexpectedPushResult = errors.New("push result does not match the submitted changes")
)
