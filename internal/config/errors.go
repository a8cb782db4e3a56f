package config

import "errors"

// Validation errors returned when a configuration group is incomplete.
var (
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configuration")
)
