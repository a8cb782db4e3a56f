// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync requests before any processing happens.
//
// A Validator accepts any supported request value and optionally a list of
// field names that restricts which rules run. Services call it first and
// reject the whole call on the first violation.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
