// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the device agent.
//
// Without a command the agent keeps the device in sync in the background
// until it is stopped. The commands record, sync, conflicts, resolve and
// status give field tooling and operators one-shot access to the same
// operations; results are printed as JSON.
package client
