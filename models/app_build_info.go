// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata injected by linker flags.
// The server reports it from the version endpoint and both binaries log it
// on startup.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"buildDate,omitempty"`
	Commit  string `json:"buildCommit,omitempty"`
}

// NewAppBuildInfo replaces empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
