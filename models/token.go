// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// SyncClaims is the claim set of a device access token.
// The subject carries the numeric user id; DeviceID optionally pins the
// token to a single device.
type SyncClaims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"did,omitempty"`
}

// Token is a parsed or freshly signed device access token.
type Token struct {
	*jwt.Token `json:"-"`
	SyncClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// UserID caches the parsed subject claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to int64: %w", err)
	}

	return userID, nil
}

func (t *Token) String() string {
	return t.SignedString
}
