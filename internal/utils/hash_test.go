// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "test-secret-key"

func TestHasher_SumMatchesHMAC(t *testing.T) {
	h := NewHasher(testHashKey)
	data := []byte(`{"items":[]}`)

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(data)

	assert.Equal(t, mac.Sum(nil), h.Sum(data))
	assert.Equal(t, h.Sum(data), h.Sum(data), "hash must be deterministic")
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher(testHashKey)
	body := []byte(`{"deviceId":"d1"}`)
	sum := h.HexSum(body)

	tests := []struct {
		name string
		body []byte
		sum  string
		want bool
	}{
		{name: "valid", body: body, sum: sum, want: true},
		{name: "tampered body", body: []byte(`{"deviceId":"d2"}`), sum: sum, want: false},
		{name: "not hex", body: body, sum: "zz", want: false},
		{name: "empty", body: body, sum: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.body, tt.sum))
		})
	}
}

func TestHasher_DifferentKeys(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t, NewHasher("a").HexSum(data), NewHasher("b").HexSum(data))
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher(testHashKey)
	want := h.HexSum([]byte("x"))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, h.HexSum([]byte("x")))
		}()
	}
	wg.Wait()
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(`{"name":"Ana"}`))
	b := Fingerprint([]byte(`{"name":"Ana"}`))
	c := Fingerprint([]byte(`{"name":"Bea"}`))

	raw, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
