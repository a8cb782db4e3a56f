package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Hasher signs request bodies with HMAC-SHA256.
// Hash instances are pooled per key.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the raw HMAC of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()
	mac.Write(data)
	sum := mac.Sum(nil)
	h.pool.Put(mac)

	return sum
}

// HexSum returns the hex-encoded HMAC of data, the form sent in the HashSHA256 header.
func (h *Hasher) HexSum(data []byte) string {
	return hex.EncodeToString(h.Sum(data))
}

// Verify compares hexSum with the HMAC of data in constant time.
func (h *Hasher) Verify(data []byte, hexSum string) bool {
	got, err := hex.DecodeString(hexSum)
	if err != nil {
		return false
	}
	return hmac.Equal(got, h.Sum(data))
}

// Fingerprint returns the hex BLAKE2b-256 digest of a record payload.
// Entity versions store it so repeated writes of the same content can be spotted.
func Fingerprint(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
