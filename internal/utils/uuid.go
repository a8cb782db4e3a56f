package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered UUIDv7 strings for conflicts,
// sync log entries and queue rows.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate falls back to a random v4 id if the v7 clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
