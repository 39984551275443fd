package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers for optimistic records and mutations.
// UUIDv7 keeps ids time-ordered, which makes the durable mutation log easier
// to read; generation falls back to a random v4 id when v7 fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
