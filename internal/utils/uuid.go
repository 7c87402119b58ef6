package utils

import "github.com/google/uuid"

// UUIDGenerator produces opaque identifiers for records and capture
// sessions. UUIDv7 keeps identifiers roughly time-ordered, which makes the
// newest-first record listing cheap to eyeball in storage dumps.
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
