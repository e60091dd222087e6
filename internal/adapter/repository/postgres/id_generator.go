package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates prefixed, time-ordered IDs such as "RCPT-01J...".
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID with the given prefix.
func (g *ULIDGenerator) Generate(prefix string) string {
	return prefix + ulid.Make().String()
}
