package postgres

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestMigratorRejectsUnknownSource(t *testing.T) {
	m := NewMigrator("nosuchscheme://migrations", "postgres://localhost:1/db?sslmode=disable", zerolog.Nop())

	if err := m.Up(); err == nil {
		t.Fatalf("expected error for unknown source driver")
	}

	if err := m.Down(); err == nil {
		t.Fatalf("expected error for unknown source driver")
	}

	if _, _, err := m.Version(); err == nil {
		t.Fatalf("expected error for unknown source driver")
	}
}
