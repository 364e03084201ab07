// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dongaedu/edunews/internal/store"
)

// TestDB opens a migrated SQLite database in a test temp directory. The
// database is closed when the test finishes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := store.NewDB(path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// TestLogger returns a logger that discards all output.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
