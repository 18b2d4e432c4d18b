// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDBAndMigrate(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "vitrine-db-*.db")
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	db, err := NewDB(tmpFile.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())

	// Migrations are tracked by goose and safe to run twice.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	// WAL mode is persistent in the database file.
	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}
