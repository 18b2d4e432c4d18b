// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/vitrine/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "vitrine-sched-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSweeper struct{ called bool }

func (f *fakeSweeper) Sweep() int { f.called = true; return 2 }

type fakeCleaner struct{ called bool }

func (f *fakeCleaner) Cleanup(int) bool { f.called = true; return false }

func TestSweepLimiters(t *testing.T) {
	sweeper := &fakeSweeper{}
	cleaner := &fakeCleaner{}
	s := New(testDB(t), discardLogger(), sweeper, cleaner)

	s.sweepLimiters()

	if !sweeper.called {
		t.Error("sweeper should be called")
	}
	if !cleaner.called {
		t.Error("cleaner should be called")
	}
}

func TestSweepLimitersNilCollaborators(t *testing.T) {
	s := New(testDB(t), discardLogger(), nil, nil)
	s.sweepLimiters() // must not panic
}

func TestClearExpiredResetTokens(t *testing.T) {
	db := testDB(t)
	s := New(db, discardLogger(), nil, nil)

	ctx := context.Background()
	q := store.New(db)
	now := time.Now()

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "admin", PasswordHash: "hash.salt", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := q.SetResetToken(ctx, store.SetResetTokenParams{
		ResetToken:       "stale",
		ResetTokenExpiry: now.Add(-time.Hour),
		UpdatedAt:        now,
		ID:               user.ID,
	}); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}

	if err := s.clearExpiredResetTokens(); err != nil {
		t.Fatalf("clearExpiredResetTokens: %v", err)
	}

	if _, err := q.GetUserByResetToken(ctx, "stale"); err != sql.ErrNoRows {
		t.Errorf("stale token should be cleared, err = %v", err)
	}
}

func TestStartStop(t *testing.T) {
	s := New(testDB(t), discardLogger(), &fakeSweeper{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
