// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance: clearing expired reset
// tokens and keeping rate limiter memory bounded.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/vitrine/internal/store"
)

// maxLoginLimiterEntries bounds the per-IP login throttle cache.
const maxLoginLimiterEntries = 10000

// Sweeper releases expired rate limit counters.
type Sweeper interface {
	Sweep() int
}

// Cleaner clears a limiter cache once it exceeds a size threshold.
type Cleaner interface {
	Cleanup(maxSize int) bool
}

// Scheduler handles periodic maintenance jobs.
type Scheduler struct {
	db      *sql.DB
	cron    *cron.Cron
	logger  *slog.Logger
	sweeper Sweeper
	cleaner Cleaner
}

// New creates a scheduler. sweeper and cleaner may be nil when the
// corresponding subsystem is not in use (e.g. Redis-backed counters).
func New(db *sql.DB, logger *slog.Logger, sweeper Sweeper, cleaner Cleaner) *Scheduler {
	return &Scheduler{
		db:      db,
		cron:    cron.New(),
		logger:  logger,
		sweeper: sweeper,
		cleaner: cleaner,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Expired reset tokens, every 10 minutes
	if _, err := s.cron.AddFunc("*/10 * * * *", func() {
		if err := s.clearExpiredResetTokens(); err != nil {
			s.logger.Error("failed to clear expired reset tokens", "error", err)
		}
	}); err != nil {
		return err
	}

	// Rate limiter memory, every 5 minutes
	if _, err := s.cron.AddFunc("*/5 * * * *", func() {
		s.sweepLimiters()
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) clearExpiredResetTokens() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := store.New(s.db)
	cleared, err := queries.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		s.logger.Info("cleared expired reset tokens", "count", cleared)
	}
	return nil
}

func (s *Scheduler) sweepLimiters() {
	if s.sweeper != nil {
		if removed := s.sweeper.Sweep(); removed > 0 {
			s.logger.Debug("swept rate limit counters", "removed", removed)
		}
	}
	if s.cleaner != nil {
		if s.cleaner.Cleanup(maxLoginLimiterEntries) {
			s.logger.Info("cleared login limiter cache")
		}
	}
}
