// Copyright (c) 2025-2026 Donga Education News
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler flips scheduled drafts to published when their
// publication time arrives.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the scheduled-publishing job.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a job that checks for due articles every minute.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishDueArticles(context.Background()); err != nil {
			s.logger.Error("failed to publish scheduled articles", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// publishDueArticles publishes drafts whose publication time has passed.
// A single UPDATE keeps the transition atomic per article.
func (s *Scheduler) publishDueArticles(ctx context.Context) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET status = 'published', updated_at = ?
		WHERE status = 'draft' AND published_at IS NOT NULL AND published_at <= ?`,
		now, now)
	if err != nil {
		return fmt.Errorf("publishing due articles: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if count > 0 {
		s.logger.Info("published scheduled articles", "count", count)
	}
	return nil
}
