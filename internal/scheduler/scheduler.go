// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/malumbo/academy/internal/store"
)

// purgeSchedule runs the retention job nightly at 03:00 server time.
const purgeSchedule = "0 3 * * *"

// Scheduler handles scheduled maintenance like contact message retention.
type Scheduler struct {
	store         store.Store
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance. retentionDays controls how long
// read contact messages are kept; 0 disables the purge job.
func New(st store.Store, logger *slog.Logger, retentionDays int) *Scheduler {
	return &Scheduler{
		store:         st,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start registers and begins the scheduled jobs.
func (s *Scheduler) Start() error {
	if s.retentionDays <= 0 {
		s.logger.Info("message retention disabled, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(purgeSchedule, func() {
		if err := s.purgeReadMessages(); err != nil {
			s.logger.Error("failed to purge read messages", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeReadMessages deletes read contact messages older than the
// configured retention.
func (s *Scheduler) purgeReadMessages() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	purged, err := s.store.PurgeReadMessagesBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if purged > 0 {
		s.logger.Info("purged read contact messages", "count", purged, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
