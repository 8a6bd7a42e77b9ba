// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"log/slog"
	"time"
)

// Default maintenance schedules.
const (
	DraftSweepSchedule   = "*/5 * * * *"
	LockoutSweepSchedule = "*/15 * * * *"
	GeoIPReloadSchedule  = "0 4 * * 0"
)

// DraftExpirer drops quote drafts idle for longer than ttl.
type DraftExpirer interface {
	ExpireIdle(ttl time.Duration) int
}

// PreviewReleaser frees preview blobs older than age that no draft holds.
type PreviewReleaser interface {
	ReleaseOrphans(age time.Duration) int
}

// LockoutCleaner prunes expired login lockouts.
type LockoutCleaner interface {
	Cleanup() int
}

// Reloader reopens an on-disk database.
type Reloader interface {
	Reload() error
}

// Maintenance lists what the maintenance jobs act on. Nil fields disable
// their job.
type Maintenance struct {
	Drafts   DraftExpirer
	Previews PreviewReleaser
	DraftTTL time.Duration
	Lockouts LockoutCleaner
	GeoIP    Reloader
}

// Jobs builds the maintenance jobs.
func (m Maintenance) Jobs(logger *slog.Logger) []Job {
	if logger == nil {
		logger = slog.Default()
	}
	var jobs []Job

	if m.Drafts != nil || m.Previews != nil {
		ttl := m.DraftTTL
		jobs = append(jobs, Job{
			Name:        "quote-drafts",
			Description: "Expire idle quote drafts and release orphaned photo previews",
			Schedule:    DraftSweepSchedule,
			Run: func() error {
				var drafts, previews int
				if m.Drafts != nil {
					drafts = m.Drafts.ExpireIdle(ttl)
				}
				if m.Previews != nil {
					previews = m.Previews.ReleaseOrphans(ttl)
				}
				if drafts > 0 || previews > 0 {
					logger.Info("expired idle quote drafts", "drafts", drafts, "previews", previews)
				}
				return nil
			},
		})
	}

	if m.Lockouts != nil {
		jobs = append(jobs, Job{
			Name:        "login-lockouts",
			Description: "Prune expired login lockouts and rate limiters",
			Schedule:    LockoutSweepSchedule,
			Run: func() error {
				if n := m.Lockouts.Cleanup(); n > 0 {
					logger.Debug("pruned login lockouts", "count", n)
				}
				return nil
			},
		})
	}

	if m.GeoIP != nil {
		jobs = append(jobs, Job{
			Name:        "geoip-reload",
			Description: "Reload the GeoIP country database",
			Schedule:    GeoIPReloadSchedule,
			Run:         m.GeoIP.Reload,
		})
	}

	return jobs
}
