// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/scheduler"
)

func newSchedulerEnv(t *testing.T) (*testEnv, *int) {
	t.Helper()
	e := newTestEnv(t)
	sched := scheduler.New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	runs := new(int)
	require.NoError(t, sched.Add(scheduler.Job{
		Name:     "quote-drafts",
		Schedule: scheduler.DraftSweepSchedule,
		Run:      func() error { *runs++; return nil },
	}))
	require.NoError(t, sched.Add(scheduler.Job{
		Name:     "geoip-reload",
		Schedule: scheduler.GeoIPReloadSchedule,
		Run:      func() error { return errors.New("database missing") },
	}))

	h := NewSchedulerHandler(e.store, e.renderer, e.sm, sched)
	e.router.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireAdmin(e.sm))
		r.Get(RouteJobs, h.List)
		r.Post(RouteJobRun, h.Trigger)
	})
	e.as(testAdmin)
	return e, runs
}

func TestSchedulerHandler_List(t *testing.T) {
	e, _ := newSchedulerEnv(t)

	rec := e.get("/admin/tarefas")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "quote-drafts")
	assert.Contains(t, body, "geoip-reload")
}

func TestSchedulerHandler_Trigger(t *testing.T) {
	e, runs := newSchedulerEnv(t)

	rec := e.postForm("/admin/tarefas/quote-drafts/executar", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/tarefas", rec.Header().Get("Location"))
	assert.Equal(t, 1, *runs)
}

func TestSchedulerHandler_TriggerFailure(t *testing.T) {
	e, _ := newSchedulerEnv(t)

	rec := e.postForm("/admin/tarefas/geoip-reload/executar", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// the failure is shown on the jobs page
	page := e.get("/admin/tarefas")
	assert.Contains(t, page.Body.String(), "database missing")
}

func TestSchedulerHandler_TriggerUnknown(t *testing.T) {
	e, _ := newSchedulerEnv(t)

	rec := e.postForm("/admin/tarefas/nope/executar", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = e.postForm("/admin/tarefas/Not_A_Slug/executar", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchedulerHandler_RequiresAdmin(t *testing.T) {
	e, runs := newSchedulerEnv(t)

	rec := e.as(testUser).postForm("/admin/tarefas/quote-drafts/executar", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, *runs)
}
