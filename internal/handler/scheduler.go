// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/render"
	"github.com/olegiv/estofamais/internal/scheduler"
	"github.com/olegiv/estofamais/internal/util"
)

// SchedulerHandler shows the maintenance jobs and runs them on demand.
type SchedulerHandler struct {
	site
	sched *scheduler.Scheduler
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{
		site:  site{renderer: renderer, sessionManager: sm, store: store},
		sched: sched,
	}
}

// List handles GET /admin/tarefas.
func (h *SchedulerHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/jobs", h.page(r, "Tarefas", redirectAdminJobs, h.sched.List()))
}

// Trigger handles POST /admin/tarefas/{name}/executar.
func (h *SchedulerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !util.IsValidSlug(name) {
		http.NotFound(w, r)
		return
	}

	if err := h.sched.TriggerNow(name); err != nil {
		slog.Warn("manual job run failed", "job", name, "error", err, "user_id", middleware.GetUserID(r))
		flashError(w, r, h.renderer, redirectAdminJobs, tr(r, "admin.job_failed", name))
		return
	}

	slog.Info("job triggered manually", "job", name, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminJobs, tr(r, "admin.job_triggered", name))
}
