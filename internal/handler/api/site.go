// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
)

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.store.Settings(), nil)
}

// UpdateSettings handles PUT /api/v1/settings (admin).
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in model.Settings
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.store.SetSettings(in)
	if err != nil {
		writeStoreError(w, "settings", err)
		return
	}
	slog.Info("api settings updated", "user_id", middleware.GetUserID(r))
	WriteSuccess(w, s, nil)
}

// CreateContact handles POST /api/v1/contact.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in model.ContactMessage
	if !decodeJSON(w, r, &in) {
		return
	}
	msg, err := model.NewContactMessage(in, h.now())
	if err != nil {
		writeStoreError(w, "message", err)
		return
	}
	saved, err := h.store.AddMessage(msg)
	if err != nil {
		writeStoreError(w, "message", err)
		return
	}

	slog.Info("contact message received", "message_id", saved.ID, "ip", middleware.ClientIP(r), "via", "api")
	if h.notifier != nil {
		if err := h.notifier.ContactReceived(context.WithoutCancel(r.Context()), saved); err != nil {
			slog.Error("failed to send contact notification", "message_id", saved.ID, "error", err)
		}
	}
	WriteCreated(w, saved)
}
