// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	ContactReceived(ctx context.Context, m model.ContactMessage) error
}

// ContactHandler serves the contact form.
type ContactHandler struct {
	site
	notifier ContactNotifier
	now      func() time.Time
}

// NewContactHandler creates a new ContactHandler. notifier may be nil.
func NewContactHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{
		site:     site{renderer: renderer, sessionManager: sm, store: store},
		notifier: notifier,
		now:      time.Now,
	}
}

// Form renders the contact page, prefilled for signed-in visitors.
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if u, ok := currentUser(r); ok {
		msg.Name, msg.Email = u.Name, u.Email
	}
	h.render(w, r, "pages/contact", h.page(r, tr(r, "nav.contact"), RouteContact, msg))
}

// Submit stores the message and notifies staff.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectContact) {
		return
	}

	in := model.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}

	msg, err := model.NewContactMessage(in, h.now())
	if err != nil {
		td := h.page(r, tr(r, "nav.contact"), RouteContact, in)
		td.Flash = tr(r, "contact.invalid")
		td.FlashType = middleware.FlashError
		h.renderInvalid(w, r, "pages/contact", td, err)
		return
	}

	saved, err := h.store.AddMessage(msg)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			h.renderInvalid(w, r, "pages/contact", h.page(r, tr(r, "nav.contact"), RouteContact, in), err)
			return
		}
		logAndInternalError(w, "failed to store contact message", "error", err)
		return
	}

	slog.Info("contact message received", "message_id", saved.ID, "ip", middleware.ClientIP(r))

	if h.notifier != nil {
		if err := h.notifier.ContactReceived(context.WithoutCancel(r.Context()), saved); err != nil {
			slog.Error("failed to send contact notification", "message_id", saved.ID, "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, redirectContact, tr(r, "contact.sent"))
}
