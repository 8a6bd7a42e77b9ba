// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the public site and the
// admin panel: catalog pages, the quote form, the blog, authentication and
// record management.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/logging"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/quote"
	"github.com/olegiv/estofamais/internal/render"
)

// Dashboard list sizes.
const (
	dashboardQuotes = 5
	dashboardEvents = 5
	journalPageSize = 200
)

// DashboardData holds the admin overview.
type DashboardData struct {
	Counts       catalog.Counts
	Drafts       int
	Previews     int
	RecentQuotes []model.Quote
	Journal      []logging.Entry
}

// QuotesData holds the filtered quote list.
type QuotesData struct {
	Query url.Values
	Items []model.Quote
}

// CommentRow is a comment with the title of its post.
type CommentRow struct {
	Comment   model.Comment
	PostTitle string
}

// AdminHandler handles the admin screens that are not plain record editors.
type AdminHandler struct {
	site
	users   *auth.Users
	desk    *quote.Desk
	journal *logging.Journal
}

// NewAdminHandler creates a new AdminHandler. desk and journal may be nil.
func NewAdminHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, users *auth.Users, desk *quote.Desk, journal *logging.Journal) *AdminHandler {
	return &AdminHandler{
		site:    site{renderer: renderer, sessionManager: sm, store: store},
		users:   users,
		desk:    desk,
		journal: journal,
	}
}

// newestFirst returns a reversed copy; collections keep insertion order.
func newestFirst[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}

// Dashboard renders the admin overview.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{
		Counts:       h.store.Counts(),
		RecentQuotes: head(newestFirst(h.store.Quotes.List()), dashboardQuotes),
	}
	if h.desk != nil {
		data.Drafts = h.desk.Len()
		data.Previews = h.desk.Previews().Len()
	}
	if h.journal != nil {
		data.Journal = h.journal.Recent(dashboardEvents)
	}
	h.render(w, r, "admin/dashboard", h.page(r, "Visão geral", redirectAdmin, data))
}

// Quotes lists quote requests, filtered by ?q= and ?status=.
func (h *AdminHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := catalog.Criteria{Search: q.Get("q"), Category: q.Get("status")}
	data := QuotesData{
		Query: q,
		Items: newestFirst(catalog.Filter(h.store.Quotes.List(), c)),
	}
	h.render(w, r, "admin/quotes", h.page(r, "Orçamentos", redirectAdminQuotes, data))
}

// Quote shows one quote request.
func (h *AdminHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q, ok := h.quote(w, r)
	if !ok {
		return
	}
	h.render(w, r, "admin/quote", h.page(r, fmt.Sprintf("Orçamento #%d", q.ID), redirectAdminQuotes, q))
}

// UpdateQuoteStatus moves a quote to the posted status.
func (h *AdminHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminQuotes, tr(r, "admin.not_found"))
		return
	}
	back := fmt.Sprintf(redirectAdminQuotesID, id)
	if !parseFormOrRedirect(w, r, h.renderer, back) {
		return
	}

	status := r.FormValue("status")
	q, err := h.store.SetQuoteStatus(id, status)
	switch {
	case err == nil:
		slog.Info("admin updated quote status", "quote_id", q.ID, "status", q.Status, "user_id", middleware.GetUserID(r))
		flashSuccess(w, r, h.renderer, back, tr(r, "admin.status_updated"))
	case errors.Is(err, catalog.ErrInvalidStatus):
		flashError(w, r, h.renderer, back, tr(r, "admin.invalid"))
	case errors.Is(err, crud.ErrNotFound):
		flashError(w, r, h.renderer, redirectAdminQuotes, tr(r, "admin.not_found"))
	default:
		logAndInternalError(w, "failed to update quote status", "quote_id", id, "error", err)
	}
}

// DeleteQuoteForm asks before deleting a quote.
func (h *AdminHandler) DeleteQuoteForm(w http.ResponseWriter, r *http.Request) {
	q, ok := h.quote(w, r)
	if !ok {
		return
	}
	data := ConfirmData{
		Label:  fmt.Sprintf("o orçamento de %s", q.Name),
		Action: fmt.Sprintf(redirectAdminQuotesID, q.ID) + RouteSuffixDelete,
		Cancel: fmt.Sprintf(redirectAdminQuotesID, q.ID),
	}
	h.render(w, r, "admin/confirm", h.page(r, "Excluir orçamento", redirectAdminQuotes, data))
}

// DeleteQuote deletes a quote.
func (h *AdminHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, redirectAdminQuotes, "quote", func(id int64) (string, error) {
		q, err := h.store.Quotes.Get(id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Orçamento #%d", q.ID), h.store.Quotes.Delete(id)
	})
}

func (h *AdminHandler) quote(w http.ResponseWriter, r *http.Request) (model.Quote, bool) {
	id, err := ParseIDParam(r)
	if err == nil {
		var q model.Quote
		if q, err = h.store.Quotes.Get(id); err == nil {
			return q, true
		}
	}
	flashError(w, r, h.renderer, redirectAdminQuotes, tr(r, "admin.not_found"))
	return model.Quote{}, false
}

// Comments lists all comments, hidden ones included.
func (h *AdminHandler) Comments(w http.ResponseWriter, r *http.Request) {
	titles := make(map[int64]string)
	for _, p := range h.store.Posts.List() {
		titles[p.ID] = p.Title
	}
	comments := newestFirst(h.store.Comments.List())
	rows := make([]CommentRow, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, CommentRow{Comment: c, PostTitle: titles[c.PostID]})
	}
	h.render(w, r, "admin/comments", h.page(r, "Comentários", redirectAdminComments, rows))
}

// ToggleComment hides a visible comment or shows a hidden one.
func (h *AdminHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminComments, tr(r, "admin.not_found"))
		return
	}
	c, err := h.store.ToggleCommentHidden(id)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminComments, tr(r, "admin.not_found"))
			return
		}
		logAndInternalError(w, "failed to toggle comment", "comment_id", id, "error", err)
		return
	}

	slog.Info("admin toggled comment", "comment_id", c.ID, "hidden", c.IsHidden, "user_id", middleware.GetUserID(r))
	key := "admin.comment_visible"
	if c.IsHidden {
		key = "admin.comment_hidden"
	}
	flashSuccess(w, r, h.renderer, redirectAdminComments, tr(r, key))
}

// Messages lists contact messages, newest first.
func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/messages", h.page(r, "Mensagens", redirectAdminMessages, newestFirst(h.store.Messages.List())))
}

// MarkMessage sets the read flag from the posted "read" field.
func (h *AdminHandler) MarkMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMessages, tr(r, "admin.not_found"))
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMessages) {
		return
	}

	read := r.FormValue("read") != "false"
	if _, err := h.store.MarkMessageRead(id, read); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			flashError(w, r, h.renderer, redirectAdminMessages, tr(r, "admin.not_found"))
			return
		}
		logAndInternalError(w, "failed to mark message", "message_id", id, "error", err)
		return
	}

	key := "admin.message_unread"
	if read {
		key = "admin.message_read"
	}
	flashSuccess(w, r, h.renderer, redirectAdminMessages, tr(r, key))
}

// DeleteMessageForm asks before deleting a message.
func (h *AdminHandler) DeleteMessageForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMessages, tr(r, "admin.not_found"))
		return
	}
	m, err := h.store.Messages.Get(id)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminMessages, tr(r, "admin.not_found"))
		return
	}
	data := ConfirmData{
		Label:  fmt.Sprintf("a mensagem de %s", m.Name),
		Action: fmt.Sprintf("%s/%d%s", redirectAdminMessages, m.ID, RouteSuffixDelete),
		Cancel: redirectAdminMessages,
	}
	h.render(w, r, "admin/confirm", h.page(r, "Excluir mensagem", redirectAdminMessages, data))
}

// DeleteMessage deletes a contact message.
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, redirectAdminMessages, "message", func(id int64) (string, error) {
		m, err := h.store.Messages.Get(id)
		if err != nil {
			return "", err
		}
		return "Mensagem de " + m.Name, h.store.Messages.Delete(id)
	})
}

// delete runs del for the {id} record and answers with a toast.
func (h *AdminHandler) delete(w http.ResponseWriter, r *http.Request, back, kind string, del func(id int64) (string, error)) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, back, tr(r, "admin.not_found"))
		return
	}
	label, err := del(id)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			flashError(w, r, h.renderer, back, tr(r, "admin.not_found"))
			return
		}
		logAndInternalError(w, "failed to delete record", "resource", kind, "id", id, "error", err)
		return
	}
	slog.Info("record deleted", "resource", kind, "id", id, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, back, tr(r, "admin.deleted", label))
}

// Users lists registered accounts.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}
	h.render(w, r, "admin/users", h.page(r, "Usuários", RouteAdmin+RouteUsers, users))
}

// Settings renders the business settings form.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/settings", h.page(r, "Configurações", redirectAdminSettings, h.store.Settings()))
}

// UpdateSettings saves the business settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	in := model.Settings{
		BusinessName: r.FormValue("businessName"),
		Phone:        r.FormValue("phone"),
		WhatsApp:     r.FormValue("whatsapp"),
		Email:        r.FormValue("email"),
		Address:      r.FormValue("address"),
		OpeningHours: r.FormValue("openingHours"),
	}
	if _, err := h.store.SetSettings(in); err != nil {
		h.renderInvalid(w, r, "admin/settings", h.page(r, "Configurações", redirectAdminSettings, in), err)
		return
	}

	slog.Info("admin updated settings", "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminSettings, tr(r, "admin.settings_saved"))
}

// Events renders the in-memory event journal.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	var entries []logging.Entry
	if h.journal != nil {
		entries = h.journal.Recent(journalPageSize)
	}
	h.render(w, r, "admin/journal", h.page(r, "Eventos", redirectAdminEvents, entries))
}

// ClearEvents empties the event journal.
func (h *AdminHandler) ClearEvents(w http.ResponseWriter, r *http.Request) {
	if h.journal != nil {
		h.journal.Clear()
	}
	slog.Info("admin cleared event journal", "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminEvents, tr(r, "admin.journal_cleared"))
}
