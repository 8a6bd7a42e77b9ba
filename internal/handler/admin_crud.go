// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// FormData holds an admin add or edit form.
type FormData[T any] struct {
	Item   T
	IsNew  bool
	Action string
}

// ConfirmData holds a delete confirmation.
type ConfirmData struct {
	Label  string
	Action string
	Cancel string
}

// Resource is the admin list, form and delete confirmation of one
// collection. Every request drives its own crud.Machine, so an abandoned
// form leaves nothing behind.
type Resource[T crud.Entity[T]] struct {
	site
	coll     *crud.Collection[T]
	validate crud.Validator[T]

	label    string // singular name shown in toasts
	title    string // list page title
	base     string // e.g. /admin/materiais
	listTmpl string
	formTmpl string
	// maxBody enables multipart forms up to this size.
	maxBody int64

	// decode builds a record from the posted form; current is the record
	// being edited, or the zero value when adding.
	decode func(r *http.Request, current T) (T, error)
	// name identifies a record in toasts and confirmations.
	name func(T) string
	// remove replaces the plain delete when related data must go too.
	remove func(r *http.Request, item T) error
	// rejected is called with a decoded record that failed to save.
	rejected func(r *http.Request, item, current T)
}

func (h *Resource[T]) machine() *crud.Machine[T] {
	return crud.NewMachine(h.coll, h.validate)
}

func (h *Resource[T]) formPage(r *http.Request, data FormData[T]) render.TemplateData {
	return h.page(r, h.title, h.base, data)
}

// List renders the records.
func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.listTmpl, h.page(r, h.title, h.base, h.coll.List()))
}

// NewForm renders a blank form.
func (h *Resource[T]) NewForm(w http.ResponseWriter, r *http.Request) {
	m := h.machine()
	if err := m.OpenAdd(); err != nil {
		logAndInternalError(w, "open add form", "resource", h.label, "error", err)
		return
	}
	h.render(w, r, h.formTmpl, h.formPage(r, FormData[T]{Item: m.Current(), IsNew: true, Action: h.base}))
}

// Create saves a new record.
func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	m := h.machine()
	if err := m.OpenAdd(); err != nil {
		logAndInternalError(w, "open add form", "resource", h.label, "error", err)
		return
	}
	h.save(w, r, m, FormData[T]{IsNew: true, Action: h.base})
}

// EditForm renders the form for an existing record.
func (h *Resource[T]) EditForm(w http.ResponseWriter, r *http.Request) {
	m, ok := h.open(w, r, (*crud.Machine[T]).OpenEdit)
	if !ok {
		return
	}
	action := fmt.Sprintf("%s/%d", h.base, m.Target())
	h.render(w, r, h.formTmpl, h.formPage(r, FormData[T]{Item: m.Current(), Action: action}))
}

// Update saves an existing record.
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.open(w, r, (*crud.Machine[T]).OpenEdit)
	if !ok {
		return
	}
	h.save(w, r, m, FormData[T]{Action: fmt.Sprintf("%s/%d", h.base, m.Target())})
}

// DeleteForm asks for confirmation.
func (h *Resource[T]) DeleteForm(w http.ResponseWriter, r *http.Request) {
	m, ok := h.open(w, r, (*crud.Machine[T]).OpenDelete)
	if !ok {
		return
	}
	data := ConfirmData{
		Label:  h.name(m.Current()),
		Action: fmt.Sprintf("%s/%d%s", h.base, m.Target(), RouteSuffixDelete),
		Cancel: h.base,
	}
	h.render(w, r, "admin/confirm", h.page(r, h.title, h.base, data))
}

// Delete removes a record after confirmation.
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.open(w, r, (*crud.Machine[T]).OpenDelete)
	if !ok {
		return
	}
	item := m.Current()

	var err error
	if h.remove != nil {
		err = h.remove(r, item)
		_ = m.Cancel()
	} else {
		err = m.Confirm()
	}
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			flashError(w, r, h.renderer, h.base, tr(r, "admin.not_found"))
			return
		}
		logAndInternalError(w, "failed to delete record", "resource", h.label, "id", item.EntityID(), "error", err)
		return
	}

	slog.Info("record deleted", "resource", h.label, "id", item.EntityID(), "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, h.base, tr(r, "admin.deleted", h.name(item)))
}

// open loads the {id} record into a fresh machine, answering a toast and
// redirect when it does not exist.
func (h *Resource[T]) open(w http.ResponseWriter, r *http.Request, transition func(*crud.Machine[T], int64) error) (*crud.Machine[T], bool) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, h.base, tr(r, "admin.not_found"))
		return nil, false
	}
	m := h.machine()
	if err := transition(m, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			flashError(w, r, h.renderer, h.base, tr(r, "admin.not_found"))
			return nil, false
		}
		logAndInternalError(w, "failed to open record", "resource", h.label, "id", id, "error", err)
		return nil, false
	}
	return m, true
}

func (h *Resource[T]) save(w http.ResponseWriter, r *http.Request, m *crud.Machine[T], data FormData[T]) {
	if h.maxBody > 0 {
		if err := parseUpload(w, r, h.maxBody); err != nil {
			flashError(w, r, h.renderer, h.base, tr(r, "admin.invalid"))
			return
		}
	} else if !parseFormOrRedirect(w, r, h.renderer, h.base) {
		return
	}

	current := m.Current()
	item, err := h.decode(r, current)
	if err == nil {
		var saved T
		saved, err = m.Save(item)
		if err == nil {
			slog.Info("record saved", "resource", h.label, "id", saved.EntityID(), "new", data.IsNew, "user_id", middleware.GetUserID(r))
			flashSuccess(w, r, h.renderer, h.base, tr(r, "admin.saved", h.name(saved)))
			return
		}
		if h.rejected != nil {
			h.rejected(r, item, current)
		}
	}

	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		data.Item = item
		td := h.formPage(r, data)
		h.renderInvalid(w, r, h.formTmpl, td, err)
	case errors.Is(err, crud.ErrNotFound):
		flashError(w, r, h.renderer, h.base, tr(r, "admin.not_found"))
	default:
		logAndInternalError(w, "failed to save record", "resource", h.label, "error", err)
	}
}
