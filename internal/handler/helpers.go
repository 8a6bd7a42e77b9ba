// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// site bundles what every HTML handler needs to build a page.
type site struct {
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	store          *catalog.Store
}

// page builds the template data shared by every page.
func (s site) page(r *http.Request, title, active string, data any) render.TemplateData {
	td := render.TemplateData{
		Title:    title,
		Active:   active,
		Lang:     middleware.GetLang(r),
		Settings: s.store.Settings(),
		Data:     data,
	}
	if u, ok := middleware.GetUser(r); ok {
		td.User = &u
	}
	return td
}

// render writes a page, answering 500 when the template fails.
func (s site) render(w http.ResponseWriter, r *http.Request, name string, td render.TemplateData) {
	s.renderStatus(w, r, http.StatusOK, name, td)
}

func (s site) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, td render.TemplateData) {
	if err := s.renderer.RenderStatus(w, r, status, name, td); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// renderInvalid re-renders a form with its field messages.
func (s site) renderInvalid(w http.ResponseWriter, r *http.Request, name string, td render.TemplateData, err error) {
	td.Errors = fieldErrors(err)
	s.renderStatus(w, r, http.StatusUnprocessableEntity, name, td)
}

// tr translates key in the language of the request.
func tr(r *http.Request, key string, args ...any) string {
	return i18n.T(middleware.GetLang(r), key, args...)
}

// fieldErrors extracts the field messages of a validation error.
func fieldErrors(err error) map[string]string {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// ParseIDParam reads the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// formFloat parses an optional decimal form field. Both "1450.5" and
// "1450,5" are accepted; NaN and infinities are not.
func formFloat(r *http.Request, key string) (*float64, bool) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

// formList splits a comma or newline separated field.
func formList(r *http.Request, key string) []string {
	return strings.FieldsFunc(r.FormValue(key), func(c rune) bool {
		return c == ',' || c == '\n' || c == '\r'
	})
}

// formLines splits a textarea into its lines.
func formLines(r *http.Request, key string) []string {
	return strings.FieldsFunc(r.FormValue(key), func(c rune) bool {
		return c == '\n' || c == '\r'
	})
}

// invalidNumber reports a malformed numeric field in the model's error shape.
func invalidNumber(field string) error {
	return &model.ValidationError{Fields: map[string]string{field: "Valor inválido"}}
}

// parseUpload reads a multipart post of at most limit bytes. Plain
// urlencoded posts are accepted too.
func parseUpload(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	err := r.ParseMultipartForm(limit)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	return err
}

// currentUser returns the signed-in visitor, if any.
func currentUser(r *http.Request) (model.SessionUser, bool) {
	return middleware.GetUser(r)
}
