// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/media"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/quote"
	"github.com/olegiv/estofamais/internal/render"
	"github.com/olegiv/estofamais/internal/session"
)

// maxQuoteRequestSize bounds a quote form post: one photo plus the fields.
const maxQuoteRequestSize = media.MaxUploadSize + 1<<20

// QuoteHandler serves the quote request form and its photo and material
// pickers. Every button of the form posts the whole form, so typed fields
// survive each round trip.
type QuoteHandler struct {
	site
	desk *quote.Desk
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, desk *quote.Desk) *QuoteHandler {
	return &QuoteHandler{
		site: site{renderer: renderer, sessionManager: sm, store: store},
		desk: desk,
	}
}

// QuotePageData holds the quote form state.
type QuotePageData struct {
	View         quote.View
	Services     []model.Service
	Materials    []model.Material
	MaxImages    int
	PriceFloor   float64
	PriceCeiling float64
}

// draft returns the visitor's draft, creating one on first use.
func (h *QuoteHandler) draft(r *http.Request) *quote.Draft {
	id := h.sessionManager.GetString(r.Context(), session.DraftKey)
	d := h.desk.Open(id)
	if d.ID() != id {
		h.sessionManager.Put(r.Context(), session.DraftKey, d.ID())
	}
	return d
}

func (h *QuoteHandler) pageData(v quote.View) QuotePageData {
	return QuotePageData{
		View:         v,
		Services:     h.store.Services.List(),
		Materials:    h.store.Materials.List(),
		MaxImages:    quote.MaxImages,
		PriceFloor:   quote.PriceFloor,
		PriceCeiling: quote.PriceCeiling,
	}
}

// Form renders the quote form, or the confirmation once submitted.
// GET /orcamento?servico=... preselects a service.
func (h *QuoteHandler) Form(w http.ResponseWriter, r *http.Request) {
	d := h.draft(r)
	v := d.View()

	if v.Phase == quote.Submitted {
		h.render(w, r, "pages/quote_done", h.page(r, tr(r, "nav.quote"), RouteQuote, h.pageData(v)))
		return
	}

	if svc := r.URL.Query().Get("servico"); svc != "" && v.Form.ServiceType == "" {
		v.Form.ServiceType = svc
	}
	h.render(w, r, "pages/quote", h.page(r, tr(r, "nav.quote"), RouteQuote, h.pageData(v)))
}

// Submit records the quote. Field errors re-render the form; a second
// submit while the first is running is refused.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	d := h.draft(r)
	h.capture(d, r)

	origin := quote.Origin{IP: middleware.ClientIP(r), UserAgent: r.UserAgent()}
	_, err := h.desk.Submit(r.Context(), d, quoteForm(r), origin)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			td := h.page(r, tr(r, "nav.quote"), RouteQuote, h.pageData(d.View()))
			td.Flash = tr(r, "quote.invalid")
			td.FlashType = middleware.FlashError
			h.renderInvalid(w, r, "pages/quote", td, err)
		case errors.Is(err, quote.ErrSubmitting):
			flashInfo(w, r, h.renderer, redirectQuote, tr(r, "quote.submitting"))
		case errors.Is(err, quote.ErrAlreadySubmitted):
			flashInfo(w, r, h.renderer, redirectQuote, tr(r, "quote.already_submitted"))
		case errors.Is(err, context.Canceled):
			slog.Debug("quote submission abandoned by client", "draft", d.ID())
		default:
			slog.Error("failed to submit quote", "draft", d.ID(), "error", err)
			flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.failed"))
		}
		return
	}

	flashSuccess(w, r, h.renderer, redirectQuote, tr(r, "quote.submitted"))
}

// AddImage attaches the uploaded "photo" file.
func (h *QuoteHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	d := h.draft(r)
	h.capture(d, r)

	file, header, err := r.FormFile("photo")
	if err != nil {
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.image_invalid"))
		return
	}
	defer func() { _ = file.Close() }()

	a, err := h.desk.AddImage(d, header.Filename, file)
	switch {
	case err == nil:
		slog.Debug("quote photo attached", "draft", d.ID(), "preview", a.PreviewID)
		flashSuccess(w, r, h.renderer, redirectQuote, tr(r, "quote.image_added"))
	case errors.Is(err, quote.ErrImageLimit):
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.image_limit", quote.MaxImages))
	case errors.Is(err, media.ErrTooLarge):
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.image_too_large"))
	case errors.Is(err, quote.ErrDraftNotComposing):
		http.Redirect(w, r, redirectQuote, http.StatusSeeOther)
	default:
		slog.Warn("quote photo rejected", "draft", d.ID(), "name", header.Filename, "error", err)
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.image_invalid"))
	}
}

// RemoveImage detaches a photo and frees its slot.
func (h *QuoteHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	d := h.draft(r)
	h.capture(d, r)

	if err := h.desk.RemoveImage(d, chi.URLParam(r, "id")); err != nil {
		flashError(w, r, h.renderer, redirectQuote, tr(r, "admin.not_found"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectQuote, tr(r, "quote.image_removed"))
}

// Preview serves the thumbnail of an attached photo to its owner only.
func (h *QuoteHandler) Preview(w http.ResponseWriter, r *http.Request) {
	d, ok := h.desk.Lookup(h.sessionManager.GetString(r.Context(), session.DraftKey))
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, err := h.desk.Preview(d, chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	body, mimeType := p.Image.Thumb, media.MimeTypeJPEG
	if len(body) == 0 {
		body, mimeType = p.Image.Data, p.Image.MimeType
	}
	w.Header().Set(HeaderContentType, mimeType)
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

// AddMaterial adds a catalog material to the draft. Posted from the quote
// form and from the materials page.
func (h *QuoteHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	d := h.draft(r)
	h.capture(d, r)
	back := backTo(r, redirectQuote)

	id, err := strconv.ParseInt(r.FormValue("material_id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, back, tr(r, "admin.not_found"))
		return
	}
	m, err := h.store.Materials.Get(id)
	if err != nil {
		flashError(w, r, h.renderer, back, tr(r, "admin.not_found"))
		return
	}

	switch err := d.AddMaterial(m); {
	case err == nil:
		flashSuccess(w, r, h.renderer, back, tr(r, "quote.material_added"))
	case errors.Is(err, quote.ErrMaterialSelected):
		flashInfo(w, r, h.renderer, back, tr(r, "quote.material_selected"))
	default:
		flashError(w, r, h.renderer, back, tr(r, "quote.already_submitted"))
	}
}

// RemoveMaterial drops a selected material.
func (h *QuoteHandler) RemoveMaterial(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	d := h.draft(r)
	h.capture(d, r)

	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectQuote, tr(r, "admin.not_found"))
		return
	}
	switch err := d.RemoveMaterial(id); {
	case err == nil:
		flashSuccess(w, r, h.renderer, redirectQuote, tr(r, "quote.material_removed"))
	case errors.Is(err, quote.ErrSubmitting):
		flashInfo(w, r, h.renderer, redirectQuote, tr(r, "quote.submitting"))
	default:
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.already_submitted"))
	}
}

// Reset starts over after a submission ("request another quote").
func (h *QuoteHandler) Reset(w http.ResponseWriter, r *http.Request) {
	d := h.draft(r)
	if err := h.desk.Reset(d); err != nil {
		flashInfo(w, r, h.renderer, redirectQuote, tr(r, "quote.submitting"))
		return
	}
	http.Redirect(w, r, redirectQuote, http.StatusSeeOther)
}

// parse reads a multipart or urlencoded quote post.
func (h *QuoteHandler) parse(w http.ResponseWriter, r *http.Request) bool {
	if err := parseUpload(w, r, maxQuoteRequestSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.image_too_large"))
			return false
		}
		flashError(w, r, h.renderer, redirectQuote, tr(r, "quote.invalid"))
		return false
	}
	return true
}

// capture keeps the typed fields and price range when the post came from
// the quote form itself.
func (h *QuoteHandler) capture(d *quote.Draft, r *http.Request) {
	if _, ok := r.Form["name"]; !ok {
		return
	}
	if err := d.SetForm(quoteForm(r)); err != nil {
		return
	}
	lo, okLo := formFloat(r, "price_min")
	hi, okHi := formFloat(r, "price_max")
	if okLo && okHi && lo != nil && hi != nil {
		d.SetPriceRange(*lo, *hi)
	}
}

func quoteForm(r *http.Request) model.QuoteForm {
	return model.QuoteForm{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		ServiceType: r.FormValue("serviceType"),
		Material:    r.FormValue("material"),
		Color:       r.FormValue("color"),
		Description: r.FormValue("description"),
	}
}

// backTo returns the local page the request came from, or fallback.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	return middleware.SafeRedirect(ref.RequestURI(), fallback)
}
