// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/quote"
)

// QuoteRequest is the body of POST /quotes. Photos can only be attached
// through the web form.
type QuoteRequest struct {
	model.QuoteForm
	MaterialIDs []int64  `json:"materialIds"`
	PriceMin    *float64 `json:"priceMin"`
	PriceMax    *float64 `json:"priceMax"`
}

// CreateQuote handles POST /api/v1/quotes. The request runs through a
// throwaway draft so it gets the same validation and delay as the form.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d := h.desk.Open("")
	defer h.desk.Discard(d.ID())

	for _, id := range req.MaterialIDs {
		m, err := h.store.Materials.Get(id)
		if err != nil {
			WriteValidationError(w, map[string]string{"materialIds": "material not found"})
			return
		}
		if err := d.AddMaterial(m); err != nil && !errors.Is(err, quote.ErrMaterialSelected) {
			WriteInternalError(w, "failed to add material")
			return
		}
	}
	if req.PriceMin != nil && req.PriceMax != nil {
		d.SetPriceRange(*req.PriceMin, *req.PriceMax)
	}

	origin := quote.Origin{IP: middleware.ClientIP(r), UserAgent: r.UserAgent()}
	q, err := h.desk.Submit(r.Context(), d, req.QuoteForm, origin)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			WriteValidationError(w, ve.Fields)
		case errors.Is(err, context.Canceled):
			slog.Debug("api quote abandoned by client")
		default:
			slog.Error("api quote failed", "error", err)
			WriteInternalError(w, "failed to submit quote")
		}
		return
	}
	WriteCreated(w, q)
}

// ListQuotes handles GET /api/v1/quotes?q=&status= (admin).
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	all := h.store.Quotes.List()
	q := r.URL.Query()
	items := catalog.Filter(all, catalog.Criteria{Search: q.Get("q"), Category: q.Get("status")})
	slices.Reverse(items)
	WriteSuccess(w, items, &Meta{Total: len(all), Shown: len(items)})
}

// GetQuote handles GET /api/v1/quotes/{id} (admin).
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := requireEntityByID(w, r, "quote", h.store.Quotes.Get)
	if !ok {
		return
	}
	WriteSuccess(w, q, nil)
}

// StatusRequest is the body of PATCH /quotes/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateQuoteStatus handles PATCH /api/v1/quotes/{id}/status (admin).
func (h *Handler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	current, ok := requireEntityByID(w, r, "quote", h.store.Quotes.Get)
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.store.SetQuoteStatus(current.ID, req.Status)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidStatus) {
			WriteValidationError(w, map[string]string{"status": "unknown status"})
			return
		}
		writeStoreError(w, "quote", err)
		return
	}
	slog.Info("api quote status updated", "quote_id", q.ID, "status", q.Status, "user_id", middleware.GetUserID(r))
	WriteSuccess(w, q, nil)
}

// DeleteQuote handles DELETE /api/v1/quotes/{id} (admin).
func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	current, ok := requireEntityByID(w, r, "quote", h.store.Quotes.Get)
	if !ok {
		return
	}
	m := crud.NewMachine(h.store.Quotes, nil)
	err := m.OpenDelete(current.ID)
	if err == nil {
		err = m.Confirm()
	}
	if err != nil {
		writeStoreError(w, "quote", err)
		return
	}
	slog.Info("api quote deleted", "quote_id", current.ID, "user_id", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
