// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// Home page section sizes.
const (
	homeServices = 3
	homeGallery  = 6
	homePosts    = 3
)

// FrontendHandler serves the public catalog pages.
type FrontendHandler struct {
	site
	logger *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *FrontendHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrontendHandler{
		site:   site{renderer: renderer, sessionManager: sm, store: store},
		logger: logger,
	}
}

// HomeData holds the home page sections.
type HomeData struct {
	Services []model.Service
	Gallery  []model.GalleryImage
	Posts    []model.BlogPost
}

// CatalogData holds a filtered catalog listing and its filter form state.
type CatalogData[T any] struct {
	Action  string
	Query   url.Values
	Options catalog.Options
	Items   []T
	Shown   int
	Total   int
}

// filtered applies the request's filter query to items.
func filtered[T catalog.Filterable](r *http.Request, action string, items []T, c catalog.Criteria) CatalogData[T] {
	result := catalog.Filter(items, c)
	return CatalogData[T]{
		Action:  action,
		Query:   r.URL.Query(),
		Options: catalog.OptionsOf(items),
		Items:   result,
		Shown:   len(result),
		Total:   len(items),
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{
		Services: head(h.store.Services.List(), homeServices),
		Gallery:  head(h.store.Gallery.List(), homeGallery),
		Posts:    head(h.store.Posts.List(), homePosts),
	}
	h.render(w, r, "pages/home", h.page(r, "", RouteRoot, data))
}

// Services renders the services list, searchable by ?q=.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	c := catalog.Criteria{Search: r.URL.Query().Get(catalog.ParamSearch)}
	data := filtered(r, RouteServices, h.store.Services.List(), c)
	h.render(w, r, "pages/services", h.page(r, tr(r, "nav.services"), RouteServices, data))
}

// Gallery renders the portfolio with category, material, color and price filters.
func (h *FrontendHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	c := catalog.CriteriaFromQuery(r.URL.Query())
	data := filtered(r, RouteGallery, h.store.Gallery.List(), c)
	h.render(w, r, "pages/gallery", h.page(r, tr(r, "nav.gallery"), RouteGallery, data))
}

// Materials renders the fabric catalog.
func (h *FrontendHandler) Materials(w http.ResponseWriter, r *http.Request) {
	c := catalog.CriteriaFromQuery(r.URL.Query())
	data := filtered(r, RouteMaterials, h.store.Materials.List(), c)
	h.render(w, r, "pages/materials", h.page(r, tr(r, "nav.materials"), RouteMaterials, data))
}

// About renders the static about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/about", h.page(r, tr(r, "nav.about"), RouteAbout, nil))
}

// NotFound renders the 404 page and records the miss.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("route not found",
		"path", r.URL.Path,
		"method", r.Method,
		"ip", middleware.ClientIP(r),
		"referer", r.Referer(),
	)
	h.renderStatus(w, r, http.StatusNotFound, "pages/not_found", h.page(r, tr(r, "error.not_found"), "", r.URL.Path))
}

// renderError renders the generic error page.
func (s site) renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	s.renderStatus(w, r, statusCode, "pages/error", s.page(r, http.StatusText(statusCode), "", message))
}
