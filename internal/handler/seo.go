// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/seo"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	store       *catalog.Store
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request; disallowAll keeps crawlers out of staging sites.
func NewSEOHandler(store *catalog.Store, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{store: store, siteURL: siteURL, disallowAll: disallowAll}
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.disallowAll,
	})
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	out, err := seo.GenerateSitemap(h.baseURL(r), h.store.Posts.List())
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set(HeaderContentType, "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
