// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/estofamais/internal/catalog"
)

func TestSEOHandler_Robots(t *testing.T) {
	h := NewSEOHandler(catalog.NewStore(catalog.SeedData()), "https://estofamais.com.br", false)

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(HeaderContentType), "text/plain")
	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /admin")
	assert.Contains(t, body, "Sitemap: https://estofamais.com.br/sitemap.xml")
}

func TestSEOHandler_SitemapFromRequestHost(t *testing.T) {
	h := NewSEOHandler(catalog.NewStore(catalog.SeedData()), "", false)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "staging.estofamais.com.br"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.Sitemap(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(HeaderContentType), "application/xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://staging.estofamais.com.br/servicos</loc>")
	assert.Contains(t, body, "<loc>https://staging.estofamais.com.br/blog/1</loc>")
}
