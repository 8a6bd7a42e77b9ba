// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/kv"
	"github.com/olegiv/estofamais/internal/version"
)

func newHealthHandler(t *testing.T, store kv.Store) *HealthHandler {
	t.Helper()
	return NewHealthHandler(store, filepath.Join(t.TempDir(), "uploads"), version.Info{Version: "v1.2.3", GitCommit: "abc1234"})
}

func TestHealthHandler_Public(t *testing.T) {
	h := newHealthHandler(t, kv.NewMemoryStore())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]any{"status": "healthy"}, got)
}

func TestHealthHandler_AdminDetails(t *testing.T) {
	h := newHealthHandler(t, kv.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil)
	req = req.WithContext(auth.WithUser(req.Context(), testAdmin))
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "v1.2.3", got.Version)
	assert.Equal(t, "abc1234", got.Commit)
	assert.Contains(t, got.Checks, "store")
	assert.Contains(t, got.Checks, "disk")
	assert.NotNil(t, got.System)
}

func TestHealthHandler_StoreDown(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Close())
	h := newHealthHandler(t, store)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, RouteHealth, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, RouteHealth+"/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, RouteHealth+"/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.00 KB", formatBytes(1024))
	assert.Equal(t, "1.50 MB", formatBytes(1536*1024))
}
