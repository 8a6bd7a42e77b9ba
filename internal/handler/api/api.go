// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API of the site under /api/v1. Reads are
// public; writes other than quotes, contact messages and token requests
// need an administrator bearer token.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/content"
	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/handler"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/quote"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// Config holds the API dependencies. Notifier and LoginProtection may be nil.
type Config struct {
	Store           *catalog.Store
	Desk            *quote.Desk
	Auth            *auth.Service
	Tokens          *auth.Tokens
	Content         *content.Renderer
	LoginProtection *middleware.LoginProtection
	Notifier        handler.ContactNotifier
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store    *catalog.Store
	desk     *quote.Desk
	auth     *auth.Service
	tokens   *auth.Tokens
	content  *content.Renderer
	lp       *middleware.LoginProtection
	notifier handler.ContactNotifier
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		store:    cfg.Store,
		desk:     cfg.Desk,
		auth:     cfg.Auth,
		tokens:   cfg.Tokens,
		content:  cfg.Content,
		lp:       cfg.LoginProtection,
		notifier: cfg.Notifier,
		now:      time.Now,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Success bool  `json:"success"`
	Data    any   `json:"data,omitempty"`
	Meta    *Meta `json:"meta,omitempty"`
}

// Meta describes a filtered list.
type Meta struct {
	Total int `json:"total"`
	Shown int `json:"shown"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set(handler.HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Fields: fields})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, nil)
}

// WriteValidationError writes a 422 response with field errors.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation failed", fields)
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			WriteBadRequest(w, "empty request body")
			return false
		}
		WriteBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// writeStoreError maps validation, missing-record and other errors.
func writeStoreError(w http.ResponseWriter, entityName string, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationError(w, ve.Fields)
	case errors.Is(err, crud.ErrNotFound):
		WriteNotFound(w, entityName+" not found")
	default:
		slog.Error("api store error", "entity", entityName, "error", err)
		WriteInternalError(w, "failed to save "+entityName)
	}
}

// EntityFetcher fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses the {id} parameter and fetches the entity.
// The response is already written when it returns false.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid "+entityName+" id")
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			WriteNotFound(w, entityName+" not found")
		} else {
			WriteInternalError(w, "failed to retrieve "+entityName)
		}
		return zero, false
	}
	return entity, true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1"}, nil)
}
