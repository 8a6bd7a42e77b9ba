// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the site: session user
// loading, route guards, CSRF, security headers, rate limits and API auth.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys.
const (
	ContextKeyLanguage ContextKey = "language"
)

// LoadUser puts the session user, if any, into the request context.
func LoadUser(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := sessions.Get(r.Context()); ok {
				r = r.WithContext(auth.WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser returns the user loaded by LoadUser or BearerAuth.
func GetUser(r *http.Request) (model.SessionUser, bool) {
	return auth.UserFromContext(r.Context())
}

// GetUserID returns the current user's ID, or 0 for anonymous requests.
func GetUserID(r *http.Request) int64 {
	if u, ok := GetUser(r); ok {
		return u.ID
	}
	return 0
}

func withLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// ClientIP extracts the client IP, honoring reverse proxy headers.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
