// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/model"
)

// TokenParser validates API tokens.
type TokenParser interface {
	Parse(token string) (model.SessionUser, error)
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// BearerAuth loads the user from a bearer token when one is sent. Requests
// without a token continue anonymously; invalid tokens are rejected.
func BearerAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := tokens.Parse(raw)
			if err != nil {
				slog.Warn("api auth failed", "error", err, "path", r.URL.Path, "ip", ClientIP(r))
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

// RequireAPIUser rejects API requests that carry no valid token.
func RequireAPIUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeJSONError(w, http.StatusUnauthorized, i18n.T(GetLang(r), "auth.login_required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPIAdmin rejects API requests from anyone but administrators.
func RequireAPIAdmin(next http.Handler) http.Handler {
	return RequireAPIUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := GetUser(r)
		if !u.IsAdmin() {
			slog.Warn("access denied",
				"status", http.StatusForbidden,
				"path", r.URL.Path,
				"user_id", u.ID,
				"required_role", "admin",
				"ip", ClientIP(r),
			)
			writeJSONError(w, http.StatusForbidden, i18n.T(GetLang(r), "auth.admin_required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
