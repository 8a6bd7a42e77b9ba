// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/olegiv/estofamais/internal/i18n"
)

// FormLimit limits POST requests per client IP to n per window. Other
// methods pass through so the form page itself always renders.
func FormLimit(n int, window time.Duration) func(http.Handler) http.Handler {
	limiter := httprate.Limit(n, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("form rate limit exceeded", "ip", ClientIP(r), "path", r.URL.Path)
			http.Error(w, i18n.T(GetLang(r), "error.rate_limited"), http.StatusTooManyRequests)
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

// APILimit limits every API request per client IP, answering in JSON.
func APILimit(n int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(n, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("api rate limit exceeded", "ip", ClientIP(r), "path", r.URL.Path)
			writeJSONError(w, http.StatusTooManyRequests, i18n.T(GetLang(r), "error.rate_limited"))
		}),
	)
}
