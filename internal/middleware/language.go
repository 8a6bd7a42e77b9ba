// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/olegiv/estofamais/internal/i18n"
)

// LanguageCookieName stores an explicit language choice.
const LanguageCookieName = "estofamais_lang"

// Language detects the visitor's language. Priority:
// ?lang= (also saved to a cookie), the cookie, Accept-Language, default.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""

		if q := r.URL.Query().Get("lang"); q != "" && i18n.IsSupported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     LanguageCookieName,
				Value:    q,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if lang == "" {
			if c, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(c.Value) {
				lang = c.Value
			}
		}
		if lang == "" {
			lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
		}

		next.ServeHTTP(w, r.WithContext(withLanguage(r.Context(), lang)))
	})
}

// GetLang returns the language chosen by Language, or the default.
func GetLang(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}
