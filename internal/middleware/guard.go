// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/session"
)

// Flash types understood by the layout's toast.
const (
	FlashError   = "error"
	FlashSuccess = "success"
	FlashInfo    = "info"
)

// Flash stores a toast for the next rendered page.
func Flash(sm *scs.SessionManager, r *http.Request, kind, msg string) {
	sm.Put(r.Context(), session.FlashKey, msg)
	sm.Put(r.Context(), session.FlashTypeKey, kind)
}

// LoginURL returns the login page URL that leads back to next after login.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// RequireUser lets signed-in visitors through. Anonymous visitors get a
// toast and are sent to the login page.
func RequireUser(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r); !ok {
				denyAnonymous(sm, w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin lets administrators through. Anonymous visitors go to the
// login page; signed-in non-admins go to the home page. Both get a toast.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUser(r)
			if !ok {
				denyAnonymous(sm, w, r)
				return
			}
			if !u.IsAdmin() {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"path", r.URL.Path,
					"user_id", u.ID,
					"user_role", u.Role,
					"required_role", "admin",
					"ip", ClientIP(r),
				)
				Flash(sm, r, FlashError, i18n.T(GetLang(r), "auth.admin_required"))
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denyAnonymous(sm *scs.SessionManager, w http.ResponseWriter, r *http.Request) {
	slog.Warn("access denied: login required", "path", r.URL.Path, "ip", ClientIP(r))
	Flash(sm, r, FlashError, i18n.T(GetLang(r), "auth.login_required"))

	next := r.URL.RequestURI()
	if r.Method != http.MethodGet {
		next = r.Referer()
		if u, err := url.Parse(next); err == nil {
			next = u.RequestURI()
		}
	}
	http.Redirect(w, r, LoginURL(next), http.StatusSeeOther)
}

// SafeRedirect returns target when it is a local path, otherwise fallback.
func SafeRedirect(target, fallback string) string {
	if target == "" || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		return fallback
	}
	return target
}
