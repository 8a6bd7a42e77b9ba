// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	site
	auth            *auth.Service
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, svc *auth.Service, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		site:            site{renderer: renderer, sessionManager: sm, store: store},
		auth:            svc,
		loginProtection: lp,
	}
}

// LoginData holds the login form state.
type LoginData struct {
	Email string
	Next  string
}

// RegisterData holds the registration form state.
type RegisterData struct {
	Name  string
	Email string
}

// homeFor is where a user lands after signing in without a next page.
func homeFor(u model.SessionUser) string {
	if u.IsAdmin() {
		return redirectAdmin
	}
	return RouteRoot
}

// LoginForm renders the login page. Signed-in visitors are sent on.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := middleware.SafeRedirect(r.URL.Query().Get("next"), "")
	if u, ok := currentUser(r); ok {
		http.Redirect(w, r, middleware.SafeRedirect(next, homeFor(u)), http.StatusSeeOther)
		return
	}
	h.render(w, r, "auth/login", h.page(r, tr(r, "nav.login"), RouteLogin, LoginData{Next: next}))
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := model.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	next := middleware.SafeRedirect(r.FormValue("next"), "")
	td := h.page(r, tr(r, "nav.login"), RouteLogin, LoginData{Email: email, Next: next})

	if err := model.ValidateLogin(email, password); err != nil {
		h.renderInvalid(w, r, "auth/login", td, err)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "email", email, "ip", middleware.ClientIP(r))
			h.renderLoginFailure(w, r, td, tr(r, "auth.too_many_attempts", minutes(remaining)))
			return
		}
	}

	user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			slog.Warn("login failed", "email", email, "ip", middleware.ClientIP(r))
			msg := tr(r, "auth.invalid_credentials")
			if h.loginProtection != nil {
				if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
					msg = tr(r, "auth.too_many_attempts", minutes(lockDuration))
				}
			}
			h.renderLoginFailure(w, r, td, msg)
		case errors.Is(err, context.Canceled):
			slog.Debug("login abandoned by client", "email", email)
		default:
			logAndInternalError(w, "login error", "error", err)
		}
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, middleware.SafeRedirect(next, homeFor(user)), tr(r, "auth.login_success", user.Name))
}

func (h *AuthHandler) renderLoginFailure(w http.ResponseWriter, r *http.Request, td render.TemplateData, msg string) {
	td.Flash = msg
	td.FlashType = middleware.FlashError
	h.renderStatus(w, r, http.StatusUnauthorized, "auth/login", td)
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if u, ok := currentUser(r); ok {
		http.Redirect(w, r, homeFor(u), http.StatusSeeOther)
		return
	}
	h.render(w, r, "auth/register", h.page(r, tr(r, "nav.register"), RouteRegister, RegisterData{}))
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRegister) {
		return
	}

	name := r.FormValue("name")
	email := model.NormalizeEmail(r.FormValue("email"))
	td := h.page(r, tr(r, "nav.register"), RouteRegister, RegisterData{Name: name, Email: email})

	user, err := h.auth.Register(r.Context(), name, email, r.FormValue("password"))
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderInvalid(w, r, "auth/register", td, err)
		case errors.Is(err, auth.ErrEmailTaken):
			slog.Warn("register failed: email taken", "email", email, "ip", middleware.ClientIP(r))
			td.Errors = map[string]string{"email": tr(r, "auth.email_taken")}
			td.Flash = tr(r, "auth.email_taken")
			td.FlashType = middleware.FlashError
			h.renderStatus(w, r, http.StatusConflict, "auth/register", td)
		case errors.Is(err, context.Canceled):
			slog.Debug("registration abandoned by client", "email", email)
		default:
			logAndInternalError(w, "registration error", "error", err)
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, RouteRoot, tr(r, "auth.register_success"))
}

// Logout clears the session user and returns to the home page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if err := h.auth.Logout(r.Context()); err != nil {
		slog.Error("session clear error", "error", err)
	}
	slog.Info("user logged out", "user_id", userID)
	flashInfo(w, r, h.renderer, RouteRoot, tr(r, "auth.logout"))
}

// minutes rounds a lockout up to whole minutes for display.
func minutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}
