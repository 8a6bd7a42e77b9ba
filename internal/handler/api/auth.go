// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
)

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      model.SessionUser `json:"user"`
}

// IssueToken handles POST /api/v1/auth/token. Failed attempts count
// towards the same account lockout as the login form.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := model.NormalizeEmail(req.Email)

	if err := model.ValidateLogin(email, req.Password); err != nil {
		writeStoreError(w, "credentials", err)
		return
	}

	if h.lp != nil {
		if locked, remaining := h.lp.IsAccountLocked(email); locked {
			slog.Warn("api token request on locked account", "email", email, "ip", middleware.ClientIP(r))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
			WriteError(w, http.StatusTooManyRequests, "account temporarily locked", nil)
			return
		}
	}

	user, err := h.auth.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("api login failed", "email", email, "ip", middleware.ClientIP(r))
			if h.lp != nil {
				h.lp.RecordFailedAttempt(email)
			}
			WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		slog.Error("api login error", "error", err)
		WriteInternalError(w, "failed to authenticate")
		return
	}
	if h.lp != nil {
		h.lp.RecordSuccessfulLogin(email)
	}

	su := user.SessionUser()
	token, exp, err := h.tokens.Issue(su)
	if err != nil {
		slog.Error("api token signing failed", "error", err)
		WriteInternalError(w, "failed to issue token")
		return
	}

	slog.Info("api token issued", "user_id", su.ID, "role", su.Role)
	WriteSuccess(w, TokenResponse{Token: token, ExpiresAt: exp, User: su}, nil)
}
