// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"

	"github.com/olegiv/estofamais/internal/model"
)

// SessionStore holds the current session user for the visitor bound to ctx.
type SessionStore interface {
	Get(ctx context.Context) (model.SessionUser, bool)
	Set(ctx context.Context, u model.SessionUser) error
	Clear(ctx context.Context) error
}

type ctxKey struct{}

// MemorySession is a SessionStore for a single visitor, used by tests and
// by token-authenticated API requests that have no cookie session.
type MemorySession struct {
	user *model.SessionUser
}

// Get returns the stored user.
func (m *MemorySession) Get(context.Context) (model.SessionUser, bool) {
	if m.user == nil {
		return model.SessionUser{}, false
	}
	return *m.user, true
}

// Set stores the user.
func (m *MemorySession) Set(_ context.Context, u model.SessionUser) error {
	m.user = &u
	return nil
}

// Clear removes the user.
func (m *MemorySession) Clear(context.Context) error {
	m.user = nil
	return nil
}

// WithUser returns a context carrying an already-authenticated user.
// Middleware uses it to hand the session user to handlers.
func WithUser(ctx context.Context, u model.SessionUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (model.SessionUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.SessionUser)
	return u, ok
}
