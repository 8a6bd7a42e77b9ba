// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures visitor sessions and adapts them to the auth
// session store.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/model"
)

// Session keys.
const (
	UserKey      = "estofamais_user"
	FlashKey     = "flash"
	FlashTypeKey = "flash_type"
	DraftKey     = "quote_draft"
)

// New creates a session manager. When db is nil sessions are kept in memory,
// otherwise they go to the sessions table of the SQLite database.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.Name = "estofamais_session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-estofamais_session"
	}

	return sm
}

// UserStore keeps the current session user in an scs session.
// It implements auth.SessionStore.
type UserStore struct {
	sm *scs.SessionManager
}

// NewUserStore creates the adapter.
func NewUserStore(sm *scs.SessionManager) *UserStore {
	return &UserStore{sm: sm}
}

// Get returns the session user.
func (s *UserStore) Get(ctx context.Context) (model.SessionUser, bool) {
	u, ok := s.sm.Get(ctx, UserKey).(model.SessionUser)
	return u, ok
}

// Set stores the user after renewing the session token.
func (s *UserStore) Set(ctx context.Context, u model.SessionUser) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return err
	}
	s.sm.Put(ctx, UserKey, u)
	return nil
}

// Clear removes the user and renews the token.
func (s *UserStore) Clear(ctx context.Context) error {
	s.sm.Remove(ctx, UserKey)
	return s.sm.RenewToken(ctx)
}

var _ auth.SessionStore = (*UserStore)(nil)
