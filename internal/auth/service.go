// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements the site's simple credential store: argon2id
// password hashing, the registered-users list, and the session service
// behind login, registration and logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/util"
)

// Auth failures surfaced to visitors as toasts.
var (
	ErrInvalidCredentials = errors.New("credentials not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// DefaultLatency is the simulated backend delay of Login and Register.
const DefaultLatency = 800 * time.Millisecond

// Service performs login, registration and logout against the users list
// and keeps the outcome in the injected SessionStore.
type Service struct {
	users    *Users
	sessions SessionStore
	latency  time.Duration
}

// NewService creates an auth service.
func NewService(users *Users, sessions SessionStore, latency time.Duration) *Service {
	return &Service{users: users, sessions: sessions, latency: latency}
}

// Users returns the underlying users repository.
func (s *Service) Users() *Users {
	return s.users
}

// Authenticate verifies credentials without touching the session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if NeedsRehash(user.PasswordHash) {
		if hash, err := HashPassword(password); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				slog.Warn("failed to upgrade password hash", "user_id", user.ID, "error", err)
			}
		}
	}
	return user, nil
}

// Login waits the simulated latency, checks the credentials and stores the
// user in the session.
func (s *Service) Login(ctx context.Context, email, password string) (model.SessionUser, error) {
	if err := util.Wait(ctx, s.latency); err != nil {
		return model.SessionUser{}, err
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return model.SessionUser{}, err
	}

	su := user.SessionUser()
	if err := s.sessions.Set(ctx, su); err != nil {
		return model.SessionUser{}, fmt.Errorf("storing session user: %w", err)
	}
	return su, nil
}

// Register validates the form, waits the simulated latency, creates the
// user and logs them in.
func (s *Service) Register(ctx context.Context, name, email, password string) (model.SessionUser, error) {
	name = strings.TrimSpace(name)
	if err := model.ValidateRegistration(name, email, password); err != nil {
		return model.SessionUser{}, err
	}

	if err := util.Wait(ctx, s.latency); err != nil {
		return model.SessionUser{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.SessionUser{}, err
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		return model.SessionUser{}, err
	}

	su := user.SessionUser()
	if err := s.sessions.Set(ctx, su); err != nil {
		return model.SessionUser{}, fmt.Errorf("storing session user: %w", err)
	}
	return su, nil
}

// Logout clears the session user.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// Current returns the session user, if any.
func (s *Service) Current(ctx context.Context) (model.SessionUser, bool) {
	return s.sessions.Get(ctx)
}
