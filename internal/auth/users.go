// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/estofamais/internal/kv"
	"github.com/olegiv/estofamais/internal/model"
)

// UsersKey is the kv key holding the JSON array of registered users.
const UsersKey = "estofamais_users"

// Default administrator seeded on first access.
const (
	DefaultAdminEmail    = "admin@estofamais.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrador"
)

// ErrUserNotFound is returned when no user matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// Users is the registered-users list persisted as one kv value.
// Read-modify-write cycles are serialized by mu.
type Users struct {
	store kv.Store
	mu    sync.Mutex
	now   func() time.Time
}

// NewUsers creates a users repository backed by store.
func NewUsers(store kv.Store) *Users {
	return &Users{store: store, now: time.Now}
}

// load reads the list, seeding the default administrator when it is missing.
// Callers must hold mu.
func (u *Users) load(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := kv.GetJSON(ctx, u.store, UsersKey, &users); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	if slices.ContainsFunc(users, func(x model.User) bool { return x.Email == DefaultAdminEmail }) {
		return users, nil
	}

	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing default admin password: %w", err)
	}
	users = append(users, model.User{
		ID:           nextUserID(users),
		Name:         DefaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    u.now(),
	})
	if err := kv.SetJSON(ctx, u.store, UsersKey, users); err != nil {
		return nil, fmt.Errorf("seeding default admin: %w", err)
	}
	slog.Info("seeded default administrator", "email", DefaultAdminEmail)
	return users, nil
}

func nextUserID(users []model.User) int64 {
	var maxID int64
	for _, x := range users {
		maxID = max(maxID, x.ID)
	}
	return maxID + 1
}

// List returns all users in registration order.
func (u *Users) List(ctx context.Context) ([]model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.load(ctx)
}

// FindByEmail looks a user up by normalized e-mail.
func (u *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	email = model.NormalizeEmail(email)
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID looks a user up by id.
func (u *Users) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user with role "user".
// It returns ErrEmailTaken if the e-mail is already registered.
func (u *Users) Create(ctx context.Context, name, email, passwordHash string) (model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.load(ctx)
	if err != nil {
		return model.User{}, err
	}

	email = model.NormalizeEmail(email)
	if slices.ContainsFunc(users, func(x model.User) bool { return x.Email == email }) {
		return model.User{}, ErrEmailTaken
	}

	user := model.User{
		ID:           nextUserID(users),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		CreatedAt:    u.now(),
	}
	users = append(users, user)
	if err := kv.SetJSON(ctx, u.store, UsersKey, users); err != nil {
		return model.User{}, fmt.Errorf("saving users: %w", err)
	}
	return user, nil
}

// UpdatePasswordHash replaces the stored hash of a user.
func (u *Users) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(users, func(x model.User) bool { return x.ID == id })
	if i < 0 {
		return ErrUserNotFound
	}
	users[i].PasswordHash = hash
	return kv.SetJSON(ctx, u.store, UsersKey, users)
}
