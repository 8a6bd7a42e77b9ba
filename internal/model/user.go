// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the site's entities and the form-level validation
// their constructors enforce.
package model

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User is a registered account. Users are never deleted in-app.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SessionUser returns the record kept in the visitor session.
func (u *User) SessionUser() SessionUser {
	return SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// SessionUser is the current session user record.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin returns true if the session user has admin role.
func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lowercases and trims an e-mail address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the sign-up form.
func ValidateRegistration(name, email, password string) error {
	c := newChecker()
	c.minLen("name", name, 2, "Nome deve ter pelo menos 2 caracteres")
	c.email("email", email)
	if len(password) < MinPasswordLength {
		c.add("password", "Senha deve ter pelo menos 6 caracteres")
	}
	return c.err()
}

// ValidateLogin checks the sign-in form.
func ValidateLogin(email, password string) error {
	c := newChecker()
	c.email("email", email)
	if password == "" {
		c.add("password", "Senha é obrigatória")
	}
	return c.err()
}
