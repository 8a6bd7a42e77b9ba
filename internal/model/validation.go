// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError carries per-field messages from a failed form check.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for a single field, or "".
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// checker accumulates field errors; the first error per field wins.
type checker struct {
	errs map[string]string
}

func newChecker() *checker {
	return &checker{errs: make(map[string]string)}
}

func (c *checker) add(field, msg string) {
	if _, exists := c.errs[field]; !exists {
		c.errs[field] = msg
	}
}

func (c *checker) required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, msg)
	}
}

func (c *checker) minLen(field, value string, n int, msg string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		c.add(field, msg)
	}
}

func (c *checker) email(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, "E-mail é obrigatório")
		return
	}
	if !IsValidEmail(value) {
		c.add(field, "E-mail inválido")
	}
}

func (c *checker) nonNegative(field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		c.add(field, "Valor inválido")
		return
	}
	if value < 0 {
		c.add(field, "Valor não pode ser negativo")
	}
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.errs}
}

// IsValidEmail reports whether s is a bare e-mail address.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// trimAll trims every element and drops empty ones.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// optionalString returns nil for blank input.
func optionalString(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
