// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into an in-memory journal shown on the admin dashboard.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Journal levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Journal categories.
const (
	CategoryAuth     = "auth"
	CategoryQuote    = "quote"
	CategoryContact  = "contact"
	CategoryAdmin    = "admin"
	CategorySecurity = "security"
	CategoryRouting  = "routing"
	CategorySystem   = "system"
)

// DefaultJournalSize is the number of entries kept when no size is given.
const DefaultJournalSize = 200

// Entry is a single journal record.
type Entry struct {
	Level    string
	Category string
	Message  string
	Attrs    map[string]string
	Time     time.Time
}

// Journal is a fixed-size ring of log entries, newest last.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// NewJournal creates a journal holding at most size entries.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{entries: make([]Entry, size)}
}

// Add appends an entry, overwriting the oldest one when the ring is full.
func (j *Journal) Add(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.next] = e
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
}

// Len returns the number of stored entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.full {
		return len(j.entries)
	}
	return j.next
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (j *Journal) Recent(limit int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := j.next
	if j.full {
		n = len(j.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (j.next - 1 - i + len(j.entries)) % len(j.entries)
		out = append(out, j.entries[idx])
	}
	return out
}

// Clear removes all entries.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	clear(j.entries)
	j.next = 0
	j.full = false
}

// JournalHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to a Journal.
type JournalHandler struct {
	inner   slog.Handler
	journal *Journal
	level   slog.Level // Minimum level to mirror (default: WARN)
	attrs   []slog.Attr
}

// NewJournalHandler creates a JournalHandler that mirrors WARN and above.
func NewJournalHandler(inner slog.Handler, journal *Journal) *JournalHandler {
	return NewJournalHandlerWithLevel(inner, journal, slog.LevelWarn)
}

// NewJournalHandlerWithLevel creates a JournalHandler with a custom minimum level.
func NewJournalHandlerWithLevel(inner slog.Handler, journal *Journal, level slog.Level) *JournalHandler {
	return &JournalHandler{
		inner:   inner,
		journal: journal,
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *JournalHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *JournalHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level && h.journal != nil {
		h.journal.Add(h.toEntry(r))
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &JournalHandler{
		inner:   h.inner.WithAttrs(attrs),
		journal: h.journal,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler.
func (h *JournalHandler) WithGroup(name string) slog.Handler {
	return &JournalHandler{
		inner:   h.inner.WithGroup(name),
		journal: h.journal,
		level:   h.level,
		attrs:   h.attrs,
	}
}

func (h *JournalHandler) toEntry(r slog.Record) Entry {
	e := Entry{
		Level:   levelName(r.Level),
		Message: r.Message,
		Time:    r.Time,
		Attrs:   make(map[string]string, r.NumAttrs()+len(h.attrs)),
	}

	collect := func(a slog.Attr) bool {
		if a.Key == "category" {
			e.Category = a.Value.String()
			return true
		}
		e.Attrs[a.Key] = a.Value.String()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if e.Category == "" {
		e.Category = inferCategory(r.Message)
	}
	return e
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// inferCategory guesses a category from the message when none was given.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "register") || strings.Contains(msg, "auth"):
		return CategoryAuth
	case strings.Contains(msg, "quote"):
		return CategoryQuote
	case strings.Contains(msg, "contact"):
		return CategoryContact
	case strings.Contains(msg, "access denied") || strings.Contains(msg, "csrf") ||
		strings.Contains(msg, "rate limit") || strings.Contains(msg, "blocked"):
		return CategorySecurity
	case strings.Contains(msg, "not found") || strings.Contains(msg, "route"):
		return CategoryRouting
	case strings.Contains(msg, "admin"):
		return CategoryAdmin
	default:
		return CategorySystem
	}
}

// ParseLevel converts a config string to a slog.Level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
