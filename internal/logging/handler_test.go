// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

// failingHandler always returns an error from Handle.
type failingHandler struct{ discardHandler }

func (h failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("inner failed")
}

func TestJournalHandler_Handle_ErrorLevel(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(discardHandler{}, j))

	logger.Error("failed to send quote notification", "error", "connection refused")

	entries := j.Recent(0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != LevelError {
		t.Errorf("Level = %q, want %q", entries[0].Level, LevelError)
	}
	if entries[0].Category != CategoryQuote {
		t.Errorf("Category = %q, want %q", entries[0].Category, CategoryQuote)
	}
	if entries[0].Attrs["error"] != "connection refused" {
		t.Errorf("Attrs[error] = %q, want %q", entries[0].Attrs["error"], "connection refused")
	}
}

func TestJournalHandler_Handle_WarnLevel(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(discardHandler{}, j))

	logger.Warn("login failed", "email", "x@example.com")

	entries := j.Recent(0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != LevelWarning {
		t.Errorf("Level = %q, want %q", entries[0].Level, LevelWarning)
	}
	if entries[0].Category != CategoryAuth {
		t.Errorf("Category = %q, want %q", entries[0].Category, CategoryAuth)
	}
}

func TestJournalHandler_Handle_InfoAndDebugNotCaptured(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(discardHandler{}, j))

	logger.Info("server started", "port", 8080)
	logger.Debug("processing request", "request_id", "abc123")

	if j.Len() != 0 {
		t.Errorf("expected 0 entries, got %d", j.Len())
	}
}

func TestJournalHandler_Handle_CustomLevel(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandlerWithLevel(discardHandler{}, j, slog.LevelInfo))

	logger.Info("server started", "port", 8080)

	if j.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", j.Len())
	}
}

func TestJournalHandler_ExplicitCategory(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(discardHandler{}, j))

	logger.Warn("something odd", "category", CategoryAdmin, "id", 7)

	e := j.Recent(1)[0]
	if e.Category != CategoryAdmin {
		t.Errorf("Category = %q, want %q", e.Category, CategoryAdmin)
	}
	if _, ok := e.Attrs["category"]; ok {
		t.Error("category should not be duplicated in Attrs")
	}
	if e.Attrs["id"] != "7" {
		t.Errorf("Attrs[id] = %q, want %q", e.Attrs["id"], "7")
	}
}

func TestJournalHandler_WithAttrs(t *testing.T) {
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(discardHandler{}, j)).With("component", "quote")

	logger.Warn("draft expired")

	e := j.Recent(1)[0]
	if e.Attrs["component"] != "quote" {
		t.Errorf("Attrs[component] = %q, want %q", e.Attrs["component"], "quote")
	}
}

func TestJournalHandler_ForwardsToInner(t *testing.T) {
	var buf bytes.Buffer
	j := NewJournal(10)
	logger := slog.New(NewJournalHandler(slog.NewTextHandler(&buf, nil), j))

	logger.Warn("route not found", "path", "/nope")

	if !strings.Contains(buf.String(), "route not found") {
		t.Errorf("inner handler output missing message: %q", buf.String())
	}
	if j.Recent(1)[0].Category != CategoryRouting {
		t.Errorf("Category = %q, want %q", j.Recent(1)[0].Category, CategoryRouting)
	}
}

func TestJournalHandler_InnerErrorSkipsJournal(t *testing.T) {
	j := NewJournal(10)
	h := NewJournalHandler(failingHandler{}, j)

	r := slog.Record{Level: slog.LevelError, Message: "boom"}
	if err := h.Handle(context.Background(), r); err == nil {
		t.Fatal("expected error from inner handler")
	}
	if j.Len() != 0 {
		t.Errorf("expected 0 entries, got %d", j.Len())
	}
}

func TestJournal_RingOverwritesOldest(t *testing.T) {
	j := NewJournal(3)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		j.Add(Entry{Message: msg})
	}

	if j.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", j.Len())
	}

	got := j.Recent(0)
	want := []string{"e", "d", "c"}
	for i, e := range got {
		if e.Message != want[i] {
			t.Errorf("Recent[%d] = %q, want %q", i, e.Message, want[i])
		}
	}

	if n := len(j.Recent(2)); n != 2 {
		t.Errorf("Recent(2) returned %d entries", n)
	}

	j.Clear()
	if j.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", j.Len())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
