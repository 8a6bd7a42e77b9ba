// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get = %q, want %q", got, "v1")
	}

	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if string(got) != "v2" {
		t.Errorf("Get after overwrite = %q, want %q", got, "v2")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	_ = s.Set(ctx, "k", value)
	value[0] = 'x'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}

	got[1] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Close()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get error = %v, want ErrClosed", err)
	}
	if err := s.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set error = %v, want ErrClosed", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Delete error = %v, want ErrClosed", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	var dst []record
	found, err := GetJSON(ctx, s, "users", &dst)
	if err != nil || found {
		t.Fatalf("GetJSON on empty store = (%v, %v), want (false, nil)", found, err)
	}

	in := []record{{Name: "Ana", Email: "ana@example.com"}}
	if err := SetJSON(ctx, s, "users", in); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	found, err = GetJSON(ctx, s, "users", &dst)
	if err != nil || !found {
		t.Fatalf("GetJSON = (%v, %v), want (true, nil)", found, err)
	}
	if len(dst) != 1 || dst[0].Email != "ana@example.com" {
		t.Errorf("GetJSON decoded %+v", dst)
	}

	_ = s.Set(ctx, "broken", []byte("{not json"))
	if _, err := GetJSON(ctx, s, "broken", &dst); err == nil {
		t.Error("GetJSON should fail on invalid JSON")
	}
}
