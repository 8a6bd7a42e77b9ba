// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestLookup_WithoutDatabase(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	defer func() { _ = l.Close() }()

	if l.Enabled() {
		t.Error("Enabled() = true without a database")
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", Local},
		{"::1", Local},
		{"10.1.2.3", Local},
		{"172.20.0.1", Local},
		{"192.168.0.10", Local},
		{"fe80::1", Local},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := l.Country(tt.ip); got != tt.want {
			t.Errorf("Country(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}

	if err := l.Reload(); err != nil {
		t.Errorf("Reload() without path error: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	if err == nil {
		t.Fatal("Open() should fail for a missing database")
	}
	if l == nil || l.Enabled() {
		t.Fatal("a failed Open should still return a disabled Lookup")
	}
	if got := l.Country("192.168.1.1"); got != Local {
		t.Errorf("Country() = %q, want %q", got, Local)
	}
}

func TestCountryName(t *testing.T) {
	tests := map[string]string{
		"BR":  "Brasil",
		Local: "Rede local",
		"":    "Desconhecido",
		"ZZ":  "ZZ",
	}
	for code, want := range tests {
		if got := CountryName(code); got != want {
			t.Errorf("CountryName(%q) = %q, want %q", code, got, want)
		}
	}
}
