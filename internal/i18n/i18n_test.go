// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, lang := range SupportedLanguages {
		if TranslationCount(lang) == 0 {
			t.Errorf("expected %s translations to be loaded", lang)
		}
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"pt-BR", "quote.material_selected", nil, "Material já selecionado"},
		{"en", "quote.material_selected", nil, "Material already selected"},
		{"pt-BR", "quote.image_limit", []any{3}, "Máximo de 3 imagens permitidas"},
		{"en", "auth.login_success", []any{"Ana"}, "Welcome, Ana!"},
		{"pt-BR", "admin.saved", []any{"Material"}, "Material salvo com sucesso"},
		// Unknown language falls back to Portuguese
		{"de", "nav.contact", nil, "Contato"},
		// Unknown key is returned unchanged
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := T(tt.lang, tt.key, tt.args...); got != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, got, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"", "pt-BR"},
		{"pt-BR", "pt-BR"},
		{"pt", "pt-BR"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"pt-BR,pt;q=0.9,en;q=0.8", "pt-BR"},
		{"ja", "pt-BR"},
		{"!!!", "pt-BR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("pt-BR") || !IsSupported("en") {
		t.Error("expected pt-BR and en to be supported")
	}
	if IsSupported("ru") {
		t.Error("ru should not be supported")
	}
}

// Every key must exist in every language so toasts never show raw keys.
func TestLocalesHaveSameKeys(t *testing.T) {
	keys := make(map[string]map[string]bool)
	for _, lang := range SupportedLanguages {
		data, err := localesFS.ReadFile("locales/" + lang + "/messages.json")
		if err != nil {
			t.Fatalf("reading %s: %v", lang, err)
		}
		var f MessageFile
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("parsing %s: %v", lang, err)
		}
		if f.Language != lang {
			t.Errorf("%s file declares language %q", lang, f.Language)
		}
		keys[lang] = make(map[string]bool)
		for _, m := range f.Messages {
			if keys[lang][m.ID] {
				t.Errorf("%s: duplicate key %q", lang, m.ID)
			}
			keys[lang][m.ID] = true
		}
	}

	for key := range keys[DefaultLanguage] {
		for _, lang := range SupportedLanguages[1:] {
			if !keys[lang][key] {
				t.Errorf("key %q missing from %s", key, lang)
			}
		}
	}
}
