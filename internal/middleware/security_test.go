// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{"production mode enables HSTS", false, true},
		{"development mode disables HSTS", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(okHandler())
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS != (hsts != "") {
				t.Errorf("Strict-Transport-Security = %q, wantHSTS %v", hsts, tt.wantHSTS)
			}
			if rec.Header().Get("Content-Security-Policy") == "" {
				t.Error("missing Content-Security-Policy")
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
		})
	}
}

func TestDefaultSecurityHeadersConfig_ImageHosts(t *testing.T) {
	csp := DefaultSecurityHeadersConfig(false).ContentSecurityPolicy

	for _, host := range []string{"https://images.unsplash.com", "https://res.cloudinary.com"} {
		if !strings.Contains(csp, host) {
			t.Errorf("CSP missing image host %s: %s", host, csp)
		}
	}
	if !strings.Contains(csp, "upgrade-insecure-requests") {
		t.Error("production CSP should upgrade insecure requests")
	}
	if strings.Contains(DefaultSecurityHeadersConfig(true).ContentSecurityPolicy, "upgrade-insecure-requests") {
		t.Error("development CSP should not upgrade insecure requests")
	}
}

func TestBuildCSP_Order(t *testing.T) {
	got := buildCSP(map[string]string{
		"img-src":     "'self'",
		"default-src": "'self'",
		"worker-src":  "'none'",
	})
	want := "default-src 'self'; img-src 'self'; worker-src 'none'"
	if got != want {
		t.Errorf("buildCSP() = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "(self)"})
	if got != "camera=(self), usb=()" {
		t.Errorf("buildPermissionsPolicy() = %q", got)
	}
}
