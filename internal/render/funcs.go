// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/olegiv/estofamais/internal/geoip"
	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/model"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatPrice formats a value as Brazilian reais, e.g. "R$ 1.450,00".
func FormatPrice(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

var statusLabels = map[string]string{
	model.QuoteStatusPending:   "Pendente",
	model.QuoteStatusContacted: "Contatado",
	model.QuoteStatusApproved:  "Aprovado",
	model.QuoteStatusRejected:  "Rejeitado",
}

// StatusLabel returns the display label of a quote status.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// Truncate shortens s to at most n runes, adding an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": func(lang, key string, args ...any) string {
			return i18n.T(lang, key, args...)
		},
		"price": FormatPrice,
		"priceFrom": func(p *float64) string {
			if p == nil {
				return ""
			}
			return FormatPrice(*p)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"markdown": func(src string) template.HTML {
			if r.content == nil {
				return template.HTML(template.HTMLEscapeString(src))
			}
			return r.content.Markdown(src)
		},
		"statusLabel": StatusLabel,
		"statuses":    func() []string { return model.QuoteStatuses },
		"countryName": geoip.CountryName,
		"truncate":    Truncate,
		"join":        strings.Join,
		"contains": func(list []string, s string) bool {
			return slices.Contains(list, s)
		},
		"isAdmin": func(u *model.SessionUser) bool {
			return u != nil && u.IsAdmin()
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
	}
}
