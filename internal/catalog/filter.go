// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/util"
)

// All is the select value meaning "no restriction".
const All = "all"

// Query parameter names used by catalog pages and the API.
const (
	ParamSearch   = "q"
	ParamCategory = "categoria"
	ParamMaterial = "material"
	ParamColor    = "cor"
	ParamMinPrice = "min"
	ParamMaxPrice = "max"
)

// Filterable items expose the facets the filter looks at.
type Filterable interface {
	Facets() model.Facets
}

// Criteria are the active filter controls. Empty strings, "all" and nil
// prices leave the matching predicate out.
type Criteria struct {
	Search   string
	Category string
	Material string
	Color    string
	MinPrice *float64
	MaxPrice *float64
}

func active(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.EqualFold(s, All)
}

func sameValue(a, b string) bool {
	return util.Fold(strings.TrimSpace(a)) == util.Fold(strings.TrimSpace(b))
}

// IsZero reports whether no predicate is active.
func (c Criteria) IsZero() bool {
	return !active(c.Search) && !active(c.Category) && !active(c.Material) &&
		!active(c.Color) && c.MinPrice == nil && c.MaxPrice == nil
}

// Matches reports whether an item with facets f satisfies every active predicate.
func (c Criteria) Matches(f model.Facets) bool {
	if active(c.Search) {
		found := slices.ContainsFunc(f.Text, func(s string) bool {
			return util.ContainsFold(s, strings.TrimSpace(c.Search))
		})
		if !found {
			return false
		}
	}

	if active(c.Category) && !sameValue(f.Category, c.Category) {
		return false
	}

	if active(c.Material) {
		if !slices.ContainsFunc(f.Materials, func(m string) bool { return sameValue(m, c.Material) }) {
			return false
		}
	}

	// Absent optional fields skip their predicate
	if active(c.Color) && f.Color != nil && !sameValue(*f.Color, c.Color) {
		return false
	}

	if f.Price != nil {
		if c.MinPrice != nil && *f.Price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && *f.Price > *c.MaxPrice {
			return false
		}
	}

	return true
}

// Filter returns the items that satisfy every active predicate, in their
// original order. The result is never nil.
func Filter[T Filterable](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if c.Matches(it.Facets()) {
			out = append(out, it)
		}
	}
	return out
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// CriteriaFromQuery reads criteria from URL query parameters.
// Unparseable or negative prices are ignored.
func CriteriaFromQuery(q url.Values) Criteria {
	return Criteria{
		Search:   strings.TrimSpace(q.Get(ParamSearch)),
		Category: strings.TrimSpace(q.Get(ParamCategory)),
		Material: strings.TrimSpace(q.Get(ParamMaterial)),
		Color:    strings.TrimSpace(q.Get(ParamColor)),
		MinPrice: parsePrice(q.Get(ParamMinPrice)),
		MaxPrice: parsePrice(q.Get(ParamMaxPrice)),
	}
}

// Query encodes the active criteria as URL query parameters.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if active(v) {
			q.Set(k, strings.TrimSpace(v))
		}
	}
	set(ParamSearch, c.Search)
	set(ParamCategory, c.Category)
	set(ParamMaterial, c.Material)
	set(ParamColor, c.Color)
	if c.MinPrice != nil {
		q.Set(ParamMinPrice, strconv.FormatFloat(*c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != nil {
		q.Set(ParamMaxPrice, strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	return q
}

// Options are the distinct facet values offered by filter controls.
type Options struct {
	Categories []string
	Materials  []string
	Colors     []string
	MinPrice   float64
	MaxPrice   float64
	HasPrices  bool
}

// OptionsOf collects sorted distinct facet values and the price span.
func OptionsOf[T Filterable](items []T) Options {
	var o Options
	seen := map[string]map[string]bool{"c": {}, "m": {}, "k": {}}
	add := func(kind string, dst *[]string, v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[kind][v] {
			return
		}
		seen[kind][v] = true
		*dst = append(*dst, v)
	}

	for _, it := range items {
		f := it.Facets()
		add("c", &o.Categories, f.Category)
		for _, m := range f.Materials {
			add("m", &o.Materials, m)
		}
		if f.Color != nil {
			add("k", &o.Colors, *f.Color)
		}
		if f.Price != nil {
			if !o.HasPrices || *f.Price < o.MinPrice {
				o.MinPrice = *f.Price
			}
			if !o.HasPrices || *f.Price > o.MaxPrice {
				o.MaxPrice = *f.Price
			}
			o.HasPrices = true
		}
	}

	slices.Sort(o.Categories)
	slices.Sort(o.Materials)
	slices.Sort(o.Colors)
	return o
}
