// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"net/url"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/model"
)

func ids[T interface{ EntityID() int64 }](items []T) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.EntityID())
	}
	return out
}

func TestFilter_Gallery(t *testing.T) {
	gallery := seedGallery()

	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"no criteria", Criteria{}, []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"all keyword", Criteria{Category: "all", Material: "ALL", Color: All}, []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"search title accent-insensitive", Criteria{Search: "sofa"}, []int64{1, 3, 6}},
		{"search material", Criteria{Search: "chenille"}, []int64{5, 8}},
		{"category", Criteria{Category: "Sofás"}, []int64{1, 3, 6}},
		{"material", Criteria{Material: "Veludo"}, []int64{2, 5}},
		{"color keeps uncolored", Criteria{Color: "Cinza"}, []int64{4, 5, 6}},
		{"min price keeps unpriced", Criteria{MinPrice: ptr(2000.0)}, []int64{1, 3, 4, 6}},
		{"inclusive bounds", Criteria{MinPrice: ptr(1450.0), MaxPrice: ptr(2600.0)}, []int64{2, 3, 4, 7}},
		{"combined", Criteria{Category: "Sofás", Color: "Cinza", MaxPrice: ptr(3000.0)}, []int64{6}},
		{"no results", Criteria{Search: "mesa de centro"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(gallery, tt.c)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_ResultIsOrderedSubset(t *testing.T) {
	gallery := seedGallery()
	materials := []string{"", "Veludo", "Couro Natural", "Linho"}
	colors := []string{"", "Cinza", "Verde", "Rosa"}
	categories := []string{"", "Sofás", "Poltronas", "Automotivo"}
	prices := []*float64{nil, ptr(0.0), ptr(1000.0), ptr(3200.0)}

	for _, cat := range categories {
		for _, mat := range materials {
			for _, col := range colors {
				for _, minP := range prices {
					for _, maxP := range prices {
						c := Criteria{Category: cat, Material: mat, Color: col, MinPrice: minP, MaxPrice: maxP}
						got := Filter(gallery, c)

						// Order-preserving subset of the input
						last := -1
						for _, g := range got {
							idx := slices.IndexFunc(gallery, func(x model.GalleryImage) bool { return x.ID == g.ID })
							require.Greater(t, idx, last)
							last = idx
							require.True(t, c.Matches(g.Facets()))
						}

						// Nothing that matches is dropped
						want := 0
						for _, g := range gallery {
							if c.Matches(g.Facets()) {
								want++
							}
						}
						require.Len(t, got, want)
					}
				}
			}
		}
	}
}

func TestFilter_MaterialsByTypeAndPrice(t *testing.T) {
	got := Filter(seedMaterials(), Criteria{Category: "tecido", MaxPrice: ptr(95.0)})
	assert.Equal(t, []int64{3, 5, 6}, ids(got))
}

func TestFilter_BlogSearchesExcerpt(t *testing.T) {
	got := Filter(seedPosts(), Criteria{Search: "décadas"})
	assert.Equal(t, []int64{2}, ids(got))

	got = Filter(seedPosts(), Criteria{Category: "Manutenção"})
	assert.Equal(t, []int64{3}, ids(got))
}

func TestCriteriaFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set(ParamSearch, "  sofá ")
	q.Set(ParamCategory, "Sofás")
	q.Set(ParamMinPrice, "100,50")
	q.Set(ParamMaxPrice, "-3")

	c := CriteriaFromQuery(q)
	assert.Equal(t, "sofá", c.Search)
	assert.Equal(t, "Sofás", c.Category)
	require.NotNil(t, c.MinPrice)
	assert.InDelta(t, 100.5, *c.MinPrice, 0.001)
	assert.Nil(t, c.MaxPrice, "negative price should be ignored")

	assert.Nil(t, CriteriaFromQuery(url.Values{ParamMinPrice: {"abc"}}).MinPrice)
	assert.Nil(t, CriteriaFromQuery(url.Values{ParamMinPrice: {"NaN"}}).MinPrice)
}

func TestCriteria_QueryRoundTrip(t *testing.T) {
	c := Criteria{Search: "couro", Category: All, Color: "Preto", MaxPrice: ptr(500.0)}
	q := c.Query()

	assert.Equal(t, "couro", q.Get(ParamSearch))
	assert.False(t, q.Has(ParamCategory))
	assert.Equal(t, "500", q.Get(ParamMaxPrice))

	back := CriteriaFromQuery(q)
	assert.Equal(t, "Preto", back.Color)
	assert.False(t, back.IsZero())
	assert.True(t, Criteria{Category: "all"}.IsZero())
}

func TestOptionsOf(t *testing.T) {
	o := OptionsOf(seedGallery())

	assert.Equal(t, []string{"Automotivo", "Cabeceiras", "Cadeiras", "Poltronas", "Puffs", "Sofás"}, o.Categories)
	assert.Contains(t, o.Materials, "Veludo")
	assert.Equal(t, []string{"Azul", "Bege", "Cinza", "Marrom", "Preto", "Verde"}, o.Colors)
	assert.True(t, o.HasPrices)
	assert.Equal(t, 350.0, o.MinPrice)
	assert.Equal(t, 3200.0, o.MaxPrice)

	empty := OptionsOf([]model.GalleryImage{})
	assert.False(t, empty.HasPrices)
}
