// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Facets are the attributes catalog filters look at.
// Nil Color or Price means the item does not carry that attribute.
type Facets struct {
	Text      []string
	Category  string
	Materials []string
	Color     *string
	Price     *float64
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EntityID implements crud.Entity.
func (g GalleryImage) EntityID() int64 { return g.ID }

// WithID implements crud.Entity.
func (g GalleryImage) WithID(id int64) GalleryImage { g.ID = id; return g }

// Facets implements catalog.Filterable.
func (g GalleryImage) Facets() Facets {
	return Facets{
		Text:      append([]string{g.Title}, g.Materials...),
		Category:  g.Category,
		Materials: g.Materials,
		Color:     g.Color,
		Price:     g.Price,
	}
}

// EntityID implements crud.Entity.
func (m Material) EntityID() int64 { return m.ID }

// WithID implements crud.Entity.
func (m Material) WithID(id int64) Material { m.ID = id; return m }

// Facets implements catalog.Filterable. The material type acts as category.
func (m Material) Facets() Facets {
	price := m.Price
	return Facets{
		Text:      []string{m.Title, m.Type},
		Category:  m.Type,
		Materials: []string{m.Title},
		Color:     nonEmpty(m.Color),
		Price:     &price,
	}
}

// EntityID implements crud.Entity.
func (s Service) EntityID() int64 { return s.ID }

// WithID implements crud.Entity.
func (s Service) WithID(id int64) Service { s.ID = id; return s }

// Facets implements catalog.Filterable.
func (s Service) Facets() Facets {
	return Facets{
		Text:  append([]string{s.Title, s.Description}, s.Features...),
		Price: s.PriceFrom,
	}
}

// EntityID implements crud.Entity.
func (p BlogPost) EntityID() int64 { return p.ID }

// WithID implements crud.Entity.
func (p BlogPost) WithID(id int64) BlogPost { p.ID = id; return p }

// Facets implements catalog.Filterable.
func (p BlogPost) Facets() Facets {
	return Facets{
		Text:     []string{p.Title, p.Excerpt},
		Category: p.Category,
	}
}

// EntityID implements crud.Entity.
func (c Comment) EntityID() int64 { return c.ID }

// WithID implements crud.Entity.
func (c Comment) WithID(id int64) Comment { c.ID = id; return c }

// EntityID implements crud.Entity.
func (q Quote) EntityID() int64 { return q.ID }

// WithID implements crud.Entity.
func (q Quote) WithID(id int64) Quote { q.ID = id; return q }

// Facets implements catalog.Filterable. The status acts as category.
func (q Quote) Facets() Facets {
	return Facets{
		Text:      []string{q.Name, q.Email, q.ServiceType, q.Description},
		Category:  q.Status,
		Materials: q.Materials,
		Color:     nonEmpty(q.Color),
	}
}

// EntityID implements crud.Entity.
func (m ContactMessage) EntityID() int64 { return m.ID }

// WithID implements crud.Entity.
func (m ContactMessage) WithID(id int64) ContactMessage { m.ID = id; return m }
