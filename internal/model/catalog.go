// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// GalleryImage is a finished job shown in the gallery.
// Color and Price are optional.
type GalleryImage struct {
	ID        int64    `json:"id"`
	Src       string   `json:"src"`
	Alt       string   `json:"alt"`
	Category  string   `json:"category"`
	Materials []string `json:"materials"`
	Title     string   `json:"title"`
	Color     *string  `json:"color,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}

// NewGalleryImage validates and normalizes a gallery item.
func NewGalleryImage(in GalleryImage) (GalleryImage, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Src = strings.TrimSpace(in.Src)
	in.Category = strings.TrimSpace(in.Category)
	in.Materials = trimAll(in.Materials)
	in.Color = optionalString(in.Color)
	if strings.TrimSpace(in.Alt) == "" {
		in.Alt = in.Title
	}

	c := newChecker()
	c.required("title", in.Title, "Título é obrigatório")
	c.required("src", in.Src, "Imagem é obrigatória")
	c.required("category", in.Category, "Categoria é obrigatória")
	if in.Price != nil {
		c.nonNegative("price", *in.Price)
	}
	if err := c.err(); err != nil {
		return GalleryImage{}, err
	}
	return in, nil
}

// Material is an upholstery fabric or leather offered to customers.
type Material struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Color       string  `json:"color"`
	Type        string  `json:"type"`
}

// NewMaterial validates and normalizes a material.
func NewMaterial(in Material) (Material, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	in.Color = strings.TrimSpace(in.Color)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	c := newChecker()
	c.required("title", in.Title, "Título é obrigatório")
	c.required("description", in.Description, "Descrição é obrigatória")
	c.required("type", in.Type, "Tipo é obrigatório")
	c.nonNegative("price", in.Price)
	if err := c.err(); err != nil {
		return Material{}, err
	}
	return in, nil
}

// Service is an offered upholstery service.
type Service struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	PriceFrom   *float64 `json:"priceFrom,omitempty"`
}

// NewService validates and normalizes a service.
func NewService(in Service) (Service, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Features = trimAll(in.Features)

	c := newChecker()
	c.required("title", in.Title, "Título é obrigatório")
	c.required("description", in.Description, "Descrição é obrigatória")
	if in.PriceFrom != nil {
		c.nonNegative("priceFrom", *in.PriceFrom)
	}
	if err := c.err(); err != nil {
		return Service{}, err
	}
	return in, nil
}
