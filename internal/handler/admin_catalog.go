// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/media"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// GalleryUploadFolder is where admin gallery photos are stored.
const GalleryUploadFolder = "gallery"

// NewMaterialsAdmin manages the material catalog.
func NewMaterialsAdmin(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager) *Resource[model.Material] {
	return &Resource[model.Material]{
		site:     site{renderer: renderer, sessionManager: sm, store: store},
		coll:     store.Materials,
		validate: model.NewMaterial,
		label:    "material",
		title:    "Materiais",
		base:     redirectAdminMaterials,
		listTmpl: "admin/materials",
		formTmpl: "admin/material_form",
		name:     func(m model.Material) string { return m.Title },
		decode: func(r *http.Request, _ model.Material) (model.Material, error) {
			m := model.Material{
				Title:       r.FormValue("title"),
				Description: r.FormValue("description"),
				Type:        r.FormValue("type"),
				Color:       r.FormValue("color"),
				ImageURL:    r.FormValue("imageUrl"),
			}
			price, ok := formFloat(r, "price")
			if !ok {
				return m, invalidNumber("price")
			}
			if price != nil {
				m.Price = *price
			}
			return m, nil
		},
	}
}

// NewServicesAdmin manages the services list.
func NewServicesAdmin(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager) *Resource[model.Service] {
	return &Resource[model.Service]{
		site:     site{renderer: renderer, sessionManager: sm, store: store},
		coll:     store.Services,
		validate: model.NewService,
		label:    "service",
		title:    "Serviços",
		base:     redirectAdminServices,
		listTmpl: "admin/services",
		formTmpl: "admin/service_form",
		name:     func(s model.Service) string { return s.Title },
		decode: func(r *http.Request, _ model.Service) (model.Service, error) {
			s := model.Service{
				Title:       r.FormValue("title"),
				Description: r.FormValue("description"),
				Icon:        r.FormValue("icon"),
				Features:    formLines(r, "features"),
			}
			price, ok := formFloat(r, "priceFrom")
			if !ok {
				return s, invalidNumber("priceFrom")
			}
			s.PriceFrom = price
			return s, nil
		},
	}
}

// NewPostsAdmin manages blog posts. Likes survive edits; deleting a post
// deletes its comments.
func NewPostsAdmin(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager) *Resource[model.BlogPost] {
	return &Resource[model.BlogPost]{
		site: site{renderer: renderer, sessionManager: sm, store: store},
		coll: store.Posts,
		validate: func(p model.BlogPost) (model.BlogPost, error) {
			return model.NewBlogPost(p, time.Now())
		},
		label:    "post",
		title:    "Blog",
		base:     redirectAdminPosts,
		listTmpl: "admin/posts",
		formTmpl: "admin/post_form",
		name:     func(p model.BlogPost) string { return p.Title },
		decode: func(r *http.Request, current model.BlogPost) (model.BlogPost, error) {
			return model.BlogPost{
				Title:    r.FormValue("title"),
				Excerpt:  r.FormValue("excerpt"),
				Content:  r.FormValue("content"),
				Author:   r.FormValue("author"),
				Category: r.FormValue("category"),
				Date:     r.FormValue("date"),
				Image:    r.FormValue("image"),
				Likes:    current.Likes,
			}, nil
		},
		remove: func(_ *http.Request, p model.BlogPost) error {
			return store.DeletePost(p.ID)
		},
	}
}

// NewGalleryAdmin manages the portfolio. A photo may be given by URL or
// uploaded; uploads are stored through uploader.
func NewGalleryAdmin(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, uploader media.Uploader) *Resource[model.GalleryImage] {
	g := &galleryForm{uploader: uploader}
	return &Resource[model.GalleryImage]{
		site:     site{renderer: renderer, sessionManager: sm, store: store},
		coll:     store.Gallery,
		validate: model.NewGalleryImage,
		label:    "gallery image",
		title:    "Galeria",
		base:     redirectAdminGallery,
		listTmpl: "admin/gallery",
		formTmpl: "admin/gallery_form",
		maxBody:  media.MaxUploadSize + 1<<20,
		name:     func(img model.GalleryImage) string { return img.Title },
		decode:   g.decode,
		remove: func(r *http.Request, img model.GalleryImage) error {
			if err := store.Gallery.Delete(img.ID); err != nil {
				return err
			}
			g.discard(r, img.Src)
			return nil
		},
		rejected: func(r *http.Request, item, current model.GalleryImage) {
			if item.Src != current.Src {
				g.discard(r, item.Src)
			}
		},
	}
}

type galleryForm struct {
	uploader media.Uploader
}

func (g *galleryForm) decode(r *http.Request, current model.GalleryImage) (model.GalleryImage, error) {
	img := model.GalleryImage{
		Title:     r.FormValue("title"),
		Src:       strings.TrimSpace(r.FormValue("src")),
		Alt:       r.FormValue("alt"),
		Category:  r.FormValue("category"),
		Materials: formList(r, "materials"),
	}
	if c := strings.TrimSpace(r.FormValue("color")); c != "" {
		img.Color = &c
	}
	price, ok := formFloat(r, "price")
	if !ok {
		return img, invalidNumber("price")
	}
	img.Price = price

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || (err == nil && header.Size == 0) {
		if err == nil {
			_ = file.Close()
		}
		if img.Src == "" {
			img.Src = current.Src
		}
		return img, nil
	}
	if err != nil {
		return img, photoError()
	}
	defer func() { _ = file.Close() }()

	processed, err := media.Process(file)
	if err != nil {
		slog.Warn("gallery photo rejected", "name", header.Filename, "error", err)
		return img, photoError()
	}
	url, err := g.uploader.Upload(r.Context(), GalleryUploadFolder, header.Filename, processed)
	if err != nil {
		return img, err
	}
	img.Src = url
	return img, nil
}

// discard deletes an uploaded photo. URLs the uploader did not issue are
// left alone.
func (g *galleryForm) discard(r *http.Request, src string) {
	if src == "" {
		return
	}
	if err := g.uploader.Delete(r.Context(), src); err != nil {
		slog.Debug("gallery photo not removed", "src", src, "error", err)
	}
}

func photoError() error {
	return &model.ValidationError{Fields: map[string]string{"src": "Envie uma foto JPEG, PNG, GIF ou WebP de até 10 MB"}}
}
