// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
)

// Resource serves one catalog collection: public list and get, admin
// create, update and delete. Writes run through a crud.Machine, the same
// state machine the admin panel uses.
type Resource[T interface {
	crud.Entity[T]
	catalog.Filterable
}] struct {
	name     string
	coll     *crud.Collection[T]
	validate crud.Validator[T]
	criteria func(url.Values) catalog.Criteria
	// merge carries server-owned fields of current into an update.
	merge func(in, current T) T
	// remove replaces the plain delete when related records must go too.
	remove func(id int64) error
}

// List handles GET on the collection with the catalog filter query.
func (res *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	all := res.coll.List()
	items := catalog.Filter(all, res.criteria(r.URL.Query()))
	WriteSuccess(w, items, &Meta{Total: len(all), Shown: len(items)})
}

// Get handles GET /{id}.
func (res *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, res.name, res.coll.Get)
	if !ok {
		return
	}
	WriteSuccess(w, item, nil)
}

// Create handles POST on the collection.
func (res *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var in T
	if !decodeJSON(w, r, &in) {
		return
	}
	m := crud.NewMachine(res.coll, res.validate)
	if err := m.OpenAdd(); err != nil {
		writeStoreError(w, res.name, err)
		return
	}
	saved, err := m.Save(in)
	if err != nil {
		writeStoreError(w, res.name, err)
		return
	}
	slog.Info("api record created", "resource", res.name, "id", saved.EntityID(), "user_id", middleware.GetUserID(r))
	WriteCreated(w, saved)
}

// Update handles PUT /{id}; the body replaces the record.
func (res *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := requireEntityByID(w, r, res.name, res.coll.Get)
	if !ok {
		return
	}
	var in T
	if !decodeJSON(w, r, &in) {
		return
	}
	if res.merge != nil {
		in = res.merge(in, current)
	}

	m := crud.NewMachine(res.coll, res.validate)
	if err := m.OpenEdit(current.EntityID()); err != nil {
		writeStoreError(w, res.name, err)
		return
	}
	saved, err := m.Save(in)
	if err != nil {
		writeStoreError(w, res.name, err)
		return
	}
	slog.Info("api record updated", "resource", res.name, "id", saved.EntityID(), "user_id", middleware.GetUserID(r))
	WriteSuccess(w, saved, nil)
}

// Delete handles DELETE /{id}.
func (res *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := requireEntityByID(w, r, res.name, res.coll.Get)
	if !ok {
		return
	}
	id := current.EntityID()

	var err error
	if res.remove != nil {
		err = res.remove(id)
	} else {
		m := crud.NewMachine(res.coll, res.validate)
		if err = m.OpenDelete(id); err == nil {
			err = m.Confirm()
		}
	}
	if err != nil {
		writeStoreError(w, res.name, err)
		return
	}
	slog.Info("api record deleted", "resource", res.name, "id", id, "user_id", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}

func searchOnly(q url.Values) catalog.Criteria {
	return catalog.Criteria{Search: q.Get(catalog.ParamSearch)}
}

func searchAndCategory(q url.Values) catalog.Criteria {
	return catalog.Criteria{Search: q.Get(catalog.ParamSearch), Category: q.Get(catalog.ParamCategory)}
}

// Materials serves /materials.
func (h *Handler) Materials() *Resource[model.Material] {
	return &Resource[model.Material]{
		name:     "material",
		coll:     h.store.Materials,
		validate: model.NewMaterial,
		criteria: catalog.CriteriaFromQuery,
	}
}

// Gallery serves /gallery.
func (h *Handler) Gallery() *Resource[model.GalleryImage] {
	return &Resource[model.GalleryImage]{
		name:     "gallery image",
		coll:     h.store.Gallery,
		validate: model.NewGalleryImage,
		criteria: catalog.CriteriaFromQuery,
	}
}

// Services serves /services.
func (h *Handler) Services() *Resource[model.Service] {
	return &Resource[model.Service]{
		name:     "service",
		coll:     h.store.Services,
		validate: model.NewService,
		criteria: searchOnly,
	}
}

// Posts serves /posts. Likes are kept on update; deleting a post deletes
// its comments.
func (h *Handler) Posts() *Resource[model.BlogPost] {
	return &Resource[model.BlogPost]{
		name: "post",
		coll: h.store.Posts,
		validate: func(p model.BlogPost) (model.BlogPost, error) {
			return model.NewBlogPost(p, h.now())
		},
		criteria: searchAndCategory,
		merge: func(in, current model.BlogPost) model.BlogPost {
			in.Likes = current.Likes
			return in
		},
		remove: h.store.DeletePost,
	}
}
