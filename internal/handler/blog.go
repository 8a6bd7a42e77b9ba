// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/content"
	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
)

// BlogHandler serves the blog, its comments and likes.
type BlogHandler struct {
	site
	content *content.Renderer
	now     func() time.Time
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(store *catalog.Store, renderer *render.Renderer, sm *scs.SessionManager, cr *content.Renderer) *BlogHandler {
	return &BlogHandler{
		site:    site{renderer: renderer, sessionManager: sm, store: store},
		content: cr,
		now:     time.Now,
	}
}

// PostData holds a post page.
type PostData struct {
	Post     model.BlogPost
	Comments []model.Comment
	Liked    bool
	Draft    string
}

// List renders the blog index, searchable by ?q= and ?categoria=.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := catalog.Criteria{
		Search:   q.Get(catalog.ParamSearch),
		Category: q.Get(catalog.ParamCategory),
	}
	data := filtered(r, RouteBlog, h.store.Posts.List(), c)
	h.render(w, r, "pages/blog", h.page(r, tr(r, "nav.blog"), RouteBlog, data))
}

// Show renders a post with its visible comments.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}
	post, err := h.store.Posts.Get(id)
	if err != nil {
		h.notFound(w, r)
		return
	}
	h.render(w, r, "pages/post", h.page(r, post.Title, RouteBlog, h.postData(r, post, "")))
}

func (h *BlogHandler) postData(r *http.Request, post model.BlogPost, draft string) PostData {
	data := PostData{
		Post:     post,
		Comments: h.store.PostComments(post.ID, false),
		Draft:    draft,
	}
	if u, ok := currentUser(r); ok {
		data.Liked = post.LikedBy(u.ID)
	}
	return data
}

// Comment adds a comment by the signed-in user. Markup is stripped.
func (h *BlogHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}
	back := fmt.Sprintf(redirectBlogPostID, id)
	if !parseFormOrRedirect(w, r, h.renderer, back) {
		return
	}

	user, ok := currentUser(r)
	if !ok {
		flashError(w, r, h.renderer, middleware.LoginURL(back), tr(r, "blog.login_to_comment"))
		return
	}

	post, err := h.store.Posts.Get(id)
	if err != nil {
		h.notFound(w, r)
		return
	}

	raw := r.FormValue("content")
	c, err := model.NewComment(id, user, h.content.CleanComment(raw), h.now())
	if err != nil {
		td := h.page(r, post.Title, RouteBlog, h.postData(r, post, raw))
		td.Flash = tr(r, "blog.comment_invalid")
		td.FlashType = middleware.FlashError
		h.renderInvalid(w, r, "pages/post", td, err)
		return
	}

	saved, err := h.store.AddComment(c)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		logAndInternalError(w, "failed to store comment", "post_id", id, "error", err)
		return
	}

	slog.Info("comment added", "comment_id", saved.ID, "post_id", id, "user_id", user.ID)
	flashSuccess(w, r, h.renderer, back, tr(r, "blog.comment_added"))
}

// Like toggles the signed-in user's like on a post. Anonymous visitors are
// sent to the login page.
func (h *BlogHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}
	back := fmt.Sprintf(redirectBlogPostID, id)

	user, ok := currentUser(r)
	if !ok {
		flashInfo(w, r, h.renderer, middleware.LoginURL(back), tr(r, "blog.login_to_like"))
		return
	}

	liked, count, err := h.store.ToggleLike(id, user.ID)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		logAndInternalError(w, "failed to toggle like", "post_id", id, "error", err)
		return
	}

	slog.Debug("post like toggled", "post_id", id, "user_id", user.ID, "liked", liked, "likes", count)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *BlogHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, tr(r, "error.not_found"))
}
