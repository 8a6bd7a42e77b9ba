// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
)

// ListComments handles GET /api/v1/posts/{id}/comments. Hidden comments
// are listed for administrators only.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", h.store.Posts.Get)
	if !ok {
		return
	}
	u, _ := middleware.GetUser(r)
	comments := h.store.PostComments(post.ID, u.IsAdmin())
	WriteSuccess(w, comments, &Meta{Total: len(comments), Shown: len(comments)})
}

// CommentRequest is the body of POST /posts/{id}/comments.
type CommentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /api/v1/posts/{id}/comments for any
// token holder. Markup is stripped.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", h.store.Posts.Get)
	if !ok {
		return
	}
	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, _ := middleware.GetUser(r)

	text := req.Content
	if h.content != nil {
		text = h.content.CleanComment(text)
	}
	c, err := model.NewComment(post.ID, u, text, h.now())
	if err != nil {
		writeStoreError(w, "comment", err)
		return
	}
	saved, err := h.store.AddComment(c)
	if err != nil {
		writeStoreError(w, "post", err)
		return
	}
	slog.Info("api comment added", "comment_id", saved.ID, "post_id", post.ID, "user_id", u.ID)
	WriteCreated(w, saved)
}

// LikeResponse reports a post's like state for the caller.
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike handles POST /api/v1/posts/{id}/like for any token holder.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", h.store.Posts.Get)
	if !ok {
		return
	}
	u, _ := middleware.GetUser(r)
	liked, count, err := h.store.ToggleLike(post.ID, u.ID)
	if err != nil {
		writeStoreError(w, "post", err)
		return
	}
	WriteSuccess(w, LikeResponse{Liked: liked, Likes: count}, nil)
}

// VisibilityRequest is the body of PATCH /comments/{id}/visibility.
type VisibilityRequest struct {
	Hidden bool `json:"isHidden"`
}

// SetCommentVisibility handles PATCH /api/v1/comments/{id}/visibility (admin).
func (h *Handler) SetCommentVisibility(w http.ResponseWriter, r *http.Request) {
	current, ok := requireEntityByID(w, r, "comment", h.store.Comments.Get)
	if !ok {
		return
	}
	var req VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.store.SetCommentHidden(current.ID, req.Hidden)
	if err != nil {
		writeStoreError(w, "comment", err)
		return
	}
	slog.Info("api comment visibility changed", "comment_id", c.ID, "hidden", c.IsHidden, "user_id", middleware.GetUserID(r))
	WriteSuccess(w, c, nil)
}
