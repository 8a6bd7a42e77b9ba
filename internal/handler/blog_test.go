// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlogEnv(t *testing.T) *testEnv {
	t.Helper()
	e := newTestEnv(t)
	h := NewBlogHandler(e.store, e.renderer, e.sm, e.content)
	e.router.Get(RouteBlog, h.List)
	e.router.Get(RouteBlogPost, h.Show)
	e.router.Post(RouteBlogComments, h.Comment)
	e.router.Post(RouteBlogLike, h.Like)
	return e
}

func TestBlogHandler_List(t *testing.T) {
	e := newBlogEnv(t)

	rec := e.get(RouteBlog)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Como escolher o tecido ideal para seu sofá")
}

func TestBlogHandler_Show(t *testing.T) {
	e := newBlogEnv(t)

	assert.Equal(t, http.StatusOK, e.get("/blog/1").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/blog/9999").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/blog/abc").Code)
}

func TestBlogHandler_CommentRequiresLogin(t *testing.T) {
	e := newBlogEnv(t)
	before := len(e.store.PostComments(1, true))

	rec := e.anonymous().postForm("/blog/1/comentarios", url.Values{"content": {"Muito bom!"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fblog%2F1", rec.Header().Get("Location"))
	assert.Len(t, e.store.PostComments(1, true), before)
}

func TestBlogHandler_Comment(t *testing.T) {
	e := newBlogEnv(t).as(testUser)
	before := len(e.store.PostComments(1, true))

	rec := e.postForm("/blog/1/comentarios", url.Values{"content": {"Ótimas dicas, <b>obrigada</b>!"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog/1", rec.Header().Get("Location"))

	comments := e.store.PostComments(1, true)
	require.Len(t, comments, before+1)
	added := comments[len(comments)-1]
	assert.Equal(t, testUser.ID, added.UserID)
	assert.Equal(t, testUser.Name, added.UserName)
	assert.NotContains(t, added.Content, "<b>")
}

func TestBlogHandler_CommentTooShort(t *testing.T) {
	e := newBlogEnv(t).as(testUser)
	before := len(e.store.PostComments(1, true))

	rec := e.postForm("/blog/1/comentarios", url.Values{"content": {"ok"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, e.store.PostComments(1, true), before)
}

func TestBlogHandler_LikeToggles(t *testing.T) {
	e := newBlogEnv(t).as(testUser)

	post, err := e.store.Posts.Get(1)
	require.NoError(t, err)
	liked := post.LikedBy(testUser.ID)

	rec := e.postForm("/blog/1/curtir", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	post, err = e.store.Posts.Get(1)
	require.NoError(t, err)
	assert.Equal(t, !liked, post.LikedBy(testUser.ID))

	e.postForm("/blog/1/curtir", url.Values{})
	post, err = e.store.Posts.Get(1)
	require.NoError(t, err)
	assert.Equal(t, liked, post.LikedBy(testUser.ID))
}

func TestBlogHandler_LikeAnonymous(t *testing.T) {
	e := newBlogEnv(t)

	rec := e.postForm("/blog/1/curtir", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), RouteLogin)
}
