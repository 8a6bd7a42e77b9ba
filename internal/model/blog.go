// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"strings"
	"time"
)

// BlogPost is an article. Content is Markdown; Date is free text.
type BlogPost struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `json:"content"`
	Date     string  `json:"date"`
	Author   string  `json:"author"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Likes    []int64 `json:"likes"`
}

// NewBlogPost validates and normalizes a post. A blank date becomes today.
func NewBlogPost(in BlogPost, now time.Time) (BlogPost, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
	if strings.TrimSpace(in.Date) == "" {
		in.Date = FormatDate(now)
	}
	if in.Likes == nil {
		in.Likes = []int64{}
	}

	c := newChecker()
	c.required("title", in.Title, "Título é obrigatório")
	c.required("excerpt", in.Excerpt, "Resumo é obrigatório")
	c.required("content", in.Content, "Conteúdo é obrigatório")
	c.required("author", in.Author, "Autor é obrigatório")
	c.required("category", in.Category, "Categoria é obrigatória")
	if err := c.err(); err != nil {
		return BlogPost{}, err
	}
	return in, nil
}

// LikedBy reports whether the user liked the post.
func (p *BlogPost) LikedBy(userID int64) bool {
	return slices.Contains(p.Likes, userID)
}

// ToggleLike adds or removes the user's like and reports the new state.
func (p *BlogPost) ToggleLike(userID int64) bool {
	if i := slices.Index(p.Likes, userID); i >= 0 {
		p.Likes = slices.Delete(p.Likes, i, i+1)
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// MinCommentLength is the shortest comment accepted.
const MinCommentLength = 3

// Comment is a reader comment on a blog post.
type Comment struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"postId"`
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	IsHidden bool   `json:"isHidden"`
}

// NewComment validates a comment written by the session user.
func NewComment(postID int64, author SessionUser, content string, now time.Time) (Comment, error) {
	content = strings.TrimSpace(content)

	c := newChecker()
	c.minLen("content", content, MinCommentLength, "Comentário deve ter pelo menos 3 caracteres")
	if err := c.err(); err != nil {
		return Comment{}, err
	}

	return Comment{
		PostID:   postID,
		UserID:   author.ID,
		UserName: author.Name,
		Content:  content,
		Date:     FormatDate(now),
	}, nil
}

// FormatDate renders a date the way the site displays it (dd/mm/yyyy).
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
