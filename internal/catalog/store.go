// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog is the single in-memory source of truth for the site's
// collections and the filter the catalog pages apply to them.
package catalog

import (
	"errors"
	"slices"
	"sync"

	"github.com/olegiv/estofamais/internal/crud"
	"github.com/olegiv/estofamais/internal/model"
)

// ErrInvalidStatus is returned for an unknown quote status.
var ErrInvalidStatus = errors.New("invalid quote status")

// Store holds every collection. Public pages, admin views, the quote
// material picker and the JSON API all share one Store.
type Store struct {
	Materials *crud.Collection[model.Material]
	Gallery   *crud.Collection[model.GalleryImage]
	Services  *crud.Collection[model.Service]
	Posts     *crud.Collection[model.BlogPost]
	Comments  *crud.Collection[model.Comment]
	Quotes    *crud.Collection[model.Quote]
	Messages  *crud.Collection[model.ContactMessage]

	settingsMu sync.RWMutex
	settings   model.Settings
}

// Data is the initial content of a Store.
type Data struct {
	Materials []model.Material
	Gallery   []model.GalleryImage
	Services  []model.Service
	Posts     []model.BlogPost
	Comments  []model.Comment
	Quotes    []model.Quote
	Messages  []model.ContactMessage
	Settings  model.Settings
}

// NewStore creates a store holding d.
func NewStore(d Data) *Store {
	return &Store{
		Materials: crud.NewCollection(d.Materials...),
		Gallery:   crud.NewCollection(d.Gallery...),
		Services:  crud.NewCollection(d.Services...),
		Posts:     crud.NewCollection(d.Posts...),
		Comments:  crud.NewCollection(d.Comments...),
		Quotes:    crud.NewCollection(d.Quotes...),
		Messages:  crud.NewCollection(d.Messages...),
		settings:  d.Settings,
	}
}

// Settings returns the business settings.
func (s *Store) Settings() model.Settings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

// SetSettings validates and replaces the business settings.
func (s *Store) SetSettings(in model.Settings) (model.Settings, error) {
	v, err := model.NewSettings(in)
	if err != nil {
		return model.Settings{}, err
	}
	s.settingsMu.Lock()
	s.settings = v
	s.settingsMu.Unlock()
	return v, nil
}

// PostComments returns the comments of a post, optionally including hidden ones.
func (s *Store) PostComments(postID int64, includeHidden bool) []model.Comment {
	out := s.Comments.Select(func(c model.Comment) bool {
		return c.PostID == postID && (includeHidden || !c.IsHidden)
	})
	if out == nil {
		out = []model.Comment{}
	}
	return out
}

// AddComment stores a comment on an existing post.
func (s *Store) AddComment(c model.Comment) (model.Comment, error) {
	if _, err := s.Posts.Get(c.PostID); err != nil {
		return model.Comment{}, err
	}
	c.ID = 0
	return s.Comments.Save(c)
}

// SetCommentHidden shows or hides a comment.
func (s *Store) SetCommentHidden(id int64, hidden bool) (model.Comment, error) {
	return s.Comments.Update(id, func(c model.Comment) (model.Comment, error) {
		c.IsHidden = hidden
		return c, nil
	})
}

// ToggleCommentHidden flips a comment's visibility.
func (s *Store) ToggleCommentHidden(id int64) (model.Comment, error) {
	return s.Comments.Update(id, func(c model.Comment) (model.Comment, error) {
		c.IsHidden = !c.IsHidden
		return c, nil
	})
}

// DeletePost removes a post together with its comments.
func (s *Store) DeletePost(id int64) error {
	if err := s.Posts.Delete(id); err != nil {
		return err
	}
	s.Comments.DeleteFunc(func(c model.Comment) bool { return c.PostID == id })
	return nil
}

// ToggleLike likes or unlikes a post for a user and returns the new state
// and like count.
func (s *Store) ToggleLike(postID, userID int64) (liked bool, count int, err error) {
	_, err = s.Posts.Update(postID, func(p model.BlogPost) (model.BlogPost, error) {
		p.Likes = slices.Clone(p.Likes)
		liked = p.ToggleLike(userID)
		count = len(p.Likes)
		return p, nil
	})
	return liked, count, err
}

// AddQuote stores a new quote request.
func (s *Store) AddQuote(q model.Quote) (model.Quote, error) {
	q.ID = 0
	if q.Status == "" {
		q.Status = model.QuoteStatusPending
	}
	return s.Quotes.Save(q)
}

// SetQuoteStatus moves a quote to any valid status.
func (s *Store) SetQuoteStatus(id int64, status string) (model.Quote, error) {
	if !model.IsValidQuoteStatus(status) {
		return model.Quote{}, ErrInvalidStatus
	}
	return s.Quotes.Update(id, func(q model.Quote) (model.Quote, error) {
		q.Status = status
		return q, nil
	})
}

// AddMessage stores a contact message.
func (s *Store) AddMessage(m model.ContactMessage) (model.ContactMessage, error) {
	m.ID = 0
	return s.Messages.Save(m)
}

// MarkMessageRead sets the read flag of a message.
func (s *Store) MarkMessageRead(id int64, read bool) (model.ContactMessage, error) {
	return s.Messages.Update(id, func(m model.ContactMessage) (model.ContactMessage, error) {
		m.IsRead = read
		return m, nil
	})
}

// Counts summarizes the store for the admin dashboard.
type Counts struct {
	Materials      int
	Gallery        int
	Services       int
	Posts          int
	Comments       int
	HiddenComments int
	Quotes         int
	PendingQuotes  int
	Messages       int
	UnreadMessages int
}

// Counts returns collection sizes.
func (s *Store) Counts() Counts {
	return Counts{
		Materials:      s.Materials.Len(),
		Gallery:        s.Gallery.Len(),
		Services:       s.Services.Len(),
		Posts:          s.Posts.Len(),
		Comments:       s.Comments.Len(),
		HiddenComments: len(s.Comments.Select(func(c model.Comment) bool { return c.IsHidden })),
		Quotes:         s.Quotes.Len(),
		PendingQuotes: len(s.Quotes.Select(func(q model.Quote) bool {
			return q.Status == model.QuoteStatusPending
		})),
		Messages:       s.Messages.Len(),
		UnreadMessages: len(s.Messages.Select(func(m model.ContactMessage) bool { return !m.IsRead })),
	}
}
