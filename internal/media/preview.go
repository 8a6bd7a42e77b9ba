// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPreviewNotFound is returned for unknown or released preview ids.
var ErrPreviewNotFound = errors.New("preview not found")

// Preview is a photo held in memory until its quote is submitted or the
// photo is removed.
type Preview struct {
	ID        string
	Name      string
	Image     *Image
	CreatedAt time.Time
}

// PreviewStore holds previews by id. Every preview must eventually be
// released with Release.
type PreviewStore struct {
	mu    sync.RWMutex
	items map[string]*Preview
	now   func() time.Time
}

// NewPreviewStore creates an empty store.
func NewPreviewStore() *PreviewStore {
	return &PreviewStore{items: make(map[string]*Preview), now: time.Now}
}

// Put stores img and returns its preview id.
func (s *PreviewStore) Put(name string, img *Image) string {
	p := &Preview{
		ID:        uuid.NewString(),
		Name:      name,
		Image:     img,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.items[p.ID] = p
	s.mu.Unlock()
	return p.ID
}

// Get returns the preview with id.
func (s *PreviewStore) Get(id string) (*Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, ErrPreviewNotFound
	}
	return p, nil
}

// Release drops the preview. Releasing an unknown id is a no-op.
func (s *PreviewStore) Release(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Len returns the number of held previews.
func (s *PreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ReleaseOlderThan drops previews created before now-age and returns how
// many were released.
func (s *PreviewStore) ReleaseOlderThan(age time.Duration) int {
	return s.ReleaseStale(age, nil)
}

// ReleaseStale is ReleaseOlderThan for previews that inUse does not claim.
// A nil inUse claims nothing.
func (s *PreviewStore) ReleaseStale(age time.Duration, inUse func(id string) bool) int {
	cutoff := s.now().Add(-age)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, p := range s.items {
		if !p.CreatedAt.Before(cutoff) || (inUse != nil && inUse(id)) {
			continue
		}
		delete(s.items, id)
		n++
	}
	return n
}
