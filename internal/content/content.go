// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content renders blog posts from markdown to sanitized HTML and
// cleans visitor comments.
package content

import (
	"bytes"
	"crypto/sha256"
	"html"
	"html/template"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultCacheSize is the number of rendered documents kept.
const DefaultCacheSize = 128

// Renderer converts markdown to HTML safe to embed in pages.
type Renderer struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	comments *bluemonday.Policy
	cache    *lru.Cache[[sha256.Size]byte, template.HTML]
}

// NewRenderer creates a renderer caching up to size documents.
func NewRenderer(size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[[sha256.Size]byte, template.HTML](size)
	if err != nil {
		return nil, err
	}

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy:   policy,
		comments: bluemonday.StrictPolicy(),
		cache:    cache,
	}, nil
}

// Markdown renders src. Results are cached by content hash, so edited posts
// are rendered again on their next view.
func (r *Renderer) Markdown(src string) template.HTML {
	key := sha256.Sum256([]byte(src))
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		// goldmark only fails on writer errors; fall back to escaped text
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped above
	}

	out := template.HTML(r.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
	r.cache.Add(key, out)
	return out
}

// CleanComment strips all markup from a visitor comment. The result is
// plain text; templates escape it on output.
func (r *Renderer) CleanComment(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.comments.Sanitize(s)))
}

// Cached returns the number of cached documents.
func (r *Renderer) Cached() int {
	return r.cache.Len()
}
