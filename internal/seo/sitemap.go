// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and the XML sitemap of the public site.
package seo

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/estofamais/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticPage is a fixed page of the site.
type StaticPage struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   string
}

// StaticPages lists the public pages other than blog posts.
var StaticPages = []StaticPage{
	{Path: "/", ChangeFreq: ChangeFreqWeekly, Priority: "1.0"},
	{Path: "/servicos", ChangeFreq: ChangeFreqMonthly, Priority: "0.9"},
	{Path: "/galeria", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
	{Path: "/materiais", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
	{Path: "/orcamento", ChangeFreq: ChangeFreqMonthly, Priority: "0.9"},
	{Path: "/blog", ChangeFreq: ChangeFreqDaily, Priority: "0.7"},
	{Path: "/sobre", ChangeFreq: ChangeFreqMonthly, Priority: "0.5"},
	{Path: "/contato", ChangeFreq: ChangeFreqMonthly, Priority: "0.6"},
}

// SitemapBuilder builds sitemap XML.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddStatic adds the fixed pages.
func (b *SitemapBuilder) AddStatic(pages []StaticPage) {
	for _, p := range pages {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + p.Path,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}
}

// AddPosts adds one entry per blog post. Post dates that are not
// YYYY-MM-DD are left out of lastmod.
func (b *SitemapBuilder) AddPosts(posts []model.BlogPost) {
	for _, p := range posts {
		url := SitemapURL{
			Loc:        b.siteURL + "/blog/" + strconv.FormatInt(p.ID, 10),
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.6",
		}
		if d, err := time.Parse(time.DateOnly, p.Date); err == nil {
			url.LastMod = d.Format(time.DateOnly)
		}
		b.urls = append(b.urls, url)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the sitemap for the static pages and posts.
func GenerateSitemap(siteURL string, posts []model.BlogPost) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddStatic(StaticPages)
	builder.AddPosts(posts)
	return builder.Build()
}
