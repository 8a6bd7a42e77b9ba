// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package quote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/media"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/util"
)

// DefaultSubmitDelay is the pause before a submission is recorded.
const DefaultSubmitDelay = 1500 * time.Millisecond

// UploadFolder is the folder submitted photos are stored under.
const UploadFolder = "quotes"

// Notifier is told about every recorded quote.
type Notifier interface {
	QuoteSubmitted(ctx context.Context, q model.Quote) error
}

// Locator maps a client IP to a country code.
type Locator interface {
	Country(ip string) string
}

// Origin describes where a submission came from.
type Origin struct {
	IP        string
	UserAgent string
}

// Config wires a Desk.
type Config struct {
	Store    *catalog.Store
	Previews *media.PreviewStore
	Uploader media.Uploader
	Notifier Notifier // optional
	Locator  Locator  // optional
	Delay    time.Duration
	Logger   *slog.Logger
}

// Desk keeps the drafts of all visitors, keyed by an id kept in their session.
type Desk struct {
	store    *catalog.Store
	previews *media.PreviewStore
	uploader media.Uploader
	notifier Notifier
	locator  Locator
	delay    time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewDesk creates a desk.
func NewDesk(cfg Config) *Desk {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	previews := cfg.Previews
	if previews == nil {
		previews = media.NewPreviewStore()
	}
	return &Desk{
		store:    cfg.Store,
		previews: previews,
		uploader: cfg.Uploader,
		notifier: cfg.Notifier,
		locator:  cfg.Locator,
		delay:    cfg.Delay,
		logger:   logger,
		now:      time.Now,
		drafts:   make(map[string]*Draft),
	}
}

// Previews returns the preview store backing attachments.
func (k *Desk) Previews() *media.PreviewStore { return k.previews }

// Open returns the draft with id, creating a fresh one when id is empty
// or unknown. Callers store the returned draft's ID in the session.
func (k *Desk) Open(id string) *Draft {
	now := k.now()

	k.mu.Lock()
	defer k.mu.Unlock()

	if d, ok := k.drafts[id]; ok && id != "" {
		d.touch(now)
		return d
	}
	d := newDraft(uuid.NewString(), now)
	k.drafts[d.id] = d
	return d
}

// Lookup returns an existing draft.
func (k *Desk) Lookup(id string) (*Draft, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	d, ok := k.drafts[id]
	return d, ok
}

// Len returns the number of live drafts.
func (k *Desk) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.drafts)
}

// AddImage processes a photo and attaches it as a preview. A fourth photo
// returns ErrImageLimit and leaves the draft unchanged.
func (k *Desk) AddImage(d *Draft, name string, r io.Reader) (Attachment, error) {
	if err := d.hasRoom(); err != nil {
		return Attachment{}, err
	}

	img, err := media.Process(r)
	if err != nil {
		return Attachment{}, err
	}

	a := Attachment{PreviewID: k.previews.Put(name, img), Name: name}
	if err := d.attach(a); err != nil {
		// lost a race with another upload
		k.previews.Release(a.PreviewID)
		return Attachment{}, err
	}
	return a, nil
}

// RemoveImage detaches a photo and releases its preview.
func (k *Desk) RemoveImage(d *Draft, previewID string) error {
	if err := d.detach(previewID); err != nil {
		return err
	}
	k.previews.Release(previewID)
	return nil
}

// Preview returns an attached photo of the draft.
func (k *Desk) Preview(d *Draft, previewID string) (*media.Preview, error) {
	if !d.owns(previewID) {
		return nil, media.ErrPreviewNotFound
	}
	return k.previews.Get(previewID)
}

// Submit validates the form, waits the submit delay, stores the photos,
// records a pending quote and notifies staff. On a validation error the
// draft stays composing and the returned error is a *model.ValidationError.
func (k *Desk) Submit(ctx context.Context, d *Draft, f model.QuoteForm, origin Origin) (model.Quote, error) {
	sub, err := d.begin(f)
	if err != nil {
		return model.Quote{}, err
	}

	if err := util.Wait(ctx, k.delay); err != nil {
		d.abort()
		return model.Quote{}, err
	}

	urls, err := k.upload(ctx, sub.images)
	if err != nil {
		d.abort()
		return model.Quote{}, err
	}

	q, err := model.NewQuote(sub.form, k.now())
	if err != nil {
		d.abort()
		k.discardUploads(urls)
		return model.Quote{}, err
	}
	q.Images = urls
	for _, m := range sub.materials {
		q.Materials = append(q.Materials, m.Title)
	}
	q.PriceMin, q.PriceMax = sub.priceMin, sub.priceMax
	q.Device = DescribeDevice(origin.UserAgent)
	if k.locator != nil {
		q.Country = k.locator.Country(origin.IP)
	}

	saved, err := k.store.AddQuote(q)
	if err != nil {
		d.abort()
		k.discardUploads(urls)
		return model.Quote{}, fmt.Errorf("saving quote: %w", err)
	}

	for _, a := range d.complete(saved) {
		k.previews.Release(a.PreviewID)
	}

	k.logger.Info("quote submitted", "quote_id", saved.ID, "images", len(urls), "country", saved.Country)

	if k.notifier != nil {
		if err := k.notifier.QuoteSubmitted(context.WithoutCancel(ctx), saved); err != nil {
			k.logger.Error("failed to send quote notification", "quote_id", saved.ID, "error", err)
		}
	}

	return saved, nil
}

func (k *Desk) upload(ctx context.Context, images []Attachment) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, a := range images {
		p, err := k.previews.Get(a.PreviewID)
		if err != nil {
			k.discardUploads(urls)
			return nil, fmt.Errorf("photo %q: %w", a.Name, err)
		}
		url, err := k.uploader.Upload(ctx, UploadFolder, a.Name, p.Image)
		if err != nil {
			k.discardUploads(urls)
			return nil, fmt.Errorf("uploading photo %q: %w", a.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (k *Desk) discardUploads(urls []string) {
	for _, url := range urls {
		if err := k.uploader.Delete(context.Background(), url); err != nil {
			k.logger.Warn("failed to remove quote upload", "url", url, "error", err)
		}
	}
}

// Reset empties the draft so the visitor can request another quote.
func (k *Desk) Reset(d *Draft) error {
	released, err := d.reset()
	if err != nil {
		return err
	}
	for _, a := range released {
		k.previews.Release(a.PreviewID)
	}
	d.touch(k.now())
	return nil
}

// Discard drops a draft and its previews.
func (k *Desk) Discard(id string) {
	k.mu.Lock()
	d, ok := k.drafts[id]
	delete(k.drafts, id)
	k.mu.Unlock()

	if !ok {
		return
	}
	d.mu.Lock()
	images := d.images
	d.images = nil
	d.mu.Unlock()
	for _, a := range images {
		k.previews.Release(a.PreviewID)
	}
}

// ExpireIdle discards drafts untouched for longer than ttl and returns how
// many were removed. Drafts in the middle of a submission are kept.
func (k *Desk) ExpireIdle(ttl time.Duration) int {
	cutoff := k.now().Add(-ttl)

	k.mu.Lock()
	var stale []string
	for id, d := range k.drafts {
		touched, submitting := d.idleSince()
		if !submitting && touched.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	k.mu.Unlock()

	for _, id := range stale {
		k.Discard(id)
	}
	return len(stale)
}

// ReleaseOrphans drops previews older than age that no live draft holds,
// such as the leftovers of an upload that lost its draft midway.
func (k *Desk) ReleaseOrphans(age time.Duration) int {
	held := make(map[string]bool)

	k.mu.Lock()
	for _, d := range k.drafts {
		d.mu.Lock()
		for _, a := range d.images {
			held[a.PreviewID] = true
		}
		d.mu.Unlock()
	}
	k.mu.Unlock()

	return k.previews.ReleaseStale(age, func(id string) bool { return held[id] })
}
