// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package quote implements the visitor's quote request: a draft that
// collects form fields, selected materials, photos and a price range, and
// the desk that submits drafts into the catalog store.
package quote

import (
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/estofamais/internal/model"
)

// MaxImages is the number of photos a quote may carry.
const MaxImages = 3

// Price range bounds of the budget slider.
const (
	PriceFloor   = 0.0
	PriceCeiling = 10000.0
)

// Errors returned by draft operations.
var (
	ErrImageLimit        = errors.New("image limit reached")
	ErrImageNotFound     = errors.New("image not attached")
	ErrMaterialSelected  = errors.New("material already selected")
	ErrSubmitting        = errors.New("submission in progress")
	ErrAlreadySubmitted  = errors.New("quote already submitted")
	ErrDraftNotComposing = errors.New("draft is not being composed")
)

// Phase is the lifecycle state of a draft.
type Phase int

const (
	Composing Phase = iota
	Submitted
)

func (p Phase) String() string {
	if p == Submitted {
		return "submitted"
	}
	return "composing"
}

// Attachment is a photo held as a preview until submission.
type Attachment struct {
	PreviewID string
	Name      string
}

// MaterialChoice is a material picked from the catalog.
type MaterialChoice struct {
	ID    int64
	Title string
}

// View is a copy of a draft's state for rendering.
type View struct {
	ID         string
	Phase      Phase
	Form       model.QuoteForm
	Images     []Attachment
	Materials  []MaterialChoice
	PriceMin   float64
	PriceMax   float64
	Submitting bool
	Last       *model.Quote
}

// CanAddImage reports whether another photo may be attached.
func (v View) CanAddImage() bool {
	return v.Phase == Composing && len(v.Images) < MaxImages
}

// HasMaterial reports whether the material id is selected.
func (v View) HasMaterial(id int64) bool {
	return slices.ContainsFunc(v.Materials, func(m MaterialChoice) bool { return m.ID == id })
}

// Draft is one visitor's quote in progress. It is safe for concurrent use.
type Draft struct {
	id string

	mu         sync.Mutex
	phase      Phase
	form       model.QuoteForm
	images     []Attachment
	materials  []MaterialChoice
	priceMin   float64
	priceMax   float64
	priceSet   bool
	submitting bool
	last       *model.Quote
	touched    time.Time
}

func newDraft(id string, now time.Time) *Draft {
	return &Draft{
		id:       id,
		priceMin: PriceFloor,
		priceMax: PriceCeiling,
		touched:  now,
	}
}

// ID returns the draft id stored in the visitor session.
func (d *Draft) ID() string { return d.id }

// View returns a snapshot of the draft.
func (d *Draft) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := View{
		ID:         d.id,
		Phase:      d.phase,
		Form:       d.form,
		Images:     slices.Clone(d.images),
		Materials:  slices.Clone(d.materials),
		PriceMin:   d.priceMin,
		PriceMax:   d.priceMax,
		Submitting: d.submitting,
	}
	if d.last != nil {
		q := *d.last
		v.Last = &q
	}
	return v
}

// SetForm stores the typed-in fields so they survive a round trip.
func (d *Draft) SetForm(f model.QuoteForm) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.composingLocked(); err != nil {
		return err
	}
	d.form = f
	return nil
}

// AddMaterial selects a material. Selecting it twice returns
// ErrMaterialSelected and leaves the list unchanged.
func (d *Draft) AddMaterial(m model.Material) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.composingLocked(); err != nil {
		return err
	}
	if slices.ContainsFunc(d.materials, func(c MaterialChoice) bool { return c.ID == m.ID }) {
		return ErrMaterialSelected
	}
	d.materials = append(d.materials, MaterialChoice{ID: m.ID, Title: m.Title})
	return nil
}

// RemoveMaterial deselects a material. Unknown ids are ignored.
func (d *Draft) RemoveMaterial(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.composingLocked(); err != nil {
		return err
	}
	d.materials = slices.DeleteFunc(d.materials, func(c MaterialChoice) bool { return c.ID == id })
	return nil
}

// SetPriceRange moves both slider handles. Values are clamped to
// [PriceFloor, PriceCeiling] and a min above max is pulled down to max.
// A NaN handle leaves the range unchanged.
func (d *Draft) SetPriceRange(lo, hi float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	lo = clamp(lo, PriceFloor, PriceCeiling)
	hi = clamp(hi, PriceFloor, PriceCeiling)
	if lo > hi {
		lo = hi
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Composing {
		return
	}
	d.priceMin, d.priceMax = lo, hi
	d.priceSet = lo != PriceFloor || hi != PriceCeiling
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// attach appends a photo when there is room.
func (d *Draft) attach(a Attachment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.composingLocked(); err != nil {
		return err
	}
	if len(d.images) >= MaxImages {
		return ErrImageLimit
	}
	d.images = append(d.images, a)
	return nil
}

// hasRoom reports whether attach would currently succeed.
func (d *Draft) hasRoom() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.composingLocked(); err != nil {
		return err
	}
	if len(d.images) >= MaxImages {
		return ErrImageLimit
	}
	return nil
}

// detach removes a photo by preview id.
func (d *Draft) detach(previewID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return ErrSubmitting
	}
	i := slices.IndexFunc(d.images, func(a Attachment) bool { return a.PreviewID == previewID })
	if i < 0 {
		return ErrImageNotFound
	}
	d.images = slices.Delete(d.images, i, i+1)
	return nil
}

// owns reports whether the preview belongs to this draft.
func (d *Draft) owns(previewID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.ContainsFunc(d.images, func(a Attachment) bool { return a.PreviewID == previewID })
}

// submission is the state captured when a submit begins.
type submission struct {
	form      model.QuoteForm
	images    []Attachment
	materials []MaterialChoice
	priceMin  *float64
	priceMax  *float64
}

// begin validates the form and raises the submitting flag.
func (d *Draft) begin(f model.QuoteForm) (submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase == Submitted {
		return submission{}, ErrAlreadySubmitted
	}
	if d.submitting {
		return submission{}, ErrSubmitting
	}

	d.form = f
	if err := f.Validate(); err != nil {
		return submission{}, err
	}

	d.submitting = true
	s := submission{
		form:      f,
		images:    slices.Clone(d.images),
		materials: slices.Clone(d.materials),
	}
	if d.priceSet {
		lo, hi := d.priceMin, d.priceMax
		s.priceMin, s.priceMax = &lo, &hi
	}
	return s, nil
}

// abort lowers the submitting flag and keeps the draft composing.
func (d *Draft) abort() {
	d.mu.Lock()
	d.submitting = false
	d.mu.Unlock()
}

// complete moves to submitted, clears transient state and returns the
// attachments whose previews must be released.
func (d *Draft) complete(q model.Quote) []Attachment {
	d.mu.Lock()
	defer d.mu.Unlock()

	released := d.images
	d.clearLocked()
	d.submitting = false
	d.phase = Submitted
	d.last = &q
	return released
}

// reset returns the draft to an empty composing state.
func (d *Draft) reset() ([]Attachment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return nil, ErrSubmitting
	}

	released := d.images
	d.clearLocked()
	d.phase = Composing
	d.last = nil
	return released, nil
}

func (d *Draft) clearLocked() {
	d.form = model.QuoteForm{}
	d.images = nil
	d.materials = nil
	d.priceMin, d.priceMax, d.priceSet = PriceFloor, PriceCeiling, false
}

func (d *Draft) composingLocked() error {
	if d.phase != Composing {
		return ErrDraftNotComposing
	}
	if d.submitting {
		return ErrSubmitting
	}
	return nil
}

func (d *Draft) touch(now time.Time) {
	d.mu.Lock()
	d.touched = now
	d.mu.Unlock()
}

func (d *Draft) idleSince() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touched, d.submitting
}
