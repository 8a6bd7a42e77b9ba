// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/media"
	"github.com/olegiv/estofamais/internal/quote"
)

func newQuoteEnv(t *testing.T) (*testEnv, *quote.Desk) {
	t.Helper()
	e := newTestEnv(t)
	desk := quote.NewDesk(quote.Config{
		Store:    e.store,
		Uploader: media.NewLocalUploader(t.TempDir(), "/uploads"),
	})
	h := NewQuoteHandler(e.store, e.renderer, e.sm, desk)

	e.router.Get(RouteQuote, h.Form)
	e.router.Post(RouteQuote, h.Submit)
	e.router.Post(RouteQuotePhotos, h.AddImage)
	e.router.Get(RouteQuotePhotos+RouteParamID, h.Preview)
	e.router.Post(RouteQuotePhotos+RouteParamID+RouteSuffixRemove, h.RemoveImage)
	e.router.Post(RouteQuoteMaterials, h.AddMaterial)
	e.router.Post(RouteQuoteReset, h.Reset)
	return e, desk
}

func validQuoteForm() url.Values {
	return url.Values{
		"name":        {"Ana Lima"},
		"email":       {"ana@example.com"},
		"phone":       {"11987654321"},
		"serviceType": {"Reforma de Sofás"},
		"description": {"Sofá de três lugares com tecido rasgado"},
	}
}

func TestQuoteHandler_Form(t *testing.T) {
	e, _ := newQuoteEnv(t)

	rec := e.get(RouteQuote)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reforma de Sofás")
}

func TestQuoteHandler_SubmitInvalid(t *testing.T) {
	e, _ := newQuoteEnv(t)
	before := e.store.Quotes.Len()

	form := validQuoteForm()
	form.Set("email", "not-an-email")
	rec := e.postForm(RouteQuote, form)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, before, e.store.Quotes.Len())
	// typed fields survive the round trip
	assert.Contains(t, rec.Body.String(), "Ana Lima")
}

func TestQuoteHandler_SubmitStoresQuote(t *testing.T) {
	e, _ := newQuoteEnv(t)
	before := e.store.Quotes.Len()

	rec := e.postForm(RouteQuote, validQuoteForm())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteQuote, rec.Header().Get("Location"))
	require.Equal(t, before+1, e.store.Quotes.Len())

	quotes := e.store.Quotes.List()
	saved := quotes[len(quotes)-1]
	assert.Equal(t, "Ana Lima", saved.Name)
	assert.Equal(t, "pending", saved.Status)

	done := e.follow(rec)
	assert.Equal(t, http.StatusOK, done.Code)

	// a second submit of the same draft is refused
	again := e.postForm(RouteQuote, validQuoteForm())
	assert.Equal(t, http.StatusSeeOther, again.Code)
	assert.Equal(t, before+1, e.store.Quotes.Len())
}

func TestQuoteHandler_ResetAfterSubmit(t *testing.T) {
	e, desk := newQuoteEnv(t)

	e.postForm(RouteQuote, validQuoteForm())
	rec := e.postForm(RouteQuoteReset, url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteQuote, rec.Header().Get("Location"))
	require.Equal(t, 1, desk.Len())

	// the reset draft accepts a new submission
	before := e.store.Quotes.Len()
	e.postForm(RouteQuote, validQuoteForm())
	assert.Equal(t, before+1, e.store.Quotes.Len())
}

func TestQuoteHandler_AddMaterial(t *testing.T) {
	e, desk := newQuoteEnv(t)

	rec := e.postForm(RouteQuoteMaterials, url.Values{"material_id": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	require.Equal(t, 1, desk.Len())
	page := e.follow(rec)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Couro Natural")

	// adding it twice keeps one selection
	dup := e.postForm(RouteQuoteMaterials, url.Values{"material_id": {"1"}})
	assert.Equal(t, http.StatusSeeOther, dup.Code)
}

func TestQuoteHandler_AddUnknownMaterial(t *testing.T) {
	e, _ := newQuoteEnv(t)

	rec := e.postForm(RouteQuoteMaterials, url.Values{"material_id": {"9999"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteQuote, rec.Header().Get("Location"))
}

func pngPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		for y := range 8 {
			img.Set(x, y, color.RGBA{R: 120, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// postPhoto posts the quote form with one attached photo.
func (e *testEnv) postPhoto(t *testing.T, name string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range validQuoteForm() {
		require.NoError(t, mw.WriteField(k, v[0]))
	}
	fw, err := mw.CreateFormFile("photo", name)
	require.NoError(t, err)
	_, err = fw.Write(pngPhoto(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, RouteQuotePhotos, &body)
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	return e.do(req)
}

var previewLink = regexp.MustCompile(`/orcamento/fotos/([0-9a-f-]{36})"`)

func previewIDs(body string) []string {
	var ids []string
	for _, m := range previewLink.FindAllStringSubmatch(body, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func TestQuoteHandler_PhotoLimit(t *testing.T) {
	e, _ := newQuoteEnv(t)

	for i := range quote.MaxImages {
		rec := e.postPhoto(t, "sofa.png")
		require.Equal(t, http.StatusSeeOther, rec.Code, "photo %d", i+1)
	}
	ids := previewIDs(e.get(RouteQuote).Body.String())
	require.Len(t, ids, quote.MaxImages)

	// a fourth photo is refused and the list stays full
	rec := e.postPhoto(t, "extra.png")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, previewIDs(e.get(RouteQuote).Body.String()), quote.MaxImages)

	// removing one frees a slot
	rec = e.postForm(RouteQuotePhotos+"/"+ids[0]+RouteSuffixRemove, validQuoteForm())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, previewIDs(e.get(RouteQuote).Body.String()), quote.MaxImages-1)

	e.postPhoto(t, "again.png")
	assert.Len(t, previewIDs(e.get(RouteQuote).Body.String()), quote.MaxImages)
}

func TestQuoteHandler_PreviewOwnerOnly(t *testing.T) {
	e, _ := newQuoteEnv(t)

	e.postPhoto(t, "sofa.png")
	ids := previewIDs(e.get(RouteQuote).Body.String())
	require.Len(t, ids, 1)

	rec := e.get(RouteQuotePhotos + "/" + ids[0])
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(HeaderContentType), "image/"))
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))

	// another visitor has no access to it
	other, _ := newQuoteEnv(t)
	assert.Equal(t, http.StatusNotFound, other.get(RouteQuotePhotos+"/"+ids[0]).Code)
}

func TestQuoteHandler_SubmitWithPhotos(t *testing.T) {
	e, desk := newQuoteEnv(t)

	e.postPhoto(t, "sofa.png")
	e.postPhoto(t, "detalhe.png")
	require.Equal(t, 2, desk.Previews().Len())

	rec := e.postForm(RouteQuote, validQuoteForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	quotes := e.store.Quotes.List()
	saved := quotes[len(quotes)-1]
	assert.Len(t, saved.Images, 2)
	for _, img := range saved.Images {
		assert.True(t, strings.HasPrefix(img, "/uploads/"), img)
	}
	// previews are released once the photos are stored
	assert.Equal(t, 0, desk.Previews().Len())
}

func TestQuoteHandler_NonFinitePriceIgnored(t *testing.T) {
	e, _ := newQuoteEnv(t)

	form := validQuoteForm()
	form.Set("price_min", "NaN")
	form.Set("price_max", "500")
	rec := e.postForm(RouteQuote, form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	quotes := e.store.Quotes.List()
	saved := quotes[len(quotes)-1]
	assert.Nil(t, saved.PriceMin)
	assert.Nil(t, saved.PriceMax)
}

func TestFormFloat(t *testing.T) {
	tests := []struct {
		raw    string
		want   *float64
		wantOK bool
	}{
		{"", nil, true},
		{"1450,5", ptr(1450.5), true},
		{"89.9", ptr(89.9), true},
		{"NaN", nil, false},
		{"Inf", nil, false},
		{"-Infinity", nil, false},
		{"abc", nil, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"price": {tt.raw}}.Encode()))
		req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
		got, ok := formFloat(req, "price")
		assert.Equal(t, tt.wantOK, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func ptr(v float64) *float64 { return &v }
