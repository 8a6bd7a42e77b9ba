// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/kv"
	"github.com/olegiv/estofamais/internal/logging"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/quote"
)

type adminEnv struct {
	*testEnv
	journal *logging.Journal
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()
	e := newTestEnv(t)
	journal := logging.NewJournal(10)
	desk := quote.NewDesk(quote.Config{Store: e.store})
	h := NewAdminHandler(e.store, e.renderer, e.sm, auth.NewUsers(kv.NewMemoryStore()), desk, journal)
	materials := NewMaterialsAdmin(e.store, e.renderer, e.sm)

	e.router.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireAdmin(e.sm))
		r.Get(RouteRoot, h.Dashboard)

		r.Get(RouteMaterials, materials.List)
		r.Get(RouteMaterials+RouteSuffixNew, materials.NewForm)
		r.Post(RouteMaterials, materials.Create)
		r.Get(RouteMaterials+RouteParamID+RouteSuffixEdit, materials.EditForm)
		r.Post(RouteMaterials+RouteParamID, materials.Update)
		r.Get(RouteMaterials+RouteParamID+RouteSuffixDelete, materials.DeleteForm)
		r.Post(RouteMaterials+RouteParamID+RouteSuffixDelete, materials.Delete)

		r.Get(RouteQuotes, h.Quotes)
		r.Get(RouteQuotesID, h.Quote)
		r.Post(RouteQuotesID+"/status", h.UpdateQuoteStatus)
		r.Post(RouteQuotesID+RouteSuffixDelete, h.DeleteQuote)

		r.Get(RouteComments, h.Comments)
		r.Post(RouteCommentsID+"/visibilidade", h.ToggleComment)

		r.Get(RouteMessages, h.Messages)
		r.Post(RouteMessagesID+"/lida", h.MarkMessage)
		r.Get(RouteMessagesID+RouteSuffixDelete, h.DeleteMessageForm)
		r.Post(RouteMessagesID+RouteSuffixDelete, h.DeleteMessage)

		r.Get(RouteUsers, h.Users)
		r.Get(RouteSettings, h.Settings)
		r.Post(RouteSettings, h.UpdateSettings)
		r.Get(RouteEvents, h.Events)
		r.Post(RouteEvents+"/limpar", h.ClearEvents)
	})
	return &adminEnv{testEnv: e.as(testAdmin), journal: journal}
}

func TestAdmin_Guard(t *testing.T) {
	e := newAdminEnv(t)

	rec := e.anonymous().get("/admin/materiais")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fadmin%2Fmateriais", rec.Header().Get("Location"))

	rec = e.as(testUser).get("/admin/materiais")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteRoot, rec.Header().Get("Location"))
}

func TestAdmin_Pages(t *testing.T) {
	e := newAdminEnv(t)

	for _, path := range []string{
		"/admin/",
		"/admin/materiais",
		"/admin/materiais/novo",
		"/admin/materiais/1/editar",
		"/admin/materiais/1/excluir",
		"/admin/orcamentos",
		"/admin/orcamentos/1",
		"/admin/comentarios",
		"/admin/mensagens",
		"/admin/usuarios",
		"/admin/configuracoes",
		"/admin/eventos",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, e.get(path).Code)
		})
	}
}

func materialForm() url.Values {
	return url.Values{
		"title":       {"Jacquard"},
		"description": {"Tecido com desenhos em relevo."},
		"type":        {"Tecido"},
		"color":       {"Dourado"},
		"price":       {"150"},
	}
}

func TestAdmin_MaterialCreate(t *testing.T) {
	e := newAdminEnv(t)
	before := e.store.Materials.Len()

	rec := e.postForm("/admin/materiais", materialForm())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/materiais", rec.Header().Get("Location"))
	require.Equal(t, before+1, e.store.Materials.Len())

	items := e.store.Materials.List()
	created := items[len(items)-1]
	assert.Equal(t, "Jacquard", created.Title)
	assert.InDelta(t, 150.0, created.Price, 0.001)
}

func TestAdmin_MaterialCreateInvalid(t *testing.T) {
	e := newAdminEnv(t)
	before := e.store.Materials.Len()

	form := materialForm()
	form.Set("title", "")
	rec := e.postForm("/admin/materiais", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, before, e.store.Materials.Len())

	form = materialForm()
	form.Set("price", "caro")
	rec = e.postForm("/admin/materiais", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, before, e.store.Materials.Len())
}

func TestAdmin_MaterialUpdate(t *testing.T) {
	e := newAdminEnv(t)

	form := materialForm()
	form.Set("title", "Couro Legítimo")
	rec := e.postForm("/admin/materiais/1", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	m, err := e.store.Materials.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Couro Legítimo", m.Title)
}

func TestAdmin_MaterialDelete(t *testing.T) {
	e := newAdminEnv(t)
	before := e.store.Materials.Len()

	rec := e.postForm("/admin/materiais/1/excluir", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, before-1, e.store.Materials.Len())
	_, err := e.store.Materials.Get(1)
	assert.Error(t, err)

	// a missing record answers with a toast, not an error page
	rec = e.get("/admin/materiais/1/editar")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/materiais", rec.Header().Get("Location"))
}

func TestAdmin_QuoteStatus(t *testing.T) {
	e := newAdminEnv(t)

	rec := e.postForm("/admin/orcamentos/1/status", url.Values{"status": {model.QuoteStatusApproved}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orcamentos/1", rec.Header().Get("Location"))

	q, err := e.store.Quotes.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.QuoteStatusApproved, q.Status)

	rec = e.postForm("/admin/orcamentos/1/status", url.Values{"status": {"lost"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	q, err = e.store.Quotes.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.QuoteStatusApproved, q.Status)
}

func TestAdmin_QuoteDelete(t *testing.T) {
	e := newAdminEnv(t)
	before := e.store.Quotes.Len()

	rec := e.postForm("/admin/orcamentos/2/excluir", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, before-1, e.store.Quotes.Len())
}

func TestAdmin_ToggleComment(t *testing.T) {
	e := newAdminEnv(t)
	visible := len(e.store.PostComments(1, false))

	rec := e.postForm("/admin/comentarios/1/visibilidade", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, e.store.PostComments(1, false), visible-1)

	e.postForm("/admin/comentarios/1/visibilidade", url.Values{})
	assert.Len(t, e.store.PostComments(1, false), visible)
}

func TestAdmin_Messages(t *testing.T) {
	e := newAdminEnv(t)
	msg, err := model.NewContactMessage(model.ContactMessage{
		Name:    "Lúcia Alves",
		Email:   "lucia@example.com",
		Subject: "Cadeiras",
		Message: "Quanto custa reformar quatro cadeiras?",
	}, time.Now())
	require.NoError(t, err)
	saved, err := e.store.AddMessage(msg)
	require.NoError(t, err)

	assert.Contains(t, e.get("/admin/mensagens").Body.String(), "Lúcia Alves")

	path := "/admin/mensagens/" + strconv.FormatInt(saved.ID, 10)
	rec := e.postForm(path+"/lida", url.Values{"read": {"true"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	got, err := e.store.Messages.Get(saved.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	e.postForm(path+"/lida", url.Values{"read": {"false"}})
	got, err = e.store.Messages.Get(saved.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)

	assert.Equal(t, http.StatusOK, e.get(path+"/excluir").Code)
	rec = e.postForm(path+"/excluir", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, err = e.store.Messages.Get(saved.ID)
	assert.Error(t, err)
}

func TestAdmin_UpdateSettings(t *testing.T) {
	e := newAdminEnv(t)
	current := e.store.Settings()

	form := url.Values{
		"businessName": {"Estofamais Estofados"},
		"phone":        {current.Phone},
		"whatsapp":     {current.WhatsApp},
		"email":        {"atendimento@estofamais.com"},
		"address":      {current.Address},
		"openingHours": {current.OpeningHours},
	}
	rec := e.postForm("/admin/configuracoes", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "atendimento@estofamais.com", e.store.Settings().Email)

	form.Set("email", "sem-arroba")
	rec = e.postForm("/admin/configuracoes", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "atendimento@estofamais.com", e.store.Settings().Email)
}

func TestAdmin_ClearEvents(t *testing.T) {
	e := newAdminEnv(t)
	e.journal.Add(logging.Entry{Level: logging.LevelInfo, Message: "quote submitted", Time: time.Now()})
	require.Equal(t, 1, e.journal.Len())

	rec := e.postForm("/admin/eventos/limpar", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, e.journal.Len())
}
