// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/content"
	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/model"
	"github.com/olegiv/estofamais/internal/render"
	"github.com/olegiv/estofamais/internal/session"
	"github.com/olegiv/estofamais/web"
)

var (
	testAdmin = model.SessionUser{ID: 1, Name: "Administrador", Email: "admin@estofamais.com", Role: model.RoleAdmin}
	testUser  = model.SessionUser{ID: 2, Name: "Maria Souza", Email: "maria@example.com", Role: model.RoleUser}
)

func TestMain(m *testing.M) {
	if err := i18n.Init(slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testEnv is a router over the real templates with a seeded store.
type testEnv struct {
	t        *testing.T
	store    *catalog.Store
	sm       *scs.SessionManager
	renderer *render.Renderer
	content  *content.Renderer
	router   chi.Router

	mu      sync.Mutex
	cookies map[string]*http.Cookie
	user    *model.SessionUser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sm := session.New(nil, true)
	cr, err := content.NewRenderer(16)
	if err != nil {
		t.Fatalf("content.NewRenderer() error: %v", err)
	}
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub() error: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm, Content: cr, IsDev: true})
	if err != nil {
		t.Fatalf("render.New() error: %v", err)
	}

	return &testEnv{
		t:        t,
		store:    catalog.NewStore(catalog.SeedData()),
		sm:       sm,
		renderer: renderer,
		content:  cr,
		router:   chi.NewRouter(),
		cookies:  make(map[string]*http.Cookie),
	}
}

// as makes later requests carry u as the signed-in user.
func (e *testEnv) as(u model.SessionUser) *testEnv {
	e.user = &u
	return e
}

func (e *testEnv) anonymous() *testEnv {
	e.user = nil
	return e
}

func (e *testEnv) handler() http.Handler {
	inject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if e.user != nil {
				r = r.WithContext(auth.WithUser(r.Context(), *e.user))
			}
			next.ServeHTTP(w, r)
		})
	}
	load := middleware.LoadUser(session.NewUserStore(e.sm))
	return e.sm.LoadAndSave(load(inject(middleware.Language(e.router))))
}

// do sends a request, keeping session cookies between calls.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.mu.Lock()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	e.mu.Unlock()

	rec := httptest.NewRecorder()
	e.handler().ServeHTTP(rec, req)

	e.mu.Lock()
	for _, c := range rec.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	e.mu.Unlock()
	return rec
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return e.do(req)
}

// flash follows a redirect and returns the page showing the flash.
func (e *testEnv) follow(rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	e.t.Helper()
	loc := rec.Header().Get("Location")
	if loc == "" {
		e.t.Fatalf("response %d has no Location header", rec.Code)
	}
	return e.get(loc)
}
