// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/middleware"
	"github.com/olegiv/vitrine/internal/store"
)

// testApp wires the handlers into a real HTTP server backed by a
// throwaway database. The client carries cookies so tests can log in
// and exercise authenticated paths.
type testApp struct {
	db     *sql.DB
	sm     *scs.SessionManager
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	tmpFile, err := os.CreateTemp("", "vitrine-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	_ = tmpFile.Close()
	dbPath := tmpFile.Name()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	sm := scs.New()

	authH := NewAuthHandler(db, sm, true)
	blogH := NewBlogHandler(db, sm)
	templateH := NewTemplateHandler(db, sm)
	sectionH := NewSectionHandler(db)
	settingsH := NewSettingsHandler(db)
	intakeH := NewIntakeHandler(db)
	chatH := NewChatHandler(nil)
	healthH := NewHealthHandler(db, sm)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.MaxRequestBody(64 << 10))

	r.Post("/api/admin/setup", authH.Setup)
	r.Post("/api/admin/login", authH.Login)
	r.Post("/api/admin/logout", authH.Logout)
	r.Get("/api/admin/me", authH.Me)
	r.Post("/api/admin/forgot-password", authH.ForgotPassword)
	r.Get("/api/admin/reset-password/{token}", authH.CheckResetToken)
	r.Post("/api/admin/reset-password", authH.ResetPassword)

	// Small window so tests can trip the limit without hundreds of requests.
	strictLimiter := middleware.NewRateLimiter(middleware.NewMemoryCounterStore(), 5, time.Minute, "strict")
	r.With(strictLimiter.Middleware, middleware.RequireAuth(sm)).Post("/api/admin/change-password", authH.ChangePassword)

	r.Get("/api/blog-posts", blogH.List)
	r.Get("/api/blog-posts/{id}", blogH.Get)
	r.Get("/api/blog-posts/slug/{slug}", blogH.GetBySlug)
	r.Post("/api/blog-posts", blogH.Create)
	r.Put("/api/blog-posts/{id}", blogH.Update)
	r.Delete("/api/blog-posts/{id}", blogH.Delete)

	r.Get("/api/templates", templateH.List)
	r.Post("/api/templates", templateH.Create)

	r.Get("/api/services", sectionH.ListServices)
	r.Post("/api/services", sectionH.CreateService)
	r.Get("/api/why-us", sectionH.ListWhyUs)

	r.Get("/api/hero-settings/{pageKey}", settingsH.GetHero)
	r.Put("/api/hero-settings/{pageKey}", settingsH.UpsertHero)
	r.Get("/api/section-settings", settingsH.ListSections)

	r.Post("/api/contact", intakeH.Contact)
	r.Post("/api/newsletter", intakeH.Subscribe)
	r.Get("/api/contact-submissions", intakeH.ListSubmissions)

	r.Post("/api/chat", chatH.Ask)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}

	return &testApp{
		db:     db,
		sm:     sm,
		srv:    srv,
		client: &http.Client{Jar: jar},
	}
}

// postJSON sends a JSON body and returns the response with its decoded envelope.
func (a *testApp) postJSON(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil && err != io.EOF {
		t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return resp, envelope
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	return a.postJSON(t, http.MethodGet, path, nil)
}

const testPassword = "Adm1n-Passw0rd!"

// loginAdmin creates the first admin account and leaves the client
// holding an authenticated session cookie.
func (a *testApp) loginAdmin(t *testing.T) {
	t.Helper()

	resp, envelope := a.postJSON(t, http.MethodPost, "/api/admin/setup", map[string]any{
		"username": "admin",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("setup: status = %d, body = %v", resp.StatusCode, envelope)
	}
}
