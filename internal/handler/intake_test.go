// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/olegiv/vitrine/internal/store"
)

func TestContactSubmission(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.postJSON(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Hello",
		"message": "I would like a website.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("contact: status = %d, body = %v", resp.StatusCode, envelope)
	}
	if envelope["message"] == "" {
		t.Error("expected confirmation message in response")
	}

	submissions, err := store.New(app.db).ListContactSubmissions(context.Background())
	if err != nil {
		t.Fatalf("listing submissions: %v", err)
	}
	if len(submissions) != 1 {
		t.Fatalf("got %d submissions, want 1", len(submissions))
	}
	if submissions[0].Email != "jane@example.com" {
		t.Errorf("email = %q", submissions[0].Email)
	}
}

func TestContactValidation(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.postJSON(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Jane Doe",
		"email":   "not-an-email",
		"message": "Hi",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid email: status = %d", resp.StatusCode)
	}
	errObj := envelope["error"].(map[string]any)
	fields := errObj["errors"].(map[string]any)
	if _, ok := fields["email"]; !ok {
		t.Errorf("expected field error for email, got %v", fields)
	}
}

func TestNewsletterIdempotent(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		resp, _ := app.postJSON(t, http.MethodPost, "/api/newsletter", map[string]any{
			"email": "reader@example.com",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("signup %d: status = %d", i+1, resp.StatusCode)
		}
	}

	subscribers, err := store.New(app.db).ListNewsletterSubscribers(context.Background())
	if err != nil {
		t.Fatalf("listing subscribers: %v", err)
	}
	if len(subscribers) != 1 {
		t.Errorf("got %d subscribers, want 1", len(subscribers))
	}
}

func TestListSubmissionsEmpty(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.get(t, "/api/contact-submissions")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list submissions: status = %d", resp.StatusCode)
	}
	if submissions := envelope["submissions"].([]any); len(submissions) != 0 {
		t.Errorf("got %d submissions, want 0", len(submissions))
	}
}

func TestContactOversizedChunkedBody(t *testing.T) {
	app := newTestApp(t)

	payload, err := json.Marshal(map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": strings.Repeat("a", 128<<10),
	})
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}

	// NopCloser hides the reader's length, forcing a chunked request
	// with no Content-Length. The cap has to surface from the decoder.
	req, err := http.NewRequest(http.MethodPost, app.srv.URL+"/api/contact", io.NopCloser(bytes.NewReader(payload)))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.client.Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}
