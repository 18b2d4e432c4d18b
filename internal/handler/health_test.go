// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
)

func TestHealthPublicMinimal(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.get(t, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status = %d", resp.StatusCode)
	}
	if envelope["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", envelope["status"])
	}
	// Anonymous callers must not see check details.
	if _, ok := envelope["checks"]; ok {
		t.Error("public health response leaked check details")
	}
}

func TestHealthAuthenticatedDetails(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, envelope := app.get(t, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status = %d", resp.StatusCode)
	}
	checks, ok := envelope["checks"].(map[string]any)
	if !ok {
		t.Fatalf("expected checks for admin session, got %v", envelope)
	}
	if _, ok := checks["database"]; !ok {
		t.Error("expected database check")
	}
}

func TestLiveness(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.get(t, "/health/live")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("liveness: status = %d", resp.StatusCode)
	}
	if envelope["status"] != "alive" {
		t.Errorf("status = %v, want alive", envelope["status"])
	}
}

func TestReadiness(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := app.get(t, "/health/ready")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readiness: status = %d", resp.StatusCode)
	}
	if envelope["status"] != "ready" {
		t.Errorf("status = %v, want ready", envelope["status"])
	}
}
