// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
)

func TestSetupLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get(t, "/api/admin/me")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous /me: status = %d, want 401", resp.StatusCode)
	}

	app.loginAdmin(t)

	resp, envelope := app.get(t, "/api/admin/me")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/me after setup: status = %d", resp.StatusCode)
	}
	user, ok := envelope["user"].(map[string]any)
	if !ok {
		t.Fatalf("/me response missing user: %v", envelope)
	}
	if user["username"] != "admin" {
		t.Errorf("username = %v, want admin", user["username"])
	}
}

func TestSetupOnlyOnce(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/setup", map[string]any{
		"username": "second",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("second setup: status = %d, want 400", resp.StatusCode)
	}
}

func TestSetupRejectsWeakPassword(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/setup", map[string]any{
		"username": "admin",
		"password": "password",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("weak password setup: status = %d, want 400", resp.StatusCode)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)
	app.postJSON(t, http.MethodPost, "/api/admin/logout", nil)

	resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "admin",
		"password": "Wr0ng-Passw0rd!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", resp.StatusCode)
	}

	// Unknown usernames get the same generic response as wrong passwords.
	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "nobody",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unknown user: status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginLockout(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)
	app.postJSON(t, http.MethodPost, "/api/admin/logout", nil)

	for i := 0; i < 5; i++ {
		resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
			"username": "admin",
			"password": "Wr0ng-Passw0rd!",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, resp.StatusCode)
		}
	}

	// Even the correct password is refused while the account is locked.
	resp, envelope := app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "admin",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("locked login: status = %d, want 403, body = %v", resp.StatusCode, envelope)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)
	app.postJSON(t, http.MethodPost, "/api/admin/logout", nil)

	resp, envelope := app.postJSON(t, http.MethodPost, "/api/admin/forgot-password", map[string]any{
		"username": "admin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot-password: status = %d", resp.StatusCode)
	}
	// Dev mode echoes the token so local flows can be tested end to end.
	token, ok := envelope["resetToken"].(string)
	if !ok || token == "" {
		t.Fatalf("dev forgot-password response missing resetToken: %v", envelope)
	}

	resp, envelope = app.get(t, "/api/admin/reset-password/"+token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check reset token: status = %d, body = %v", resp.StatusCode, envelope)
	}

	const newPassword = "N3w-Passw0rd!!"
	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/reset-password", map[string]any{
		"token":    token,
		"password": newPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset password: status = %d", resp.StatusCode)
	}

	// The token is single-use.
	resp, _ = app.get(t, "/api/admin/reset-password/"+token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("reused token: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "admin",
		"password": newPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login with new password: status = %d, want 200", resp.StatusCode)
	}
}

func TestForgotPasswordUnknownUserUniformResponse(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/forgot-password", map[string]any{
		"username": "nobody",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unknown user forgot-password: status = %d, want 200", resp.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, _ := app.postJSON(t, http.MethodPost, "/api/admin/change-password", map[string]any{
		"currentPassword": "Wrong-Guess-1!",
		"newPassword":     "N3w-Secret-Pw!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong current password: status = %d, want 401", resp.StatusCode)
	}

	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/change-password", map[string]any{
		"currentPassword": testPassword,
		"newPassword":     "N3w-Secret-Pw!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("change password: status = %d", resp.StatusCode)
	}

	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "admin",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("login with old password: status = %d, want 401", resp.StatusCode)
	}

	resp, _ = app.postJSON(t, http.MethodPost, "/api/admin/login", map[string]any{
		"username": "admin",
		"password": "N3w-Secret-Pw!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login with new password: status = %d", resp.StatusCode)
	}
}

func TestChangePasswordRateLimited(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	// Exhaust the window guessing the current password.
	var resp *http.Response
	var envelope map[string]any
	for i := 0; i < 6; i++ {
		resp, envelope = app.postJSON(t, http.MethodPost, "/api/admin/change-password", map[string]any{
			"currentPassword": "Wrong-Guess-1!",
			"newPassword":     "N3w-Secret-Pw!",
		})
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("over-limit attempt: status = %d, want 429", resp.StatusCode)
	}
	errObj, ok := envelope["error"].(map[string]any)
	if !ok || errObj["retryAfter"] == nil {
		t.Errorf("429 envelope missing retryAfter: %v", envelope)
	}
}
