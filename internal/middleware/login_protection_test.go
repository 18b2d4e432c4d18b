// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginProtectionThrottlesPosts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 1, IPBurst: 2})
	h := lp.Middleware(okHandler())

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 passes, the third is throttled.
	if code := post("1.2.3.4"); code != http.StatusOK {
		t.Fatalf("first post = %d, want 200", code)
	}
	if code := post("1.2.3.4"); code != http.StatusOK {
		t.Fatalf("second post = %d, want 200", code)
	}
	if code := post("1.2.3.4"); code != http.StatusTooManyRequests {
		t.Fatalf("third post = %d, want 429", code)
	}

	// Other clients are unaffected.
	if code := post("5.6.7.8"); code != http.StatusOK {
		t.Fatalf("other client = %d, want 200", code)
	}
}

func TestLoginProtectionIgnoresGets(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 1, IPBurst: 1})
	h := lp.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/login", nil)
		req.Header.Set("X-Real-IP", "1.2.3.4")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestLoginProtectionCleanup(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig())

	lp.ipLimiters.get("1.1.1.1")
	lp.ipLimiters.get("2.2.2.2")

	if cleared := lp.Cleanup(1); !cleared {
		t.Error("Cleanup should clear when over max size")
	}
	if cleared := lp.Cleanup(100); cleared {
		t.Error("Cleanup should not clear when under max size")
	}
}
