// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "kJ8#mP2$vN9@qR5!wT7&xY3*zB6^cD4%"

func setEnv(t *testing.T, secret string) {
	t.Helper()
	t.Setenv("VITRINE_SESSION_SECRET", secret)
}

func TestLoad(t *testing.T) {
	setEnv(t, testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SessionSecret != testSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, testSecret)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.RateLimitMax != 300 {
		t.Errorf("RateLimitMax = %d, want 300", cfg.RateLimitMax)
	}
	if cfg.StrictLimitMax != 30 {
		t.Errorf("StrictLimitMax = %d, want 30", cfg.StrictLimitMax)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("VITRINE_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without VITRINE_SESSION_SECRET")
	}
}

func TestLoadShortSecret(t *testing.T) {
	setEnv(t, "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a short secret")
	}
	if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("error should mention minimum length, got: %v", err)
	}
}

func TestLoadWeakSecret(t *testing.T) {
	setEnv(t, "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a known weak secret")
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false for development env")
	}

	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "localhost", ServerPort: 9090}
	if got := cfg.ServerAddr(); got != "localhost:9090" {
		t.Errorf("ServerAddr() = %q, want localhost:9090", got)
	}
}

func TestChatEnabled(t *testing.T) {
	cfg := Config{}
	if cfg.ChatEnabled() {
		t.Error("ChatEnabled() = true without an API key")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if !cfg.ChatEnabled() {
		t.Error("ChatEnabled() = false with an API key")
	}
}

func TestUseRedisLimiter(t *testing.T) {
	cfg := Config{}
	if cfg.UseRedisLimiter() {
		t.Error("UseRedisLimiter() = true without a URL")
	}
	cfg.RedisURL = "redis://localhost:6379"
	if !cfg.UseRedisLimiter() {
		t.Error("UseRedisLimiter() = false with a URL")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefgh", false},
		{"abcABC", false},
		{"abcABC123", true},
		{"abc123!@#", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
