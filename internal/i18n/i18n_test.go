// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"strings"
	"testing"
)

func initCatalog(t *testing.T) {
	t.Helper()
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func TestT(t *testing.T) {
	initCatalog(t)

	if got := T("en", "error.not_found"); got != "Not found" {
		t.Errorf("T(en) = %q", got)
	}
	if got := T("ru", "error.not_found"); got != "Не найдено" {
		t.Errorf("T(ru) = %q", got)
	}

	// Unknown language falls back to English.
	if got := T("de", "error.not_found"); got != "Not found" {
		t.Errorf("T(de) = %q", got)
	}

	// Unknown key comes back verbatim.
	if got := T("en", "no.such.key"); got != "no.such.key" {
		t.Errorf("T(unknown key) = %q", got)
	}
}

func TestTWithArgs(t *testing.T) {
	initCatalog(t)

	got := T("en", "error.account_locked", 15)
	if !strings.Contains(got, "15 minutes") {
		t.Errorf("T with args = %q", got)
	}
}

func TestMatchLanguage(t *testing.T) {
	initCatalog(t)

	tests := []struct {
		accept string
		want   string
	}{
		{"en", "en"},
		{"ru", "ru"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"fr", "en"},
		{"", "en"},
		{"garbage;;;", "en"},
	}
	for _, tt := range tests {
		if got := MatchLanguage(tt.accept); got != tt.want {
			t.Errorf("MatchLanguage(%q) = %q, want %q", tt.accept, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("en") || !IsSupported("RU") {
		t.Error("en and ru should be supported")
	}
	if IsSupported("de") || IsSupported("") {
		t.Error("de and empty should not be supported")
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	initCatalog(t)

	if en, ru := TranslationCount("en"), TranslationCount("ru"); en != ru {
		t.Errorf("catalog sizes differ: en=%d ru=%d", en, ru)
	}
}
