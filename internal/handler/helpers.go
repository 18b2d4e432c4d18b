// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the JSON API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/session"
)

// ParseIDParam parses the {id} URL parameter as a positive integer.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// requestLanguage resolves the content language for a request: the
// ?lang query parameter when valid, otherwise the Accept-Language
// header, otherwise English.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if i18n.IsSupported(lang) {
			return lang
		}
	}
	return i18n.MatchLanguage(r.Header.Get("Accept-Language"))
}

// normalizeLanguage validates a stored-content language field, falling
// back to English for anything unsupported.
func normalizeLanguage(lang string) string {
	if i18n.IsSupported(lang) {
		return lang
	}
	return "en"
}

// isAdmin reports whether the request carries an authenticated session.
func isAdmin(sm *scs.SessionManager, r *http.Request) bool {
	return sm.GetInt64(r.Context(), session.KeyUserID) != 0
}
