// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/middleware"
	"github.com/olegiv/vitrine/internal/sanitize"
)

// writeJSONSuccess writes a JSON success envelope. The CSRF token for
// the session rides along so the frontend can send it back on the next
// mutating request.
func writeJSONSuccess(w http.ResponseWriter, r *http.Request, data map[string]any) {
	writeJSONSuccessStatus(w, r, http.StatusOK, data)
}

// writeJSONSuccessStatus writes a success envelope with an explicit
// status code (e.g. 201 on create).
func writeJSONSuccessStatus(w http.ResponseWriter, r *http.Request, statusCode int, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	if token := middleware.CSRFToken(r); token != "" {
		data["_csrf"] = token
	}
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSONErrorFields(w, statusCode, message, nil)
}

// writeJSONErrorFields writes a JSON error envelope with per-field
// validation messages.
func writeJSONErrorFields(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errBody := map[string]any{"message": message}
	if len(fields) > 0 {
		errBody["errors"] = fields
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   errBody,
	})
}

// decodeJSON decodes a sanitized request body into dst. The body is
// first decoded generically so every string field passes through the
// HTML sanitizer before validation sees it.
func decodeJSON(r *http.Request, dst any) error {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}

	cleaned, err := json.Marshal(sanitize.Map(raw))
	if err != nil {
		return err
	}
	return json.Unmarshal(cleaned, dst)
}

// isBodyTooLarge reports whether err came from the request body cap.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// writeDecodeError maps a request body decode failure: 413 when the
// body cap was hit, 400 for anything else.
func writeDecodeError(w http.ResponseWriter, err error, lang string) {
	if isBodyTooLarge(err) {
		writeJSONError(w, http.StatusRequestEntityTooLarge, i18n.T(lang, "error.body_too_large"))
		return
	}
	writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_request"))
}
