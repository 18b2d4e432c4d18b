// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/middleware"
)

// DevHandler exposes development-only helpers. It must never be
// mounted in production.
type DevHandler struct {
	limiters []*middleware.RateLimiter
}

// NewDevHandler creates a new dev handler. Every limiter passed in is
// cleared by the reset route, so login limits can be retested too.
func NewDevHandler(limiters ...*middleware.RateLimiter) *DevHandler {
	return &DevHandler{limiters: limiters}
}

type rateLimitResetRequest struct {
	IP string `json:"ip"`
}

// ResetRateLimit handles POST /api/dev/rate-limit/reset. Without a body
// it resets the caller's own counter.
func (h *DevHandler) ResetRateLimit(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	ip := middleware.ClientIP(r)
	var req rateLimitResetRequest
	if err := decodeJSON(r, &req); err == nil && req.IP != "" {
		ip = req.IP
	}

	for _, limiter := range h.limiters {
		if err := limiter.ResetClient(r.Context(), ip); err != nil {
			slog.Error("resetting rate limit", "error", err, "ip", ip)
			writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
			return
		}
	}

	writeJSONSuccess(w, r, map[string]any{"reset": ip})
}
