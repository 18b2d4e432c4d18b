// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/vitrine/internal/middleware"
)

// CSRFToken handles GET /api/csrf-token. Clients call it once on page
// load to obtain a token for subsequent unsafe requests.
func CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, r, map[string]any{
		"csrfToken": middleware.CSRFToken(r),
	})
}
