// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/vitrine/internal/chat"
	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/validate"
)

// ChatHandler handles the AI assistant endpoint.
type ChatHandler struct {
	service *chat.Service
}

// NewChatHandler creates a new chat handler. A nil service means the
// assistant is not configured and every request gets a 503.
func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatRequest struct {
	Message  string `json:"message" validate:"required,max=2000"`
	Language string `json:"language" validate:"omitempty,oneof=en ru"`
}

// Ask handles POST /api/chat.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	if h.service == nil {
		writeJSONError(w, http.StatusServiceUnavailable, i18n.T(lang, "error.chat_unavailable"))
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}
	if req.Language != "" {
		lang = req.Language
	}

	reply, err := h.service.Ask(r.Context(), lang, req.Message)
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSONSuccess(w, r, map[string]any{
		"reply":     reply.Text,
		"replyHtml": reply.HTML,
	})
}
