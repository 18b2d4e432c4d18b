// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/model"
	"github.com/olegiv/vitrine/internal/store"
	"github.com/olegiv/vitrine/internal/validate"
)

// SectionHandler handles the services and why-us landing page sections.
type SectionHandler struct {
	queries *store.Queries
}

// NewSectionHandler creates a new section handler.
func NewSectionHandler(db *sql.DB) *SectionHandler {
	return &SectionHandler{queries: store.New(db)}
}

type sectionItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Icon        string `json:"icon" validate:"omitempty,max=100"`
	Position    int64  `json:"position" validate:"min=0"`
	Language    string `json:"language" validate:"omitempty,oneof=en ru"`
}

// ListServices handles GET /api/services.
func (h *SectionHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	services, err := h.queries.ListServices(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		slog.Error("listing services", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if services == nil {
		services = []model.Service{}
	}
	writeJSONSuccess(w, r, map[string]any{"services": services})
}

// CreateService handles POST /api/services.
func (h *SectionHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	now := time.Now()
	service, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Position:    req.Position,
		Language:    normalizeLanguage(req.Language),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating service", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"service": service})
}

// UpdateService handles PUT /api/services/{id}.
func (h *SectionHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetServiceByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	service, err := h.queries.UpdateService(ctx, store.UpdateServiceParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Position:    req.Position,
		Language:    normalizeLanguage(req.Language),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		slog.Error("updating service", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"service": service})
}

// DeleteService handles DELETE /api/services/{id}.
func (h *SectionHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if err := h.queries.DeleteService(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWhyUs handles GET /api/why-us.
func (h *SectionHandler) ListWhyUs(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	items, err := h.queries.ListWhyUsItems(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		slog.Error("listing why-us items", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if items == nil {
		items = []model.WhyUsItem{}
	}
	writeJSONSuccess(w, r, map[string]any{"items": items})
}

// CreateWhyUs handles POST /api/why-us.
func (h *SectionHandler) CreateWhyUs(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	now := time.Now()
	item, err := h.queries.CreateWhyUsItem(r.Context(), store.CreateWhyUsItemParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Position:    req.Position,
		Language:    normalizeLanguage(req.Language),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating why-us item", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"item": item})
}

// UpdateWhyUs handles PUT /api/why-us/{id}.
func (h *SectionHandler) UpdateWhyUs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetWhyUsItemByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	item, err := h.queries.UpdateWhyUsItem(ctx, store.UpdateWhyUsItemParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Position:    req.Position,
		Language:    normalizeLanguage(req.Language),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		slog.Error("updating why-us item", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"item": item})
}

// DeleteWhyUs handles DELETE /api/why-us/{id}.
func (h *SectionHandler) DeleteWhyUs(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if err := h.queries.DeleteWhyUsItem(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SectionHandler) decodeItem(w http.ResponseWriter, r *http.Request) (sectionItemRequest, bool) {
	lang := requestLanguage(r)

	var req sectionItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return req, false
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return req, false
	}
	return req, true
}

func (h *SectionHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("section query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
