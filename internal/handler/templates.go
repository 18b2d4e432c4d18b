// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/model"
	"github.com/olegiv/vitrine/internal/store"
	"github.com/olegiv/vitrine/internal/util"
	"github.com/olegiv/vitrine/internal/validate"
)

// TemplateHandler handles shop template routes.
type TemplateHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
}

// NewTemplateHandler creates a new shop template handler.
func NewTemplateHandler(db *sql.DB, sm *scs.SessionManager) *TemplateHandler {
	return &TemplateHandler{queries: store.New(db), sm: sm}
}

type templateRequest struct {
	Slug        string `json:"slug" validate:"omitempty,max=200"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	DemoURL     string `json:"demo_url" validate:"omitempty,url,max=500"`
	Price       string `json:"price" validate:"omitempty,max=50"`
	Featured    bool   `json:"featured"`
	Published   bool   `json:"published"`
	Language    string `json:"language" validate:"omitempty,oneof=en ru"`
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	templates, err := h.queries.ListTemplates(r.Context(), store.ListTemplatesParams{
		Language:      r.URL.Query().Get("language"),
		PublishedOnly: !isAdmin(h.sm, r),
	})
	if err != nil {
		slog.Error("listing templates", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if templates == nil {
		templates = []model.Template{}
	}
	writeJSONSuccess(w, r, map[string]any{"templates": templates})
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}

	tpl, err := h.queries.GetTemplateByID(r.Context(), id)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !tpl.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"template": tpl})
}

// GetBySlug handles GET /api/templates/slug/{slug}.
func (h *TemplateHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	tpl, err := h.queries.GetTemplateBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !tpl.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"template": tpl})
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	slug, ok := h.resolveSlug(w, r, &req, 0)
	if !ok {
		return
	}

	now := time.Now()
	tpl, err := h.queries.CreateTemplate(ctx, store.CreateTemplateParams{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		DemoURL:     req.DemoURL,
		Price:       req.Price,
		Featured:    req.Featured,
		Published:   req.Published,
		Language:    normalizeLanguage(req.Language),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating template", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"template": tpl})
}

// Update handles PUT /api/templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetTemplateByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	slug, ok := h.resolveSlug(w, r, &req, id)
	if !ok {
		return
	}

	tpl, err := h.queries.UpdateTemplate(ctx, store.UpdateTemplateParams{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		DemoURL:     req.DemoURL,
		Price:       req.Price,
		Featured:    req.Featured,
		Published:   req.Published,
		Language:    normalizeLanguage(req.Language),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		slog.Error("updating template", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"template": tpl})
}

// Delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if err := h.queries.DeleteTemplate(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TemplateHandler) resolveSlug(w http.ResponseWriter, r *http.Request, req *templateRequest, excludeID int64) (string, bool) {
	lang := requestLanguage(r)

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(slug) {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"),
			map[string]string{"slug": "must contain only lowercase letters, numbers and hyphens"})
		return "", false
	}

	count, err := h.queries.CountTemplateSlug(r.Context(), slug, normalizeLanguage(req.Language), excludeID)
	if err != nil {
		slog.Error("checking slug", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return "", false
	}
	if count > 0 {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.slug_taken"))
		return "", false
	}
	return slug, true
}

func (h *TemplateHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("template query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
