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

// CaseStudyHandler handles portfolio case study routes.
type CaseStudyHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
}

// NewCaseStudyHandler creates a new case study handler.
func NewCaseStudyHandler(db *sql.DB, sm *scs.SessionManager) *CaseStudyHandler {
	return &CaseStudyHandler{queries: store.New(db), sm: sm}
}

type caseStudyRequest struct {
	Slug      string `json:"slug" validate:"omitempty,max=200"`
	Title     string `json:"title" validate:"required,max=200"`
	Summary   string `json:"summary" validate:"omitempty,max=500"`
	Content   string `json:"content"`
	Client    string `json:"client" validate:"omitempty,max=200"`
	Industry  string `json:"industry" validate:"omitempty,max=100"`
	Image     string `json:"image" validate:"omitempty,max=500"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
	Language  string `json:"language" validate:"omitempty,oneof=en ru"`
}

// List handles GET /api/case-studies.
func (h *CaseStudyHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	studies, err := h.queries.ListCaseStudies(r.Context(), store.ListCaseStudiesParams{
		Language:      r.URL.Query().Get("language"),
		PublishedOnly: !isAdmin(h.sm, r),
	})
	if err != nil {
		slog.Error("listing case studies", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if studies == nil {
		studies = []model.CaseStudy{}
	}
	writeJSONSuccess(w, r, map[string]any{"caseStudies": studies})
}

// Get handles GET /api/case-studies/{id}.
func (h *CaseStudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}

	study, err := h.queries.GetCaseStudyByID(r.Context(), id)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !study.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"caseStudy": study})
}

// GetBySlug handles GET /api/case-studies/slug/{slug}.
func (h *CaseStudyHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	study, err := h.queries.GetCaseStudyBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !study.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"caseStudy": study})
}

// Create handles POST /api/case-studies.
func (h *CaseStudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req caseStudyRequest
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
	study, err := h.queries.CreateCaseStudy(ctx, store.CreateCaseStudyParams{
		Slug:      slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Client:    req.Client,
		Industry:  req.Industry,
		Image:     req.Image,
		Featured:  req.Featured,
		Published: req.Published,
		Language:  normalizeLanguage(req.Language),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating case study", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"caseStudy": study})
}

// Update handles PUT /api/case-studies/{id}.
func (h *CaseStudyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetCaseStudyByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	var req caseStudyRequest
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

	study, err := h.queries.UpdateCaseStudy(ctx, store.UpdateCaseStudyParams{
		Slug:      slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Client:    req.Client,
		Industry:  req.Industry,
		Image:     req.Image,
		Featured:  req.Featured,
		Published: req.Published,
		Language:  normalizeLanguage(req.Language),
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		slog.Error("updating case study", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"caseStudy": study})
}

// Delete handles DELETE /api/case-studies/{id}.
func (h *CaseStudyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if err := h.queries.DeleteCaseStudy(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CaseStudyHandler) resolveSlug(w http.ResponseWriter, r *http.Request, req *caseStudyRequest, excludeID int64) (string, bool) {
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

	count, err := h.queries.CountCaseStudySlug(r.Context(), slug, normalizeLanguage(req.Language), excludeID)
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

func (h *CaseStudyHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("case study query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
