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

// TrainingHandler handles training course routes.
type TrainingHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
}

// NewTrainingHandler creates a new training handler.
func NewTrainingHandler(db *sql.DB, sm *scs.SessionManager) *TrainingHandler {
	return &TrainingHandler{queries: store.New(db), sm: sm}
}

type trainingRequest struct {
	Slug        string `json:"slug" validate:"omitempty,max=200"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	Duration    string `json:"duration" validate:"omitempty,max=100"`
	Level       string `json:"level" validate:"omitempty,max=100"`
	Price       string `json:"price" validate:"omitempty,max=50"`
	Published   bool   `json:"published"`
	Language    string `json:"language" validate:"omitempty,oneof=en ru"`
}

// List handles GET /api/trainings.
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	trainings, err := h.queries.ListTrainings(r.Context(), store.ListTrainingsParams{
		Language:      r.URL.Query().Get("language"),
		PublishedOnly: !isAdmin(h.sm, r),
	})
	if err != nil {
		slog.Error("listing trainings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if trainings == nil {
		trainings = []model.Training{}
	}
	writeJSONSuccess(w, r, map[string]any{"trainings": trainings})
}

// Get handles GET /api/trainings/{id}.
func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}

	training, err := h.queries.GetTrainingByID(r.Context(), id)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !training.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"training": training})
}

// GetBySlug handles GET /api/trainings/slug/{slug}.
func (h *TrainingHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	training, err := h.queries.GetTrainingBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !training.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"training": training})
}

// Create handles POST /api/trainings.
func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req trainingRequest
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
	training, err := h.queries.CreateTraining(ctx, store.CreateTrainingParams{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Duration:    req.Duration,
		Level:       req.Level,
		Price:       req.Price,
		Published:   req.Published,
		Language:    normalizeLanguage(req.Language),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating training", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"training": training})
}

// Update handles PUT /api/trainings/{id}.
func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetTrainingByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	var req trainingRequest
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

	training, err := h.queries.UpdateTraining(ctx, store.UpdateTrainingParams{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Duration:    req.Duration,
		Level:       req.Level,
		Price:       req.Price,
		Published:   req.Published,
		Language:    normalizeLanguage(req.Language),
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		slog.Error("updating training", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"training": training})
}

// Delete handles DELETE /api/trainings/{id}.
func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if err := h.queries.DeleteTraining(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TrainingHandler) resolveSlug(w http.ResponseWriter, r *http.Request, req *trainingRequest, excludeID int64) (string, bool) {
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

	count, err := h.queries.CountTrainingSlug(r.Context(), slug, normalizeLanguage(req.Language), excludeID)
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

func (h *TrainingHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("training query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
