// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/model"
	"github.com/olegiv/vitrine/internal/store"
	"github.com/olegiv/vitrine/internal/validate"
)

// SettingsHandler handles section visibility and hero settings.
type SettingsHandler struct {
	queries *store.Queries
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(db *sql.DB) *SettingsHandler {
	return &SettingsHandler{queries: store.New(db)}
}

type sectionSettingRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=200"`
	Enabled     bool   `json:"enabled"`
	ShowInMenu  bool   `json:"show_in_menu"`
	Position    int64  `json:"position" validate:"min=0"`
}

type heroSettingRequest struct {
	Title               string `json:"title" validate:"omitempty,max=300"`
	Subtitle            string `json:"subtitle" validate:"omitempty,max=1000"`
	ButtonText          string `json:"button_text" validate:"omitempty,max=100"`
	ButtonURL           string `json:"button_url" validate:"omitempty,max=500"`
	SecondaryButtonText string `json:"secondary_button_text" validate:"omitempty,max=100"`
	SecondaryButtonURL  string `json:"secondary_button_url" validate:"omitempty,max=500"`
	Image               string `json:"image" validate:"omitempty,max=500"`
	Enabled             bool   `json:"enabled"`
}

// ListSections handles GET /api/section-settings.
func (h *SettingsHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	settings, err := h.queries.ListSectionSettings(r.Context())
	if err != nil {
		slog.Error("listing section settings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if settings == nil {
		settings = []model.SectionSetting{}
	}
	writeJSONSuccess(w, r, map[string]any{"sections": settings})
}

// GetSection handles GET /api/section-settings/{key}.
func (h *SettingsHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	setting, err := h.queries.GetSectionSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	writeJSONSuccess(w, r, map[string]any{"section": setting})
}

// UpsertSection handles PUT /api/section-settings/{key}.
func (h *SettingsHandler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	var req sectionSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	setting, err := h.queries.UpsertSectionSetting(r.Context(), store.UpsertSectionSettingParams{
		Key:         chi.URLParam(r, "key"),
		DisplayName: req.DisplayName,
		Enabled:     req.Enabled,
		ShowInMenu:  req.ShowInMenu,
		Position:    req.Position,
	})
	if err != nil {
		slog.Error("upserting section setting", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"section": setting})
}

// ListHeroes handles GET /api/hero-settings.
func (h *SettingsHandler) ListHeroes(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	heroes, err := h.queries.ListHeroSettings(r.Context())
	if err != nil {
		slog.Error("listing hero settings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if heroes == nil {
		heroes = []model.HeroSetting{}
	}
	writeJSONSuccess(w, r, map[string]any{"heroes": heroes})
}

// GetHero handles GET /api/hero-settings/{pageKey}.
func (h *SettingsHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	hero, err := h.queries.GetHeroSetting(r.Context(), chi.URLParam(r, "pageKey"))
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	writeJSONSuccess(w, r, map[string]any{"hero": hero})
}

// UpsertHero handles PUT /api/hero-settings/{pageKey}.
func (h *SettingsHandler) UpsertHero(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	var req heroSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	hero, err := h.queries.UpsertHeroSetting(r.Context(), store.UpsertHeroSettingParams{
		PageKey:             chi.URLParam(r, "pageKey"),
		Title:               req.Title,
		Subtitle:            req.Subtitle,
		ButtonText:          req.ButtonText,
		ButtonURL:           req.ButtonURL,
		SecondaryButtonText: req.SecondaryButtonText,
		SecondaryButtonURL:  req.SecondaryButtonURL,
		Image:               req.Image,
		Enabled:             req.Enabled,
	})
	if err != nil {
		slog.Error("upserting hero setting", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"hero": hero})
}

func (h *SettingsHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("settings query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
