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

// BlogHandler handles blog post routes.
type BlogHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(db *sql.DB, sm *scs.SessionManager) *BlogHandler {
	return &BlogHandler{queries: store.New(db), sm: sm}
}

type blogPostRequest struct {
	Slug       string `json:"slug" validate:"omitempty,max=200"`
	Title      string `json:"title" validate:"required,max=200"`
	Excerpt    string `json:"excerpt" validate:"max=1000"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image" validate:"omitempty,max=500"`
	Published  bool   `json:"published"`
	Language   string `json:"language" validate:"omitempty,oneof=en ru"`
}

// List handles GET /api/blog-posts. Anonymous callers see published
// posts only.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	posts, err := h.queries.ListBlogPosts(r.Context(), store.ListBlogPostsParams{
		Language:      r.URL.Query().Get("language"),
		PublishedOnly: !isAdmin(h.sm, r),
	})
	if err != nil {
		slog.Error("listing blog posts", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if posts == nil {
		posts = []model.BlogPost{}
	}
	writeJSONSuccess(w, r, map[string]any{"posts": posts})
}

// Get handles GET /api/blog-posts/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}

	post, err := h.queries.GetBlogPostByID(r.Context(), id)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !post.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"post": post})
}

// GetBySlug handles GET /api/blog-posts/slug/{slug}.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	post, err := h.queries.GetBlogPostBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	if !post.Published && !isAdmin(h.sm, r) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"post": post})
}

// Create handles POST /api/blog-posts.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req blogPostRequest
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
	post, err := h.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Slug:       slug,
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		Language:   normalizeLanguage(req.Language),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		slog.Error("creating blog post", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{"post": post})
}

// Update handles PUT /api/blog-posts/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}
	if _, err := h.queries.GetBlogPostByID(ctx, id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}

	var req blogPostRequest
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

	post, err := h.queries.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
		Slug:       slug,
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		Language:   normalizeLanguage(req.Language),
		UpdatedAt:  time.Now(),
		ID:         id,
	})
	if err != nil {
		slog.Error("updating blog post", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	writeJSONSuccess(w, r, map[string]any{"post": post})
}

// Delete handles DELETE /api/blog-posts/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	id, err := ParseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_id"))
		return
	}

	if err := h.queries.DeleteBlogPost(r.Context(), id); err != nil {
		h.writeFetchError(w, err, lang)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveSlug derives the slug (from the request or the title) and
// rejects collisions within the language before any write happens.
func (h *BlogHandler) resolveSlug(w http.ResponseWriter, r *http.Request, req *blogPostRequest, excludeID int64) (string, bool) {
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

	count, err := h.queries.CountBlogPostSlug(r.Context(), slug, normalizeLanguage(req.Language), excludeID)
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

// writeFetchError maps store errors to 404 or 500.
func (h *BlogHandler) writeFetchError(w http.ResponseWriter, err error, lang string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
		return
	}
	slog.Error("blog post query failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}
