// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/model"
	"github.com/olegiv/vitrine/internal/store"
	"github.com/olegiv/vitrine/internal/validate"
)

// IntakeHandler handles the public contact form and newsletter signup.
type IntakeHandler struct {
	queries *store.Queries
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(db *sql.DB) *IntakeHandler {
	return &IntakeHandler{queries: store.New(db)}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// Contact handles POST /api/contact.
func (h *IntakeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	submission, err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("saving contact submission", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	slog.Info("contact submission received", "id", submission.ID, "email", submission.Email)
	writeJSONSuccessStatus(w, r, http.StatusCreated, map[string]any{
		"message": i18n.T(lang, "contact.received"),
	})
}

// Subscribe handles POST /api/newsletter. Repeat signups with the same
// address succeed without creating a duplicate row.
func (h *IntakeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	if _, err := h.queries.CreateNewsletterSubscriber(r.Context(), req.Email, time.Now()); err != nil {
		slog.Error("saving newsletter subscriber", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	writeJSONSuccess(w, r, map[string]any{
		"message": i18n.T(lang, "newsletter.subscribed"),
	})
}

// ListSubmissions handles GET /api/contact-submissions.
func (h *IntakeHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	submissions, err := h.queries.ListContactSubmissions(r.Context())
	if err != nil {
		slog.Error("listing contact submissions", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if submissions == nil {
		submissions = []model.ContactSubmission{}
	}
	writeJSONSuccess(w, r, map[string]any{"submissions": submissions})
}

// ListSubscribers handles GET /api/newsletter-subscribers.
func (h *IntakeHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	subscribers, err := h.queries.ListNewsletterSubscribers(r.Context())
	if err != nil {
		slog.Error("listing newsletter subscribers", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if subscribers == nil {
		subscribers = []model.NewsletterSubscriber{}
	}
	writeJSONSuccess(w, r, map[string]any{"subscribers": subscribers})
}
