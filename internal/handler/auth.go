// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine/internal/auth"
	"github.com/olegiv/vitrine/internal/i18n"
	"github.com/olegiv/vitrine/internal/model"
	"github.com/olegiv/vitrine/internal/session"
	"github.com/olegiv/vitrine/internal/store"
	"github.com/olegiv/vitrine/internal/validate"
)

// resetTokenLifetime is how long a password reset token stays valid.
const resetTokenLifetime = time.Hour

// AuthHandler handles admin authentication.
type AuthHandler struct {
	queries *store.Queries
	sm      *scs.SessionManager
	isDev   bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager, isDev bool) *AuthHandler {
	return &AuthHandler{
		queries: store.New(db),
		sm:      sm,
		isDev:   isDev,
	}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

// userResponse is the safe subset of a user sent to the client.
type userResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func toUserResponse(u model.User) userResponse {
	resp := userResponse{ID: u.ID, Username: u.Username}
	if u.LastLoginAt.Valid {
		resp.LastLoginAt = &u.LastLoginAt.Time
	}
	return resp
}

// Setup handles POST /api/admin/setup. It creates the first admin user
// and refuses once any user exists.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	count, err := h.queries.CountUsers(ctx)
	if err != nil {
		slog.Error("counting users", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if count > 0 {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.setup_done"))
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}
	if err := auth.CheckPasswordStrength(req.Password); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.weak_password"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(ctx, store.CreateUserParams{
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("creating first user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	slog.Info("first admin user created", "id", user.ID, "username", user.Username)

	// Establish the session right away so setup flows into the admin UI.
	if err := h.sm.RenewToken(ctx); err != nil {
		slog.Error("renewing session token", "error", err)
	}
	h.sm.Put(ctx, session.KeyUserID, user.ID)
	h.sm.Put(ctx, session.KeyUsername, user.Username)

	writeJSONSuccess(w, r, map[string]any{"user": toUserResponse(user)})
}

// Login handles POST /api/admin/login, driving the lockout state
// machine: locked accounts reject without counting the attempt, the
// fifth consecutive failure locks for fifteen minutes.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	now := time.Now()
	user, err := h.queries.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("fetching user", "error", err)
			writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
			return
		}
		// Unknown user reads the same as a wrong password.
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
		return
	}

	if user.IsLocked(now) {
		minutes := int(math.Ceil(user.LockRemaining(now).Minutes()))
		writeJSONError(w, http.StatusForbidden, i18n.T(lang, "error.account_locked", minutes))
		return
	}

	ok, err := auth.ComparePasswords(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("comparing passwords", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if !ok {
		attempts := user.LoginAttempts + 1
		locked := sql.NullTime{}
		if attempts >= model.MaxLoginAttempts {
			locked = sql.NullTime{Time: now.Add(model.LockoutDuration), Valid: true}
			slog.Warn("account locked", "user_id", user.ID, "attempts", attempts)
		}
		if err := h.queries.RecordFailedLogin(ctx, store.RecordFailedLoginParams{
			LoginAttempts: attempts,
			LockedUntil:   locked,
			UpdatedAt:     now,
			ID:            user.ID,
		}); err != nil {
			slog.Error("recording failed login", "error", err, "user_id", user.ID)
		}
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
		return
	}

	if err := h.queries.RecordSuccessfulLogin(ctx, user.ID, now); err != nil {
		slog.Error("recording login", "error", err, "user_id", user.ID)
	}

	// New session token on privilege change
	if err := h.sm.RenewToken(ctx); err != nil {
		slog.Error("renewing session token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	h.sm.Put(ctx, session.KeyUserID, user.ID)
	h.sm.Put(ctx, session.KeyUsername, user.Username)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	writeJSONSuccess(w, r, map[string]any{
		"message": i18n.T(lang, "auth.logged_in"),
		"user":    toUserResponse(user),
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
	}
	writeJSONSuccess(w, r, map[string]any{"message": i18n.T(lang, "auth.logged_out")})
}

// Me handles GET /api/admin/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	userID := h.sm.GetInt64(ctx, session.KeyUserID)
	user, err := h.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Stale session for a deleted user
			_ = h.sm.Destroy(ctx)
			writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.unauthorized"))
			return
		}
		slog.Error("fetching current user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	writeJSONSuccess(w, r, map[string]any{"user": toUserResponse(user)})
}

type forgotPasswordRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

// ForgotPassword handles POST /api/admin/forgot-password. The response
// is identical whether or not the account exists. Without an outbound
// mailer the token is written to the server log; in development it is
// also returned for frontend testing.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	data := map[string]any{"message": i18n.T(lang, "auth.reset_sent")}

	user, err := h.queries.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("fetching user for reset", "error", err)
		}
		writeJSONSuccess(w, r, data)
		return
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		slog.Error("generating reset token", "error", err)
		writeJSONSuccess(w, r, data)
		return
	}
	now := time.Now()
	if err := h.queries.SetResetToken(ctx, store.SetResetTokenParams{
		ResetToken:       token,
		ResetTokenExpiry: now.Add(resetTokenLifetime),
		UpdatedAt:        now,
		ID:               user.ID,
	}); err != nil {
		slog.Error("storing reset token", "error", err, "user_id", user.ID)
		writeJSONSuccess(w, r, data)
		return
	}

	slog.Info("password reset token issued", "user_id", user.ID, "token", token)
	if h.isDev {
		data["resetToken"] = token
	}
	writeJSONSuccess(w, r, data)
}

// CheckResetToken handles GET /api/admin/reset-password/{token}.
func (h *AuthHandler) CheckResetToken(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	user, err := h.validResetUser(r, chi.URLParam(r, "token"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.reset_invalid"))
		return
	}

	writeJSONSuccess(w, r, map[string]any{"username": user.Username})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,max=256"`
}

// ResetPassword handles POST /api/admin/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	user, err := h.validResetUser(r, req.Token)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.reset_invalid"))
		return
	}

	if err := auth.CheckPasswordStrength(req.Password); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.weak_password"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	if err := h.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
		ID:           user.ID,
	}); err != nil {
		slog.Error("updating password", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	slog.Info("password reset completed", "user_id", user.ID)
	writeJSONSuccess(w, r, map[string]any{"message": i18n.T(lang, "auth.password_updated")})
}

// validResetUser resolves a reset token to its user, rejecting expired
// or unknown tokens.
func (h *AuthHandler) validResetUser(r *http.Request, token string) (model.User, error) {
	if token == "" {
		return model.User{}, errors.New("empty token")
	}
	user, err := h.queries.GetUserByResetToken(r.Context(), token)
	if err != nil {
		return model.User{}, err
	}
	if !user.ResetTokenExpiry.Valid || time.Now().After(user.ResetTokenExpiry.Time) {
		return model.User{}, errors.New("token expired")
	}
	return user, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=256"`
	NewPassword     string `json:"newPassword" validate:"required,max=256"`
}

// ChangePassword handles POST /api/admin/change-password. Requires an
// authenticated session and the current password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLanguage(r)

	userID := h.sm.GetInt64(ctx, session.KeyUserID)
	user, err := h.queries.GetUserByID(ctx, userID)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.unauthorized"))
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err, lang)
		return
	}
	if fields := validate.Struct(req); fields != nil {
		writeJSONErrorFields(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), fields)
		return
	}

	ok, err := auth.ComparePasswords(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		slog.Error("comparing passwords", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
		return
	}

	if err := auth.CheckPasswordStrength(req.NewPassword); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.weak_password"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("hashing password", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	if err := h.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
		ID:           user.ID,
	}); err != nil {
		slog.Error("updating password", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	writeJSONSuccess(w, r, map[string]any{"message": i18n.T(lang, "auth.password_updated")})
}
