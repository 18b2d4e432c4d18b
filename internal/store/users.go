// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const userColumns = `id, username, password_hash, login_attempts, locked_until,
	reset_token, reset_token_expiry, last_login_at, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.LoginAttempts, &u.LockedUntil,
		&u.ResetToken, &u.ResetTokenExpiry, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new admin user.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING `+userColumns,
		arg.Username, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	return scanUser(row)
}

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername fetches a user by username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// GetUserByResetToken fetches the user holding a reset token.
func (q *Queries) GetUserByResetToken(ctx context.Context, token string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = ?`, token)
	return scanUser(row)
}

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// RecordFailedLoginParams updates lockout state after a failed login.
type RecordFailedLoginParams struct {
	LoginAttempts int64
	LockedUntil   sql.NullTime
	UpdatedAt     time.Time
	ID            int64
}

// RecordFailedLogin stores the incremented attempt counter and any lockout.
func (q *Queries) RecordFailedLogin(ctx context.Context, arg RecordFailedLoginParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET login_attempts = ?, locked_until = ?, updated_at = ? WHERE id = ?`,
		arg.LoginAttempts, arg.LockedUntil, arg.UpdatedAt, arg.ID)
	return err
}

// RecordSuccessfulLogin clears lockout state and stamps the last login.
func (q *Queries) RecordSuccessfulLogin(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET login_attempts = 0, locked_until = NULL, last_login_at = ?, updated_at = ?
		WHERE id = ?`,
		sql.NullTime{Time: now, Valid: true}, now, id)
	return err
}

// UpdateUserPasswordParams holds the fields for a password change.
type UpdateUserPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           int64
}

// UpdateUserPassword replaces the stored credential and clears any reset token.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expiry = NULL,
			login_attempts = 0, locked_until = NULL, updated_at = ?
		WHERE id = ?`,
		arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

// SetResetTokenParams holds the fields for issuing a reset token.
type SetResetTokenParams struct {
	ResetToken       string
	ResetTokenExpiry time.Time
	UpdatedAt        time.Time
	ID               int64
}

// SetResetToken stores a password reset token and its expiry on the user.
func (q *Queries) SetResetToken(ctx context.Context, arg SetResetTokenParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET reset_token = ?, reset_token_expiry = ?, updated_at = ? WHERE id = ?`,
		arg.ResetToken, sql.NullTime{Time: arg.ResetTokenExpiry, Valid: true}, arg.UpdatedAt, arg.ID)
	return err
}

// ClearExpiredResetTokens removes reset tokens whose expiry has passed.
// Returns the number of users affected.
func (q *Queries) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users SET reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token IS NOT NULL AND reset_token_expiry < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
