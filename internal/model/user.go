// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including User, BlogPost, Template, and settings structures.
package model

import (
	"database/sql"
	"time"
)

// MaxLoginAttempts is the number of failed logins before an account locks.
const MaxLoginAttempts = 5

// LockoutDuration is how long an account stays locked after too many failures.
const LockoutDuration = 15 * time.Minute

// User represents an admin user.
type User struct {
	ID               int64          `json:"id"`
	Username         string         `json:"username"`
	PasswordHash     string         `json:"-"` // Never expose in JSON
	LoginAttempts    int64          `json:"-"`
	LockedUntil      sql.NullTime   `json:"-"`
	ResetToken       sql.NullString `json:"-"`
	ResetTokenExpiry sql.NullTime   `json:"-"`
	LastLoginAt      sql.NullTime   `json:"last_login_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsLocked returns true if the account lockout is still in effect.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil.Valid && now.Before(u.LockedUntil.Time)
}

// LockRemaining returns the time left on the account lockout, or zero.
func (u *User) LockRemaining(now time.Time) time.Duration {
	if !u.IsLocked(now) {
		return 0
	}
	return u.LockedUntil.Time.Sub(now)
}
