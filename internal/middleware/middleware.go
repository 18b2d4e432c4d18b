// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// rate limiting, CSRF protection and security headers.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// apiError is the error envelope shared by all middleware-written errors.
// It matches the envelope the handlers produce.
type apiError struct {
	Success bool `json:"success"`
	Error   struct {
		Message    string            `json:"message"`
		Errors     map[string]string `json:"errors,omitempty"`
		RetryAfter int               `json:"retryAfter,omitempty"`
	} `json:"error"`
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeErrorRetry(w, statusCode, message, 0)
}

func writeErrorRetry(w http.ResponseWriter, statusCode int, message string, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	e := apiError{}
	e.Error.Message = message
	e.Error.RetryAfter = retryAfter
	_ = json.NewEncoder(w).Encode(e)
}

// ClientIP reports the address a request is rate limited under.
func ClientIP(r *http.Request) string {
	return getClientIP(r)
}

// getClientIP extracts the client address for rate limiting and logging.
// Reverse proxy headers win over the socket address.
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For can contain multiple IPs; take the first one
		first, _, _ := strings.Cut(ip, ",")
		return strings.TrimSpace(first)
	}
	// Strip the port from RemoteAddr so one client maps to one bucket
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
