// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"strings"
	"testing"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

func TestStructValid(t *testing.T) {
	form := contactForm{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "Hello, I would like a website.",
	}
	if fields := Struct(form); fields != nil {
		t.Errorf("expected nil, got %v", fields)
	}
}

func TestStructInvalid(t *testing.T) {
	form := contactForm{
		Name:    "",
		Email:   "not-an-email",
		Message: "short",
	}
	fields := Struct(form)
	if fields == nil {
		t.Fatal("expected validation errors")
	}

	// Keys use the json tag names.
	if fields["name"] != "is required" {
		t.Errorf("name = %q, want %q", fields["name"], "is required")
	}
	if fields["email"] != "must be a valid email address" {
		t.Errorf("email = %q", fields["email"])
	}
	if !strings.Contains(fields["message"], "at least 10") {
		t.Errorf("message = %q", fields["message"])
	}
}
