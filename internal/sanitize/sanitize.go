// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sanitize strips unsafe HTML from incoming request fields.
// Plain fields (titles, names, subjects) lose all markup; rich fields
// (post content, descriptions) keep a small formatting whitelist.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy strips every tag. Used for titles, names, slugs,
	// subjects and other plain-text fields.
	strictPolicy = bluemonday.StrictPolicy()

	// richPolicy allows basic formatting in content bodies.
	richPolicy = newRichPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "b", "i", "u", "s",
		"h2", "h3", "h4", "blockquote", "pre", "code",
		"ul", "ol", "li")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}

// richFields lists request fields whose values may carry formatting HTML.
var richFields = map[string]bool{
	"content":     true,
	"description": true,
	"excerpt":     true,
	"summary":     true,
	"subtitle":    true,
	"message":     true,
}

// Plain strips all HTML from a string.
func Plain(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// Rich sanitizes a string keeping the formatting whitelist.
func Rich(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// Field sanitizes a named request field: rich fields keep formatting,
// everything else is reduced to plain text.
func Field(name, value string) string {
	if richFields[name] {
		return Rich(value)
	}
	return Plain(value)
}

// Map sanitizes every string value in a decoded JSON object, recursing
// into nested objects and arrays. Non-string values pass through.
func Map(m map[string]any) map[string]any {
	for key, value := range m {
		switch v := value.(type) {
		case string:
			m[key] = Field(key, v)
		case map[string]any:
			m[key] = Map(v)
		case []any:
			for i, item := range v {
				switch it := item.(type) {
				case string:
					v[i] = Field(key, it)
				case map[string]any:
					v[i] = Map(it)
				}
			}
		}
	}
	return m
}
