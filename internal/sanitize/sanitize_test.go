// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sanitize

import (
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no markup", "Hello World", "Hello World"},
		{"tags stripped", "<b>Hello</b> <script>alert(1)</script>World", "Hello World"},
		{"whitespace trimmed", "  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.input); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRich(t *testing.T) {
	got := Rich(`<p>Hello <strong>bold</strong></p><script>alert(1)</script>`)
	if !strings.Contains(got, "<p>") || !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("formatting should survive, got %q", got)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script should be stripped, got %q", got)
	}

	got = Rich(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL should be stripped, got %q", got)
	}

	got = Rich(`<img src=x onerror=alert(1)>text`)
	if strings.Contains(got, "img") || strings.Contains(got, "onerror") {
		t.Errorf("img should be stripped, got %q", got)
	}
}

func TestField(t *testing.T) {
	if got := Field("title", "<em>T</em>"); got != "T" {
		t.Errorf("title should be plain, got %q", got)
	}
	if got := Field("content", "<em>T</em>"); got != "<em>T</em>" {
		t.Errorf("content should keep formatting, got %q", got)
	}
}

func TestMap(t *testing.T) {
	m := map[string]any{
		"title":   "<b>Hi</b>",
		"content": "<p>Body</p><script>x</script>",
		"count":   float64(3),
		"nested": map[string]any{
			"title": "<i>Inner</i>",
		},
		"tags": []any{"<u>one</u>", "two"},
	}

	got := Map(m)

	if got["title"] != "Hi" {
		t.Errorf("title = %q, want %q", got["title"], "Hi")
	}
	if got["content"] != "<p>Body</p>" {
		t.Errorf("content = %q, want %q", got["content"], "<p>Body</p>")
	}
	if got["count"] != float64(3) {
		t.Errorf("count changed: %v", got["count"])
	}
	nested := got["nested"].(map[string]any)
	if nested["title"] != "Inner" {
		t.Errorf("nested title = %q, want %q", nested["title"], "Inner")
	}
	tags := got["tags"].([]any)
	if tags[0] != "one" {
		t.Errorf("tags[0] = %q, want %q", tags[0], "one")
	}
}
