// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Service represents a homepage service card. Icon holds raw SVG markup
// and is sanitized on the way in, not on the way out.
type Service struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Position    int64     `json:"position"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WhyUsItem represents a "why choose us" bullet on the homepage.
type WhyUsItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Position    int64     `json:"position"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectionSetting controls visibility and ordering of a site section.
type SectionSetting struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
	ShowInMenu  bool   `json:"show_in_menu"`
	Position    int64  `json:"position"`
}

// HeroSetting holds the hero block copy for one page.
type HeroSetting struct {
	ID                  int64  `json:"id"`
	PageKey             string `json:"page_key"`
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle,omitempty"`
	ButtonText          string `json:"button_text,omitempty"`
	ButtonURL           string `json:"button_url,omitempty"`
	SecondaryButtonText string `json:"secondary_button_text,omitempty"`
	SecondaryButtonURL  string `json:"secondary_button_url,omitempty"`
	Image               string `json:"image,omitempty"`
	Enabled             bool   `json:"enabled"`
}
