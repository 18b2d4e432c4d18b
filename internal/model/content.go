// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BlogPost represents a blog article. Language variants are stored as
// separate rows sharing nothing beyond convention.
type BlogPost struct {
	ID         int64     `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage string    `json:"cover_image,omitempty"`
	Published  bool      `json:"published"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Template represents a shop item: a site template offered for sale.
type Template struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	DemoURL     string    `json:"demo_url,omitempty"`
	Price       string    `json:"price,omitempty"`
	Featured    bool      `json:"featured"`
	Published   bool      `json:"published"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CaseStudy represents a portfolio entry.
type CaseStudy struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Client    string    `json:"client,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Image     string    `json:"image,omitempty"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Training represents a catalog entry for a training course.
type Training struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Level       string    `json:"level,omitempty"`
	Price       string    `json:"price,omitempty"`
	Published   bool      `json:"published"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
