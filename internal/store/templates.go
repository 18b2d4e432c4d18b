// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const templateColumns = `id, slug, title, description, image, demo_url, price,
	featured, published, language, created_at, updated_at`

func scanTemplate(s interface{ Scan(...any) error }) (model.Template, error) {
	var t model.Template
	err := s.Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.Image, &t.DemoURL,
		&t.Price, &t.Featured, &t.Published, &t.Language, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTemplatesParams filters the template listing.
type ListTemplatesParams struct {
	Language      string
	PublishedOnly bool
}

// ListTemplates returns shop templates, featured first, then newest.
func (q *Queries) ListTemplates(ctx context.Context, arg ListTemplatesParams) ([]model.Template, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+templateColumns+` FROM templates
		WHERE (? = '' OR language = ?) AND (? = 0 OR published = 1)
		ORDER BY featured DESC, created_at DESC, id DESC`,
		arg.Language, arg.Language, boolToInt(arg.PublishedOnly))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []model.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplateByID fetches a shop template by primary key.
func (q *Queries) GetTemplateByID(ctx context.Context, id int64) (model.Template, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	return scanTemplate(row)
}

// GetTemplateBySlug fetches a shop template by slug and language.
func (q *Queries) GetTemplateBySlug(ctx context.Context, slug, language string) (model.Template, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+` FROM templates WHERE slug = ? AND language = ?`, slug, language)
	return scanTemplate(row)
}

// CountTemplateSlug reports how many rows besides excludeID use the slug in a language.
func (q *Queries) CountTemplateSlug(ctx context.Context, slug, language string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM templates WHERE slug = ? AND language = ? AND id != ?`,
		slug, language, excludeID).Scan(&count)
	return count, err
}

// CreateTemplateParams holds the fields for creating a shop template.
type CreateTemplateParams struct {
	Slug        string
	Title       string
	Description string
	Image       string
	DemoURL     string
	Price       string
	Featured    bool
	Published   bool
	Language    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTemplate inserts a shop template and returns the stored row.
func (q *Queries) CreateTemplate(ctx context.Context, arg CreateTemplateParams) (model.Template, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO templates (slug, title, description, image, demo_url, price, featured, published, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+templateColumns,
		arg.Slug, arg.Title, arg.Description, arg.Image, arg.DemoURL, arg.Price,
		arg.Featured, arg.Published, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanTemplate(row)
}

// UpdateTemplateParams holds the fields for updating a shop template.
type UpdateTemplateParams struct {
	Slug        string
	Title       string
	Description string
	Image       string
	DemoURL     string
	Price       string
	Featured    bool
	Published   bool
	Language    string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateTemplate rewrites a shop template and returns the stored row.
func (q *Queries) UpdateTemplate(ctx context.Context, arg UpdateTemplateParams) (model.Template, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE templates SET slug = ?, title = ?, description = ?, image = ?, demo_url = ?,
			price = ?, featured = ?, published = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+templateColumns,
		arg.Slug, arg.Title, arg.Description, arg.Image, arg.DemoURL, arg.Price,
		arg.Featured, arg.Published, arg.Language, arg.UpdatedAt, arg.ID)
	return scanTemplate(row)
}

// DeleteTemplate removes a shop template. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
