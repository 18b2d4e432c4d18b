// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const caseStudyColumns = `id, slug, title, summary, content, client, industry,
	image, featured, published, language, created_at, updated_at`

func scanCaseStudy(s interface{ Scan(...any) error }) (model.CaseStudy, error) {
	var c model.CaseStudy
	err := s.Scan(&c.ID, &c.Slug, &c.Title, &c.Summary, &c.Content, &c.Client,
		&c.Industry, &c.Image, &c.Featured, &c.Published, &c.Language, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCaseStudiesParams filters the case study listing.
type ListCaseStudiesParams struct {
	Language      string
	PublishedOnly bool
}

// ListCaseStudies returns portfolio entries, featured first, then newest.
func (q *Queries) ListCaseStudies(ctx context.Context, arg ListCaseStudiesParams) ([]model.CaseStudy, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+caseStudyColumns+` FROM case_studies
		WHERE (? = '' OR language = ?) AND (? = 0 OR published = 1)
		ORDER BY featured DESC, created_at DESC, id DESC`,
		arg.Language, arg.Language, boolToInt(arg.PublishedOnly))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var studies []model.CaseStudy
	for rows.Next() {
		c, err := scanCaseStudy(rows)
		if err != nil {
			return nil, err
		}
		studies = append(studies, c)
	}
	return studies, rows.Err()
}

// GetCaseStudyByID fetches a case study by primary key.
func (q *Queries) GetCaseStudyByID(ctx context.Context, id int64) (model.CaseStudy, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+caseStudyColumns+` FROM case_studies WHERE id = ?`, id)
	return scanCaseStudy(row)
}

// GetCaseStudyBySlug fetches a case study by slug and language.
func (q *Queries) GetCaseStudyBySlug(ctx context.Context, slug, language string) (model.CaseStudy, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+caseStudyColumns+` FROM case_studies WHERE slug = ? AND language = ?`, slug, language)
	return scanCaseStudy(row)
}

// CountCaseStudySlug reports how many rows besides excludeID use the slug in a language.
func (q *Queries) CountCaseStudySlug(ctx context.Context, slug, language string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM case_studies WHERE slug = ? AND language = ? AND id != ?`,
		slug, language, excludeID).Scan(&count)
	return count, err
}

// CreateCaseStudyParams holds the fields for creating a case study.
type CreateCaseStudyParams struct {
	Slug      string
	Title     string
	Summary   string
	Content   string
	Client    string
	Industry  string
	Image     string
	Featured  bool
	Published bool
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCaseStudy inserts a case study and returns the stored row.
func (q *Queries) CreateCaseStudy(ctx context.Context, arg CreateCaseStudyParams) (model.CaseStudy, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO case_studies (slug, title, summary, content, client, industry, image, featured, published, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+caseStudyColumns,
		arg.Slug, arg.Title, arg.Summary, arg.Content, arg.Client, arg.Industry,
		arg.Image, arg.Featured, arg.Published, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanCaseStudy(row)
}

// UpdateCaseStudyParams holds the fields for updating a case study.
type UpdateCaseStudyParams struct {
	Slug      string
	Title     string
	Summary   string
	Content   string
	Client    string
	Industry  string
	Image     string
	Featured  bool
	Published bool
	Language  string
	UpdatedAt time.Time
	ID        int64
}

// UpdateCaseStudy rewrites a case study and returns the stored row.
func (q *Queries) UpdateCaseStudy(ctx context.Context, arg UpdateCaseStudyParams) (model.CaseStudy, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE case_studies SET slug = ?, title = ?, summary = ?, content = ?, client = ?,
			industry = ?, image = ?, featured = ?, published = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+caseStudyColumns,
		arg.Slug, arg.Title, arg.Summary, arg.Content, arg.Client, arg.Industry,
		arg.Image, arg.Featured, arg.Published, arg.Language, arg.UpdatedAt, arg.ID)
	return scanCaseStudy(row)
}

// DeleteCaseStudy removes a case study. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteCaseStudy(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM case_studies WHERE id = ?`, id)
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
