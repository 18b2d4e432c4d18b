// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const trainingColumns = `id, slug, title, description, image, duration, level,
	price, published, language, created_at, updated_at`

func scanTraining(s interface{ Scan(...any) error }) (model.Training, error) {
	var t model.Training
	err := s.Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.Image, &t.Duration,
		&t.Level, &t.Price, &t.Published, &t.Language, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTrainingsParams filters the training listing.
type ListTrainingsParams struct {
	Language      string
	PublishedOnly bool
}

// ListTrainings returns training courses, newest first.
func (q *Queries) ListTrainings(ctx context.Context, arg ListTrainingsParams) ([]model.Training, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+trainingColumns+` FROM trainings
		WHERE (? = '' OR language = ?) AND (? = 0 OR published = 1)
		ORDER BY created_at DESC, id DESC`,
		arg.Language, arg.Language, boolToInt(arg.PublishedOnly))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var trainings []model.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

// GetTrainingByID fetches a training course by primary key.
func (q *Queries) GetTrainingByID(ctx context.Context, id int64) (model.Training, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = ?`, id)
	return scanTraining(row)
}

// GetTrainingBySlug fetches a training course by slug and language.
func (q *Queries) GetTrainingBySlug(ctx context.Context, slug, language string) (model.Training, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+trainingColumns+` FROM trainings WHERE slug = ? AND language = ?`, slug, language)
	return scanTraining(row)
}

// CountTrainingSlug reports how many rows besides excludeID use the slug in a language.
func (q *Queries) CountTrainingSlug(ctx context.Context, slug, language string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM trainings WHERE slug = ? AND language = ? AND id != ?`,
		slug, language, excludeID).Scan(&count)
	return count, err
}

// CreateTrainingParams holds the fields for creating a training course.
type CreateTrainingParams struct {
	Slug        string
	Title       string
	Description string
	Image       string
	Duration    string
	Level       string
	Price       string
	Published   bool
	Language    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTraining inserts a training course and returns the stored row.
func (q *Queries) CreateTraining(ctx context.Context, arg CreateTrainingParams) (model.Training, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO trainings (slug, title, description, image, duration, level, price, published, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+trainingColumns,
		arg.Slug, arg.Title, arg.Description, arg.Image, arg.Duration, arg.Level,
		arg.Price, arg.Published, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanTraining(row)
}

// UpdateTrainingParams holds the fields for updating a training course.
type UpdateTrainingParams struct {
	Slug        string
	Title       string
	Description string
	Image       string
	Duration    string
	Level       string
	Price       string
	Published   bool
	Language    string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateTraining rewrites a training course and returns the stored row.
func (q *Queries) UpdateTraining(ctx context.Context, arg UpdateTrainingParams) (model.Training, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE trainings SET slug = ?, title = ?, description = ?, image = ?, duration = ?,
			level = ?, price = ?, published = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+trainingColumns,
		arg.Slug, arg.Title, arg.Description, arg.Image, arg.Duration, arg.Level,
		arg.Price, arg.Published, arg.Language, arg.UpdatedAt, arg.ID)
	return scanTraining(row)
}

// DeleteTraining removes a training course. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteTraining(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = ?`, id)
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
