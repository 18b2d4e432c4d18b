// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const serviceColumns = `id, title, description, icon, position, language, created_at, updated_at`

func scanService(s interface{ Scan(...any) error }) (model.Service, error) {
	var sv model.Service
	err := s.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.Icon, &sv.Position,
		&sv.Language, &sv.CreatedAt, &sv.UpdatedAt)
	return sv, err
}

// ListServices returns service cards ordered by position.
func (q *Queries) ListServices(ctx context.Context, language string) ([]model.Service, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE (? = '' OR language = ?)
		ORDER BY position ASC, id ASC`, language, language)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var services []model.Service
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, sv)
	}
	return services, rows.Err()
}

// GetServiceByID fetches a service card by primary key.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	return scanService(row)
}

// CreateServiceParams holds the fields for creating a service card.
type CreateServiceParams struct {
	Title       string
	Description string
	Icon        string
	Position    int64
	Language    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateService inserts a service card and returns the stored row.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO services (title, description, icon, position, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+serviceColumns,
		arg.Title, arg.Description, arg.Icon, arg.Position, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanService(row)
}

// UpdateServiceParams holds the fields for updating a service card.
type UpdateServiceParams struct {
	Title       string
	Description string
	Icon        string
	Position    int64
	Language    string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateService rewrites a service card and returns the stored row.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE services SET title = ?, description = ?, icon = ?, position = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+serviceColumns,
		arg.Title, arg.Description, arg.Icon, arg.Position, arg.Language, arg.UpdatedAt, arg.ID)
	return scanService(row)
}

// DeleteService removes a service card. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
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

const whyUsColumns = `id, title, description, icon, position, language, created_at, updated_at`

func scanWhyUsItem(s interface{ Scan(...any) error }) (model.WhyUsItem, error) {
	var w model.WhyUsItem
	err := s.Scan(&w.ID, &w.Title, &w.Description, &w.Icon, &w.Position,
		&w.Language, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// ListWhyUsItems returns "why us" bullets ordered by position.
func (q *Queries) ListWhyUsItems(ctx context.Context, language string) ([]model.WhyUsItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+whyUsColumns+` FROM why_us_items
		WHERE (? = '' OR language = ?)
		ORDER BY position ASC, id ASC`, language, language)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.WhyUsItem
	for rows.Next() {
		w, err := scanWhyUsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// GetWhyUsItemByID fetches a "why us" bullet by primary key.
func (q *Queries) GetWhyUsItemByID(ctx context.Context, id int64) (model.WhyUsItem, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+whyUsColumns+` FROM why_us_items WHERE id = ?`, id)
	return scanWhyUsItem(row)
}

// CreateWhyUsItemParams holds the fields for creating a "why us" bullet.
type CreateWhyUsItemParams struct {
	Title       string
	Description string
	Icon        string
	Position    int64
	Language    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateWhyUsItem inserts a "why us" bullet and returns the stored row.
func (q *Queries) CreateWhyUsItem(ctx context.Context, arg CreateWhyUsItemParams) (model.WhyUsItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO why_us_items (title, description, icon, position, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+whyUsColumns,
		arg.Title, arg.Description, arg.Icon, arg.Position, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanWhyUsItem(row)
}

// UpdateWhyUsItemParams holds the fields for updating a "why us" bullet.
type UpdateWhyUsItemParams struct {
	Title       string
	Description string
	Icon        string
	Position    int64
	Language    string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateWhyUsItem rewrites a "why us" bullet and returns the stored row.
func (q *Queries) UpdateWhyUsItem(ctx context.Context, arg UpdateWhyUsItemParams) (model.WhyUsItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE why_us_items SET title = ?, description = ?, icon = ?, position = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+whyUsColumns,
		arg.Title, arg.Description, arg.Icon, arg.Position, arg.Language, arg.UpdatedAt, arg.ID)
	return scanWhyUsItem(row)
}

// DeleteWhyUsItem removes a "why us" bullet. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteWhyUsItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM why_us_items WHERE id = ?`, id)
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
