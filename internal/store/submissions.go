// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

// CreateContactSubmissionParams holds an incoming contact message.
type CreateContactSubmissionParams struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateContactSubmission appends a contact form message.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, name, email, subject, message, created_at`,
		arg.Name, arg.Email, arg.Subject, arg.Message, arg.CreatedAt)
	var c model.ContactSubmission
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt)
	return c, err
}

// ListContactSubmissions returns contact messages, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, c)
	}
	return subs, rows.Err()
}

// CreateNewsletterSubscriber records a newsletter signup. Idempotent on
// email: subscribing twice returns the existing row.
func (q *Queries) CreateNewsletterSubscriber(ctx context.Context, email string, now time.Time) (model.NewsletterSubscriber, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscribers (email, created_at)
		VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET email = excluded.email
		RETURNING id, email, created_at`,
		email, now)
	var s model.NewsletterSubscriber
	err := row.Scan(&s.ID, &s.Email, &s.CreatedAt)
	return s, err
}

// ListNewsletterSubscribers returns signups, newest first.
func (q *Queries) ListNewsletterSubscribers(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, email, created_at
		FROM newsletter_subscribers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []model.NewsletterSubscriber
	for rows.Next() {
		var s model.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
