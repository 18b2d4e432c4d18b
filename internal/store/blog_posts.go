// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine/internal/model"
)

const blogPostColumns = `id, slug, title, excerpt, content, cover_image,
	published, language, created_at, updated_at`

func scanBlogPost(s interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	err := s.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Published, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListBlogPostsParams filters the blog post listing.
type ListBlogPostsParams struct {
	Language      string // empty matches all languages
	PublishedOnly bool
}

// ListBlogPosts returns blog posts, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+blogPostColumns+` FROM blog_posts
		WHERE (? = '' OR language = ?) AND (? = 0 OR published = 1)
		ORDER BY created_at DESC, id DESC`,
		arg.Language, arg.Language, boolToInt(arg.PublishedOnly))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetBlogPostByID fetches a blog post by primary key.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// GetBlogPostBySlug fetches a blog post by slug and language.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug, language string) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = ? AND language = ?`, slug, language)
	return scanBlogPost(row)
}

// CountBlogPostSlug reports how many rows besides excludeID use the slug in a language.
func (q *Queries) CountBlogPostSlug(ctx context.Context, slug, language string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND language = ? AND id != ?`,
		slug, language, excludeID).Scan(&count)
	return count, err
}

// CreateBlogPostParams holds the fields for creating a blog post.
type CreateBlogPostParams struct {
	Slug       string
	Title      string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
	Language   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateBlogPost inserts a blog post and returns the stored row.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (slug, title, excerpt, content, cover_image, published, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+blogPostColumns,
		arg.Slug, arg.Title, arg.Excerpt, arg.Content, arg.CoverImage,
		arg.Published, arg.Language, arg.CreatedAt, arg.UpdatedAt)
	return scanBlogPost(row)
}

// UpdateBlogPostParams holds the fields for updating a blog post.
type UpdateBlogPostParams struct {
	Slug       string
	Title      string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
	Language   string
	UpdatedAt  time.Time
	ID         int64
}

// UpdateBlogPost rewrites a blog post and returns the stored row.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE blog_posts SET slug = ?, title = ?, excerpt = ?, content = ?, cover_image = ?,
			published = ?, language = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+blogPostColumns,
		arg.Slug, arg.Title, arg.Excerpt, arg.Content, arg.CoverImage,
		arg.Published, arg.Language, arg.UpdatedAt, arg.ID)
	return scanBlogPost(row)
}

// DeleteBlogPost removes a blog post. Returns sql.ErrNoRows if it did not exist.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
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

// boolToInt converts a bool to the 0/1 SQLite convention for filter params.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
