// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/vitrine/internal/model"
)

const sectionSettingColumns = `id, key, display_name, enabled, show_in_menu, position`

func scanSectionSetting(s interface{ Scan(...any) error }) (model.SectionSetting, error) {
	var st model.SectionSetting
	err := s.Scan(&st.ID, &st.Key, &st.DisplayName, &st.Enabled, &st.ShowInMenu, &st.Position)
	return st, err
}

// ListSectionSettings returns all section settings ordered by position.
func (q *Queries) ListSectionSettings(ctx context.Context) ([]model.SectionSetting, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+sectionSettingColumns+` FROM section_settings ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var settings []model.SectionSetting
	for rows.Next() {
		st, err := scanSectionSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// GetSectionSetting fetches one section setting by its key.
func (q *Queries) GetSectionSetting(ctx context.Context, key string) (model.SectionSetting, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+sectionSettingColumns+` FROM section_settings WHERE key = ?`, key)
	return scanSectionSetting(row)
}

// UpsertSectionSettingParams holds the fields for writing a section setting.
type UpsertSectionSettingParams struct {
	Key         string
	DisplayName string
	Enabled     bool
	ShowInMenu  bool
	Position    int64
}

// UpsertSectionSetting inserts or rewrites a section setting keyed on Key.
func (q *Queries) UpsertSectionSetting(ctx context.Context, arg UpsertSectionSettingParams) (model.SectionSetting, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO section_settings (key, display_name, enabled, show_in_menu, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			display_name = excluded.display_name,
			enabled = excluded.enabled,
			show_in_menu = excluded.show_in_menu,
			position = excluded.position
		RETURNING `+sectionSettingColumns,
		arg.Key, arg.DisplayName, arg.Enabled, arg.ShowInMenu, arg.Position)
	return scanSectionSetting(row)
}

const heroSettingColumns = `id, page_key, title, subtitle, button_text, button_url,
	secondary_button_text, secondary_button_url, image, enabled`

func scanHeroSetting(s interface{ Scan(...any) error }) (model.HeroSetting, error) {
	var h model.HeroSetting
	err := s.Scan(&h.ID, &h.PageKey, &h.Title, &h.Subtitle, &h.ButtonText, &h.ButtonURL,
		&h.SecondaryButtonText, &h.SecondaryButtonURL, &h.Image, &h.Enabled)
	return h, err
}

// ListHeroSettings returns hero blocks for all pages.
func (q *Queries) ListHeroSettings(ctx context.Context) ([]model.HeroSetting, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+heroSettingColumns+` FROM hero_settings ORDER BY page_key ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var heroes []model.HeroSetting
	for rows.Next() {
		h, err := scanHeroSetting(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

// GetHeroSetting fetches the hero block for one page.
func (q *Queries) GetHeroSetting(ctx context.Context, pageKey string) (model.HeroSetting, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+heroSettingColumns+` FROM hero_settings WHERE page_key = ?`, pageKey)
	return scanHeroSetting(row)
}

// UpsertHeroSettingParams holds the fields for writing a hero block.
type UpsertHeroSettingParams struct {
	PageKey             string
	Title               string
	Subtitle            string
	ButtonText          string
	ButtonURL           string
	SecondaryButtonText string
	SecondaryButtonURL  string
	Image               string
	Enabled             bool
}

// UpsertHeroSetting inserts or rewrites a hero block keyed on PageKey.
func (q *Queries) UpsertHeroSetting(ctx context.Context, arg UpsertHeroSettingParams) (model.HeroSetting, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO hero_settings (page_key, title, subtitle, button_text, button_url,
			secondary_button_text, secondary_button_url, image, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(page_key) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			button_text = excluded.button_text,
			button_url = excluded.button_url,
			secondary_button_text = excluded.secondary_button_text,
			secondary_button_url = excluded.secondary_button_url,
			image = excluded.image,
			enabled = excluded.enabled
		RETURNING `+heroSettingColumns,
		arg.PageKey, arg.Title, arg.Subtitle, arg.ButtonText, arg.ButtonURL,
		arg.SecondaryButtonText, arg.SecondaryButtonURL, arg.Image, arg.Enabled)
	return scanHeroSetting(row)
}
