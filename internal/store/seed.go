// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// defaultSections lists the site sections known to the front end. Seeded
// once; the admin rearranges them afterwards through the settings API.
var defaultSections = []UpsertSectionSettingParams{
	{Key: "hero", DisplayName: "Hero", Enabled: true, ShowInMenu: false, Position: 0},
	{Key: "services", DisplayName: "Services", Enabled: true, ShowInMenu: true, Position: 1},
	{Key: "why-us", DisplayName: "Why Us", Enabled: true, ShowInMenu: true, Position: 2},
	{Key: "cases", DisplayName: "Case Studies", Enabled: true, ShowInMenu: true, Position: 3},
	{Key: "shop", DisplayName: "Shop", Enabled: true, ShowInMenu: true, Position: 4},
	{Key: "training", DisplayName: "Training", Enabled: true, ShowInMenu: true, Position: 5},
	{Key: "blog", DisplayName: "Blog", Enabled: true, ShowInMenu: true, Position: 6},
	{Key: "contact", DisplayName: "Contact", Enabled: true, ShowInMenu: true, Position: 7},
}

var defaultHeroes = []UpsertHeroSettingParams{
	{PageKey: "home", Title: "We build websites that work", Enabled: true},
	{PageKey: "shop", Title: "Site templates", Enabled: true},
	{PageKey: "cases", Title: "Our work", Enabled: true},
	{PageKey: "training", Title: "Training", Enabled: true},
	{PageKey: "blog", Title: "Blog", Enabled: true},
}

// Seed creates the default section and hero settings. Existing rows are
// left untouched so admin edits survive restarts.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	seeded := 0
	for _, section := range defaultSections {
		_, err := queries.GetSectionSetting(ctx, section.Key)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking section %q: %w", section.Key, err)
		}
		if _, err := queries.UpsertSectionSetting(ctx, section); err != nil {
			return fmt.Errorf("seeding section %q: %w", section.Key, err)
		}
		seeded++
	}

	for _, hero := range defaultHeroes {
		_, err := queries.GetHeroSetting(ctx, hero.PageKey)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking hero %q: %w", hero.PageKey, err)
		}
		if _, err := queries.UpsertHeroSetting(ctx, hero); err != nil {
			return fmt.Errorf("seeding hero %q: %w", hero.PageKey, err)
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded default settings", "rows", seeded)
	}
	return nil
}
