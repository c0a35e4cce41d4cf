// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a starter taxonomy. The admin is prompted to set up 2FA
// on first login (totp_enabled = false). No-op if users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@chronicle.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Starter sections so the public API has something to serve in dev.
	seedTaxonomy := map[string][]string{
		"News":     {"National", "World"},
		"Sports":   {"Cricket", "Hockey"},
		"Business": {"Markets"},
	}
	for name, subs := range seedTaxonomy {
		var categoryID string
		err := db.QueryRow(`
			INSERT INTO categories (name, slug) VALUES ($1, lower($1))
			RETURNING id
		`, name).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		for _, sub := range subs {
			if _, err := db.Exec(`
				INSERT INTO subcategories (name, slug, category_id)
				VALUES ($1, lower($1), $2)
			`, sub, categoryID); err != nil {
				return fmt.Errorf("seed subcategory %q: %w", sub, err)
			}
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@chronicle.local",
		"password", "admin",
	)

	return nil
}
