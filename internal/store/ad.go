// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

// AdStore handles all advertisement-related database operations.
type AdStore struct {
	db *sql.DB
}

// NewAdStore creates a new AdStore with the given database connection.
func NewAdStore(db *sql.DB) *AdStore {
	return &AdStore{db: db}
}

const adColumns = `id, title, image_url, redirect_url, width, height, placement,
	status, start_date, end_date, impressions, clicks, priority, owner_id,
	created_at, updated_at`

func scanAdRows(rows *sql.Rows) ([]models.Ad, error) {
	var ads []models.Ad
	for rows.Next() {
		var a models.Ad
		if err := rows.Scan(
			&a.ID, &a.Title, &a.ImageURL, &a.RedirectURL, &a.Width, &a.Height,
			&a.Placement, &a.Status, &a.StartDate, &a.EndDate,
			&a.Impressions, &a.Clicks, &a.Priority, &a.OwnerID,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		ads = append(ads, a)
	}
	return ads, rows.Err()
}

// List returns all ads ordered by priority then recency.
func (s *AdStore) List() ([]models.Ad, error) {
	rows, err := s.db.Query(
		`SELECT ` + adColumns + ` FROM ads ORDER BY priority DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	defer rows.Close()
	return scanAdRows(rows)
}

// ListActiveByPlacement returns ads currently servable for a placement:
// active status and inside the optional start/end window.
func (s *AdStore) ListActiveByPlacement(placement models.AdPlacement) ([]models.Ad, error) {
	rows, err := s.db.Query(`
		SELECT `+adColumns+` FROM ads
		WHERE placement = $1 AND status = 'active'
		  AND (start_date IS NULL OR start_date <= NOW())
		  AND (end_date IS NULL OR end_date >= NOW())
		ORDER BY priority DESC, created_at DESC
	`, placement)
	if err != nil {
		return nil, fmt.Errorf("list active ads: %w", err)
	}
	defer rows.Close()
	return scanAdRows(rows)
}

// FindByID retrieves an ad by its UUID. Returns nil if not found.
func (s *AdStore) FindByID(id uuid.UUID) (*models.Ad, error) {
	a := &models.Ad{}
	err := s.db.QueryRow(
		`SELECT `+adColumns+` FROM ads WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.Title, &a.ImageURL, &a.RedirectURL, &a.Width, &a.Height,
		&a.Placement, &a.Status, &a.StartDate, &a.EndDate,
		&a.Impressions, &a.Clicks, &a.Priority, &a.OwnerID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ad by id: %w", err)
	}
	return a, nil
}

// Create inserts a new ad and returns it with the generated ID.
func (s *AdStore) Create(a *models.Ad) (*models.Ad, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO ads (title, image_url, redirect_url, width, height,
			placement, status, start_date, end_date, priority, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, a.Title, a.ImageURL, a.RedirectURL, a.Width, a.Height,
		a.Placement, a.Status, a.StartDate, a.EndDate, a.Priority, a.OwnerID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing ad. Counters are untouched; use the
// increment methods for those.
func (s *AdStore) Update(a *models.Ad) error {
	_, err := s.db.Exec(`
		UPDATE ads SET
			title = $1, image_url = $2, redirect_url = $3, width = $4,
			height = $5, placement = $6, status = $7, start_date = $8,
			end_date = $9, priority = $10, updated_at = NOW()
		WHERE id = $11
	`, a.Title, a.ImageURL, a.RedirectURL, a.Width, a.Height,
		a.Placement, a.Status, a.StartDate, a.EndDate, a.Priority, a.ID)
	if err != nil {
		return fmt.Errorf("update ad: %w", err)
	}
	return nil
}

// Delete removes an ad.
func (s *AdStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	return nil
}

// IncrementImpressions bumps the impression counters for a set of ads,
// called once per serve.
func (s *AdStore) IncrementImpressions(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.db.Exec(
			`UPDATE ads SET impressions = impressions + 1 WHERE id = $1`, id); err != nil {
			return fmt.Errorf("increment impressions: %w", err)
		}
	}
	return nil
}

// IncrementClicks bumps the click counter for one ad.
func (s *AdStore) IncrementClicks(id uuid.UUID) error {
	_, err := s.db.Exec(
		`UPDATE ads SET clicks = clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment clicks: %w", err)
	}
	return nil
}
