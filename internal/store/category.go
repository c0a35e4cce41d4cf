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

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, status, created_at, updated_at`

// List returns all categories ordered by name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(
		`SELECT ` + categoryColumns + ` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListWithSubcategories returns all categories with their subcategories
// populated, both ordered by name. Used by the /api/categories/full endpoint
// that drives site navigation.
func (s *CategoryStore) ListWithSubcategories() ([]models.Category, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}

	subStore := NewSubcategoryStore(s.db)
	for i := range categories {
		subs, err := subStore.ListByCategory(categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Subcategories = subs
	}
	return categories, nil
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id,
	).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug,
	).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// SlugExists reports whether any category other than excludeID holds the
// slug. Pass uuid.Nil for excludeID on creation.
func (s *CategoryStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE slug = $1 AND id != $2
		)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it with the generated ID.
// A slug unique-index rejection surfaces as ErrSlugConflict.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Status,
	).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Description,
		&result.Status, &result.CreatedAt, &result.UpdatedAt,
	)
	if isUniqueViolation(err, categorySlugConstraint) {
		return nil, fmt.Errorf("create category %q: %w", c.Slug, ErrSlugConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			name = $1, slug = $2, description = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.Description, c.Status, c.ID)
	if isUniqueViolation(err, categorySlugConstraint) {
		return fmt.Errorf("update category %q: %w", c.Slug, ErrSlugConflict)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Subcategories and article links cascade in the
// schema.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
