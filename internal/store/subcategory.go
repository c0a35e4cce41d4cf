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

// SubcategoryStore handles all subcategory-related database operations.
type SubcategoryStore struct {
	db *sql.DB
}

// NewSubcategoryStore creates a new SubcategoryStore with the given database connection.
func NewSubcategoryStore(db *sql.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

const subcategoryColumns = `s.id, s.name, s.slug, s.category_id, s.description,
	s.created_at, s.updated_at, c.slug`

func scanSubcategoryRows(rows *sql.Rows) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	for rows.Next() {
		var sc models.Subcategory
		if err := rows.Scan(
			&sc.ID, &sc.Name, &sc.Slug, &sc.CategoryID, &sc.Description,
			&sc.CreatedAt, &sc.UpdatedAt, &sc.CategorySlug,
		); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

// ListByCategory returns all subcategories under a category, ordered by name.
func (s *SubcategoryStore) ListByCategory(categoryID uuid.UUID) ([]models.Subcategory, error) {
	rows, err := s.db.Query(`
		SELECT `+subcategoryColumns+`
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.category_id = $1
		ORDER BY s.name
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	return scanSubcategoryRows(rows)
}

// FindByID retrieves a subcategory by its UUID. Returns nil if not found.
func (s *SubcategoryStore) FindByID(id uuid.UUID) (*models.Subcategory, error) {
	sc := &models.Subcategory{}
	err := s.db.QueryRow(`
		SELECT `+subcategoryColumns+`
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1
	`, id).Scan(
		&sc.ID, &sc.Name, &sc.Slug, &sc.CategoryID, &sc.Description,
		&sc.CreatedAt, &sc.UpdatedAt, &sc.CategorySlug,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sc, nil
}

// FindBySlugs retrieves a subcategory by its slug and its parent category's
// slug. Returns nil if either doesn't match.
func (s *SubcategoryStore) FindBySlugs(categorySlug, slug string) (*models.Subcategory, error) {
	sc := &models.Subcategory{}
	err := s.db.QueryRow(`
		SELECT `+subcategoryColumns+`
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.slug = $1 AND c.slug = $2
	`, slug, categorySlug).Scan(
		&sc.ID, &sc.Name, &sc.Slug, &sc.CategoryID, &sc.Description,
		&sc.CreatedAt, &sc.UpdatedAt, &sc.CategorySlug,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by slugs: %w", err)
	}
	return sc, nil
}

// SlugExistsInCategory reports whether another subcategory of the same
// parent category holds the slug. This is the default uniqueness scope.
func (s *SubcategoryStore) SlugExistsInCategory(categoryID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM subcategories
			WHERE slug = $1 AND category_id = $2 AND id != $3
		)
	`, slug, categoryID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subcategory slug exists in category: %w", err)
	}
	return exists, nil
}

// SlugExistsGlobal reports whether any subcategory at all holds the slug.
// Used when SUBCATEGORY_SLUG_SCOPE is set to "global".
func (s *SubcategoryStore) SlugExistsGlobal(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM subcategories WHERE slug = $1 AND id != $2
		)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subcategory slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new subcategory and returns it with the generated ID.
func (s *SubcategoryStore) Create(sc *models.Subcategory) (*models.Subcategory, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO subcategories (name, slug, category_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sc.Name, sc.Slug, sc.CategoryID, sc.Description).Scan(&id)
	if isUniqueViolation(err, subcategorySlugConstraint) {
		return nil, fmt.Errorf("create subcategory %q: %w", sc.Slug, ErrSlugConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing subcategory.
func (s *SubcategoryStore) Update(sc *models.Subcategory) error {
	_, err := s.db.Exec(`
		UPDATE subcategories SET
			name = $1, slug = $2, category_id = $3, description = $4, updated_at = NOW()
		WHERE id = $5
	`, sc.Name, sc.Slug, sc.CategoryID, sc.Description, sc.ID)
	if isUniqueViolation(err, subcategorySlugConstraint) {
		return fmt.Errorf("update subcategory %q: %w", sc.Slug, ErrSlugConflict)
	}
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	return nil
}

// Delete removes a subcategory. Article links cascade in the schema.
func (s *SubcategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
