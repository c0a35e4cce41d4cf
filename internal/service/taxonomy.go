// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"errors"

	"github.com/google/uuid"

	"chronicle/internal/config"
	"chronicle/internal/models"
	"chronicle/internal/slug"
	"chronicle/internal/store"
)

// CategoryRepo is the slice of the category store the service needs.
type CategoryRepo interface {
	FindByID(id uuid.UUID) (*models.Category, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
}

// CategoryService derives category slugs from names. Category slugs are
// globally unique: they form the first segment of every article URL.
type CategoryService struct {
	repo CategoryRepo
}

// NewCategoryService creates a CategoryService over the given repository.
func NewCategoryService(repo CategoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) resolveSlug(name string, excludeID uuid.UUID) (string, error) {
	return slug.EnsureUnique(slugBase(name), func(candidate string) (bool, error) {
		return s.repo.SlugExists(candidate, excludeID)
	})
}

// Create derives the slug from the name and persists the category.
func (s *CategoryService) Create(name, description string, status models.CategoryStatus) (*models.Category, error) {
	if status == "" {
		status = models.CategoryStatusActive
	}

	c := &models.Category{
		Name:        name,
		Description: description,
		Status:      status,
	}

	for attempt := 0; ; attempt++ {
		resolved, err := s.resolveSlug(name, uuid.Nil)
		if err != nil {
			return nil, err
		}
		c.Slug = resolved

		created, err := s.repo.Create(c)
		if errors.Is(err, store.ErrSlugConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
}

// Update modifies a category, recomputing the slug only when the name
// changed. Renames are allowed: articles link by ID, and stale URLs are
// healed by the canonical redirect on the read path.
func (s *CategoryService) Update(id uuid.UUID, name, description string, status models.CategoryStatus) (*models.Category, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	c := *existing
	c.Name = name
	c.Description = description
	if status != "" {
		c.Status = status
	}

	nameChanged := name != existing.Name

	for attempt := 0; ; attempt++ {
		if nameChanged {
			resolved, err := s.resolveSlug(name, id)
			if err != nil {
				return nil, err
			}
			c.Slug = resolved
		}

		err := s.repo.Update(&c)
		if errors.Is(err, store.ErrSlugConflict) && nameChanged && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.repo.FindByID(id)
	}
}

// SubcategoryRepo is the slice of the subcategory store the service needs.
type SubcategoryRepo interface {
	FindByID(id uuid.UUID) (*models.Subcategory, error)
	SlugExistsInCategory(categoryID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	SlugExistsGlobal(slug string, excludeID uuid.UUID) (bool, error)
	Create(sc *models.Subcategory) (*models.Subcategory, error)
	Update(sc *models.Subcategory) error
}

// SubcategoryService derives subcategory slugs. The uniqueness scope is
// configurable: "category" (the default) allows Sports→Highlights and
// News→Highlights to coexist; "global" forces distinct slugs everywhere.
type SubcategoryService struct {
	repo  SubcategoryRepo
	scope string
}

// NewSubcategoryService creates a SubcategoryService with the given
// uniqueness scope (config.ScopeCategory or config.ScopeGlobal).
func NewSubcategoryService(repo SubcategoryRepo, scope string) *SubcategoryService {
	if scope == "" {
		scope = config.ScopeCategory
	}
	return &SubcategoryService{repo: repo, scope: scope}
}

// checker builds the uniqueness predicate for the configured scope.
func (s *SubcategoryService) checker(categoryID, excludeID uuid.UUID) slug.Checker {
	if s.scope == config.ScopeGlobal {
		return func(candidate string) (bool, error) {
			return s.repo.SlugExistsGlobal(candidate, excludeID)
		}
	}
	return func(candidate string) (bool, error) {
		return s.repo.SlugExistsInCategory(categoryID, candidate, excludeID)
	}
}

// Create derives the slug from the name and persists the subcategory.
func (s *SubcategoryService) Create(categoryID uuid.UUID, name, description string) (*models.Subcategory, error) {
	sc := &models.Subcategory{
		Name:        name,
		CategoryID:  categoryID,
		Description: description,
	}

	for attempt := 0; ; attempt++ {
		resolved, err := slug.EnsureUnique(slugBase(name), s.checker(categoryID, uuid.Nil))
		if err != nil {
			return nil, err
		}
		sc.Slug = resolved

		created, err := s.repo.Create(sc)
		if errors.Is(err, store.ErrSlugConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
}

// Update modifies a subcategory. The slug is re-resolved when the name
// changed or when the subcategory moves to a different parent category,
// since the move can collide with a sibling in the new scope.
func (s *SubcategoryService) Update(id, categoryID uuid.UUID, name, description string) (*models.Subcategory, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	sc := *existing
	sc.Name = name
	sc.CategoryID = categoryID
	sc.Description = description

	needsSlug := name != existing.Name || categoryID != existing.CategoryID

	for attempt := 0; ; attempt++ {
		if needsSlug {
			resolved, err := slug.EnsureUnique(slugBase(name), s.checker(categoryID, id))
			if err != nil {
				return nil, err
			}
			sc.Slug = resolved
		}

		err := s.repo.Update(&sc)
		if errors.Is(err, store.ErrSlugConflict) && needsSlug && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.repo.FindByID(id)
	}
}
