// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryStatus represents the visibility state of a category.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// ValidCategoryStatus reports whether s is a known status.
func ValidCategoryStatus(s CategoryStatus) bool {
	return s == CategoryStatusActive || s == CategoryStatusInactive
}

// Category is a top-level news section (Sports, Politics, …). Its slug is
// unique across all categories and forms the first URL segment.
type Category struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Status      CategoryStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Virtual field populated by store methods.
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory is a section under one category (Sports → Cricket). Slug
// uniqueness is scoped to the parent category by default; see the
// SUBCATEGORY_SLUG_SCOPE configuration.
type Subcategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual field populated by store methods.
	CategorySlug string `json:"category_slug,omitempty"`
}
