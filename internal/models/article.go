// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a published news story. Slug and PublicID are derived fields:
// the slug is recomputed whenever the title changes, the public ID is
// assigned exactly once at creation and never regenerated.
type Article struct {
	ID          uuid.UUID `json:"id"`
	PublicID    string    `json:"public_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Content     string    `json:"content"`      // Markdown source
	ContentHTML string    `json:"content_html"` // Rendered and sanitized

	CategoryID uuid.UUID `json:"category_id"`
	// SubcategoryIDs is an ordered, non-empty list. The first element is
	// the primary subcategory used for canonical URLs unless the requested
	// URL names another subcategory the article belongs to.
	SubcategoryIDs []uuid.UUID `json:"subcategory_ids"`
	AuthorID       uuid.UUID   `json:"author_id"`

	ImageURL    string    `json:"image_url,omitempty"`
	SourceName  string    `json:"source_name,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ViewCount   int       `json:"view_count"`
	IsFeatured  bool      `json:"is_featured"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	CategoryName  string        `json:"category_name,omitempty"`
	CategorySlug  string        `json:"category_slug,omitempty"`
	AuthorName    string        `json:"author_name,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// PrimarySubcategory returns the article's first associated subcategory,
// or nil when none are populated.
func (a *Article) PrimarySubcategory() *Subcategory {
	if len(a.Subcategories) == 0 {
		return nil
	}
	return &a.Subcategories[0]
}

// HasSubcategorySlug reports whether the article belongs to a subcategory
// with the given slug.
func (a *Article) HasSubcategorySlug(slug string) bool {
	for _, sub := range a.Subcategories {
		if sub.Slug == slug {
			return true
		}
	}
	return false
}
