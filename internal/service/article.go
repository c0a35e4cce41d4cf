// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the content write paths. It owns the derived
// fields the stores never compute themselves: slugs (regenerated from the
// title, made unique with counter suffixes), public IDs (allocated once at
// creation), and rendered article HTML. Writes that lose a race on the
// slug unique index are re-resolved and retried here.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chronicle/internal/markdown"
	"chronicle/internal/models"
	"chronicle/internal/publicid"
	"chronicle/internal/slug"
	"chronicle/internal/store"
)

// maxConflictRetries bounds how many times a write is retried after the
// unique index rejects a slug that passed the pre-write probe. Each retry
// re-resolves against current state, so more than a couple of losses in a
// row means something is wrong.
const maxConflictRetries = 3

// ErrNotFound is returned by update paths when the target doesn't exist.
var ErrNotFound = errors.New("not found")

// ArticleRepo is the slice of the article store the service needs.
type ArticleRepo interface {
	FindByID(id uuid.UUID) (*models.Article, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	PublicIDExists(publicID string) (bool, error)
	Create(a *models.Article) (*models.Article, error)
	Update(a *models.Article) error
}

// ArticleInput carries the author-supplied fields of a create or update.
// Slug, public ID, and rendered HTML are derived here and never accepted
// from the client.
type ArticleInput struct {
	Title          string
	Description    string
	Content        string
	CategoryID     uuid.UUID
	SubcategoryIDs []uuid.UUID
	Tags           []string
	ImageURL       string
	SourceName     string
	SourceURL      string
	IsFeatured     bool
	PublishedAt    time.Time
}

// ArticleService coordinates article writes.
type ArticleService struct {
	repo ArticleRepo
	ids  *publicid.Allocator
}

// NewArticleService creates an ArticleService over the given repository.
func NewArticleService(repo ArticleRepo) *ArticleService {
	return &ArticleService{
		repo: repo,
		ids:  publicid.NewAllocator(repo.PublicIDExists),
	}
}

// slugBase derives the base slug for a title. Titles made entirely of
// punctuation or whitespace fall back to "untitled" so the uniqueness
// machinery still has something to suffix.
func slugBase(title string) string {
	base := slug.Generate(title, slug.DefaultMaxWords)
	if base == "" {
		base = "untitled"
	}
	return base
}

// resolveSlug produces a unique slug for the title, ignoring the row
// identified by excludeID (uuid.Nil on creation).
func (s *ArticleService) resolveSlug(title string, excludeID uuid.UUID) (string, error) {
	return slug.EnsureUnique(slugBase(title), func(candidate string) (bool, error) {
		return s.repo.SlugExists(candidate, excludeID)
	})
}

// Create derives the article's slug and public ID, renders its body, and
// persists it. If public ID allocation exhausts its retry budget the
// article is not written at all.
func (s *ArticleService) Create(authorID uuid.UUID, in ArticleInput) (*models.Article, error) {
	html, err := markdown.ToHTML(in.Content)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	publicID, err := s.ids.Allocate()
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	a := &models.Article{
		PublicID:       publicID,
		Title:          in.Title,
		Description:    in.Description,
		Content:        in.Content,
		ContentHTML:    html,
		CategoryID:     in.CategoryID,
		SubcategoryIDs: in.SubcategoryIDs,
		AuthorID:       authorID,
		ImageURL:       in.ImageURL,
		SourceName:     in.SourceName,
		SourceURL:      in.SourceURL,
		Tags:           in.Tags,
		IsFeatured:     in.IsFeatured,
		PublishedAt:    in.PublishedAt,
	}

	for attempt := 0; ; attempt++ {
		resolved, err := s.resolveSlug(in.Title, uuid.Nil)
		if err != nil {
			return nil, err
		}
		a.Slug = resolved

		created, err := s.repo.Create(a)
		if errors.Is(err, store.ErrSlugConflict) && attempt < maxConflictRetries {
			// A concurrent writer claimed the slug between the probe and
			// the insert. Re-resolve against current state and try again.
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
}

// Update modifies an article. The slug is recomputed only when the title
// changed (excluding the article's own row from the probe, so an unchanged
// title never collides with itself); the public ID is never touched.
func (s *ArticleService) Update(id uuid.UUID, in ArticleInput) (*models.Article, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	html, err := markdown.ToHTML(in.Content)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	a := *existing
	a.Title = in.Title
	a.Description = in.Description
	a.Content = in.Content
	a.ContentHTML = html
	a.CategoryID = in.CategoryID
	a.SubcategoryIDs = in.SubcategoryIDs
	a.ImageURL = in.ImageURL
	a.SourceName = in.SourceName
	a.SourceURL = in.SourceURL
	a.Tags = in.Tags
	a.IsFeatured = in.IsFeatured
	a.PublishedAt = in.PublishedAt

	titleChanged := in.Title != existing.Title

	for attempt := 0; ; attempt++ {
		if titleChanged {
			resolved, err := s.resolveSlug(in.Title, id)
			if err != nil {
				return nil, err
			}
			a.Slug = resolved
		}

		err := s.repo.Update(&a)
		if errors.Is(err, store.ErrSlugConflict) && titleChanged && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.repo.FindByID(id)
	}
}
