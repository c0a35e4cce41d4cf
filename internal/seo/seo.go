// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo validates article URLs of the form
// /{category-slug}/{subcategory-slug}/{article-slug}-{publicId} and decides
// between serving the request and redirecting to the canonical URL.
//
// Titles and categories can be renamed after publication. Resolving by the
// immutable public ID keeps old bookmarked and indexed URLs working, while
// the canonical comparison makes sure search engines and browsers always end
// up on the current URL.
package seo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/publicid"
)

var (
	// ErrInvalidFormat marks a malformed last path segment: no hyphen, or
	// a tail that isn't a 12-digit public ID. Client error, never retried.
	ErrInvalidFormat = errors.New("invalid article url format")

	// ErrNotFound means no article matches the parsed public ID.
	ErrNotFound = errors.New("article not found")
)

// ParseSlugID splits a composite segment like
// "landslide-in-kullu-villagers-terrified-698431126604" at the LAST hyphen.
// Everything before it is the slug portion; the tail must be a well-formed
// public ID.
func ParseSlugID(slugID string) (slug, id string, err error) {
	idx := strings.LastIndexByte(slugID, '-')
	if idx == -1 {
		return "", "", fmt.Errorf("%w: %q has no hyphen", ErrInvalidFormat, slugID)
	}

	slug, id = slugID[:idx], slugID[idx+1:]
	if !publicid.Valid(id) {
		return "", "", fmt.Errorf("%w: %q is not a public id", ErrInvalidFormat, id)
	}
	return slug, id, nil
}

// ArticleFinder looks up an article by its public ID with the category and
// subcategory slugs populated. A (nil, nil) return means not found.
type ArticleFinder interface {
	FindByPublicID(publicID string) (*models.Article, error)
}

// Resolution is the outcome of canonical URL validation.
type Resolution struct {
	Article *models.Article

	// Canonical is true when the requested path already matches the
	// article's current canonical values.
	Canonical bool

	// CanonicalPath is the currently-correct path for the article,
	// rebuilt from its live category/subcategory/slug/public-ID state.
	CanonicalPath string
}

// ShouldRedirect reports whether the caller must issue a permanent redirect.
// API clients are served directly even off-canonical — a redirect response
// is useless to a programmatic JSON consumer, which instead receives the
// canonical path in the payload.
func (r *Resolution) ShouldRedirect(apiClient bool) bool {
	return !r.Canonical && !apiClient
}

// Resolver validates SEO URLs against the current state of an article store.
type Resolver struct {
	articles ArticleFinder
}

// NewResolver creates a Resolver backed by the given article finder.
func NewResolver(articles ArticleFinder) *Resolver {
	return &Resolver{articles: articles}
}

// Resolve parses the composite slugID segment, loads the article by public
// ID, and compares the requested path against the article's canonical
// values. Path segments are percent-decoded before comparison so encoded
// Devanagari slugs match their stored form.
func (r *Resolver) Resolve(categorySlug, subcategorySlug, slugID string) (*Resolution, error) {
	pathSlug, id, err := ParseSlugID(slugID)
	if err != nil {
		return nil, err
	}

	article, err := r.articles.FindByPublicID(id)
	if err != nil {
		return nil, fmt.Errorf("resolve article %s: %w", id, err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: public id %s", ErrNotFound, id)
	}

	// The schema evolved from a single subcategory to an ordered list.
	// Prefer the subcategory the URL names when the article has it,
	// otherwise fall back to the primary (first) one.
	canonicalSub := ""
	if sub := article.PrimarySubcategory(); sub != nil {
		canonicalSub = sub.Slug
	}
	if article.HasSubcategorySlug(decodeSegment(subcategorySlug)) {
		canonicalSub = decodeSegment(subcategorySlug)
	}

	canonicalPath := fmt.Sprintf("/%s/%s/%s-%s",
		article.CategorySlug, canonicalSub, article.Slug, article.PublicID)

	canonical := decodeSegment(categorySlug) == article.CategorySlug &&
		decodeSegment(subcategorySlug) == canonicalSub &&
		decodeSegment(pathSlug) == article.Slug

	return &Resolution{
		Article:       article,
		Canonical:     canonical,
		CanonicalPath: canonicalPath,
	}, nil
}

// decodeSegment percent-decodes a path segment, returning it unchanged when
// it isn't valid percent-encoding.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
