// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/seo"
	"chronicle/internal/store"
)

// featuredLimit caps the featured article list.
const featuredLimit = 5

// Public groups the unauthenticated read endpoints. List responses are
// cached in Redis as serialized JSON; a cache failure falls through to
// the database.
type Public struct {
	articles      *store.ArticleStore
	categories    *store.CategoryStore
	subcategories *store.SubcategoryStore
	ads           *store.AdStore
	resolver      *seo.Resolver
	cache         *cache.QueryCache
}

// NewPublic creates a new Public handler group.
func NewPublic(articles *store.ArticleStore, categories *store.CategoryStore, subcategories *store.SubcategoryStore, ads *store.AdStore, qc *cache.QueryCache) *Public {
	return &Public{
		articles:      articles,
		categories:    categories,
		subcategories: subcategories,
		ads:           ads,
		resolver:      seo.NewResolver(articles),
		cache:         qc,
	}
}

// serveCached writes the cached payload for key if present; otherwise it
// builds the response, stores it, and writes it.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (any, error)) {
	ctx := r.Context()

	if cached, ok := p.cache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	payload, err := build()
	if err != nil {
		serverError(w, "build cached response failed", err)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		serverError(w, "marshal cached response failed", err)
		return
	}

	p.cache.SetTTL(ctx, key, body, ttl)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ListArticles serves one page of the main feed.
// GET /api/articles?page=&limit=
func (p *Public) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	p.serveCached(w, r, cache.ArticlesPageKey(page, limit), cache.DefaultTTL, func() (any, error) {
		articles, total, err := p.articles.List(page, limit)
		if err != nil {
			return nil, err
		}
		totalPages := (total + limit - 1) / limit
		return map[string]any{
			"articles":    articles,
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		}, nil
	})
}

// Featured serves the featured article list.
// GET /api/articles/featured
func (p *Public) Featured(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, cache.FeaturedKey(), cache.FeaturedTTL, func() (any, error) {
		articles, err := p.articles.ListFeatured(featuredLimit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"articles": articles}, nil
	})
}

// ByCategory serves one page of a category feed.
// GET /api/articles/category/{category}?page=&limit=
func (p *Public) ByCategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "category")
	page, limit := pageParams(r)

	category, err := p.categories.FindBySlug(categorySlug)
	if err != nil {
		serverError(w, "find category failed", err)
		return
	}
	if category == nil || category.Status != models.CategoryStatusActive {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	p.serveCached(w, r, cache.CategoryKey(categorySlug, page, limit), cache.DefaultTTL, func() (any, error) {
		articles, err := p.articles.ListByCategorySlug(categorySlug, page, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"category": category,
			"articles": articles,
			"page":     page,
			"limit":    limit,
		}, nil
	})
}

// BySubcategory serves articles in one subcategory.
// GET /api/articles/subcategory/{category}/{subcategory}?limit=
func (p *Public) BySubcategory(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "category")
	subcategorySlug := chi.URLParam(r, "subcategory")
	_, limit := pageParams(r)

	p.serveCached(w, r, cache.SubcategoryKey(categorySlug, subcategorySlug, limit), cache.DefaultTTL, func() (any, error) {
		articles, err := p.articles.ListBySubcategory(categorySlug, subcategorySlug, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"articles": articles}, nil
	})
}

// ByTag serves articles carrying a tag. Not cached: the tag space is
// unbounded and hit rates are low.
// GET /api/articles/tag/{tag}
func (p *Public) ByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	_, limit := pageParams(r)

	articles, err := p.articles.ListByTag(tag, limit)
	if err != nil {
		serverError(w, "list by tag failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// Search runs full-text search.
// GET /api/articles/search?q=
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	_, limit := pageParams(r)

	articles, err := p.articles.Search(q, limit)
	if err != nil {
		serverError(w, "search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles, "query": q})
}

// ByPublicID serves a single article by its 12-digit public ID, with the
// canonical path so clients can build the SEO URL.
// GET /api/articles/public/{publicID}
func (p *Public) ByPublicID(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	article, err := p.articles.FindByPublicID(publicID)
	if err != nil {
		serverError(w, "find by public id failed", err)
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"article":        article,
		"canonical_path": canonicalPath(article),
	})
}

// Resolve handles the SEO article URL. Off-canonical paths (stale slug,
// renamed category) are permanently redirected for browsers and crawlers;
// clients that accept JSON get the article with the canonical path instead
// of a useless redirect.
// GET /api/articles/{category}/{subcategory}/{slugID}
func (p *Public) Resolve(w http.ResponseWriter, r *http.Request) {
	res, err := p.resolver.Resolve(
		chi.URLParam(r, "category"),
		chi.URLParam(r, "subcategory"),
		chi.URLParam(r, "slugID"),
	)
	if errors.Is(err, seo.ErrInvalidFormat) {
		writeError(w, http.StatusBadRequest, "invalid article url")
		return
	}
	if errors.Is(err, seo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	if err != nil {
		serverError(w, "resolve article url failed", err)
		return
	}

	if res.ShouldRedirect(wantsJSON(r)) {
		http.Redirect(w, r, "/api/articles"+res.CanonicalPath, http.StatusMovedPermanently)
		return
	}

	if err := p.articles.IncrementViewCount(res.Article.ID); err != nil {
		slog.Warn("increment view count failed", "error", err, "article", res.Article.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"article":        res.Article,
		"canonical":      res.Canonical,
		"canonical_path": res.CanonicalPath,
	})
}

// Categories lists active categories.
// GET /api/categories
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.List()
	if err != nil {
		serverError(w, "list categories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": activeOnly(categories)})
}

// CategoriesFull lists active categories with their subcategories, for
// site navigation.
// GET /api/categories/full
func (p *Public) CategoriesFull(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.ListWithSubcategories()
	if err != nil {
		serverError(w, "list categories with subcategories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": activeOnly(categories)})
}

// Subcategories lists the subcategories under one category.
// GET /api/categories/{id}/subcategories
func (p *Public) Subcategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := p.categories.FindByID(id)
	if err != nil {
		serverError(w, "find category failed", err)
		return
	}
	if category == nil || category.Status != models.CategoryStatusActive {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	subs, err := p.subcategories.ListByCategory(id)
	if err != nil {
		serverError(w, "list subcategories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subcategories": subs})
}

// AdsByPlacement serves the live ads for one placement and counts the
// impressions.
// GET /api/ads/{placement}
func (p *Public) AdsByPlacement(w http.ResponseWriter, r *http.Request) {
	placement := models.AdPlacement(chi.URLParam(r, "placement"))
	if !models.ValidAdPlacement(placement) {
		writeError(w, http.StatusBadRequest, "invalid placement")
		return
	}

	ads, err := p.ads.ListActiveByPlacement(placement)
	if err != nil {
		serverError(w, "list ads failed", err)
		return
	}

	ids := make([]uuid.UUID, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
	}
	if err := p.ads.IncrementImpressions(ids); err != nil {
		slog.Warn("increment impressions failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"ads": ads})
}

// AdClick records a click and returns the redirect target.
// POST /api/ads/{id}/click
func (p *Public) AdClick(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}

	ad, err := p.ads.FindByID(id)
	if err != nil {
		serverError(w, "find ad failed", err)
		return
	}
	// Paused or expired ads are never served, so clicks on them are stale
	// or forged; don't count them or hand out the redirect.
	if ad == nil || !ad.Live(time.Now()) {
		writeError(w, http.StatusNotFound, "ad not found")
		return
	}

	if err := p.ads.IncrementClicks(id); err != nil {
		slog.Warn("increment clicks failed", "error", err, "ad", id)
	}

	writeJSON(w, http.StatusOK, map[string]any{"redirect_url": ad.RedirectURL})
}

// Health reports liveness.
// GET /health
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// canonicalPath rebuilds the SEO path from an article's current state.
func canonicalPath(a *models.Article) string {
	sub := ""
	if primary := a.PrimarySubcategory(); primary != nil {
		sub = primary.Slug
	}
	return "/" + a.CategorySlug + "/" + sub + "/" + a.Slug + "-" + a.PublicID
}

func activeOnly(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Status == models.CategoryStatusActive {
			out = append(out, c)
		}
	}
	return out
}
