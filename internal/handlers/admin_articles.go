// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/cache"
	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/publicid"
	"chronicle/internal/service"
	"chronicle/internal/session"
	"chronicle/internal/store"
)

// AdminArticles groups the authenticated article CRUD endpoints. Admins
// manage every article; authors only their own.
type AdminArticles struct {
	articles *store.ArticleStore
	svc      *service.ArticleService
	cache    *cache.QueryCache
}

// NewAdminArticles creates a new AdminArticles handler group.
func NewAdminArticles(articles *store.ArticleStore, svc *service.ArticleService, qc *cache.QueryCache) *AdminArticles {
	return &AdminArticles{articles: articles, svc: svc, cache: qc}
}

// articleRequest is the JSON body for create and update.
type articleRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Content        string    `json:"content"`
	CategoryID     uuid.UUID `json:"category_id"`
	SubcategoryIDs []string  `json:"subcategory_ids"`
	Tags           []string  `json:"tags"`
	ImageURL       string    `json:"image_url"`
	SourceName     string    `json:"source_name"`
	SourceURL      string    `json:"source_url"`
	IsFeatured     bool      `json:"is_featured"`
	PublishedAt    time.Time `json:"published_at"`
}

// toInput validates and converts the request into a service input.
func (req *articleRequest) toInput() (service.ArticleInput, string) {
	if msg := validateArticle(req.Title, req.Description, req.Content, len(req.SubcategoryIDs), req.Tags); msg != "" {
		return service.ArticleInput{}, msg
	}

	subIDs := make([]uuid.UUID, 0, len(req.SubcategoryIDs))
	for _, raw := range req.SubcategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return service.ArticleInput{}, "invalid subcategory id"
		}
		subIDs = append(subIDs, id)
	}
	if req.CategoryID == uuid.Nil {
		return service.ArticleInput{}, "category_id is required"
	}

	return service.ArticleInput{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		CategoryID:     req.CategoryID,
		SubcategoryIDs: subIDs,
		Tags:           req.Tags,
		ImageURL:       req.ImageURL,
		SourceName:     req.SourceName,
		SourceURL:      req.SourceURL,
		IsFeatured:     req.IsFeatured,
		PublishedAt:    req.PublishedAt,
	}, ""
}

// canManage reports whether the session may modify the article.
func canManage(sess *session.Data, a *models.Article) bool {
	return sess.Role == string(models.RoleAdmin) || a.AuthorID == sess.UserID
}

// List returns the caller's manageable articles: everything for admins,
// own articles for authors.
// GET /api/admin/articles
func (h *AdminArticles) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if sess.Role == string(models.RoleAdmin) {
		page, limit := pageParams(r)
		articles, total, err := h.articles.List(page, limit)
		if err != nil {
			serverError(w, "list articles failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"articles": articles, "page": page, "limit": limit, "total": total,
		})
		return
	}

	articles, err := h.articles.ListByAuthor(sess.UserID)
	if err != nil {
		serverError(w, "list author articles failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// Get returns one article by UUID.
// GET /api/admin/articles/{id}
func (h *AdminArticles) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}
	if !canManage(sess, article) {
		writeError(w, http.StatusForbidden, "you can only access your own articles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}

// Create derives slug and public ID for a new article and stores it.
// POST /api/admin/articles
func (h *AdminArticles) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.svc.Create(sess.UserID, in)
	if errors.Is(err, publicid.ErrAllocationExhausted) {
		writeError(w, http.StatusServiceUnavailable, "could not allocate an article id, try again")
		return
	}
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "create article failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"article": created})
}

// Update modifies an article the caller owns (or any, for admins).
// PUT /api/admin/articles/{id}
func (h *AdminArticles) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}
	if !canManage(sess, article) {
		writeError(w, http.StatusForbidden, "you can only edit your own articles")
		return
	}

	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.svc.Update(article.ID, in)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "update article failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"article": updated})
}

// Delete removes an article the caller owns (or any, for admins).
// DELETE /api/admin/articles/{id}
func (h *AdminArticles) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}
	if !canManage(sess, article) {
		writeError(w, http.StatusForbidden, "you can only delete your own articles")
		return
	}

	if err := h.articles.Delete(article.ID); err != nil {
		serverError(w, "delete article failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// loadArticle parses the {id} URL param and fetches the article, writing
// the error response itself when it fails.
func (h *AdminArticles) loadArticle(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return nil, false
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		serverError(w, "find article failed", err)
		return nil, false
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return nil, false
	}
	return article, true
}
