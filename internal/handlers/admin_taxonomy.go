// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/service"
	"chronicle/internal/store"
)

// AdminTaxonomy groups category and subcategory management. Renames are
// safe: articles reference taxonomy by ID, and stale public URLs heal
// through the canonical redirect.
type AdminTaxonomy struct {
	categories    *store.CategoryStore
	subcategories *store.SubcategoryStore
	catSvc        *service.CategoryService
	subSvc        *service.SubcategoryService
	cache         *cache.QueryCache
}

// NewAdminTaxonomy creates a new AdminTaxonomy handler group.
func NewAdminTaxonomy(
	categories *store.CategoryStore,
	subcategories *store.SubcategoryStore,
	catSvc *service.CategoryService,
	subSvc *service.SubcategoryService,
	qc *cache.QueryCache,
) *AdminTaxonomy {
	return &AdminTaxonomy{
		categories:    categories,
		subcategories: subcategories,
		catSvc:        catSvc,
		subSvc:        subSvc,
		cache:         qc,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type subcategoryRequest struct {
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description string    `json:"description"`
}

// Categories lists every category including inactive ones, with their
// subcategories.
// GET /api/admin/categories
func (h *AdminTaxonomy) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListWithSubcategories()
	if err != nil {
		serverError(w, "list categories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CreateCategory derives the slug from the name and stores the category.
// POST /api/admin/categories
func (h *AdminTaxonomy) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	status := models.CategoryStatus(req.Status)
	if req.Status != "" && !models.ValidCategoryStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	created, err := h.catSvc.Create(req.Name, req.Description, status)
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "create category failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"category": created})
}

// UpdateCategory modifies a category. A name change recomputes the slug,
// which changes the canonical URLs of every article underneath.
// PUT /api/admin/categories/{id}
func (h *AdminTaxonomy) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	status := models.CategoryStatus(req.Status)
	if req.Status != "" && !models.ValidCategoryStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := h.catSvc.Update(id, req.Name, req.Description, status)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "update category failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"category": updated})
}

// DeleteCategory removes a category; its subcategories and article links
// cascade.
// DELETE /api/admin/categories/{id}
func (h *AdminTaxonomy) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		serverError(w, "find category failed", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		serverError(w, "delete category failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Subcategories lists the subcategories under one category.
// GET /api/admin/categories/{id}/subcategories
func (h *AdminTaxonomy) Subcategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	subs, err := h.subcategories.ListByCategory(id)
	if err != nil {
		serverError(w, "list subcategories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subcategories": subs})
}

// CreateSubcategory derives the slug within the configured uniqueness
// scope and stores the subcategory.
// POST /api/admin/subcategories
func (h *AdminTaxonomy) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req subcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.CategoryID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "category_id is required")
		return
	}

	parent, err := h.categories.FindByID(req.CategoryID)
	if err != nil {
		serverError(w, "find parent category failed", err)
		return
	}
	if parent == nil {
		writeError(w, http.StatusBadRequest, "parent category does not exist")
		return
	}

	created, err := h.subSvc.Create(req.CategoryID, req.Name, req.Description)
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "create subcategory failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"subcategory": created})
}

// UpdateSubcategory modifies a subcategory, re-resolving the slug when
// the name changes or the subcategory moves to another parent.
// PUT /api/admin/subcategories/{id}
func (h *AdminTaxonomy) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	var req subcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.CategoryID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "category_id is required")
		return
	}

	parent, err := h.categories.FindByID(req.CategoryID)
	if err != nil {
		serverError(w, "find parent category failed", err)
		return
	}
	if parent == nil {
		writeError(w, http.StatusBadRequest, "parent category does not exist")
		return
	}

	updated, err := h.subSvc.Update(id, req.CategoryID, req.Name, req.Description)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "subcategory not found")
		return
	}
	if errors.Is(err, store.ErrSlugConflict) {
		writeError(w, http.StatusConflict, "slug conflict, try again")
		return
	}
	if err != nil {
		serverError(w, "update subcategory failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"subcategory": updated})
}

// DeleteSubcategory removes a subcategory; article links cascade.
// DELETE /api/admin/subcategories/{id}
func (h *AdminTaxonomy) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	sub, err := h.subcategories.FindByID(id)
	if err != nil {
		serverError(w, "find subcategory failed", err)
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "subcategory not found")
		return
	}

	if err := h.subcategories.Delete(id); err != nil {
		serverError(w, "delete subcategory failed", err)
		return
	}

	h.cache.InvalidateArticles(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
