// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

// AdminAds groups the ad management endpoints. Ads are admin-only; the
// router enforces that.
type AdminAds struct {
	ads *store.AdStore
}

// NewAdminAds creates a new AdminAds handler group.
func NewAdminAds(ads *store.AdStore) *AdminAds {
	return &AdminAds{ads: ads}
}

type adRequest struct {
	Title       string     `json:"title"`
	ImageURL    string     `json:"image_url"`
	RedirectURL string     `json:"redirect_url"`
	Width       *int       `json:"width"`
	Height      *int       `json:"height"`
	Placement   string     `json:"placement"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Priority    int        `json:"priority"`
}

// toAd validates the request and builds the model.
func (req *adRequest) toAd() (*models.Ad, string) {
	if msg := validateAd(req.Title, req.ImageURL, req.RedirectURL, req.Placement); msg != "" {
		return nil, msg
	}
	status := models.AdStatus(req.Status)
	if req.Status == "" {
		status = models.AdStatusActive
	} else if !models.ValidAdStatus(status) {
		return nil, "invalid status"
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, "end_date must be after start_date"
	}

	return &models.Ad{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		RedirectURL: req.RedirectURL,
		Width:       req.Width,
		Height:      req.Height,
		Placement:   models.AdPlacement(req.Placement),
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Priority:    req.Priority,
	}, ""
}

// List returns every ad with its counters.
// GET /api/admin/ads
func (h *AdminAds) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.List()
	if err != nil {
		serverError(w, "list ads failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ads": ads})
}

// Create stores a new ad owned by the caller.
// POST /api/admin/ads
func (h *AdminAds) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req adRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ad, msg := req.toAd()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ad.OwnerID = &sess.UserID

	created, err := h.ads.Create(ad)
	if err != nil {
		serverError(w, "create ad failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ad": created})
}

// Update modifies an ad. Impression and click counters are untouched.
// PUT /api/admin/ads/{id}
func (h *AdminAds) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadAd(w, r)
	if !ok {
		return
	}

	var req adRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ad, msg := req.toAd()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ad.ID = existing.ID

	if err := h.ads.Update(ad); err != nil {
		serverError(w, "update ad failed", err)
		return
	}

	updated, err := h.ads.FindByID(existing.ID)
	if err != nil {
		serverError(w, "reload ad failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ad": updated})
}

// Delete removes an ad.
// DELETE /api/admin/ads/{id}
func (h *AdminAds) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadAd(w, r)
	if !ok {
		return
	}

	if err := h.ads.Delete(existing.ID); err != nil {
		serverError(w, "delete ad failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminAds) loadAd(w http.ResponseWriter, r *http.Request) (*models.Ad, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return nil, false
	}

	ad, err := h.ads.FindByID(id)
	if err != nil {
		serverError(w, "find ad failed", err)
		return nil, false
	}
	if ad == nil {
		writeError(w, http.StatusNotFound, "ad not found")
		return nil, false
	}
	return ad, true
}
