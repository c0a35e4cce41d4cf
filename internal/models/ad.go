// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AdPlacement identifies where on the site an ad slot renders.
type AdPlacement string

const (
	AdPlacementHero    AdPlacement = "hero"
	AdPlacementHeader  AdPlacement = "header"
	AdPlacementSidebar AdPlacement = "sidebar"
	AdPlacementInline  AdPlacement = "inline"
	AdPlacementFooter  AdPlacement = "footer"
	AdPlacementPopup   AdPlacement = "popup"
)

// ValidAdPlacement reports whether p is one of the known placements.
func ValidAdPlacement(p AdPlacement) bool {
	switch p {
	case AdPlacementHero, AdPlacementHeader, AdPlacementSidebar,
		AdPlacementInline, AdPlacementFooter, AdPlacementPopup:
		return true
	}
	return false
}

// AdStatus represents whether an ad is currently being served.
type AdStatus string

const (
	AdStatusActive AdStatus = "active"
	AdStatusPaused AdStatus = "paused"
)

// ValidAdStatus reports whether s is a known status.
func ValidAdStatus(s AdStatus) bool {
	return s == AdStatusActive || s == AdStatusPaused
}

// Ad is a display advertisement with simple impression/click counters.
type Ad struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	ImageURL    string      `json:"image_url"`
	RedirectURL string      `json:"redirect_url"`
	Width       *int        `json:"width,omitempty"`
	Height      *int        `json:"height,omitempty"`
	Placement   AdPlacement `json:"placement"`
	Status      AdStatus    `json:"status"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Impressions int         `json:"impressions"`
	Clicks      int         `json:"clicks"`
	Priority    int         `json:"priority"`
	OwnerID     *uuid.UUID  `json:"owner_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Live reports whether the ad should be served at the given time, taking
// status and the optional start/end window into account.
func (a *Ad) Live(now time.Time) bool {
	if a.Status != AdStatusActive {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}
