package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"chronicle/internal/models"
)

// Validation limits for content fields.
const (
	maxTitleLen    = 300
	maxDescLen     = 1_000
	maxContentLen  = 100_000
	maxNameLen     = 100
	maxTagLen      = 50
	maxTagCount    = 20
	maxURLLen      = 2_000
	maxBioLen      = 2_000
	minPasswordLen = 8
)

// validateArticle checks article inputs and returns the first error found.
func validateArticle(title, description, content string, subcategoryCount int, tags []string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if strings.TrimSpace(description) == "" {
		return "description is required"
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "description is too long (max 1,000 characters)"
	}
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 100,000 characters)"
	}
	if subcategoryCount == 0 {
		return "at least one subcategory is required"
	}
	if len(tags) > maxTagCount {
		return "too many tags (max 20)"
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "tag is too long (max 50 characters)"
		}
	}
	return ""
}

// validateName checks a category or subcategory name.
func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 100 characters)"
	}
	return ""
}

// validateAd checks ad inputs and returns the first error found.
func validateAd(title, imageURL, redirectURL, placement string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if msg := validateHTTPURL(imageURL, "image_url"); msg != "" {
		return msg
	}
	if msg := validateHTTPURL(redirectURL, "redirect_url"); msg != "" {
		return msg
	}
	if !models.ValidAdPlacement(models.AdPlacement(placement)) {
		return "invalid placement"
	}
	return ""
}

// validateHTTPURL requires an absolute http(s) URL.
func validateHTTPURL(raw, field string) string {
	if strings.TrimSpace(raw) == "" {
		return field + " is required"
	}
	if len(raw) > maxURLLen {
		return field + " is too long"
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return field + " must be an absolute http(s) URL"
	}
	return ""
}
