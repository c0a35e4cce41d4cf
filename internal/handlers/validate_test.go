// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

type articleFields struct {
	title, description, content string
	subs                        int
	tags                        []string
}

func validArticleFields() articleFields {
	return articleFields{
		title:       "Monsoon Session Opens",
		description: "Parliament reconvenes for the monsoon session.",
		content:     "The session opened with a packed agenda.",
		subs:        1,
		tags:        []string{"politics"},
	}
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*articleFields)
		wantMsg string
	}{
		{"valid", func(v *articleFields) {}, ""},
		{"empty title", func(v *articleFields) { v.title = "   " }, "title is required"},
		{"title too long", func(v *articleFields) {
			v.title = strings.Repeat("x", maxTitleLen+1)
		}, "title is too long (max 300 characters)"},
		{"empty description", func(v *articleFields) { v.description = "" }, "description is required"},
		{"empty content", func(v *articleFields) { v.content = "" }, "content is required"},
		{"no subcategories", func(v *articleFields) { v.subs = 0 }, "at least one subcategory is required"},
		{"too many tags", func(v *articleFields) {
			v.tags = make([]string, maxTagCount+1)
		}, "too many tags (max 20)"},
		{"tag too long", func(v *articleFields) {
			v.tags = []string{strings.Repeat("y", maxTagLen+1)}
		}, "tag is too long (max 50 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validArticleFields()
			tt.mutate(&v)
			got := validateArticle(v.title, v.description, v.content, v.subs, v.tags)
			if got != tt.wantMsg {
				t.Errorf("validateArticle() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"valid", "Sports", ""},
		{"unicode counted as runes", strings.Repeat("ख", maxNameLen), ""},
		{"empty", "", "name is required"},
		{"whitespace only", "  \t ", "name is required"},
		{"too long", strings.Repeat("a", maxNameLen+1), "name is too long (max 100 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateName(tt.input); got != tt.wantMsg {
				t.Errorf("validateName(%q) = %q, want %q", tt.input, got, tt.wantMsg)
			}
		})
	}
}

func TestValidateAd(t *testing.T) {
	tests := []struct {
		name                                  string
		title, imageURL, redirectURL, placing string
		wantMsg                               string
	}{
		{"valid", "Summer Sale", "https://cdn.example.com/ad.png", "https://example.com/sale", "sidebar", ""},
		{"empty title", "", "https://cdn.example.com/ad.png", "https://example.com", "sidebar", "title is required"},
		{"bad image url", "Ad", "not-a-url", "https://example.com", "sidebar", "image_url must be an absolute http(s) URL"},
		{"relative redirect", "Ad", "https://cdn.example.com/a.png", "/sale", "sidebar", "redirect_url must be an absolute http(s) URL"},
		{"ftp scheme", "Ad", "ftp://cdn.example.com/a.png", "https://example.com", "sidebar", "image_url must be an absolute http(s) URL"},
		{"unknown placement", "Ad", "https://cdn.example.com/a.png", "https://example.com", "banner", "invalid placement"},
		{"hero placement", "Ad", "https://cdn.example.com/a.png", "https://example.com", "hero", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateAd(tt.title, tt.imageURL, tt.redirectURL, tt.placing)
			if got != tt.wantMsg {
				t.Errorf("validateAd() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{"https", "https://example.com/x", ""},
		{"http", "http://example.com", ""},
		{"empty", "", "link is required"},
		{"no host", "https://", "link must be an absolute http(s) URL"},
		{"javascript scheme", "javascript:alert(1)", "link must be an absolute http(s) URL"},
		{"too long", "https://example.com/" + strings.Repeat("p", maxURLLen), "link is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateHTTPURL(tt.raw, "link"); got != tt.wantMsg {
				t.Errorf("validateHTTPURL(%q) = %q, want %q", tt.raw, got, tt.wantMsg)
			}
		})
	}
}
