// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/api/articles", 1, defaultPageLimit},
		{"explicit", "/api/articles?page=3&limit=25", 3, 25},
		{"limit capped", "/api/articles?limit=500", 1, maxPageLimit},
		{"zero page ignored", "/api/articles?page=0", 1, defaultPageLimit},
		{"negative limit ignored", "/api/articles?limit=-5", 1, defaultPageLimit},
		{"garbage ignored", "/api/articles?page=abc&limit=xyz", 1, defaultPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit := pageParams(r)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("pageParams() = (%d, %d), want (%d, %d)",
					page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   bool
	}{
		{"no header", "", false},
		{"browser", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"json", "application/json", true},
		{"json with params", "application/json; charset=utf-8", true},
		{"json among others", "text/html, application/json;q=0.9", true},
		{"application wildcard", "application/*", true},
		{"bare wildcard", "*/*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			if got := wantsJSON(r); got != tt.want {
				t.Errorf("wantsJSON(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"ok"}`, false},
		{"unknown field", `{"name":"ok","extra":1}`, true},
		{"trailing garbage", `{"name":"ok"}{"name":"again"}`, true},
		{"not json", `hello`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var dst payload
			err := decodeJSON(r, &dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeJSON(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, 404, "article not found")

	if w.Code != 404 {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"article not found"}` {
		t.Errorf("body = %s", got)
	}
}
