// Package handlers implements the HTTP API: the public read endpoints,
// the session/2FA auth flow, and the admin CRUD surface. All responses
// are JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError sends the uniform error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// serverError logs the underlying error and sends an opaque 500.
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON parses the request body into dst, rejecting unknown fields
// so client typos surface as 400s instead of silently dropped input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	// A second token means trailing garbage after the JSON value.
	if dec.More() {
		return errors.New("invalid request body: unexpected trailing data")
	}
	return nil
}

// pageParams reads ?page= and ?limit= with defaults and a cap.
func pageParams(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// wantsJSON reports whether the client asked for JSON explicitly. API
// clients that do are served the canonical path in the payload instead
// of a redirect; browsers (and crawlers) get the 301.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if media == "application/json" || media == "application/*" {
			return true
		}
	}
	return false
}
