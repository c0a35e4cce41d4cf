// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chronicle/internal/mailer"
	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/store"
)

// AdminUsers groups newsroom account management. All routes here sit
// behind RequireAdmin.
type AdminUsers struct {
	users *store.UserStore
	mail  *mailer.Mailer // nil in dev without a Postmark token
}

// NewAdminUsers creates a new AdminUsers handler group.
func NewAdminUsers(users *store.UserStore, mail *mailer.Mailer) *AdminUsers {
	return &AdminUsers{users: users, mail: mail}
}

// List returns every newsroom account. Secrets never serialize: the
// model hides hashes and TOTP state behind json:"-".
// GET /api/admin/users
func (h *AdminUsers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		serverError(w, "list users failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Create adds a newsroom account. The new user must enroll in 2FA on
// first login.
// POST /api/admin/users
func (h *AdminUsers) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
		Role        string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if utf8.RuneCountInString(req.Bio) > maxBioLen {
		writeError(w, http.StatusBadRequest, "bio is too long (max 2,000 characters)")
		return
	}
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleAuthor
	} else if role != models.RoleAdmin && role != models.RoleAuthor {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		serverError(w, "email lookup failed", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "a user with that email already exists")
		return
	}

	created, err := h.users.Create(&models.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Role:        role,
	}, req.Password)
	if err != nil {
		serverError(w, "create user failed", err)
		return
	}

	if h.mail != nil {
		if err := h.mail.SendAuthorWelcome(r.Context(), created.Email, created.DisplayName); err != nil {
			slog.Error("send welcome email failed", "error", err, "email", created.Email)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": created})
}

// ResetTOTP clears a user's 2FA enrollment so they re-enroll with a new
// authenticator on next login. For lost devices.
// POST /api/admin/users/{id}/reset-2fa
func (h *AdminUsers) ResetTOTP(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		serverError(w, "find user failed", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.users.ResetTOTP(id); err != nil {
		serverError(w, "reset totp failed", err)
		return
	}

	slog.Info("2fa reset", "target", user.Email, "by", sess.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "2fa reset"})
}
