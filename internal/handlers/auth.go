// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"chronicle/internal/mailer"
	"chronicle/internal/middleware"
	"chronicle/internal/session"
	"chronicle/internal/store"
)

const (
	totpIssuer = "Daily Chronicle"

	// resetTokenTTL is how long a password-reset link stays valid.
	resetTokenTTL = 10 * time.Minute
)

// Auth groups the authentication endpoints: login, the TOTP 2FA flow,
// and password reset.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
	mail     *mailer.Mailer // nil in dev without a Postmark token
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore, mail *mailer.Mailer) *Auth {
	return &Auth{sessions: sessions, users: users, mail: mail}
}

// Login checks credentials and opens a session with the 2FA challenge
// still pending. The response tells the client whether the user must
// enroll (setup) or just verify a code.
// POST /api/auth/login
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		serverError(w, "login lookup failed", err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		// Same response for unknown email and wrong password.
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	})
	if err != nil {
		serverError(w, "session create failed", err)
		return
	}

	next := "2fa_verify"
	if user.Needs2FASetup() {
		next = "2fa_setup"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"display_name": user.DisplayName,
		"role":         user.Role,
		"next":         next,
	})
}

// TwoFASetup generates a fresh TOTP secret for the logged-in user and
// returns the provisioning QR code. Allowed only before enrollment is
// complete, so a stolen password can't be used to swap the authenticator.
// POST /api/auth/2fa/setup
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		serverError(w, "user lookup for 2fa setup failed", err)
		return
	}
	if user.TOTPEnabled {
		writeError(w, http.StatusConflict, "two-factor authentication is already enrolled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		serverError(w, "totp generate failed", err)
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		serverError(w, "save totp secret failed", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		serverError(w, "qr code generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"secret":  key.Secret(),
		"qr_png":  base64.StdEncoding.EncodeToString(qrPNG),
		"otp_url": key.URL(),
	})
}

// TwoFAVerify validates a TOTP code and completes authentication. The
// first valid code finishes enrollment.
// POST /api/auth/2fa/verify
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		serverError(w, "user lookup for 2fa failed", err)
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "two-factor setup required first")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			serverError(w, "enable totp failed", err)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		serverError(w, "session update failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the current session identity.
// GET /api/auth/me
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      sess.UserID,
		"email":        sess.Email,
		"display_name": sess.DisplayName,
		"role":         sess.Role,
		"two_fa_done":  sess.TwoFADone,
	})
}

// Logout destroys the session.
// POST /api/auth/logout
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ForgotPassword issues a reset token and emails it. The response is the
// same whether or not the email exists, so the endpoint can't be used to
// probe accounts.
// POST /api/auth/forgot-password
func (a *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	accepted := func() {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "if the account exists, a reset email has been sent",
		})
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("forgot password lookup failed", "error", err)
		accepted()
		return
	}
	if user == nil {
		accepted()
		return
	}

	token, err := generateResetToken()
	if err != nil {
		slog.Error("reset token generation failed", "error", err)
		accepted()
		return
	}

	// Only the hash is persisted; the raw token goes out by email.
	hash := sha256.Sum256([]byte(token))
	expiry := time.Now().Add(resetTokenTTL)
	if err := a.users.SetResetToken(user.ID, hex.EncodeToString(hash[:]), expiry); err != nil {
		slog.Error("store reset token failed", "error", err)
		accepted()
		return
	}

	if a.mail != nil {
		if err := a.mail.SendPasswordReset(r.Context(), user.Email, token); err != nil {
			slog.Error("send reset email failed", "error", err)
		}
	} else {
		slog.Info("mailer not configured, reset token logged", "email", user.Email, "token", token)
	}

	accepted()
}

// ResetPassword consumes a reset token and sets the new password. The
// token is single-use: UpdatePassword clears it.
// POST /api/auth/reset-password/{token}
func (a *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash := sha256.Sum256([]byte(token))
	user, err := a.users.FindByResetToken(hex.EncodeToString(hash[:]))
	if err != nil {
		serverError(w, "reset token lookup failed", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusBadRequest, "invalid or expired reset token")
		return
	}

	if err := a.users.UpdatePassword(user.ID, req.Password); err != nil {
		serverError(w, "update password failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// generateResetToken creates a cryptographically random token.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
