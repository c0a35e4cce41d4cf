// Package store provides database access methods for all Chronicle
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"chronicle/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, display_name, bio, role,
	totp_secret, totp_enabled, reset_token_hash, reset_token_expiry,
	created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Bio, &u.Role,
		&u.TOTPSecret, &u.TOTPEnabled, &u.ResetTokenHash, &u.ResetTokenExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByResetToken retrieves the user holding an unexpired password-reset
// token hash. Returns nil if the token is unknown or expired.
func (s *UserStore) FindByResetToken(tokenHash string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users
		 WHERE reset_token_hash = $1 AND reset_token_expiry > NOW()`, tokenHash))
	if err != nil {
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	return u, nil
}

// List returns all users ordered by display name.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(
		`SELECT ` + userColumns + ` FROM users ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Bio, &u.Role,
			&u.TOTPSecret, &u.TOTPEnabled, &u.ResetTokenHash, &u.ResetTokenExpiry,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password and returns it.
func (s *UserStore) Create(u *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	result := &models.User{}
	err = s.db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, bio, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Email, string(hash), u.DisplayName, u.Bio, u.Role,
	).Scan(
		&result.ID, &result.Email, &result.PasswordHash, &result.DisplayName,
		&result.Bio, &result.Role, &result.TOTPSecret, &result.TOTPEnabled,
		&result.ResetTokenHash, &result.ResetTokenExpiry,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return result, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *UserStore) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdatePassword replaces the user's password hash and clears any
// outstanding reset token so it can't be replayed.
func (s *UserStore) UpdatePassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE users SET password_hash = $1,
			reset_token_hash = NULL, reset_token_expiry = NULL,
			updated_at = NOW()
		WHERE id = $2
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetResetToken stores the SHA-256 hash of a password-reset token with its
// expiry. The raw token is never persisted.
func (s *UserStore) SetResetToken(id uuid.UUID, tokenHash string, expiry time.Time) error {
	_, err := s.db.Exec(`
		UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2, updated_at = NOW()
		WHERE id = $3
	`, tokenHash, expiry, id)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// SetTOTPSecret stores a user's TOTP secret during 2FA setup.
func (s *UserStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	_, err := s.db.Exec(`
		UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, id)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA enrollment as complete after the first valid code.
func (s *UserStore) EnableTOTP(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears a user's 2FA enrollment so they re-enroll on next login.
func (s *UserStore) ResetTOTP(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}
