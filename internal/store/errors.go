// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlugConflict is returned when a write trips a slug unique index.
// The application-level uniqueness check passed but another request claimed
// the slug in between; the unique index is the authoritative guard and the
// caller re-resolves the slug and retries.
var ErrSlugConflict = errors.New("slug already taken")

// uniqueViolation is the Postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// Unique-index constraint names from the schema. The articles table also
// carries a unique index on public_id, so a 23505 alone doesn't identify
// the slug; the constraint name does.
const (
	articleSlugConstraint     = "articles_slug_key"
	categorySlugConstraint    = "categories_slug_key"
	subcategorySlugConstraint = "subcategories_category_id_slug_key"
)

// isUniqueViolation reports whether err is a Postgres unique-index
// rejection on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == constraint
}

// nullableTime maps a zero time to SQL NULL so COALESCE defaults apply.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
