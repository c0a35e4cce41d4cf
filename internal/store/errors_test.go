// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgUniqueErr(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolation, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "slug index match",
			err:        pgUniqueErr(articleSlugConstraint),
			constraint: articleSlugConstraint,
			want:       true,
		},
		{
			// A lost public-ID race must not be reported as a slug
			// conflict, or the caller would uselessly re-resolve the slug
			// and keep colliding on the same ID.
			name:       "public id index is not a slug conflict",
			err:        pgUniqueErr("articles_public_id_key"),
			constraint: articleSlugConstraint,
			want:       false,
		},
		{
			name:       "category name index is not a slug conflict",
			err:        pgUniqueErr("categories_name_key"),
			constraint: categorySlugConstraint,
			want:       false,
		},
		{
			name:       "wrapped error still recognized",
			err:        fmt.Errorf("create article: %w", pgUniqueErr(articleSlugConstraint)),
			constraint: articleSlugConstraint,
			want:       true,
		},
		{
			name:       "other sqlstate",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: articleSlugConstraint},
			constraint: articleSlugConstraint,
			want:       false,
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			constraint: articleSlugConstraint,
			want:       false,
		},
		{
			name:       "nil error",
			err:        nil,
			constraint: articleSlugConstraint,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("isUniqueViolation(%v, %q) = %v, want %v",
					tt.err, tt.constraint, got, tt.want)
			}
		})
	}
}

func TestNullableTime(t *testing.T) {
	if got := nullableTime(time.Time{}); got != nil {
		t.Errorf("nullableTime(zero) = %v, want nil", got)
	}

	now := time.Now()
	if got := nullableTime(now); got != now {
		t.Errorf("nullableTime(%v) = %v", now, got)
	}
}
