// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publicid allocates the external-facing numeric identifiers that
// appear at the tail of article URLs. IDs are random (never sequential) so
// article counts and publication order can't be inferred from them, and they
// keep internal storage keys out of public URLs entirely.
package publicid

import (
	"errors"
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Length is the fixed digit count of a public ID (10^12 ID space).
	Length = 12

	// maxAttempts bounds collision retries. At 10^12 IDs, repeated
	// collisions indicate a broken store, not bad luck, so allocation
	// fails loudly instead of looping forever.
	maxAttempts = 10

	// alphabet restricts IDs to decimal digits.
	alphabet = "0123456789"
)

// ErrAllocationExhausted is returned when every generation attempt collided
// with an existing ID. The caller must abort the create operation.
var ErrAllocationExhausted = errors.New("public id allocation exhausted retry budget")

// pattern matches a well-formed public ID.
var pattern = regexp.MustCompile(`^[0-9]{12}$`)

// Valid reports whether id is a well-formed 12-digit public ID.
func Valid(id string) bool {
	return pattern.MatchString(id)
}

// ExistsFunc reports whether an ID is already assigned within the
// allocator's scope (one entity type).
type ExistsFunc func(id string) (bool, error)

// Allocator generates collision-free public IDs against a persistent store.
type Allocator struct {
	exists   ExistsFunc
	attempts int
}

// NewAllocator creates an Allocator that checks candidates with exists.
func NewAllocator(exists ExistsFunc) *Allocator {
	return &Allocator{exists: exists, attempts: maxAttempts}
}

// Allocate returns a fresh 12-digit ID not present in the store, or
// ErrAllocationExhausted after the retry budget is spent. The returned ID is
// immutable once assigned to an entity; callers never regenerate it.
func (a *Allocator) Allocate() (string, error) {
	for range a.attempts {
		id, err := gonanoid.Generate(alphabet, Length)
		if err != nil {
			return "", fmt.Errorf("generate public id: %w", err)
		}

		taken, err := a.exists(id)
		if err != nil {
			return "", fmt.Errorf("public id existence check: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrAllocationExhausted
}
