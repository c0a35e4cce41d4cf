// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from article titles
// and category names, plus counter-suffix uniqueness resolution.
//
// The generator is Unicode-aware: anything Unicode classifies as a letter,
// digit, or combining mark survives, so Devanagari titles slug as well as
// Latin ones. Stop-word filtering covers English and Hindi.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxWords bounds slug length when callers don't pass their own limit.
const DefaultMaxWords = 12

var (
	// nonWord matches runs of anything that isn't a letter, digit, or
	// combining mark. Combining marks must survive or Devanagari matras
	// (and Latin diacritics) get stripped out of their base words.
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}\p{M}]+`)

	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given text, keeping at most
// maxWords meaningful words. Stop words are dropped except the very first
// word, which is always retained so an all-stop-word title still produces a
// non-empty slug. A maxWords of zero or less falls back to DefaultMaxWords.
// Example: "India Wins the Final, 2026!" → "india-wins-final-2026"
func Generate(text string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	clean := strings.TrimSpace(norm.NFC.String(text))
	if clean == "" {
		return ""
	}

	// Replace punctuation and symbols with spaces so adjacent words don't
	// concatenate, then split on the resulting whitespace.
	words := strings.Fields(nonWord.ReplaceAllString(clean, " "))

	meaningful := make([]string, 0, min(len(words), maxWords))
	for i, w := range words {
		normalized := strings.ToLower(w)

		// The first word is always kept, even when it is a stop word.
		if i == 0 || !isStopWord(normalized) {
			meaningful = append(meaningful, normalized)
		}

		if len(meaningful) >= maxWords {
			break
		}
	}

	result := strings.Join(meaningful, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Checker reports whether a candidate slug is already taken. The predicate
// carries the uniqueness scope (global, or siblings under one parent) and
// any self-exclusion for re-slugging an existing entity.
type Checker func(candidate string) (bool, error)

// EnsureUnique resolves base to a slug no other entity in scope currently
// holds, by probing base, base-1, base-2, … against the checker. The
// check-then-act window is not atomic; the store's unique index is the
// authoritative guard and callers retry on a persistence-time conflict.
func EnsureUnique(base string, taken Checker) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("slug uniqueness check: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
