// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"strings"
	"testing"
)

// The migration set ships inside the binary; a missing or malformed file
// would only surface at boot against a live database. Check the embedded
// directory here instead.
func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded migrations found")
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected non-SQL file embedded: %s", name)
			continue
		}

		body, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(body), "-- +goose Up") {
			t.Errorf("%s is missing the goose Up marker", name)
		}
		if !strings.Contains(string(body), "-- +goose Down") {
			t.Errorf("%s is missing the goose Down marker", name)
		}
	}
}
