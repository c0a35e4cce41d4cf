// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"testing"
	"time"
)

func TestAdLive(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		status AdStatus
		start  *time.Time
		end    *time.Time
		want   bool
	}{
		{"active no window", AdStatusActive, nil, nil, true},
		{"active inside window", AdStatusActive, &yesterday, &tomorrow, true},
		{"paused", AdStatusPaused, nil, nil, false},
		{"not started yet", AdStatusActive, &tomorrow, nil, false},
		{"already ended", AdStatusActive, nil, &yesterday, false},
		{"open start", AdStatusActive, nil, &tomorrow, true},
		{"open end", AdStatusActive, &yesterday, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := Ad{Status: tt.status, StartDate: tt.start, EndDate: tt.end}
			if got := ad.Live(now); got != tt.want {
				t.Errorf("Live() = %v, want %v", got, tt.want)
			}
		})
	}
}
