package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	maxAge := 15 * time.Minute

	tests := []struct {
		name       string
		recordedAt string
		want       bool
	}{
		{"empty timestamp", "", false},
		{"unparsable timestamp", "yesterday-ish", false},
		{"five minutes old", "2025-12-05T09:55:00+00:00", true},
		{"twenty minutes old", "2025-12-05T09:40:00+00:00", false},
		{"exactly max age", "2025-12-05T09:45:00+00:00", true},
		{"just past max age", "2025-12-05T09:44:59+00:00", false},
		{"zulu suffix", "2025-12-05T09:55:00Z", true},
		{"fractional seconds", "2025-12-05T09:55:00.123+00:00", true},
		{"non-utc offset", "2025-12-05T10:55:00+01:00", true},
		{"future timestamp", "2025-12-05T10:05:00Z", true},
		{"date only", "2025-12-05", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isFresh(tt.recordedAt, now, maxAge))
		})
	}
}

func TestFilterFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	buses := []Bus{
		{VehicleRef: "a", RecordedAt: "2025-12-05T09:59:00Z"},
		{VehicleRef: "b", RecordedAt: ""},
		{VehicleRef: "c", RecordedAt: "2025-12-05T09:50:00Z"},
		{VehicleRef: "d", RecordedAt: "2025-12-05T09:00:00Z"},
		{VehicleRef: "e", RecordedAt: "2025-12-05T09:58:00Z"},
	}

	fresh := filterFresh(buses, now, 15*time.Minute)

	refs := make([]string, 0, len(fresh))
	for _, b := range fresh {
		refs = append(refs, b.VehicleRef)
	}
	assert.Equal(t, []string{"a", "c", "e"}, refs, "stale buses dropped, order preserved")
}

func TestFilterFreshEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, filterFresh(nil, time.Now(), defaultMaxStaleness))
}
