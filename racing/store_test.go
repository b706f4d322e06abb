package racing

import (
	"testing"
	"time"
)

func TestIsStale(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		fetchedAt time.Time
		want      bool
	}{
		{"just fetched", now, false},
		{"well within TTL", now.Add(-30 * time.Minute), false},
		{"one second before TTL", now.Add(-TTL + time.Second), false},
		{"exactly TTL is stale", now.Add(-TTL), true},
		{"past TTL", now.Add(-2 * time.Hour), true},
	}

	for _, tt := range tests {
		if got := IsStale(tt.fetchedAt, now); got != tt.want {
			t.Errorf("%s: IsStale(%v, %v) = %v, want %v", tt.name, tt.fetchedAt, now, got, tt.want)
		}
	}
}
