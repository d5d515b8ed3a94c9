package models

import (
	"testing"
	"time"
)

func TestReservationSession_IsExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "in the future", expiresAt: now.Add(time.Minute), want: false},
		{name: "in the past", expiresAt: now.Add(-time.Minute), want: true},
		{name: "exactly now", expiresAt: now, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &ReservationSession{ExpiresAt: tt.expiresAt}
			if got := sess.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReservationSession_Remaining(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{name: "five seconds left", expiresAt: now.Add(5 * time.Second), want: 5},
		{name: "floors partial seconds", expiresAt: now.Add(5500 * time.Millisecond), want: 5},
		{name: "never negative", expiresAt: now.Add(-10 * time.Second), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &ReservationSession{ExpiresAt: tt.expiresAt}
			if got := sess.Remaining(now); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReservationSession_Matches(t *testing.T) {
	sess := &ReservationSession{TierID: "tier_ga", Quantity: 2}

	if !sess.Matches("tier_ga", 2) {
		t.Error("Matches() = false for the covered selection")
	}
	if sess.Matches("tier_ga", 3) {
		t.Error("Matches() = true for a different quantity")
	}
	if sess.Matches("tier_vip", 2) {
		t.Error("Matches() = true for a different tier")
	}
}
