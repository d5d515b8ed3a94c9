package models

import (
	"time"
)

// ReservationSession represents a client-held record of a backend hold
// on tickets or menu items. The backend is the source of truth for the
// hold itself; this record only lets a reloaded page resume checkout
// instead of silently locking duplicate inventory.
type ReservationSession struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	TierID    string    `json:"tier_id"`
	Quantity  int       `json:"quantity"`
}

// IsExpired returns true if the hold has passed its expiry
func (rs *ReservationSession) IsExpired(now time.Time) bool {
	return !now.Before(rs.ExpiresAt)
}

// Remaining returns the whole seconds left on the hold, never negative
func (rs *ReservationSession) Remaining(now time.Time) int {
	remaining := rs.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}

// Matches returns true if the saved session covers the given selection
func (rs *ReservationSession) Matches(tierID string, quantity int) bool {
	return rs.TierID == tierID && rs.Quantity == quantity
}
