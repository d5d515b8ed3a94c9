// Package session persists the client-held reservation record so a
// page reload mid-checkout resumes the existing hold instead of
// silently locking duplicate inventory. The record is the only
// checkout state persisted across reloads.
package session

import (
	"fmt"

	"pos-storefront/internal/models"
)

// Store holds reservation sessions keyed by (storefront slug, selection)
type Store interface {
	Save(slug, tierID string, quantity int, sess *models.ReservationSession) error
	Load(slug, tierID string, quantity int) (*models.ReservationSession, error)
	Delete(slug, tierID string, quantity int) error
}

// Key derives the storage key for a storefront slug and selection
func Key(slug, tierID string, quantity int) string {
	return fmt.Sprintf("checkout:%s:%s:%d", slug, tierID, quantity)
}
