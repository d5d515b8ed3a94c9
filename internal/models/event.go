package models

import (
	"errors"
	"strings"
	"time"
)

// Event represents a public event storefront as returned by the backend
type Event struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Venue       string       `json:"venue"`
	StartsAt    time.Time    `json:"starts_at"`
	Currency    string       `json:"currency"`
	TaxRate     float64      `json:"tax_rate"` // e.g. 0.08 for 8%
	Tiers       []TicketTier `json:"tiers"`
}

// TicketTier represents a priced category of ticket for an event
type TicketTier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // Price in minor currency units
	Available   int    `json:"available"`
	MaxPerOrder int    `json:"max_per_order"`
}

// Ticket represents an issued ticket returned by a successful purchase
type Ticket struct {
	ID       string `json:"id"`
	TierID   string `json:"tier_id"`
	TierName string `json:"tier_name,omitempty"`
	QRCode   string `json:"qr_code,omitempty"`
}

// Tier returns the tier with the given id, or nil if the event has no such tier
func (e *Event) Tier(tierID string) *TicketTier {
	for i := range e.Tiers {
		if e.Tiers[i].ID == tierID {
			return &e.Tiers[i]
		}
	}
	return nil
}

// IsSoldOut returns true if no tickets remain in the tier
func (tt *TicketTier) IsSoldOut() bool {
	return tt.Available <= 0
}

// MaxQuantity returns the largest quantity a single order may request,
// bounded by the lesser of the per-order cap and current availability
func (tt *TicketTier) MaxQuantity() int {
	max := tt.MaxPerOrder
	if max <= 0 || tt.Available < max {
		max = tt.Available
	}
	if max < 0 {
		return 0
	}
	return max
}

// IsFree returns true if the tier has no charge
func (tt *TicketTier) IsFree() bool {
	return tt.Price == 0
}

// Validate validates the ticket tier data
func (tt *TicketTier) Validate() error {
	if err := validateTierName(tt.Name); err != nil {
		return err
	}

	if err := validateTierPrice(tt.Price); err != nil {
		return err
	}

	return nil
}

// validateTierName validates a ticket tier name
func validateTierName(name string) error {
	if name == "" {
		return errors.New("tier name is required")
	}

	if len(name) > 100 {
		return errors.New("tier name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("tier name cannot be only whitespace")
	}

	return nil
}

// validateTierPrice validates a ticket tier price
func validateTierPrice(price int) error {
	if price < 0 {
		return errors.New("tier price cannot be negative")
	}

	// Maximum price of $10,000 (1,000,000 minor units)
	if price > 1000000 {
		return errors.New("tier price cannot exceed $10,000")
	}

	return nil
}
