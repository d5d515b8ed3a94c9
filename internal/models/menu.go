package models

// Catalog represents a public menu storefront for preorders
type Catalog struct {
	ID       string     `json:"id"`
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	Currency string     `json:"currency"`
	TaxRate  float64    `json:"tax_rate"`
	Items    []MenuItem `json:"items"`
}

// MenuItem represents an orderable item on the menu
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"` // Price in minor currency units
	Category    string   `json:"category,omitempty"`
	Available   int      `json:"available"`
	Modifiers   []string `json:"modifiers,omitempty"`
}

// PaymentType represents how a preorder will be paid
type PaymentType string

const (
	PayNow      PaymentType = "pay_now"
	PayAtPickup PaymentType = "pay_at_pickup"
)

// RequiresCard returns true if the payment type needs a tokenized
// payment method before the order can be placed
func (pt PaymentType) RequiresCard() bool {
	return pt == PayNow
}

// IsValid returns true for a recognized payment type
func (pt PaymentType) IsValid() bool {
	return pt == PayNow || pt == PayAtPickup
}

// Item returns the menu item with the given id, or nil if not present
func (c *Catalog) Item(itemID string) *MenuItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}
