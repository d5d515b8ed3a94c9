package models

import (
	"errors"
	"fmt"
	"math"
)

// CartItem represents a single selected ticket tier or menu item
type CartItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"` // Unit price in minor currency units
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// Cart represents the client-side selection being checked out
type Cart struct {
	Slug     string     `json:"slug"` // Storefront slug (event or catalog)
	Currency string     `json:"currency"`
	Items    []CartItem `json:"items"`
}

// TipKind represents how a tip amount is expressed
type TipKind string

const (
	TipNone    TipKind = "none"
	TipFlat    TipKind = "flat"    // Fixed amount in minor units
	TipPercent TipKind = "percent" // Percentage of the subtotal
)

// Tip represents an optional gratuity applied to an order
type Tip struct {
	Kind    TipKind `json:"kind"`
	Amount  int     `json:"amount,omitempty"`  // minor units, for TipFlat
	Percent float64 `json:"percent,omitempty"` // e.g. 15 for 15%, for TipPercent
}

// OrderTotals holds the derived money amounts for a selection.
// Totals are always recomputed from the current selection, tax rate
// and tip; they are never stored.
type OrderTotals struct {
	Subtotal int `json:"subtotal"` // in minor units
	Tax      int `json:"tax"`
	Tip      int `json:"tip"`
	Total    int `json:"total"`
}

// Subtotal returns the sum of unit price times quantity across all items
func (c *Cart) Subtotal() int {
	subtotal := 0
	for _, item := range c.Items {
		subtotal += item.Price * item.Quantity
	}
	return subtotal
}

// IsEmpty returns true if the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem adds a selection to the cart, merging quantities for an
// item that is already present
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ItemID == item.ItemID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Totals computes the order totals for the cart at the given tax rate
// with an optional tip
func (c *Cart) Totals(taxRate float64, tip Tip) OrderTotals {
	subtotal := c.Subtotal()
	tax := int(math.Round(float64(subtotal) * taxRate))

	tipAmount := 0
	switch tip.Kind {
	case TipFlat:
		tipAmount = tip.Amount
	case TipPercent:
		tipAmount = int(math.Round(float64(subtotal) * tip.Percent / 100))
	}
	if tipAmount < 0 {
		tipAmount = 0
	}

	return OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tipAmount,
		Total:    subtotal + tax + tipAmount,
	}
}

// Validate validates the cart item quantity against the per-order cap
// and currently reported availability
func (ci *CartItem) Validate(maxPerOrder, available int) error {
	if ci.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	max := maxPerOrder
	if max <= 0 || available < max {
		max = available
	}

	if ci.Quantity > max {
		return fmt.Errorf("only %d available", max)
	}

	return nil
}
