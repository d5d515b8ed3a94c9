package models

import (
	"testing"
)

func TestCart_Totals(t *testing.T) {
	tests := []struct {
		name    string
		items   []CartItem
		taxRate float64
		tip     Tip
		want    OrderTotals
	}{
		{
			name: "two tickets at $10 with 8% tax and no tip",
			items: []CartItem{
				{ItemID: "tier_ga", Price: 1000, Quantity: 2},
			},
			taxRate: 0.08,
			tip:     Tip{Kind: TipNone},
			want:    OrderTotals{Subtotal: 2000, Tax: 160, Tip: 0, Total: 2160},
		},
		{
			name: "flat tip",
			items: []CartItem{
				{ItemID: "item_latte", Price: 450, Quantity: 1},
			},
			taxRate: 0,
			tip:     Tip{Kind: TipFlat, Amount: 100},
			want:    OrderTotals{Subtotal: 450, Tax: 0, Tip: 100, Total: 550},
		},
		{
			name: "percent tip computed on the subtotal",
			items: []CartItem{
				{ItemID: "item_latte", Price: 450, Quantity: 2},
			},
			taxRate: 0.08,
			tip:     Tip{Kind: TipPercent, Percent: 15},
			want:    OrderTotals{Subtotal: 900, Tax: 72, Tip: 135, Total: 1107},
		},
		{
			name:    "empty cart is all zeros",
			items:   nil,
			taxRate: 0.08,
			tip:     Tip{Kind: TipNone},
			want:    OrderTotals{},
		},
		{
			name: "negative flat tip is clamped to zero",
			items: []CartItem{
				{ItemID: "tier_ga", Price: 1000, Quantity: 1},
			},
			taxRate: 0,
			tip:     Tip{Kind: TipFlat, Amount: -50},
			want:    OrderTotals{Subtotal: 1000, Tax: 0, Tip: 0, Total: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{Items: tt.items}
			got := cart.Totals(tt.taxRate, tt.tip)
			if got != tt.want {
				t.Errorf("Cart.Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCart_AddItem_MergesQuantities(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ItemID: "tier_ga", Price: 1000, Quantity: 1})
	cart.AddItem(CartItem{ItemID: "tier_ga", Price: 1000, Quantity: 2})
	cart.AddItem(CartItem{ItemID: "tier_vip", Price: 5000, Quantity: 1})

	if len(cart.Items) != 2 {
		t.Fatalf("len(cart.Items) = %d, want 2", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", cart.Items[0].Quantity)
	}
	if cart.Subtotal() != 8000 {
		t.Errorf("Subtotal() = %d, want 8000", cart.Subtotal())
	}
}

func TestCartItem_Validate(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		maxPerOrder int
		available   int
		wantErr     bool
	}{
		{name: "within bounds", quantity: 2, maxPerOrder: 4, available: 10, wantErr: false},
		{name: "zero quantity", quantity: 0, maxPerOrder: 4, available: 10, wantErr: true},
		{name: "negative quantity", quantity: -1, maxPerOrder: 4, available: 10, wantErr: true},
		{name: "exceeds per-order cap", quantity: 5, maxPerOrder: 4, available: 10, wantErr: true},
		{name: "exceeds availability", quantity: 3, maxPerOrder: 4, available: 2, wantErr: true},
		{name: "no cap bounds by availability only", quantity: 6, maxPerOrder: 0, available: 10, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &CartItem{ItemID: "x", Quantity: tt.quantity}
			err := item.Validate(tt.maxPerOrder, tt.available)
			if (err != nil) != tt.wantErr {
				t.Errorf("CartItem.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
