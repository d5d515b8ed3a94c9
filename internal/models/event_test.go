package models

import (
	"strings"
	"testing"
)

func TestTicketTier_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tier    TicketTier
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid tier",
			tier: TicketTier{
				Name:        "General Admission",
				Price:       2500, // $25.00
				Available:   100,
				MaxPerOrder: 4,
			},
			wantErr: false,
		},
		{
			name: "free tier is valid",
			tier: TicketTier{
				Name:      "Community Pass",
				Price:     0,
				Available: 50,
			},
			wantErr: false,
		},
		{
			name: "invalid name - empty",
			tier: TicketTier{
				Name:      "",
				Price:     2500,
				Available: 100,
			},
			wantErr: true,
			errMsg:  "tier name is required",
		},
		{
			name: "invalid price - negative",
			tier: TicketTier{
				Name:      "General Admission",
				Price:     -100,
				Available: 100,
			},
			wantErr: true,
			errMsg:  "tier price cannot be negative",
		},
		{
			name: "invalid name - whitespace only",
			tier: TicketTier{
				Name:      "   ",
				Price:     2500,
				Available: 100,
			},
			wantErr: true,
			errMsg:  "tier name cannot be only whitespace",
		},
		{
			name: "invalid price - too large",
			tier: TicketTier{
				Name:      "General Admission",
				Price:     1000001,
				Available: 100,
			},
			wantErr: true,
			errMsg:  "tier price cannot exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tier.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("TicketTier.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("TicketTier.Validate() error = %q, want it to contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestTicketTier_MaxQuantity(t *testing.T) {
	tests := []struct {
		name     string
		tier     TicketTier
		expected int
	}{
		{
			name:     "per-order cap binds when below availability",
			tier:     TicketTier{Available: 100, MaxPerOrder: 4},
			expected: 4,
		},
		{
			name:     "availability binds when below per-order cap",
			tier:     TicketTier{Available: 2, MaxPerOrder: 4},
			expected: 2,
		},
		{
			name:     "no per-order cap means availability binds",
			tier:     TicketTier{Available: 3},
			expected: 3,
		},
		{
			name:     "sold out",
			tier:     TicketTier{Available: 0, MaxPerOrder: 4},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tier.MaxQuantity(); got != tt.expected {
				t.Errorf("TicketTier.MaxQuantity() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTicketTier_IsSoldOutAndIsFree(t *testing.T) {
	soldOut := TicketTier{Name: "VIP", Price: 10000, Available: 0}
	if !soldOut.IsSoldOut() {
		t.Error("tier with zero availability should be sold out")
	}
	if soldOut.IsFree() {
		t.Error("paid tier should not be free")
	}

	free := TicketTier{Name: "Community Pass", Price: 0, Available: 10}
	if free.IsSoldOut() {
		t.Error("tier with availability should not be sold out")
	}
	if !free.IsFree() {
		t.Error("zero-price tier should be free")
	}
}

func TestEvent_Tier(t *testing.T) {
	event := Event{
		ID:   "ev_1",
		Slug: "launch-party",
		Tiers: []TicketTier{
			{ID: "tier_ga", Name: "General Admission"},
			{ID: "tier_vip", Name: "VIP"},
		},
	}

	tier := event.Tier("tier_vip")
	if tier == nil {
		t.Fatal("Event.Tier() returned nil for an existing tier")
	}
	if tier.Name != "VIP" {
		t.Errorf("Event.Tier() returned %q, want %q", tier.Name, "VIP")
	}

	if event.Tier("tier_missing") != nil {
		t.Error("Event.Tier() should return nil for an unknown tier id")
	}
}
