package main

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pos-storefront/internal/models"
)

// holdTTL is how long a reservation lock lives before the server
// releases the inventory back
const holdTTL = 5 * time.Minute

// maxPerCustomer caps total tickets per customer email across orders
const maxPerCustomer = 8

func intPtr(v int) *int {
	return &v
}

// hold tracks a live reservation against the seeded event
type hold struct {
	SessionID string
	TierID    string
	Quantity  int
	ExpiresAt time.Time
}

// memoryStore is the devserver's in-memory inventory. It exists to
// exercise the client contract, not to provide consistency guarantees.
type memoryStore struct {
	mu        sync.Mutex
	event     *models.Event
	catalog   *models.Catalog
	holds     map[string]*hold
	purchased map[string]int // tickets per customer email
	preorders map[string]*models.PreorderStatus
	emails    map[string]string // preorder id -> customer email
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		event:     seedEvent(),
		catalog:   seedCatalog(),
		holds:     make(map[string]*hold),
		purchased: make(map[string]int),
		preorders: make(map[string]*models.PreorderStatus),
		emails:    make(map[string]string),
	}
}

func seedEvent() *models.Event {
	return &models.Event{
		ID:       "ev_1",
		Slug:     "launch-party",
		Title:    "Launch Party",
		Venue:    "The Warehouse",
		StartsAt: time.Now().Add(14 * 24 * time.Hour),
		Currency: "USD",
		TaxRate:  0.08,
		Tiers: []models.TicketTier{
			{ID: "tier_ga", Name: "General Admission", Price: 1000, Available: 120, MaxPerOrder: 4},
			{ID: "tier_vip", Name: "VIP", Price: 5000, Available: 20, MaxPerOrder: 2},
			{ID: "tier_free", Name: "Community Pass", Price: 0, Available: 50, MaxPerOrder: 1},
		},
	}
}

func seedCatalog() *models.Catalog {
	return &models.Catalog{
		ID:       "cat_1",
		Slug:     "corner-cafe",
		Name:     "Corner Cafe",
		Currency: "USD",
		TaxRate:  0.08,
		Items: []models.MenuItem{
			{ID: "item_latte", Name: "Latte", Price: 450, Category: "drinks", Available: 100},
			{ID: "item_drip", Name: "Drip Coffee", Price: 300, Category: "drinks", Available: 100},
			{ID: "item_croissant", Name: "Croissant", Price: 375, Category: "pastries", Available: 24},
		},
	}
}

// expireHoldsLocked releases inventory for lapsed holds. Callers must
// hold s.mu.
func (s *memoryStore) expireHoldsLocked(now time.Time) {
	for id, h := range s.holds {
		if !now.Before(h.ExpiresAt) {
			if tier := s.event.Tier(h.TierID); tier != nil {
				tier.Available += h.Quantity
			}
			delete(s.holds, id)
		}
	}
}

// lock reserves quantity from a tier, returning the hold or a typed
// API error for the two outcomes the client must distinguish
func (s *memoryStore) lock(tierID string, quantity int) (*hold, *models.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.expireHoldsLocked(now)

	tier := s.event.Tier(tierID)
	if tier == nil {
		return nil, &models.APIError{Message: "ticket tier not found", StatusCode: 404}
	}

	if quantity < 1 || (tier.MaxPerOrder > 0 && quantity > tier.MaxPerOrder) {
		return nil, &models.APIError{
			Message:    "requested quantity exceeds the per-order limit",
			Code:       models.CodeLimitExceeded,
			StatusCode: 422,
		}
	}

	if tier.Available < quantity {
		return nil, &models.APIError{
			Message:    "sold out",
			Code:       models.CodeSoldOut,
			Available:  intPtr(tier.Available),
			StatusCode: 409,
		}
	}

	tier.Available -= quantity
	h := &hold{
		SessionID: uuid.New().String(),
		TierID:    tierID,
		Quantity:  quantity,
		ExpiresAt: now.Add(holdTTL),
	}
	s.holds[h.SessionID] = h
	return h, nil
}

// getHold re-validates an existing hold
func (s *memoryStore) getHold(sessionID string) (*hold, *models.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireHoldsLocked(time.Now())

	h, ok := s.holds[sessionID]
	if !ok {
		return nil, &models.APIError{Message: "hold not found or expired", StatusCode: 404}
	}
	return h, nil
}

// purchase consumes a hold and issues tickets
func (s *memoryStore) purchase(req *models.PurchaseRequest) (*models.PurchaseResponse, *models.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.expireHoldsLocked(now)

	h, ok := s.holds[req.SessionID]
	if !ok {
		return nil, &models.APIError{Message: "hold not found or expired", StatusCode: 404}
	}

	if h.TierID != req.TierID || h.Quantity != req.Quantity {
		return nil, &models.APIError{Message: "purchase does not match the hold", StatusCode: 422}
	}

	if s.purchased[req.CustomerEmail]+req.Quantity > maxPerCustomer {
		return nil, &models.APIError{
			Message:    "ticket limit reached for this customer",
			Code:       models.CodeLimitExceeded,
			StatusCode: 422,
		}
	}

	tier := s.event.Tier(h.TierID)
	if tier != nil && tier.Price > 0 && req.PaymentMethodID == models.FreePaymentMethodID {
		return nil, &models.APIError{Message: "payment method is required", StatusCode: 422}
	}

	delete(s.holds, req.SessionID)
	s.purchased[req.CustomerEmail] += req.Quantity

	resp := &models.PurchaseResponse{OrderID: uuid.New().String()}
	for i := 0; i < req.Quantity; i++ {
		ticket := models.Ticket{
			ID:     uuid.New().String(),
			TierID: h.TierID,
			QRCode: uuid.New().String(),
		}
		if tier != nil {
			ticket.TierName = tier.Name
		}
		resp.Tickets = append(resp.Tickets, ticket)
	}
	return resp, nil
}

// preorder places a menu preorder and tracks it for status polling
func (s *memoryStore) preorder(req *models.PreorderRequest) (*models.PreorderResponse, *models.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := req.Tip
	for _, line := range req.Items {
		item := s.catalog.Item(line.ItemID)
		if item == nil {
			return nil, &models.APIError{Message: "menu item not found", StatusCode: 404}
		}
		if item.Available < line.Quantity {
			return nil, &models.APIError{
				Message:    "sold out",
				Code:       models.CodeSoldOut,
				Available:  intPtr(item.Available),
				StatusCode: 409,
			}
		}
		total += item.Price * line.Quantity
	}

	for _, line := range req.Items {
		s.catalog.Item(line.ItemID).Available -= line.Quantity
	}

	status := "received"
	if req.PaymentType == models.PayAtPickup {
		status = "awaiting_pickup"
	}

	orderID := uuid.New().String()
	s.preorders[orderID] = &models.PreorderStatus{
		OrderID:   orderID,
		Status:    status,
		Total:     total,
		UpdatedAt: time.Now(),
	}
	s.emails[orderID] = req.CustomerEmail

	return &models.PreorderResponse{OrderID: orderID, Status: status, Total: total}, nil
}

// preorderStatus returns a preorder's state, gated on the email
// supplied at creation
func (s *memoryStore) preorderStatus(orderID, email string) (*models.PreorderStatus, *models.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.preorders[orderID]
	if !ok || s.emails[orderID] != email {
		return nil, &models.APIError{Message: "order not found", StatusCode: 404}
	}
	return status, nil
}
