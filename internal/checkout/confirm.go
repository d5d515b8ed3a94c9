package checkout

import (
	"context"
	"errors"
	"fmt"

	"pos-storefront/internal/models"
	"pos-storefront/internal/payment"
)

// ConfirmRequest carries the customer and payment input from the
// checkout form
type ConfirmRequest struct {
	CustomerName  string
	CustomerEmail string
	Card          *payment.Card // nil for zero-total orders
	Tip           models.Tip
}

// Confirm submits the order against the live hold. The pipeline is
// strictly ordered: local validation, then tokenization, then the
// finalize call, because each stage fails independently and must
// produce its own user-facing message. Tokenization never runs
// concurrently with finalization; the finalize call needs its token.
func (c *Controller) Confirm(ctx context.Context, req *ConfirmRequest) (*Confirmation, error) {
	c.mu.Lock()
	if c.state != StateActive {
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("cannot confirm from state %s", state)
	}
	if c.confirming {
		c.mu.Unlock()
		return nil, errors.New("confirmation already in flight")
	}
	if c.session.IsExpired(c.now()) {
		once := c.expireOnce
		c.mu.Unlock()
		once.Do(c.expire)
		return nil, models.ErrHoldExpired
	}
	c.confirming = true
	sess := c.session
	c.state = StateConfirming
	c.mu.Unlock()
	c.notify()

	result, err := c.confirm(ctx, req, sess)

	c.mu.Lock()
	c.confirming = false
	if err != nil {
		// A failed attempt does not invalidate the hold; return to
		// Active so the user may retry within the remaining window,
		// unless the countdown has since run out.
		if c.state == StateConfirming {
			if sess.IsExpired(c.now()) {
				once := c.expireOnce
				c.mu.Unlock()
				once.Do(c.expire)
				return nil, err
			}
			c.state = StateActive
			c.message = err.Error()
		}
		c.mu.Unlock()
		c.notify()
		return nil, err
	}

	c.stopCountdownLocked()
	c.state = StateCompleted
	c.message = ""
	c.session = nil
	c.result = result
	c.mu.Unlock()

	// The hold has been consumed
	_ = c.store.Delete(c.slug, c.tierID, c.quantity)
	c.notify()
	return result, nil
}

func (c *Controller) confirm(ctx context.Context, req *ConfirmRequest, sess *models.ReservationSession) (*Confirmation, error) {
	// Stage 1: local validation, before any network call
	if err := models.ValidateCustomer(req.CustomerName, req.CustomerEmail); err != nil {
		return nil, err
	}

	totals := c.Totals(req.Tip)

	// Stage 2: tokenization, skipped entirely for free orders
	paymentMethodID := models.FreePaymentMethodID
	if totals.Total > 0 {
		if req.Card == nil {
			return nil, errors.New("payment details are required")
		}

		token, err := c.tokenizer.CreatePaymentMethod(ctx, req.Card)
		if err != nil {
			return nil, fmt.Errorf("payment could not be processed: %s", err.Error())
		}
		paymentMethodID = token
	}

	// The hold may have lapsed while tokenizing; never send a finalize
	// call after the locally computed deadline
	if sess.IsExpired(c.now()) {
		return nil, models.ErrHoldExpired
	}

	// Stage 3: finalize against the reservation
	purchase, err := c.api.PurchaseTickets(ctx, c.slug, &models.PurchaseRequest{
		SessionID:       sess.SessionID,
		TierID:          sess.TierID,
		Quantity:        sess.Quantity,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		PaymentMethodID: paymentMethodID,
	})
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("order could not be completed: %s", apiErr.Message)
		}
		return nil, errors.New("order could not be completed, please try again")
	}

	return &Confirmation{
		OrderID:       purchase.OrderID,
		Tickets:       purchase.Tickets,
		CustomerEmail: req.CustomerEmail,
	}, nil
}

// Totals recomputes the order totals from the current selection, tax
// rate and tip. Never cached.
func (c *Controller) Totals(tip models.Tip) models.OrderTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked()
	taxRate := 0.0
	if c.event != nil {
		taxRate = c.event.TaxRate
	}
	return cart.Totals(taxRate, tip)
}

// Cart returns the current selection as cart items
func (c *Controller) Cart() *models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cartLocked()
}

func (c *Controller) cartLocked() *models.Cart {
	cart := &models.Cart{Slug: c.slug}
	if c.event == nil {
		return cart
	}
	cart.Currency = c.event.Currency

	if tier := c.event.Tier(c.tierID); tier != nil {
		cart.Items = append(cart.Items, models.CartItem{
			ItemID:   tier.ID,
			Name:     tier.Name,
			Price:    tier.Price,
			Quantity: c.quantity,
		})
	}
	return cart
}
