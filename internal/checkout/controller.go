// Package checkout orchestrates the ticket reservation and payment
// flow: fetch the event, place or resume a hold, run the countdown,
// and confirm payment against the remaining hold window. The backend
// owns the hold itself; this controller owns the client-side state
// machine around it.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pos-storefront/internal/models"
	"pos-storefront/internal/payment"
	"pos-storefront/internal/session"
)

// BackendAPI is the slice of the gateway client the controller uses
type BackendAPI interface {
	GetEvent(ctx context.Context, slug string) (*models.Event, error)
	LockTickets(ctx context.Context, slug string, req *models.LockRequest) (*models.LockResponse, error)
	GetLock(ctx context.Context, slug, sessionID string) (*models.LockResponse, error)
	PurchaseTickets(ctx context.Context, slug string, req *models.PurchaseRequest) (*models.PurchaseResponse, error)
}

// Tokenizer produces a payment method token from entered card details
type Tokenizer interface {
	CreatePaymentMethod(ctx context.Context, card *payment.Card) (string, error)
}

// DefaultUrgencyThreshold is the remaining time below which the
// countdown display escalates
const DefaultUrgencyThreshold = 60 * time.Second

// Controller drives one checkout view's reservation and payment flow
type Controller struct {
	api       BackendAPI
	tokenizer Tokenizer
	store     session.Store

	now      func() time.Time
	urgency  time.Duration
	onChange func(Snapshot)

	mu         sync.Mutex
	state      State
	slug       string
	event      *models.Event
	tierID     string
	quantity   int
	session    *models.ReservationSession
	message    string
	result     *Confirmation
	locking    bool
	confirming bool
	expireOnce *sync.Once
	stopTicker chan struct{}
}

// Confirmation carries the handoff to the confirmation view. It never
// carries payment credentials.
type Confirmation struct {
	OrderID       string
	Tickets       []models.Ticket
	CustomerEmail string
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides the time source (used by tests)
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithUrgencyThreshold overrides the countdown escalation threshold
func WithUrgencyThreshold(d time.Duration) Option {
	return func(c *Controller) { c.urgency = d }
}

// WithObserver registers a callback invoked after every state change
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController creates a checkout flow controller
func NewController(api BackendAPI, tokenizer Tokenizer, store session.Store, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		tokenizer: tokenizer,
		store:     store,
		now:       time.Now,
		urgency:   DefaultUrgencyThreshold,
		state:     StateInitializing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start enters the checkout view for a selection: restore a saved hold
// if one is still live, otherwise place a fresh lock
func (c *Controller) Start(ctx context.Context, slug, tierID string, quantity int) error {
	c.mu.Lock()
	if c.locking {
		c.mu.Unlock()
		return errors.New("lock request already in flight")
	}
	c.locking = true
	c.state = StateInitializing
	c.slug = slug
	c.tierID = tierID
	c.quantity = quantity
	c.message = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.locking = false
		c.mu.Unlock()
	}()

	event, err := c.api.GetEvent(ctx, slug)
	if err != nil {
		c.fail(err)
		return err
	}

	tier := event.Tier(tierID)
	if tier == nil {
		c.setTerminal(StateFailed, "this ticket is no longer offered")
		return models.ErrTierNotFound
	}

	if quantity < 1 || quantity > tier.MaxQuantity() {
		if tier.IsSoldOut() {
			c.setTerminal(StateSoldOut, "this ticket is sold out")
			return models.ErrSoldOut
		}
		c.setTerminal(StateFailed, fmt.Sprintf("only %d available", tier.MaxQuantity()))
		return models.ErrInvalidInput
	}

	c.mu.Lock()
	c.event = event
	c.mu.Unlock()

	if restored := c.tryRestore(ctx); restored {
		return nil
	}

	return c.lock(ctx)
}

// tryRestore attempts to resume a previously saved hold. The backend
// re-validation is authoritative; any failure just discards the saved
// record so a fresh lock is attempted.
func (c *Controller) tryRestore(ctx context.Context) bool {
	saved, err := c.store.Load(c.slug, c.tierID, c.quantity)
	if err != nil {
		return false
	}

	if saved.IsExpired(c.now()) {
		_ = c.store.Delete(c.slug, c.tierID, c.quantity)
		return false
	}

	live, err := c.api.GetLock(ctx, c.slug, saved.SessionID)
	if err != nil {
		_ = c.store.Delete(c.slug, c.tierID, c.quantity)
		return false
	}

	// The backend's view of the hold replaces the saved copy. A hold
	// that no longer covers the requested selection is discarded.
	restored := &models.ReservationSession{
		SessionID: live.SessionID,
		ExpiresAt: live.ExpiresAt,
		TierID:    live.TierID,
		Quantity:  live.Quantity,
	}
	if !restored.Matches(c.tierID, c.quantity) || restored.IsExpired(c.now()) {
		_ = c.store.Delete(c.slug, c.tierID, c.quantity)
		return false
	}

	c.activate(restored)
	return true
}

// lock places a fresh hold, routing the three backend outcomes the
// flow must distinguish: sold out, limit exceeded, and everything else
func (c *Controller) lock(ctx context.Context) error {
	c.setState(StateLocking, "")

	lockResp, err := c.api.LockTickets(ctx, c.slug, &models.LockRequest{
		TierID:   c.tierID,
		Quantity: c.quantity,
	})
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.InsufficientFor(c.quantity):
				c.setTerminal(StateSoldOut, "this ticket is sold out")
				return models.ErrSoldOut
			case apiErr.IsLimitExceeded():
				// The backend's message is surfaced verbatim
				c.setTerminal(StateLimitExceeded, apiErr.Message)
				return models.ErrLimitExceeded
			}
		}
		c.fail(err)
		return err
	}

	sess := &models.ReservationSession{
		SessionID: lockResp.SessionID,
		ExpiresAt: lockResp.ExpiresAt,
		TierID:    c.tierID,
		Quantity:  c.quantity,
	}
	c.activate(sess)
	return nil
}

// activate enters the Active state with a live hold, persisting the
// session and starting the countdown
func (c *Controller) activate(sess *models.ReservationSession) {
	_ = c.store.Save(c.slug, c.tierID, c.quantity, sess)

	c.mu.Lock()
	c.session = sess
	c.state = StateActive
	c.message = ""
	c.expireOnce = &sync.Once{}
	c.startCountdownLocked()
	c.mu.Unlock()

	c.notify()
}

// Retry re-runs the locking step from a retryable state. Availability
// is re-checked through GetEvent inside Start, since time has passed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanRetry() {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("cannot retry from state %s", state)
	}
	slug, tierID, quantity := c.slug, c.tierID, c.quantity
	c.mu.Unlock()

	return c.Start(ctx, slug, tierID, quantity)
}

// Cancel abandons the checkout locally. No release call is made; the
// hold elapses at its backend-enforced expiry.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state.IsTerminal() {
		c.mu.Unlock()
		return
	}
	c.stopCountdownLocked()
	c.state = StateCancelled
	c.session = nil
	c.mu.Unlock()

	_ = c.store.Delete(c.slug, c.tierID, c.quantity)
	c.notify()
}

// Close releases the countdown ticker on view teardown
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopCountdownLocked()
	c.mu.Unlock()
}

// Snapshot returns the current display state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current flow state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the confirmation handoff after a completed checkout
func (c *Controller) Result() *Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Remaining returns the whole seconds left on the hold
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return c.session.Remaining(c.now())
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   c.state,
		Message: c.message,
	}
	if c.session != nil && (c.state == StateActive || c.state == StateConfirming) {
		snap.Remaining = c.session.Remaining(c.now())
		snap.Urgent = time.Duration(snap.Remaining)*time.Second < c.urgency
	}
	return snap
}

func (c *Controller) setState(state State, message string) {
	c.mu.Lock()
	c.state = state
	c.message = message
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) setTerminal(state State, message string) {
	c.mu.Lock()
	c.stopCountdownLocked()
	c.state = state
	c.message = message
	c.mu.Unlock()
	c.notify()
}

// fail enters the generic retryable error state with a display message
func (c *Controller) fail(err error) {
	message := "something went wrong, please try again"
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}
	c.setTerminal(StateFailed, message)
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.onChange(snap)
}
