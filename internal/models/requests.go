package models

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// FreePaymentMethodID is the sentinel payment method id sent when the
// order total is zero and no card was tokenized.
const FreePaymentMethodID = "free"

// LockRequest represents the body of a reservation-lock call
type LockRequest struct {
	TierID   string `json:"tierId"`
	Quantity int    `json:"quantity"`
}

// LockResponse represents a successfully created or restored hold
type LockResponse struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
	TierID    string    `json:"tierId,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
}

// PurchaseRequest represents the order-finalization body for tickets
type PurchaseRequest struct {
	SessionID       string `json:"sessionId"`
	TierID          string `json:"tierId"`
	Quantity        int    `json:"quantity"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerName    string `json:"customerName"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// PurchaseResponse represents the result of a finalized ticket order
type PurchaseResponse struct {
	OrderID string   `json:"orderId"`
	Tickets []Ticket `json:"tickets"`
}

// PreorderItem represents one line of a menu preorder
type PreorderItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// PreorderRequest represents the order-finalization body for preorders
type PreorderRequest struct {
	SessionID       string         `json:"sessionId,omitempty"`
	Items           []PreorderItem `json:"items"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerName    string         `json:"customerName"`
	PaymentType     PaymentType    `json:"paymentType"`
	PaymentMethodID string         `json:"paymentMethodId,omitempty"`
	Tip             int            `json:"tip,omitempty"` // in minor units
}

// PreorderResponse represents a placed preorder
type PreorderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Total   int    `json:"total"` // in minor units
}

// PreorderStatus represents the polled state of a preorder
type PreorderStatus struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recognized machine-readable error codes from the backend. Any other
// code, or no code at all, is treated as a generic failure.
const (
	CodeSoldOut       = "sold_out"
	CodeLimitExceeded = "limit_exceeded"
)

// APIError represents the backend's error envelope. Fields are
// optional on the wire and parsed defensively; Message is always
// usable for display. Available is a pointer so an absent field is
// distinguishable from an explicit zero.
type APIError struct {
	Message    string `json:"error"`
	Code       string `json:"code,omitempty"`
	Available  *int   `json:"available,omitempty"`
	StatusCode int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

// IsSoldOut returns true if the backend reported inventory exhaustion,
// either through the sold-out code or an explicitly reported zero
// availability. An absent available field never counts as zero.
func (e *APIError) IsSoldOut() bool {
	if e.Code == CodeSoldOut {
		return true
	}
	return e.Available != nil && *e.Available <= 0
}

// InsufficientFor returns true if the backend reported fewer remaining
// tickets than the requested quantity
func (e *APIError) InsufficientFor(quantity int) bool {
	if e.IsSoldOut() {
		return true
	}
	return e.Available != nil && *e.Available < quantity
}

// IsLimitExceeded returns true for per-customer or per-IP cap errors
func (e *APIError) IsLimitExceeded() bool {
	return e.Code == CodeLimitExceeded
}

// ParseAPIError decodes a backend error body, tolerating missing or
// malformed fields. It never fails: an unreadable body produces a
// generic message carrying the HTTP status.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		if apiErr.Message == "" {
			apiErr.Message = "the server could not process the request"
		}
	}
	return apiErr
}

var customerEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateCustomer validates the customer info required before any
// finalize call is issued
func ValidateCustomer(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("customer name is required")
	}

	if email == "" {
		return errors.New("customer email is required")
	}

	if len(email) > 255 {
		return errors.New("customer email must be less than 255 characters")
	}

	if !customerEmailRegex.MatchString(email) {
		return errors.New("customer email format is invalid")
	}

	return nil
}
