package models

import "errors"

// Common errors used throughout the checkout client
var (
	ErrTierNotFound    = errors.New("ticket tier not found")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrHoldExpired     = errors.New("reservation hold has expired")
	ErrSoldOut         = errors.New("not enough tickets available")
	ErrLimitExceeded   = errors.New("purchase limit exceeded")
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("saved checkout session not found")
)
