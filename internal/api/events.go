package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"pos-storefront/internal/models"
)

// GetEvent fetches a public event with its tiers and current availability
func (c *Client) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/public/%s", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// LockTickets asks the backend to place a time-limited hold on the
// requested tier and quantity
func (c *Client) LockTickets(ctx context.Context, slug string, req *models.LockRequest) (*models.LockResponse, error) {
	var lock models.LockResponse
	path := fmt.Sprintf("/events/public/%s/lock", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

// GetLock re-validates an existing hold. The backend is the source of
// truth: a hold that has lapsed server-side errors here even if the
// local copy still looks live.
func (c *Client) GetLock(ctx context.Context, slug, sessionID string) (*models.LockResponse, error) {
	var lock models.LockResponse
	path := fmt.Sprintf("/events/public/%s/lock/%s", url.PathEscape(slug), url.PathEscape(sessionID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

// PurchaseTickets finalizes an order against a live hold
func (c *Client) PurchaseTickets(ctx context.Context, slug string, req *models.PurchaseRequest) (*models.PurchaseResponse, error) {
	var purchase models.PurchaseResponse
	path := fmt.Sprintf("/events/public/%s/purchase", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}
