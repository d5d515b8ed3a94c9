package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"pos-storefront/internal/models"
)

// GetMenu fetches a public menu catalog with its items and availability
func (c *Client) GetMenu(ctx context.Context, slug string) (*models.Catalog, error) {
	var catalog models.Catalog
	path := fmt.Sprintf("/menu/public/%s", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// CreatePreorder places a menu preorder. Pay-at-pickup orders carry no
// payment method id; pay-now orders carry the tokenized method.
func (c *Client) CreatePreorder(ctx context.Context, slug string, req *models.PreorderRequest) (*models.PreorderResponse, error) {
	var preorder models.PreorderResponse
	path := fmt.Sprintf("/menu/public/%s/preorder", url.PathEscape(slug))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &preorder); err != nil {
		return nil, err
	}
	return &preorder, nil
}

// GetPreorderStatus polls a preorder's state. The email supplied at
// creation acts as a simple possession check.
func (c *Client) GetPreorderStatus(ctx context.Context, slug, orderID, email string) (*models.PreorderStatus, error) {
	var status models.PreorderStatus
	path := fmt.Sprintf("/menu/public/%s/preorder/%s?email=%s",
		url.PathEscape(slug), url.PathEscape(orderID), url.QueryEscape(email))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
