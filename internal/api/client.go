// Package api is a thin HTTP client for the storefront backend. It
// adds auth headers, JSON (de)serialization and defensive parsing of
// the backend's error envelope; all inventory and order logic lives on
// the server side of this contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pos-storefront/internal/config"
	"pos-storefront/internal/models"
)

// Client handles requests against the storefront backend API
type Client struct {
	config  config.APIConfig
	client  *http.Client
	baseURL string
}

// NewClient creates a new backend API client
func NewClient(cfg config.APIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:  cfg,
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
	}
}

// doJSON performs a request with an optional JSON body, decoding a
// successful response into out and mapping failures to *models.APIError
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	if method == http.MethodPost {
		// Lets the backend dedupe a retried finalize or lock call
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.ParseAPIError(resp.StatusCode, bodyBytes)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
