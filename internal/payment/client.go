// Package payment tokenizes entered payment methods against the
// processor's API. Only the resulting opaque token is handed to the
// storefront backend.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"pos-storefront/internal/config"
)

// Client handles payment method tokenization via the processor API
type Client struct {
	config  config.PaymentConfig
	client  *http.Client
	baseURL string
}

// NewClient creates a new processor client
func NewClient(cfg config.PaymentConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}

	return &Client{
		config:  cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// processorError represents the processor's error envelope
type processorError struct {
	Inner struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (e *processorError) Error() string {
	if e.Inner.Message == "" {
		return "payment processor error"
	}
	return e.Inner.Message
}

// paymentMethod is the subset of the tokenization response we use
type paymentMethod struct {
	ID string `json:"id"`
}

// CreatePaymentMethod validates and tokenizes a card, returning the
// opaque payment method id to attach to the finalize call
func (c *Client) CreatePaymentMethod(ctx context.Context, card *Card) (string, error) {
	if err := card.Validate(); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("type", "card")
	form.Set("card[number]", strings.ReplaceAll(card.Number, " ", ""))
	form.Set("card[exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("card[exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("card[cvc]", card.CVC)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_methods", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create tokenization request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.PublishableKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment processor: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read processor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var procErr processorError
		if err := json.Unmarshal(bodyBytes, &procErr); err != nil || procErr.Inner.Message == "" {
			return "", fmt.Errorf("tokenization failed (status %d)", resp.StatusCode)
		}
		return "", &procErr
	}

	var method paymentMethod
	if err := json.Unmarshal(bodyBytes, &method); err != nil {
		return "", fmt.Errorf("failed to decode processor response: %w", err)
	}

	if method.ID == "" {
		return "", fmt.Errorf("processor returned no payment method id")
	}

	return method.ID, nil
}

// The process-wide handle is initialized lazily on first use and
// cached for the lifetime of the page session. ResetDefault is the
// explicit invalidation hook; nothing refreshes the handle silently.
var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Default returns the memoized processor client, creating it from the
// environment configuration on first use
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient != nil {
		return defaultClient, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load payment config: %w", err)
	}

	defaultClient = NewClient(cfg.Payment)
	return defaultClient, nil
}

// ResetDefault discards the memoized client so the next Default call
// re-initializes it
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = nil
}
