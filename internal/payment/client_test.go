package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-storefront/internal/config"
)

func newTestProcessor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.PaymentConfig{
		BaseURL:        server.URL,
		PublishableKey: "pk_test_123",
	})
}

func TestClient_CreatePaymentMethod(t *testing.T) {
	var requests int
	client := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/v1/payment_methods", r.URL.Path)
		assert.Equal(t, "Bearer pk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "card", r.Form.Get("type"))
		assert.Equal(t, "4242424242424242", r.Form.Get("card[number]"))

		w.Write([]byte(`{"id":"pm_123","object":"payment_method"}`))
	})

	card := validTestCard()
	token, err := client.CreatePaymentMethod(context.Background(), &card)
	require.NoError(t, err)
	assert.Equal(t, "pm_123", token)
	assert.Equal(t, 1, requests)
}

func TestClient_CreatePaymentMethod_LocalValidationShortCircuits(t *testing.T) {
	var requests int
	client := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	card := validTestCard()
	card.Number = "4242424242424241" // luhn failure
	_, err := client.CreatePaymentMethod(context.Background(), &card)
	require.Error(t, err)
	assert.Equal(t, 0, requests, "invalid cards must not reach the processor")
}

func TestClient_CreatePaymentMethod_ProcessorError(t *testing.T) {
	client := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined.","code":"card_declined","type":"card_error"}}`))
	})

	card := validTestCard()
	_, err := client.CreatePaymentMethod(context.Background(), &card)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestClient_CreatePaymentMethod_MalformedErrorBody(t *testing.T) {
	client := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	})

	card := validTestCard()
	_, err := client.CreatePaymentMethod(context.Background(), &card)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestDefault_MemoizesUntilReset(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first, err := Default()
	require.NoError(t, err)

	second, err := Default()
	require.NoError(t, err)
	assert.Same(t, first, second, "the handle is cached for the page session")

	ResetDefault()
	third, err := Default()
	require.NoError(t, err)
	assert.NotSame(t, first, third, "reset is the explicit invalidation hook")
}
