package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-storefront/internal/config"
	"pos-storefront/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.APIConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestClient_GetEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/events/public/launch-party", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(&models.Event{
			ID:       "ev_1",
			Slug:     "launch-party",
			Currency: "USD",
			Tiers: []models.TicketTier{
				{ID: "tier_ga", Name: "General Admission", Price: 1000, Available: 10},
			},
		})
	})

	event, err := client.GetEvent(context.Background(), "launch-party")
	require.NoError(t, err)
	assert.Equal(t, "ev_1", event.ID)
	require.Len(t, event.Tiers, 1)
	assert.Equal(t, 1000, event.Tiers[0].Price)
}

func TestClient_LockTickets(t *testing.T) {
	expiresAt := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events/public/launch-party/lock", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.LockRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tier_ga", req.TierID)
		assert.Equal(t, 2, req.Quantity)

		json.NewEncoder(w).Encode(&models.LockResponse{
			SessionID: "sess-1",
			ExpiresAt: expiresAt,
		})
	})

	lock, err := client.LockTickets(context.Background(), "launch-party", &models.LockRequest{
		TierID:   "tier_ga",
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", lock.SessionID)
	assert.True(t, expiresAt.Equal(lock.ExpiresAt))
}

func TestClient_LockTickets_SoldOutEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"sold out","code":"sold_out","available":0}`))
	})

	_, err := client.LockTickets(context.Background(), "launch-party", &models.LockRequest{
		TierID:   "tier_ga",
		Quantity: 2,
	})
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsSoldOut())
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "sold out", apiErr.Message)
}

func TestClient_MalformedErrorBodyStillTyped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream broke</html>"))
	})

	_, err := client.GetEvent(context.Background(), "launch-party")
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsSoldOut())
	assert.False(t, apiErr.IsLimitExceeded())
	assert.NotEmpty(t, apiErr.Error())
}

func TestClient_GetPreorderStatus_EmailGate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu/public/corner-cafe/preorder/ord-1", r.URL.Path)
		assert.Equal(t, "jordan@example.com", r.URL.Query().Get("email"))

		json.NewEncoder(w).Encode(&models.PreorderStatus{
			OrderID: "ord-1",
			Status:  "ready",
			Total:   550,
		})
	})

	status, err := client.GetPreorderStatus(context.Background(), "corner-cafe", "ord-1", "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, 550, status.Total)
}
