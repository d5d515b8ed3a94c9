package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-storefront/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	sess := &models.ReservationSession{
		SessionID: "sess-1",
		ExpiresAt: time.Now().Add(5 * time.Minute).Truncate(time.Second),
		TierID:    "tier_ga",
		Quantity:  2,
	}

	require.NoError(t, store.Save("launch-party", "tier_ga", 2, sess))

	loaded, err := store.Load("launch-party", "tier_ga", 2)
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, loaded.SessionID)
	assert.Equal(t, sess.TierID, loaded.TierID)
	assert.Equal(t, sess.Quantity, loaded.Quantity)
	assert.True(t, sess.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestMemoryStore_KeyedBySelection(t *testing.T) {
	store := NewMemoryStore()
	sess := &models.ReservationSession{SessionID: "sess-1", TierID: "tier_ga", Quantity: 2}
	require.NoError(t, store.Save("launch-party", "tier_ga", 2, sess))

	// A different quantity or tier is a different key
	_, err := store.Load("launch-party", "tier_ga", 3)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = store.Load("launch-party", "tier_vip", 2)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = store.Load("other-event", "tier_ga", 2)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	sess := &models.ReservationSession{SessionID: "sess-1"}
	require.NoError(t, store.Save("launch-party", "tier_ga", 2, sess))

	require.NoError(t, store.Delete("launch-party", "tier_ga", 2))

	_, err := store.Load("launch-party", "tier_ga", 2)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete("launch-party", "tier_ga", 2))
}

func TestMemoryStore_CorruptEntryIsDiscarded(t *testing.T) {
	store := NewMemoryStore()
	store.values[Key("launch-party", "tier_ga", 2)] = "{not json"

	_, err := store.Load("launch-party", "tier_ga", 2)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// The corrupt entry is gone afterwards
	store.mu.Lock()
	_, ok := store.values[Key("launch-party", "tier_ga", 2)]
	store.mu.Unlock()
	assert.False(t, ok)
}
