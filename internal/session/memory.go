package session

import (
	"encoding/json"
	"sync"

	"pos-storefront/internal/models"
)

// MemoryStore is an in-process Store with the lifetime of the page
// session. Values are kept JSON-encoded so the round-trip matches what
// a browser storage backend would hold.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty ephemeral store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Save writes the session record under its selection key
func (s *MemoryStore) Save(slug, tierID string, quantity int, sess *models.ReservationSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Key(slug, tierID, quantity)] = string(data)
	return nil
}

// Load reads the session record for a selection. A missing or
// unreadable entry reports models.ErrSessionNotFound; corrupt data is
// discarded rather than surfaced.
func (s *MemoryStore) Load(slug, tierID string, quantity int) (*models.ReservationSession, error) {
	s.mu.Lock()
	data, ok := s.values[Key(slug, tierID, quantity)]
	s.mu.Unlock()

	if !ok {
		return nil, models.ErrSessionNotFound
	}

	var sess models.ReservationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		_ = s.Delete(slug, tierID, quantity)
		return nil, models.ErrSessionNotFound
	}

	return &sess, nil
}

// Delete removes the session record for a selection
func (s *MemoryStore) Delete(slug, tierID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, Key(slug, tierID, quantity))
	return nil
}
