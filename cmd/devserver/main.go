// Command devserver is a development stub of the storefront backend.
// It implements the documented HTTP and realtime contract with
// in-memory inventory so the checkout funnel can be exercised locally.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pos-storefront/internal/config"
	"pos-storefront/internal/models"
	"pos-storefront/internal/realtime"
)

type server struct {
	store *memoryStore
	hub   *hub
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	s := &server{
		store: newMemoryStore(),
		hub:   newHub(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/events/public/{slug}", func(r chi.Router) {
		r.Get("/", s.getEvent)
		r.Post("/lock", s.lockTickets)
		r.Get("/lock/{sessionID}", s.getLock)
		r.Post("/purchase", s.purchaseTickets)
	})

	r.Route("/menu/public/{slug}", func(r chi.Router) {
		r.Get("/", s.getMenu)
		r.Post("/preorder", s.createPreorder)
		r.Get("/preorder/{orderID}", s.getPreorderStatus)
	})

	r.Get("/ws", s.hub.ServeWS)

	addr := ":" + cfg.Server.Port
	log.Printf("devserver listening on %s (event slug: launch-party, menu slug: corner-cafe)", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// writeJSON writes a JSON response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeAPIError writes the backend error envelope
func writeAPIError(w http.ResponseWriter, apiErr *models.APIError) {
	status := apiErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, apiErr)
}

func (s *server) getEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug != s.store.event.Slug {
		writeAPIError(w, &models.APIError{Message: "event not found", StatusCode: 404})
		return
	}

	s.store.mu.Lock()
	s.store.expireHoldsLocked(time.Now())
	event := *s.store.event
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, &event)
}

func (s *server) lockTickets(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug != s.store.event.Slug {
		writeAPIError(w, &models.APIError{Message: "event not found", StatusCode: 404})
		return
	}

	var req models.LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, &models.APIError{Message: "invalid request body", StatusCode: 400})
		return
	}

	h, apiErr := s.store.lock(req.TierID, req.Quantity)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	s.hub.Broadcast(realtime.EventRoom(s.store.event.ID), "availability_changed")

	writeJSON(w, http.StatusOK, &models.LockResponse{
		SessionID: h.SessionID,
		ExpiresAt: h.ExpiresAt,
	})
}

func (s *server) getLock(w http.ResponseWriter, r *http.Request) {
	h, apiErr := s.store.getHold(chi.URLParam(r, "sessionID"))
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, &models.LockResponse{
		SessionID: h.SessionID,
		ExpiresAt: h.ExpiresAt,
		TierID:    h.TierID,
		Quantity:  h.Quantity,
	})
}

func (s *server) purchaseTickets(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, &models.APIError{Message: "invalid request body", StatusCode: 400})
		return
	}

	resp, apiErr := s.store.purchase(&req)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	s.hub.Broadcast(realtime.EventRoom(s.store.event.ID), "availability_changed")

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) getMenu(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug != s.store.catalog.Slug {
		writeAPIError(w, &models.APIError{Message: "catalog not found", StatusCode: 404})
		return
	}

	s.store.mu.Lock()
	catalog := *s.store.catalog
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, &catalog)
}

func (s *server) createPreorder(w http.ResponseWriter, r *http.Request) {
	var req models.PreorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, &models.APIError{Message: "invalid request body", StatusCode: 400})
		return
	}

	if err := models.ValidateCustomer(req.CustomerName, req.CustomerEmail); err != nil {
		writeAPIError(w, &models.APIError{Message: err.Error(), StatusCode: 422})
		return
	}

	resp, apiErr := s.store.preorder(&req)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	s.hub.Broadcast(realtime.CatalogRoom(s.store.catalog.ID), "availability_changed")
	s.hub.Broadcast(realtime.PreorderRoom(resp.OrderID), "status_changed")

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) getPreorderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	email := r.URL.Query().Get("email")

	status, apiErr := s.store.preorderStatus(orderID, email)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
