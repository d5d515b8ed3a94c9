package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// changeEvent is the notification pushed to subscribed clients. The
// client treats any event as a refresh signal, so the payload stays
// minimal.
type changeEvent struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

// hub fans change notifications out to websocket subscribers by room
type hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rooms: make(map[string]map[*websocket.Conn]bool),
	}
}

// ServeWS upgrades the connection and waits for the client's join
// command before subscribing it to a room
func (h *hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	var join struct {
		Action string `json:"action"`
		Room   string `json:"room"`
	}
	if err := conn.ReadJSON(&join); err != nil || join.Action != "join" || join.Room == "" {
		conn.Close()
		return
	}

	h.mu.Lock()
	if h.rooms[join.Room] == nil {
		h.rooms[join.Room] = make(map[*websocket.Conn]bool)
	}
	h.rooms[join.Room][conn] = true
	h.mu.Unlock()

	log.Printf("ws: client joined room %s", join.Room)

	// Drain until the client disconnects
	go func() {
		defer h.remove(join.Room, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast pushes a named change event to every subscriber of a room
func (h *hub) Broadcast(room, event string) {
	msg, err := json.Marshal(changeEvent{Event: event, Room: room})
	if err != nil {
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[room]))
	for conn := range h.rooms[room] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(room, conn)
		}
	}
}

func (h *hub) remove(room string, conn *websocket.Conn) {
	h.mu.Lock()
	if subs, ok := h.rooms[room]; ok {
		delete(subs, conn)
	}
	h.mu.Unlock()
	conn.Close()
}
