// Package realtime maintains a best-effort push channel for inventory
// and order-status change notifications. A received event is only a
// signal to refetch authoritative state through the API client; the
// payload itself is never trusted as data.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pos-storefront/internal/config"
)

// EventRoom returns the room name scoping notifications to one event
func EventRoom(eventID string) string {
	return "event:" + eventID
}

// CatalogRoom returns the room name for a menu catalog
func CatalogRoom(catalogID string) string {
	return "catalog:" + catalogID
}

// PreorderRoom returns the room name for a single preorder's status
func PreorderRoom(orderID string) string {
	return "preorder:" + orderID
}

// joinMessage is the only application data the client ever emits
type joinMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// Notifier subscribes to a room and invokes the refresh callback for
// every change notification it receives
type Notifier struct {
	url        string
	room       string
	onRefresh  func()
	maxBackoff time.Duration
	dialer     *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

// NewNotifier creates a notifier for the given room. The refresh
// callback may be invoked from the connection goroutine.
func NewNotifier(cfg config.RealtimeConfig, room string, onRefresh func()) *Notifier {
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}

	return &Notifier{
		url:        cfg.URL,
		room:       room,
		onRefresh:  onRefresh,
		maxBackoff: maxBackoff,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		done:       make(chan struct{}),
	}
}

// Start begins connecting in the background. Connection failures
// degrade gracefully: the page stays usable via manual refresh while
// reconnection is attempted indefinitely with bounded backoff.
func (n *Notifier) Start() {
	go n.run()
}

func (n *Notifier) run() {
	backoff := time.Second

	for {
		select {
		case <-n.done:
			return
		default:
		}

		conn, _, err := n.dialer.Dial(n.url, nil)
		if err != nil {
			log.Printf("realtime: connect to %s failed: %v (retrying in %v)", n.url, err, backoff)
			if !n.sleep(backoff) {
				return
			}
			backoff = n.nextBackoff(backoff)
			continue
		}

		if err := n.join(conn); err != nil {
			log.Printf("realtime: join room %s failed: %v", n.room, err)
			conn.Close()
			if !n.sleep(backoff) {
				return
			}
			backoff = n.nextBackoff(backoff)
			continue
		}

		backoff = time.Second
		n.setConn(conn)
		n.readLoop(conn)
		n.setConn(nil)
	}
}

// join sends the room subscription; it is the only message we emit
func (n *Notifier) join(conn *websocket.Conn) error {
	msg, err := json.Marshal(joinMessage{Action: "join", Room: n.room})
	if err != nil {
		return fmt.Errorf("failed to marshal join message: %w", err)
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// readLoop treats every received message, regardless of its named
// event type or payload, as "please refetch"
func (n *Notifier) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			select {
			case <-n.done:
			default:
				log.Printf("realtime: connection lost: %v", err)
			}
			conn.Close()
			return
		}

		select {
		case <-n.done:
			conn.Close()
			return
		default:
		}

		if n.onRefresh != nil {
			n.onRefresh()
		}
	}
}

// Close unsubscribes and tears the connection down. Must be called on
// view teardown so connections do not leak across navigations.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
		n.mu.Lock()
		if n.conn != nil {
			n.conn.Close()
		}
		n.mu.Unlock()
	})
}

func (n *Notifier) setConn(conn *websocket.Conn) {
	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()
}

// sleep waits for the backoff period, returning false if the notifier
// was closed while waiting
func (n *Notifier) sleep(d time.Duration) bool {
	select {
	case <-n.done:
		return false
	case <-time.After(d):
		return true
	}
}

func (n *Notifier) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > n.maxBackoff {
		next = n.maxBackoff
	}
	return next
}
