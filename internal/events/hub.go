// Package events streams submission controller events to browsers over
// WebSocket so an open contact page can follow the Submitting/Idle state and
// the status message without polling.
package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/prestigia-agency/contact/internal/contact"
	"github.com/prestigia-agency/contact/internal/logging"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans controller events out to connected WebSocket clients. It
// implements contact.Observer.
type Hub struct {
	logger         logging.Logger
	snapshot       func() contact.Event
	originPatterns []string

	mu       sync.RWMutex
	clients  map[*client]struct{}
	shutdown bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. snapshot, when set, provides the event sent to each
// client right after it connects. originPatterns are host patterns accepted
// for cross-origin connections; same-origin connections are always accepted.
func NewHub(logger logging.Logger, snapshot func() contact.Event, originPatterns ...string) *Hub {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		logger:         logger.WithComponent("events"),
		snapshot:       snapshot,
		originPatterns: originPatterns,
		clients:        make(map[*client]struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// OnSubmissionEvent broadcasts e. It never blocks: a client whose buffer is
// full is disconnected.
func (h *Hub) OnSubmissionEvent(e contact.Event) {
	message, err := json.Marshal(e)
	if err != nil {
		h.logger.Error(context.Background(), err, "Failed to encode event", "kind", e.Kind)
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn(context.Background(), nil, "Dropping slow events client")
		h.unregister(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams events until the client leaves
// or the hub shuts down.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  h.originPatterns,
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "WebSocket upgrade failed", "remote_addr", r.RemoteAddr)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if h.snapshot != nil {
		if message, err := json.Marshal(h.snapshot()); err == nil {
			c.send <- message
		}
	}
	if !h.register(c) {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.unregister(c)

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// when the peer goes away.
	ctx := conn.CloseRead(h.ctx)
	h.writePump(ctx, c)
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(wctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				h.logger.Debug(ctx, "Events client write failed", "error", err.Error())
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shutdown {
		return false
	}
	h.clients[c] = struct{}{}
	h.logger.Debug(h.ctx, "Events client connected", "clients", len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}
}

// Shutdown disconnects every client and refuses new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.shutdown = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	h.cancel()
	for _, c := range clients {
		h.unregister(c)
	}
}
