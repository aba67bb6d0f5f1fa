package ws

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"laundrypos/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	feedBuffer = 64
	writeWait  = 5 * time.Second
)

// ErrFeedBusy is returned when the broadcast buffer is full and the event was
// dropped.
var ErrFeedBusy = errors.New("order feed busy, event dropped")

// OrderFeed pushes order and stock events to every connected dashboard.
type OrderFeed struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan notify.Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.Mutex
	upgrader   websocket.Upgrader
}

// NewOrderFeed accepts websocket upgrades from the given origins. With no
// origins only same-host requests are accepted.
func NewOrderFeed(origins ...string) *OrderFeed {
	return &OrderFeed{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan notify.Event, feedBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader:   websocket.Upgrader{CheckOrigin: allowOrigins(origins)},
	}
}

// allowOrigins returns nil for an empty list so the upgrader falls back to
// its same-origin check.
func allowOrigins(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[strings.ToLower(origin)]
	}
}

// Run serves register/unregister/broadcast until ctx is done.
func (h *OrderFeed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case e := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				// a client that stops reading is dropped at the deadline
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(e); err != nil {
					zap.L().Warn("ws write failed", zap.Error(err))
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for connected clients without blocking. When the
// buffer is full the event is dropped and ErrFeedBusy returned.
func (h *OrderFeed) Publish(_ context.Context, e notify.Event) error {
	select {
	case h.broadcast <- e:
		return nil
	case <-h.done:
		return nil
	default:
		return ErrFeedBusy
	}
}

func (h *OrderFeed) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WS route: /ws/orders
func (h *OrderFeed) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("ws upgrade failed", zap.Error(err))
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	go h.drain(conn)
}

// drain reads until the client goes away; the feed is one-way.
func (h *OrderFeed) drain(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
