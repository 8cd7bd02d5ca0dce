// internal/websocket/hub.go
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// BalanceUpdate is pushed to dashboards watching a phone number.
type BalanceUpdate struct {
	Phone  string    `json:"phone"`
	Points int64     `json:"points"`
	Delta  int64     `json:"delta"`
	At     time.Time `json:"at"`
}

// Client is one connected dashboard.
type Client struct {
	phone string
	conn  *websocket.Conn
	send  chan []byte
}

// Hub fans balance updates out to dashboards subscribed per phone.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register attaches a connection to a phone's subscriber set and starts
// its pumps. The connection is owned by the hub from here on.
func (h *Hub) Register(phone string, conn *websocket.Conn) {
	client := &Client{
		phone: phone,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.clients[phone] == nil {
		h.clients[phone] = make(map[*Client]struct{})
	}
	h.clients[phone][client] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("dashboard connected", zap.String("phone", phone))

	go client.writePump()
	go h.readPump(client)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if set, ok := h.clients[client.phone]; ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			close(client.send)
			if len(set) == 0 {
				delete(h.clients, client.phone)
			}
		}
	}
	h.mu.Unlock()
}

// BroadcastBalance pushes an update to every dashboard watching phone.
// Slow clients are dropped rather than blocking the caller.
func (h *Hub) BroadcastBalance(phone string, points, delta int64) {
	msg, err := json.Marshal(BalanceUpdate{
		Phone:  phone,
		Points: points,
		Delta:  delta,
		At:     time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to marshal balance update", zap.Error(err))
		return
	}

	h.mu.RLock()
	var stale []*Client
	for client := range h.clients[phone] {
		select {
		case client.send <- msg:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister(client)
		client.conn.Close()
	}
}

// readPump drains the connection so control frames are processed and
// disconnects are noticed.
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister(client)
		client.conn.Close()
		h.logger.Info("dashboard disconnected", zap.String("phone", client.phone))
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
