package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"barterhub/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a single websocket connection belonging to a user.
type Client struct {
	UserID  string
	conn    *websocket.Conn
	send    chan []byte
	manager *Manager
}

// Manager keeps track of connected clients and routes outbound payloads.
type Manager struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Start(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]bool)
			}
			m.clients[client.UserID][client] = true
			m.mutex.Unlock()
			logger.Debug("websocket client connected: %s", client.UserID)

		case client := <-m.unregister:
			m.mutex.Lock()
			if conns, ok := m.clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(m.clients, client.UserID)
					}
				}
			}
			m.mutex.Unlock()
			logger.Debug("websocket client disconnected: %s", client.UserID)

		case <-ctx.Done():
			m.mutex.Lock()
			for _, conns := range m.clients {
				for client := range conns {
					close(client.send)
				}
			}
			m.clients = make(map[string]map[*Client]bool)
			m.mutex.Unlock()
			return
		}
	}
}

// SendToUser delivers a payload to every open connection of a user.
// Users with no open connection are skipped silently.
func (m *Manager) SendToUser(userID string, payload []byte) {
	// The Start loop mutates the inner map and closes send channels
	// under the write lock, so both the iteration and the sends must
	// stay inside the read lock. Slow consumers are dropped afterwards;
	// unregistering under the lock would deadlock against Start.
	var slow []*Client

	m.mutex.RLock()
	for client := range m.clients[userID] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range slow {
		m.unregister <- client
	}
}

// HandleConnection upgrades an HTTP request and pumps messages until the
// connection closes.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan []byte, 64),
		manager: m,
	}
	m.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Inbound frames are only used to keep the connection alive;
		// all mutations go through the REST API.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error for %s: %v", c.UserID, err)
			}
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
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
