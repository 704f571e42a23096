package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Dashboard event types
const (
	EventSyncStarted    = "sync_started"
	EventSyncProgress   = "sync_progress"
	EventSyncFinished   = "sync_finished"
	EventCommissionPaid = "commission_paid"
)

// Event represents a message sent over WebSocket to dashboard clients
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userID,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID        string
	Conn          *websocket.Conn
	Authenticated bool
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients                map[string]*Client
	unauthenticatedClients map[*Client]bool
	register               chan *Client
	unregister             chan *Client
	mu                     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:                make(map[string]*Client),
		unauthenticatedClients: make(map[*Client]bool),
		register:               make(chan *Client),
		unregister:             make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.Authenticated && client.UserID != "" {
				h.clients[client.UserID] = client
			} else {
				h.unauthenticatedClients[client] = true
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if client.Authenticated && client.UserID != "" {
				if _, ok := h.clients[client.UserID]; ok {
					delete(h.clients, client.UserID)
				}
			} else {
				delete(h.unauthenticatedClients, client)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends an event to a specific dashboard user
func (h *Hub) SendToUser(userID string, event Event) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s not connected", userID)
	}

	return client.Conn.WriteJSON(event)
}

// Broadcast sends an event to all authenticated clients
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if err := client.Conn.WriteJSON(event); err != nil {
			// The unregister path closes the connection; just log here
			continue
		}
	}
}

// Authenticate promotes a connected client to the authenticated set
// without closing its connection
func (h *Hub) Authenticate(client *Client, userID string) {
	h.mu.Lock()
	delete(h.unauthenticatedClients, client)
	client.UserID = userID
	client.Authenticated = true
	h.clients[userID] = client
	h.mu.Unlock()
}

// Register queues a client for registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
