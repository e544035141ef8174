package websocket

import (
	"log"
	"sync"
	"time"

	"gofish/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer is how many events a client may fall behind before it is
	// dropped.
	sendBuffer = 64
)

// GameClient represents a client connected for game event updates. An empty
// UserID subscribes to every player's events.
type GameClient struct {
	Conn    *websocket.Conn
	UserID  string
	send    chan models.GameEvent
	writeMu sync.Mutex
}

func newGameClient(conn *websocket.Conn, userID string) *GameClient {
	return &GameClient{
		Conn:   conn,
		UserID: userID,
		send:   make(chan models.GameEvent, sendBuffer),
	}
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (gc *GameClient) SafeWriteJSON(v interface{}) error {
	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	_ = gc.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return gc.Conn.WriteJSON(v)
}

func (gc *GameClient) wants(event models.GameEvent) bool {
	return gc.UserID == "" || gc.UserID == event.UserID
}

// Hub fans game events out to connected clients
type Hub struct {
	mu      sync.RWMutex
	clients map[*GameClient]bool
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*GameClient]bool)}
}

// Register registers a client for game event updates
func (h *Hub) Register(client *GameClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("Game client registered. Total clients: %d", len(h.clients))
}

// Unregister removes a client, stops its writer and closes its connection
func (h *Hub) Unregister(client *GameClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	close(client.send)
	client.Conn.Close()
	log.Printf("Game client unregistered. Total clients: %d", len(h.clients))
}

// Broadcast queues an event for every interested client and returns without
// touching the network. Clients whose queue is full are dropped.
func (h *Hub) Broadcast(event models.GameEvent) {
	h.mu.RLock()
	var lagging []*GameClient
	queued := 0
	for client := range h.clients {
		if !client.wants(event) {
			continue
		}
		select {
		case client.send <- event:
			queued++
		default:
			lagging = append(lagging, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range lagging {
		log.Printf("Dropping game client that fell %d events behind", sendBuffer)
		h.Unregister(client)
	}
	log.Printf("Broadcasted game event: %s to %d clients", event.Type, queued)
}

// writePump delivers queued events in order until the client is unregistered
func (h *Hub) writePump(client *GameClient) {
	for event := range client.send {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error writing game event to client: %v", err)
			h.Unregister(client)
			return
		}
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		client.Conn.Close()
	}
}
