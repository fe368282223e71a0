package stream

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
)

// Hub fans group events out to the SSE clients watching one group. Slow
// clients drop messages rather than block the hub.
type Hub struct {
	groupID string
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a hub for a group.
func NewHub(groupID string) *Hub {
	return &Hub{
		groupID:    groupID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Debug("Stream client registered", "groupID", h.groupID, "clients", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				log.Warn("Dropped stream messages, client buffers full", "groupID", h.groupID, "dropped", dropped)
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastEvent sends a named SSE event with a JSON payload to every
// client. Publishing never blocks; when the hub buffer is full the event is
// dropped, clients resync from the REST endpoints on reconnect anyway.
func (h *Hub) BroadcastEvent(eventName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("Failed to marshal stream event", "error", err, "event", eventName)
		return
	}
	msg := []byte("event: " + eventName + "\ndata: " + string(data) + "\n\n")
	select {
	case h.broadcast <- msg:
	default:
		log.Warn("Dropped stream event, hub buffer full", "groupID", h.groupID, "event", eventName)
	}
}

// Close shuts down the hub.
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager holds one hub per group with live watchers.
type HubManager struct {
	hubs map[string]*Hub
	mu   sync.RWMutex
}

// NewHubManager creates a new HubManager.
func NewHubManager() *HubManager {
	return &HubManager{
		hubs: make(map[string]*Hub),
	}
}

// GetOrCreateHub returns the hub for a group, creating one if needed.
func (m *HubManager) GetOrCreateHub(groupID string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[groupID]; ok {
		return hub
	}
	hub := NewHub(groupID)
	m.hubs[groupID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a group, or nil if nobody is watching it.
func (m *HubManager) GetHub(groupID string) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[groupID]
}

// Publish sends an event to the group's hub if one exists. A group without
// watchers has no hub and the event is discarded.
func (m *HubManager) Publish(groupID, eventName string, payload any) {
	hub := m.GetHub(groupID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(eventName, payload)
}

// RemoveHub removes and closes a group's hub.
func (m *HubManager) RemoveHub(groupID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[groupID]; ok {
		hub.Close()
		delete(m.hubs, groupID)
	}
}

// CleanupEmptyHubs removes hubs with no clients.
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
		}
	}
}
