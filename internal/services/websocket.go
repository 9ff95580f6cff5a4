package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tanu42012/zap-shift-server/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket subscriber to one parcel's tracking feed
type Client struct {
	TrackingID string
	Conn       *websocket.Conn
	Send       chan []byte
	Hub        *Hub
}

// Hub maintains the set of tracking subscribers and fans out new events
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new tracking hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Tracking subscriber connected for %s", client.TrackingID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Tracking subscriber disconnected for %s", client.TrackingID)
		}
	}
}

// TrackingMessage is the frame pushed to subscribers
type TrackingMessage struct {
	Type string               `json:"type"`
	Data models.TrackingEvent `json:"data"`
}

// BroadcastTrackingEvent sends a new event to everyone watching its
// tracking id.
func (h *Hub) BroadcastTrackingEvent(event models.TrackingEvent) {
	message, err := json.Marshal(TrackingMessage{Type: "tracking_update", Data: event})
	if err != nil {
		log.Printf("Error marshaling tracking event: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.TrackingID != event.TrackingID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleTrackingSocket upgrades the connection and registers the subscriber
func HandleTrackingSocket(hub *Hub, w http.ResponseWriter, r *http.Request, trackingID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		TrackingID: trackingID,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		Hub:        hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so close frames are processed; subscribers
// are read-only.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
