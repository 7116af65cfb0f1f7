// Package live pushes menu and inbox changes to open admin dashboards over websockets.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"brewbliss/models"
)

const (
	ActionMenuCreated     = "menu-created"
	ActionMenuDeleted     = "menu-deleted"
	ActionMessageReceived = "message-received"

	sendBuffer = 64
)

// Frame is what every subscriber receives.
type Frame struct {
	Action  string                 `json:"action"`
	ID      string                 `json:"id,omitempty"`
	Item    *models.MenuItem       `json:"item,omitempty"`
	Message *models.ContactMessage `json:"message,omitempty"`
}

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{Conn: conn, Send: make(chan []byte, sendBuffer)}
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
	stopOnce   sync.Once
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		quit:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// slow subscriber
					delete(h.clients, c)
					close(c.Send)
				}
			}

		case <-h.quit:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Register returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Publish fans a frame out to every subscriber. It never blocks after Stop.
func (h *Hub) Publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Printf("live: marshal frame: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.quit:
	}
}

func (h *Hub) MenuCreated(item models.MenuItem) {
	h.Publish(Frame{Action: ActionMenuCreated, ID: item.ID, Item: &item})
}

func (h *Hub) MenuDeleted(id string) {
	h.Publish(Frame{Action: ActionMenuDeleted, ID: id})
}

func (h *Hub) MessageReceived(msg models.ContactMessage) {
	h.Publish(Frame{Action: ActionMessageReceived, ID: msg.ID, Message: &msg})
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Handler upgrades an already authorised request and subscribes it.
func Handler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Println("upgrade:", err)
			return
		}
		client := NewClient(conn)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump discards inbound frames; it only notices the socket closing.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
