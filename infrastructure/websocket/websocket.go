package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"task-manager-api/domain/ports"
	"task-manager-api/pkg/logger"
)

// Conn is the part of *websocket.Conn the hub needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	Conn   Conn
	UserID uuid.UUID
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type userMessage struct {
	userID  uuid.UUID
	message Message
}

type connMessage struct {
	conn    Conn
	message Message
}

// Hub fans task events out to the WebSocket connections of the owning user.
// A user may hold several connections. Nothing is ever sent across users.
//
// Only the Run goroutine writes to a connection, replies included, since a
// websocket connection supports one concurrent writer.
type Hub struct {
	clients    map[Conn]Client
	byUser     map[uuid.UUID]map[Conn]struct{}
	register   chan Client
	unregister chan Conn
	broadcast  chan userMessage
	replies    chan connMessage
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]Client),
		byUser:     make(map[uuid.UUID]map[Conn]struct{}),
		register:   make(chan Client),
		unregister: make(chan Conn),
		broadcast:  make(chan userMessage, 256),
		replies:    make(chan connMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx ends or Stop is called.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.Stop()
			h.closeAll()
			return
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.Conn] = client
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[Conn]struct{})
			}
			h.byUser[client.UserID][client.Conn] = struct{}{}
			h.mutex.Unlock()
			logger.Debug("WebSocket client connected", "user_id", client.UserID)

		case conn := <-h.unregister:
			h.remove(conn)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			conns := make([]Conn, 0, len(h.byUser[msg.userID]))
			for conn := range h.byUser[msg.userID] {
				conns = append(conns, conn)
			}
			h.mutex.RUnlock()

			for _, conn := range conns {
				h.write(conn, msg.message)
			}

		case reply := <-h.replies:
			h.mutex.RLock()
			_, registered := h.clients[reply.conn]
			h.mutex.RUnlock()
			if registered {
				h.write(reply.conn, reply.message)
			}
		}
	}
}

func (h *Hub) write(conn Conn, message Message) {
	if err := conn.WriteJSON(message); err != nil {
		logger.Warn("WebSocket write failed", "type", message.Type, "error", err)
		h.remove(conn)
	}
}

func (h *Hub) remove(conn Conn) {
	h.mutex.Lock()
	client, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		if conns := h.byUser[client.UserID]; conns != nil {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.byUser, client.UserID)
			}
		}
	}
	h.mutex.Unlock()

	if ok {
		conn.Close()
		logger.Debug("WebSocket client disconnected", "user_id", client.UserID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[Conn]Client)
	h.byUser = make(map[uuid.UUID]map[Conn]struct{})
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(conn Conn, userID uuid.UUID) {
	select {
	case h.register <- Client{Conn: conn, UserID: userID}:
	case <-h.done:
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Deliver queues an event for its owner. A full queue drops the event.
func (h *Hub) Deliver(event *ports.TaskEvent) {
	if event == nil {
		return
	}
	msg := userMessage{
		userID:  event.UserID,
		message: Message{Type: string(event.Type), Data: event},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		logger.Warn("WebSocket broadcast queue full, dropping event", "type", event.Type, "user_id", event.UserID)
	}
}

// Publish lets the hub stand in for a broker when none is configured.
func (h *Hub) Publish(ctx context.Context, event *ports.TaskEvent) error {
	h.Deliver(event)
	return nil
}

func (h *Hub) UserClients(userID uuid.UUID) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.byUser[userID])
}

func (h *Hub) TotalClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleMessage answers client frames on a registered connection. Only ping
// is understood; the pong is written by the hub.
func (h *Hub) HandleMessage(conn Conn, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Debug("Ignoring malformed WebSocket frame", "error", err)
		return
	}

	switch message.Type {
	case "ping":
		select {
		case h.replies <- connMessage{conn: conn, message: Message{Type: "pong", Data: "pong"}}:
		case <-h.done:
		}
	default:
		logger.Debug("Unknown WebSocket message type", "type", message.Type)
	}
}

var (
	_ ports.TaskEventSink      = (*Hub)(nil)
	_ ports.TaskEventPublisher = (*Hub)(nil)
)
