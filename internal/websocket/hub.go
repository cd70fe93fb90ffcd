package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/events"
	"literasi-backend/internal/logger"
)

// writeWait bounds a single write so a stalled client cannot hold the hub lock.
var writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub pushes reward events to every socket watching a child. One bus
// subscription is held per child while at least one socket is open.
type Hub struct {
	mu          sync.RWMutex
	connections map[docstore.ID][]*websocket.Conn
	subscriber  events.Subscriber
	cancelFuncs map[docstore.ID]func()
	log         *logger.Logger
}

func NewHub(subscriber events.Subscriber, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		connections: make(map[docstore.ID][]*websocket.Conn),
		subscriber:  subscriber,
		cancelFuncs: make(map[docstore.ID]func()),
		log:         log,
	}
}

// HandleWebSocket serves GET /ws/children/{id}.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	childID, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid child id", http.StatusUnprocessableEntity)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.registerConnection(childID, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(childID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(childID docstore.ID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[childID] = append(h.connections[childID], conn)

	if len(h.connections[childID]) == 1 {
		messages, cancel := h.subscriber.Subscribe(context.Background(), childID)
		h.cancelFuncs[childID] = cancel
		go h.forward(childID, messages)
	}

	h.log.Debug("websocket connected", "child_id", childID, "total", len(h.connections[childID]))
}

func (h *Hub) unregisterConnection(childID docstore.ID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[childID]
	for i, c := range conns {
		if c == conn {
			h.connections[childID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[childID]) == 0 {
		delete(h.connections, childID)
		if cancel, ok := h.cancelFuncs[childID]; ok {
			cancel()
			delete(h.cancelFuncs, childID)
		}
	}

	h.log.Debug("websocket disconnected", "child_id", childID)
}

func (h *Hub) forward(childID docstore.ID, messages <-chan []byte) {
	for data := range messages {
		h.broadcast(childID, data)
	}
}

func (h *Hub) broadcast(childID docstore.ID, data []byte) {
	// Write lock: gorilla connections allow one concurrent writer.
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.connections[childID] {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("websocket write failed", "child_id", childID, "error", err)
			// The read loop sees the close and unregisters the socket.
			conn.Close()
		}
	}
}

// Watchers returns the number of open sockets for a child.
func (h *Hub) Watchers(childID docstore.ID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[childID])
}
