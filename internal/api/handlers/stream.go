package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rmaia/fiicompass/internal/analysis"
	"github.com/rmaia/fiicompass/pkg/logger"
)

// StreamHandler pushes pass-completed events to connected dashboards so
// they refresh without polling.
type StreamHandler struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard is served from anywhere during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  log,
		clients: make(map[*websocket.Conn]bool),
	}
}

// refreshEvent is what clients receive after each pass.
type refreshEvent struct {
	Type          string    `json:"type"`
	GeneratedAt   time.Time `json:"generated_at"`
	ReferenceRate float64   `json:"reference_rate"`
	Funds         int       `json:"funds"`
	Failed        int       `json:"failed"`
}

// ServeWS upgrades the connection and registers the client.
// GET /api/ws
func (h *StreamHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", count).Debug("Dashboard client connected")

	// Reader loop only drains control frames; the server never expects
	// client messages
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyReport broadcasts a pass-completed event. Wired as the analysis
// report hook.
func (h *StreamHandler) NotifyReport(report *analysis.Report) {
	event := refreshEvent{
		Type:          "pass_completed",
		GeneratedAt:   report.GeneratedAt,
		ReferenceRate: report.ReferenceRate,
		Funds:         len(report.Entries),
		Failed:        len(report.Failed),
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			h.drop(conn)
		}
	}
}

func (h *StreamHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
