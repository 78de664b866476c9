// Package feed streams puzzle status to websocket clients, so a second screen
// or a test harness can follow a session.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"laserpuzzle/internal/control"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 100 * time.Millisecond
	shutdownWait = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Message is sent whenever the status changes.
type Message struct {
	Mode       string `json:"mode"`
	Pending    string `json:"pending,omitempty"`
	Tower      int    `json:"tower"`
	TowerName  string `json:"towerName,omitempty"`
	Die        int    `json:"die"`
	DieValue   int    `json:"dieValue,omitempty"`
	Firing     bool   `json:"firing"`
	Continuous bool   `json:"continuous"`
	Outcome    string `json:"outcome,omitempty"`
	Hits       int    `json:"hits"`
	Total      int    `json:"total"`
	Solved     bool   `json:"solved"`
}

func MessageOf(s control.Status) Message {
	return Message{
		Mode:       s.Mode,
		Pending:    s.Pending,
		Tower:      s.Tower,
		TowerName:  s.TowerName,
		Die:        s.Die,
		DieValue:   s.DieValue,
		Firing:     s.Firing,
		Continuous: s.Continuous,
		Outcome:    s.Outcome,
		Hits:       s.Hits,
		Total:      s.Total,
		Solved:     s.Solved,
	}
}

// Hub fans status messages out to connected clients. New clients get the
// latest message straight away.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    []byte
	log     *zap.Logger
}

func NewHub(l *zap.Logger) *Hub {
	if l == nil {
		l = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     l.Named("feed"),
	}
}

// Publish sends s to every client unless it equals the last status sent. It
// reports whether a message went out.
func (h *Hub) Publish(s control.Status) bool {
	data, err := json.Marshal(MessageOf(s))
	if err != nil {
		h.log.Error("encode status", zap.Error(err))
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if bytes.Equal(data, h.last) {
		return false
	}
	h.last = data
	for c := range h.clients {
		if err := h.write(c, data); err != nil {
			h.log.Debug("dropping client", zap.String("remote", c.RemoteAddr().String()), zap.Error(err))
			c.Close()
			delete(h.clients, c)
		}
	}
	return true
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// write must be called with h.mu held; gorilla allows one writer per conn.
func (h *Hub) write(c *websocket.Conn, data []byte) error {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	if h.last != nil {
		if err := h.write(conn, h.last); err != nil {
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
	h.mu.Unlock()
	h.log.Debug("client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Clients only listen; reading notices when they go away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		c.Close()
		delete(h.clients, c)
	}
}

// Serve answers websocket requests on /ws until ctx ends, then shuts down.
func Serve(ctx context.Context, ln net.Listener, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	// Hijacked connections are not closed by Shutdown.
	h.CloseAll()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
