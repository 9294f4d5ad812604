// Package monitor publishes every written controller report to websocket
// clients and to control API stream subscribers.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmove/dmove/apitypes"
	"github.com/dmove/dmove/session"
)

const sendBuffer = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local tools only
	},
}

type client struct {
	send chan []byte
}

// Hub fans reports out to subscribers. Slow subscribers are dropped rather
// than blocking the poll loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	last    []byte
	logger  *slog.Logger
}

// New returns an empty hub.
func New(logger *slog.Logger) *Hub {
	return &Hub{clients: make(map[*client]struct{}), logger: logger.With("component", "monitor")}
}

// Observe implements session.Observer.
func (h *Hub) Observe(s session.Sample) {
	msg, err := json.Marshal(apitypes.Report{X: s.Vector.X, Y: s.Vector.Y, LX: s.Report.LeftX, LY: s.Report.LeftY})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) subscribe() *client {
	c := &client{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		c.send <- h.last
	}
	h.clients[c] = struct{}{}
	h.logger.Debug("subscriber added", "total", len(h.clients))
	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams reports as text
// messages until the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	c := h.subscribe()

	// Read pump: only used to notice the peer closing.
	go func() {
		defer h.unsubscribe(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	for msg := range c.send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.unsubscribe(c)
			return
		}
	}
}

// ServeStream is an api.StreamHandlerFunc writing one JSON report per line.
func (h *Hub) ServeStream(conn net.Conn, _ map[string]string, logger *slog.Logger) error {
	c := h.subscribe()
	defer h.unsubscribe(c)
	go func() {
		_, _ = io.Copy(io.Discard, conn)
		h.unsubscribe(c)
	}()
	for msg := range c.send {
		if _, err := conn.Write(append(msg, '\n')); err != nil {
			logger.Debug("monitor stream closed", "error", err)
			return nil
		}
	}
	return nil
}

// ListenAndServe serves the websocket endpoint at /ws on addr until ctx is
// done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	h.logger.Info("monitor listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
