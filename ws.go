package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebDisplay pushes each rendered frame to connected browser clients over
// WebSocket. The browser page draws the same 256x64 layout a physical panel
// would show. New clients get the most recent frame immediately so the
// simulator is never blank while waiting for the next poll cycle.
type WebDisplay struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	lastFrame *Frame
}

func NewWebDisplay() *WebDisplay {
	return &WebDisplay{clients: make(map[*websocket.Conn]struct{})}
}

func (w *WebDisplay) Render(frame Frame) error {
	w.mu.Lock()
	w.lastFrame = &frame
	w.mu.Unlock()
	return w.broadcast(frame)
}

// Clear blanks every connected client.
func (w *WebDisplay) Clear() error {
	w.mu.Lock()
	w.lastFrame = nil
	w.mu.Unlock()
	return w.broadcast(Frame{})
}

func (w *WebDisplay) handleWebSocket(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	w.add(conn)
	go w.readPump(conn)

	w.mu.Lock()
	last := w.lastFrame
	w.mu.Unlock()
	if last != nil {
		_ = writeFrame(conn, *last)
	}
}

func (w *WebDisplay) add(c *websocket.Conn) {
	w.mu.Lock()
	w.clients[c] = struct{}{}
	w.mu.Unlock()
}

func (w *WebDisplay) remove(c *websocket.Conn) {
	w.mu.Lock()
	delete(w.clients, c)
	w.mu.Unlock()
}

func (w *WebDisplay) broadcast(frame Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	w.mu.Lock()
	for c := range w.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(w.clients, c)
		}
	}
	w.mu.Unlock()
	return nil
}

func (w *WebDisplay) readPump(c *websocket.Conn) {
	defer func() {
		w.remove(c)
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(c *websocket.Conn, frame Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}
