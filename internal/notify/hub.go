package notify

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultRecent = 50
	// toasts queued per client before new ones are dropped for it
	sendBuffer = 16
)

// Hub fans toasts out to websocket and TCP clients and keeps the most recent ones
// for polling clients. It satisfies charts.Reporter.
type Hub struct {
	mu        sync.Mutex
	clients   map[net.Conn]*subscriber
	wsClients map[*websocket.Conn]*subscriber
	recent    []Toast
	limit     int
	now       func() time.Time
	log       zerolog.Logger
}

// subscriber owns one connection's outgoing queue. Only its writer
// goroutine touches the connection for writing.
type subscriber struct {
	send chan []byte
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
	Recent     int `json:"recent"`
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:   make(map[net.Conn]*subscriber),
		wsClients: make(map[*websocket.Conn]*subscriber),
		limit:     defaultRecent,
		now:       time.Now,
		log:       log,
	}
}

func (h *Hub) ShowSuccess(detail string) Toast { return h.Show(SeveritySuccess, detail) }
func (h *Hub) ShowError(detail string) Toast   { return h.Show(SeverityError, detail) }
func (h *Hub) ShowInfo(detail string) Toast    { return h.Show(SeverityInfo, detail) }

// Report shows an error toast.
func (h *Hub) Report(message string) { h.ShowError(message) }

// Show records the toast and queues it for every client without waiting on
// any connection. TCP clients get one JSON object per line.
func (h *Hub) Show(severity Severity, detail string) Toast {
	t := Toast{
		Type:     "toast",
		Severity: severity,
		Summary:  summaryFor(severity),
		Detail:   detail,
		LifeMS:   DefaultLife.Milliseconds(),
		At:       h.now().UTC(),
	}

	b, err := json.Marshal(t)
	if err != nil {
		h.log.Warn().Err(err).Msg("toast marshal failed")
		return t
	}
	line := append(b[:len(b):len(b)], '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, t)
	if len(h.recent) > h.limit {
		h.recent = h.recent[len(h.recent)-h.limit:]
	}

	for c, sub := range h.clients {
		h.enqueue(sub, line, c.RemoteAddr().String())
	}
	for ws, sub := range h.wsClients {
		h.enqueue(sub, b, ws.RemoteAddr().String())
	}
	return t
}

func (h *Hub) enqueue(sub *subscriber, msg []byte, remote string) {
	select {
	case sub.send <- msg:
	default:
		h.log.Debug().Str("remote", remote).Msg("client queue full, toast dropped")
	}
}

// Recent returns up to n of the latest toasts, oldest first. n <= 0 returns
// all that are kept.
func (h *Hub) Recent(n int) []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 || n > len(h.recent) {
		n = len(h.recent)
	}
	out := make([]Toast, n)
	copy(out, h.recent[len(h.recent)-n:])
	return out
}

func (h *Hub) Add(conn net.Conn) {
	sub := &subscriber{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[conn] = sub
	h.mu.Unlock()

	go h.pump(sub, conn, func(msg []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		_, err := conn.Write(msg)
		return err
	})
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	if sub, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(sub.send)
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// Welcome greets a TCP client before it is added to the hub.
func (h *Hub) Welcome(conn net.Conn) {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	msg := fmt.Sprintf("{\"type\":\"welcome\",\"transport\":\"tcp\",\"clients\":%d}\n", n)
	_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	_, _ = conn.Write([]byte(msg))
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	sub := &subscriber{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.wsClients[ws] = sub
	h.mu.Unlock()

	go h.pump(sub, ws, func(msg []byte) error {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		return ws.WriteMessage(websocket.TextMessage, msg)
	})
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	if sub, ok := h.wsClients[ws]; ok {
		delete(h.wsClients, ws)
		close(sub.send)
	}
	h.mu.Unlock()
	_ = ws.Close()
}

// pump writes queued messages until Remove closes the queue. A failed write
// closes the connection so the reader loop notices and removes the client;
// later messages are drained and discarded.
func (h *Hub) pump(sub *subscriber, conn interface{ Close() error }, write func([]byte) error) {
	broken := false
	for msg := range sub.send {
		if broken {
			continue
		}
		if err := write(msg); err != nil {
			h.log.Debug().Err(err).Msg("dropping client after failed write")
			_ = conn.Close()
			broken = true
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
		Recent:     len(h.recent),
	}
}
