// Package spectator streams live combat log lines to WebSocket viewers.
package spectator

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/logger"
)

const (
	writeWait   = 10 * time.Second
	backlogSize = 100
)

// Event is one combat log line as sent to viewers.
type Event struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Style      string `json:"style"`
	ServerTime int64  `json:"serverTime"`
}

type viewer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub fans combat log lines out to every connected viewer. It satisfies
// the combat engine's emitter, so an encounter can be watched live.
type Hub struct {
	mu      sync.Mutex
	viewers map[uint64]*viewer
	backlog []Event
	nextID  atomic.Uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		viewers: make(map[uint64]*viewer),
	}
}

// Emit broadcasts one combat log line to all viewers and appends it to
// the backlog replayed to late joiners.
func (h *Hub) Emit(message string, style combat.Style) {
	event := Event{
		Type:       "combat",
		Message:    message,
		Style:      styleName(style),
		ServerTime: time.Now().UnixMilli(),
	}

	h.mu.Lock()
	h.backlog = append(h.backlog, event)
	if len(h.backlog) > backlogSize {
		h.backlog = h.backlog[len(h.backlog)-backlogSize:]
	}
	targets := make(map[uint64]*viewer, len(h.viewers))
	for id, v := range h.viewers {
		targets[id] = v
	}
	h.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("Failed to marshal spectator event: %v", err)
		return
	}

	for id, v := range targets {
		if err := v.send(data); err != nil {
			logger.Debugf("Dropping spectator %d: %v", id, err)
			h.remove(id)
		}
	}
}

// ViewerCount returns the number of connected viewers.
func (h *Hub) ViewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Handler returns an HTTP handler that upgrades requests to WebSocket
// viewer connections. New viewers receive the backlog first.
func (h *Hub) Handler() http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debugf("Spectator upgrade failed: %v", err)
			return
		}

		id, backlog := h.add(conn)
		logger.Infof("Spectator %d connected from %s", id, conn.RemoteAddr())

		v := h.get(id)
		if v == nil {
			conn.Close()
			return
		}
		for _, event := range backlog {
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if err := v.send(data); err != nil {
				h.remove(id)
				return
			}
		}

		// Viewers never send anything useful; the read loop just waits
		// for the connection to close.
		go func() {
			defer h.remove(id)
			defer conn.Close()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})
}

func (h *Hub) add(conn *websocket.Conn) (uint64, []Event) {
	id := h.nextID.Add(1)
	h.mu.Lock()
	h.viewers[id] = &viewer{conn: conn}
	backlog := make([]Event, len(h.backlog))
	copy(backlog, h.backlog)
	h.mu.Unlock()
	return id, backlog
}

func (h *Hub) get(id uint64) *viewer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewers[id]
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	v, ok := h.viewers[id]
	if ok {
		delete(h.viewers, id)
	}
	h.mu.Unlock()
	if ok {
		v.conn.Close()
	}
}

func (v *viewer) send(data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return v.conn.WriteMessage(websocket.TextMessage, data)
}

func styleName(style combat.Style) string {
	switch style {
	case combat.StyleDamage:
		return "damage"
	case combat.StyleHeal:
		return "heal"
	case combat.StyleCritical:
		return "critical"
	case combat.StyleStatus:
		return "status"
	case combat.StyleDeath:
		return "death"
	case combat.StyleReward:
		return "reward"
	case combat.StyleSystem:
		return "system"
	default:
		return "normal"
	}
}
