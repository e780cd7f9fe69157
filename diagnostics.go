package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// watcher is a read-only spectator on the diagnostics server: it receives
// every state broadcast as a websocket text message.
type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// writePump drains the send queue to the websocket; a write error ends the
// watcher.
func (w *watcher) writePump() {
	defer w.conn.Close()
	for msg := range w.send {
		w.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := w.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// publish stores the latest broadcast for diagnostics reads and fans it out
// to spectators, dropping frames for slow ones rather than blocking the
// tick loop.
func (h *Hub) publish(state []byte, players []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastState = state
	h.lastPlayers = players
	h.lastTick = h.tick
	for w := range h.watchers {
		select {
		case w.send <- state:
		default:
		}
	}
}

func (h *Hub) removeWatcher(w *watcher) {
	h.mu.Lock()
	if _, ok := h.watchers[w]; ok {
		delete(h.watchers, w)
		close(w.send)
	}
	h.mu.Unlock()
}

// HandleWatch upgrades to a websocket and streams every state broadcast.
func (h *Hub) HandleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("watch upgrade failed", "err", err)
		return
	}

	spectator := &watcher{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.watchers[spectator] = struct{}{}
	if h.lastState != nil {
		spectator.send <- h.lastState
	}
	h.mu.Unlock()

	go spectator.writePump()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.removeWatcher(spectator)
				return
			}
		}
	}()
}

// HandleHealthz answers liveness probes.
func (h *Hub) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

// HandleDiagnostics reports loop health and the live roster.
func (h *Hub) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	players := append([]string(nil), h.lastPlayers...)
	tick := h.lastTick
	h.mu.Unlock()

	payload := struct {
		Status     string         `json:"status"`
		ServerTime int64          `json:"serverTime"`
		TickRate   int            `json:"tickRate"`
		Tick       uint64         `json:"tick"`
		Players    []string       `json:"players"`
		Metrics    map[string]any `json:"metrics"`
	}{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
		TickRate:   h.tickRate,
		Tick:       tick,
		Players:    players,
		Metrics:    h.metrics.Snapshot(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
