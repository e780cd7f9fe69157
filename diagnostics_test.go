package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHandleHealthz(t *testing.T) {
	h := newTestHub()
	rec := httptest.NewRecorder()
	h.HandleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz responded %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleDiagnostics_ReflectsRoster(t *testing.T) {
	h := newTestHub()
	conn, id := admitPlayer(t, h)
	drainFrames(conn)
	h.step()

	rec := httptest.NewRecorder()
	h.HandleDiagnostics(rec, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("diagnostics responded %d", rec.Code)
	}

	var payload struct {
		Status   string         `json:"status"`
		TickRate int            `json:"tickRate"`
		Players  []string       `json:"players"`
		Metrics  map[string]any `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("diagnostics did not decode: %v", err)
	}
	if payload.Status != "ok" || payload.TickRate != DefaultTickRate {
		t.Fatalf("unexpected payload header: %+v", payload)
	}
	if len(payload.Players) != 1 || payload.Players[0] != id.String() {
		t.Fatalf("expected players [%s], got %v", id, payload.Players)
	}
	if payload.Metrics["joins"].(float64) != 1 {
		t.Fatalf("expected one recorded join, got %v", payload.Metrics["joins"])
	}
}

func TestHandleWatch_StreamsBroadcasts(t *testing.T) {
	h := newTestHub()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWatch))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("watch dial failed: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the spectator.
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.mu.Lock()
		registered := len(h.watchers) == 1
		h.mu.Unlock()
		if registered {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("spectator never registered")
		}
		time.Sleep(2 * time.Millisecond)
	}

	want := []byte(`{"LEVEL_LAYOUT":{},"PLAYERS":{}}`)
	h.publish(want, nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("spectator read failed: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("spectator received %q, want %q", got, want)
	}
}
