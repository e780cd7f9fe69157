package proto

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestJoinMessage_Validate(t *testing.T) {
	if err := (JoinMessage{ID: uuid.NewString()}).Validate(); err != nil {
		t.Fatalf("valid join message rejected: %v", err)
	}
	if err := (JoinMessage{ID: "not-a-uuid"}).Validate(); err == nil {
		t.Fatalf("expected malformed identity to be rejected")
	}
}

func TestStateMessage_WireFieldNames(t *testing.T) {
	msg := StateMessage{
		LevelLayout: map[string]ObstacleEntry{
			"o1": {X: 0, Y: 500, Width: 800, Height: 100, Color: [3]uint8{0, 60, 0}},
		},
		Players: map[string]PlayerEntry{
			"p1": {X: 130, Y: 100, Color: [3]uint8{10, 20, 30}},
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	raw := string(data)
	for _, key := range []string{`"LEVEL_LAYOUT"`, `"PLAYERS"`, `"X"`, `"Y"`, `"WIDTH"`, `"HEIGHT"`, `"COLOR"`} {
		if !strings.Contains(raw, key) {
			t.Fatalf("wire document missing key %s: %s", key, raw)
		}
	}
	if !strings.Contains(raw, `"COLOR":[0,60,0]`) {
		t.Fatalf("color must serialize as an RGB array: %s", raw)
	}
}

func TestStateMessage_Validate(t *testing.T) {
	valid := StateMessage{
		LevelLayout: map[string]ObstacleEntry{},
		Players:     map[string]PlayerEntry{"p": {X: 1, Y: 2}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}

	if err := (StateMessage{}).Validate(); err == nil {
		t.Fatalf("expected nil category maps to be rejected")
	}

	nan := StateMessage{
		LevelLayout: map[string]ObstacleEntry{},
		Players:     map[string]PlayerEntry{"p": {X: math.NaN()}},
	}
	if err := nan.Validate(); err == nil {
		t.Fatalf("expected non-finite position to be rejected")
	}
}
