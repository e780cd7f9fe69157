// Package proto defines the tagged wire schema shared by the server and the
// client sync loop. Every message travels as a length-prefixed UTF-8 JSON
// document; the field names are the protocol, so they stay upper-case.
package proto

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// QuitAck is the raw payload acknowledging a graceful disconnect. It is the
// only non-JSON message on the wire; clients match it byte-wise.
var QuitAck = []byte("QUIT")

// JoinMessage is the very first message after accept: the identity the
// server issued for this connection.
type JoinMessage struct {
	ID string `json:"ID"`
}

// Validate checks that the issued identity is a well-formed UUID.
func (m JoinMessage) Validate() error {
	if _, err := uuid.Parse(m.ID); err != nil {
		return fmt.Errorf("join message carries a malformed identity %q: %w", m.ID, err)
	}
	return nil
}

// ObstacleEntry is one static level element in a state broadcast.
type ObstacleEntry struct {
	X      float64  `json:"X"`
	Y      float64  `json:"Y"`
	Width  float64  `json:"WIDTH"`
	Height float64  `json:"HEIGHT"`
	Color  [3]uint8 `json:"COLOR"`
}

// PlayerEntry is one player's public fields in a state broadcast.
type PlayerEntry struct {
	X     float64  `json:"X"`
	Y     float64  `json:"Y"`
	Color [3]uint8 `json:"COLOR"`
}

// StateMessage is the full authoritative entity model at one tick. It is
// broadcast wholesale every tick; receivers replace, never merge.
type StateMessage struct {
	LevelLayout map[string]ObstacleEntry `json:"LEVEL_LAYOUT"`
	Players     map[string]PlayerEntry   `json:"PLAYERS"`
}

// Validate rejects states that cannot round-trip through JSON: nil category
// maps or non-finite coordinates.
func (m StateMessage) Validate() error {
	if m.LevelLayout == nil || m.Players == nil {
		return fmt.Errorf("state message categories must be present")
	}
	for id, obs := range m.LevelLayout {
		if !finite(obs.X, obs.Y, obs.Width, obs.Height) {
			return fmt.Errorf("obstacle %s has non-finite geometry", id)
		}
	}
	for id, p := range m.Players {
		if !finite(p.X, p.Y) {
			return fmt.Errorf("player %s has non-finite position", id)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
