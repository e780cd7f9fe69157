package server

import (
	"encoding/json"
	"fmt"

	"syncarena/server/internal/sim"
	"syncarena/server/proto"
)

// buildState assembles the full entity model into the broadcast schema.
func buildState(players []*sim.Player, obstacles []sim.Obstacle) proto.StateMessage {
	msg := proto.StateMessage{
		LevelLayout: make(map[string]proto.ObstacleEntry, len(obstacles)),
		Players:     make(map[string]proto.PlayerEntry, len(players)),
	}
	for _, obs := range obstacles {
		msg.LevelLayout[obs.ID.String()] = proto.ObstacleEntry{
			X:      obs.Box.X,
			Y:      obs.Box.Y,
			Width:  obs.Box.Width,
			Height: obs.Box.Height,
			Color:  [3]uint8(obs.Color),
		}
	}
	for _, p := range players {
		msg.Players[p.ID.String()] = proto.PlayerEntry{
			X:     p.Pos.X,
			Y:     p.Pos.Y,
			Color: [3]uint8(p.Color),
		}
	}
	return msg
}

// marshalState validates the state against the wire schema before encoding;
// a state that cannot round-trip never reaches the wire.
func marshalState(msg proto.StateMessage) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid state message: %w", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode state message: %w", err)
	}
	return data, nil
}

// parseIntents decodes a client payload into intents, rejecting anything
// outside the protocol vocabulary. A malformed payload is fatal to that one
// connection, never to the loop.
func parseIntents(payload []byte) ([]sim.Intent, error) {
	var raw []string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode intents: %w", err)
	}
	intents := make([]sim.Intent, 0, len(raw))
	for _, s := range raw {
		switch in := sim.Intent(s); in {
		case sim.IntentUp, sim.IntentDown, sim.IntentLeft, sim.IntentRight, sim.IntentQuit:
			intents = append(intents, in)
		default:
			return nil, fmt.Errorf("unknown intent %q", s)
		}
	}
	return intents, nil
}

func hasQuit(intents []sim.Intent) bool {
	for _, in := range intents {
		if in == sim.IntentQuit {
			return true
		}
	}
	return false
}
