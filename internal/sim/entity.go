// Package sim holds the authoritative entity model, the per-tick physics
// step, and the collision engine. Everything here is pure in-memory state;
// the server loop owns mutation, clients only ever see serialized copies.
package sim

import "github.com/google/uuid"

const (
	// Friction is the velocity damping coefficient applied each tick.
	Friction = 0.1
	// PlayerSize is the fixed edge length of a player's bounding box.
	PlayerSize = 50.0
)

// Color is an RGB triple, serialized as [r,g,b].
type Color [3]uint8

// Intent is one named input from a client, valid for exactly one tick.
type Intent string

const (
	IntentUp    Intent = "UP"
	IntentDown  Intent = "DOWN"
	IntentLeft  Intent = "LEFT"
	IntentRight Intent = "RIGHT"
	IntentQuit  Intent = "QUIT"
)

// Player is a server-owned entity keyed by its connection identity.
// Acceleration is recomputed every tick and never persists between ticks.
type Player struct {
	ID    uuid.UUID
	Pos   Vec2
	Vel   Vec2
	Acc   Vec2
	Box   Rect
	Color Color

	// LastHit records the collision outcome of the most recent step. The
	// step computes it but does not apply it to Pos/Vel; push-out
	// resolution stays disabled pending a correct treatment.
	LastHit *Hit
}

func NewPlayer(id uuid.UUID, x, y float64, color Color) *Player {
	return &Player{
		ID:    id,
		Pos:   Vec2{X: x, Y: y},
		Box:   Rect{X: x, Y: y, Width: PlayerSize, Height: PlayerSize},
		Color: color,
	}
}

// SetPos teleports the player, keeping the bounding box in step.
func (p *Player) SetPos(x, y float64) {
	p.Pos = Vec2{X: x, Y: y}
	p.Box.X = x
	p.Box.Y = y
}

// Obstacle is a static level element. The set is fixed at level init and
// never mutated while the server runs.
type Obstacle struct {
	ID    uuid.UUID
	Box   Rect
	Color Color
}
