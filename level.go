package server

import (
	"github.com/google/uuid"

	"syncarena/server/internal/sim"
)

// defaultLevel builds the compiled-in layout: a floor, two walls, and two
// free-standing blocks. Obstacle identities are minted once per process and
// stay constant for its lifetime.
func defaultLevel() []sim.Obstacle {
	color := sim.Color{0, 60, 0}
	rects := []sim.Rect{
		{X: 0, Y: 500, Width: 800, Height: 100},  // floor
		{X: 0, Y: 0, Width: 100, Height: 600},    // left wall
		{X: 700, Y: 0, Width: 100, Height: 600},  // right wall
		{X: 200, Y: 200, Width: 100, Height: 100},
		{X: 400, Y: 200, Width: 100, Height: 100},
	}

	obstacles := make([]sim.Obstacle, 0, len(rects))
	for _, r := range rects {
		obstacles = append(obstacles, sim.Obstacle{ID: uuid.New(), Box: r, Color: color})
	}
	return obstacles
}
