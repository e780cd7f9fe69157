package server

import "time"

const (
	// DefaultTickRate is the authoritative loop frequency in Hz.
	DefaultTickRate = 60

	// Spawn point assigned at the tick boundary after a join is admitted.
	spawnX = 130.0
	spawnY = 100.0

	// New players sit at the origin until the loop places them.
	provisionalX = 0.0
	provisionalY = 0.0

	// writeWait bounds a single broadcast write so one stalled peer cannot
	// hold the tick for everyone else.
	writeWait = 5 * time.Second

	// joinBacklog buffers admissions between accept and the next tick.
	joinBacklog = 64
)
