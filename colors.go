package server

import (
	"hash/fnv"

	"syncarena/server/internal/sim"
)

// colorFor derives a stable RGB color from an identity string. Any
// deterministic hash-to-RGB mapping satisfies the contract; FNV-1a keeps it
// cheap and reproducible across runs.
func colorFor(identity string) sim.Color {
	h := fnv.New64a()
	h.Write([]byte(identity))
	sum := h.Sum64()
	return sim.Color{uint8(sum), uint8(sum >> 8), uint8(sum >> 16)}
}
