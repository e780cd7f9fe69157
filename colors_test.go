package server

import "testing"

func TestColorFor_Deterministic(t *testing.T) {
	first := colorFor("3a1f0c6e-9f1e-4a7b-8f21-0123456789ab")
	second := colorFor("3a1f0c6e-9f1e-4a7b-8f21-0123456789ab")
	if first != second {
		t.Fatalf("same identity produced %v then %v", first, second)
	}
}

func TestColorFor_VariesAcrossIdentities(t *testing.T) {
	if colorFor("player-a") == colorFor("player-b") {
		t.Fatalf("distinct identities mapped to the same color")
	}
}
