package sim

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestStep_AtRestStaysPut(t *testing.T) {
	p := NewPlayer(uuid.New(), 130, 100, Color{})
	Step(p, nil, nil)
	if p.Pos.X != 130 || p.Pos.Y != 100 {
		t.Fatalf("player at rest with no input moved to (%v,%v)", p.Pos.X, p.Pos.Y)
	}
	if p.Vel.X != 0 || p.Vel.Y != 0 {
		t.Fatalf("player at rest gained velocity (%v,%v)", p.Vel.X, p.Vel.Y)
	}
	if p.Box.X != p.Pos.X || p.Box.Y != p.Pos.Y {
		t.Fatalf("bounding box out of step with position")
	}
}

func TestStep_OpposingIntentsCancel(t *testing.T) {
	p := NewPlayer(uuid.New(), 0, 0, Color{})
	Step(p, []Intent{IntentLeft, IntentRight, IntentUp, IntentDown}, nil)
	if p.Pos.X != 0 || p.Pos.Y != 0 {
		t.Fatalf("opposing intents moved the player to (%v,%v)", p.Pos.X, p.Pos.Y)
	}
}

func TestStep_DuplicateIntentsDoNotStack(t *testing.T) {
	single := NewPlayer(uuid.New(), 0, 0, Color{})
	double := NewPlayer(uuid.New(), 0, 0, Color{})
	Step(single, []Intent{IntentRight}, nil)
	Step(double, []Intent{IntentRight, IntentRight}, nil)
	if single.Pos.X != double.Pos.X {
		t.Fatalf("duplicate intent doubled the force: %v vs %v", single.Pos.X, double.Pos.X)
	}
}

func TestStep_FiveTicksRightMatchesClosedForm(t *testing.T) {
	p := NewPlayer(uuid.New(), 130, 100, Color{})
	for i := 0; i < 5; i++ {
		Step(p, []Intent{IntentRight}, nil)
	}

	// Friction-damped integration from rest: a = 1 - v*FRICTION, v += a, x += v.
	vel, x := 0.0, 130.0
	for i := 0; i < 5; i++ {
		acc := 1 - vel*Friction
		vel += acc
		x += vel
	}

	if math.Abs(p.Pos.X-x) > 1e-9 {
		t.Fatalf("after 5 ticks of RIGHT expected x=%v, got %v", x, p.Pos.X)
	}
	if p.Pos.Y != 100 {
		t.Fatalf("horizontal input moved the player vertically to %v", p.Pos.Y)
	}
}

func TestStep_DeterministicTrajectories(t *testing.T) {
	sequence := [][]Intent{
		{IntentRight},
		{IntentRight, IntentDown},
		nil,
		{IntentLeft},
		{IntentUp},
		nil,
		{IntentDown, IntentRight},
	}
	obstacles := []Obstacle{
		{ID: uuid.New(), Box: Rect{X: 200, Y: 200, Width: 100, Height: 100}},
	}

	id := uuid.New()
	first := NewPlayer(id, 130, 100, Color{})
	second := NewPlayer(id, 130, 100, Color{})
	for _, intents := range sequence {
		Step(first, intents, obstacles)
		Step(second, intents, obstacles)
	}

	if first.Pos != second.Pos || first.Vel != second.Vel {
		t.Fatalf("identical runs diverged: pos %+v vs %+v, vel %+v vs %+v",
			first.Pos, second.Pos, first.Vel, second.Vel)
	}
}

func TestStep_RecordsCollisionWithoutApplyingIt(t *testing.T) {
	p := NewPlayer(uuid.New(), 0, 0, Color{})
	obstacles := []Obstacle{
		{ID: uuid.New(), Box: Rect{X: 0, Y: 0, Width: 100, Height: 100}},
	}

	Step(p, nil, obstacles)

	if p.LastHit == nil {
		t.Fatalf("expected the collision hook to record a hit for an overlapping player")
	}
	if p.Pos.X != 0 || p.Pos.Y != 0 {
		t.Fatalf("collision outcome must not move the player; got (%v,%v)", p.Pos.X, p.Pos.Y)
	}

	Step(p, nil, nil)
	if p.LastHit != nil {
		t.Fatalf("expected the hook to clear once nothing collides")
	}
}

func TestStep_VelocityApproachesTerminal(t *testing.T) {
	p := NewPlayer(uuid.New(), 0, 0, Color{})
	for i := 0; i < 200; i++ {
		Step(p, []Intent{IntentRight}, nil)
	}
	// Terminal velocity under unit force is force/FRICTION.
	if p.Vel.X <= 9.9 || p.Vel.X >= 10.0+1e-9 {
		t.Fatalf("expected velocity to converge toward 10, got %v", p.Vel.X)
	}
}
