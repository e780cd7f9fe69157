package sim

// Step advances one player by one tick. Movement intents contribute a unit
// force per axis (no gravity; callers may repurpose Y for it). The update
// order is fixed: acceleration from force minus friction-damped velocity,
// velocity, collision hook, position, bounding box.
//
// The collision outcome is recorded on the player but deliberately not fed
// back into position or velocity; see Player.LastHit.
func Step(p *Player, intents []Intent, obstacles []Obstacle) {
	var force Vec2
	if hasIntent(intents, IntentLeft) {
		force.X -= 1
	}
	if hasIntent(intents, IntentRight) {
		force.X += 1
	}
	if hasIntent(intents, IntentUp) {
		force.Y -= 1
	}
	if hasIntent(intents, IntentDown) {
		force.Y += 1
	}

	p.Acc = force.Add(p.Vel.Scale(-Friction))
	p.Vel = p.Vel.Add(p.Acc)

	if hit, ok := CheckCollision(p, obstacles); ok {
		p.LastHit = &hit
	} else {
		p.LastHit = nil
	}

	p.Pos = p.Pos.Add(p.Vel)
	p.Box.X = p.Pos.X
	p.Box.Y = p.Pos.Y
}

// hasIntent treats the intent list as a set: duplicates never double a force.
func hasIntent(intents []Intent, want Intent) bool {
	for _, in := range intents {
		if in == want {
			return true
		}
	}
	return false
}
