package sim

import "math"

// Side identifies which box edge a swept segment crossed, named by the edge
// itself: a rightward segment entering a box crosses its left edge.
type Side int

const (
	// SideInside means the segment origin already lay inside the box, so
	// the swept test is ambiguous and the static check decides.
	SideInside Side = -1

	SideLeft   Side = 0
	SideRight  Side = 1
	SideTop    Side = 2
	SideBottom Side = 3
)

func (s Side) String() string {
	switch s {
	case SideInside:
		return "inside"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Hit is the outcome of a collision query.
type Hit struct {
	Point Vec2
	Side  Side
}

// SegmentVsBox clips the directed segment start→end against an axis-aligned
// box using the Liang-Barsky parametric algorithm. It reports the entry
// point and the box edge crossed, or SideInside when the origin started
// within the box. Deterministic and side-effect free.
func SegmentVsBox(start, end Vec2, box Rect) (Hit, bool) {
	deltaX := end.X - start.X
	deltaY := end.Y - start.Y

	p := [4]float64{-deltaX, deltaX, -deltaY, deltaY}
	q := [4]float64{
		start.X - box.Left(),
		box.Right() - start.X,
		start.Y - box.Top(),
		box.Bottom() - start.Y,
	}

	t0, t1 := 0.0, 1.0
	side := SideInside

	for i := 0; i < 4; i++ {
		switch {
		case p[i] == 0:
			// Parallel to this edge; outside means no intersection at all.
			if q[i] < 0 {
				return Hit{}, false
			}
		case p[i] < 0:
			// Potential entry edge.
			r := q[i] / p[i]
			if r > t1 {
				return Hit{}, false
			}
			if r > t0 {
				side = Side(i)
				t0 = r
			}
		default:
			// Potential exit edge.
			r := q[i] / p[i]
			if r < t0 {
				return Hit{}, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	return Hit{
		Point: Vec2{X: start.X + t0*deltaX, Y: start.Y + t0*deltaY},
		Side:  side,
	}, true
}

// StaticOverlap resolves two already-overlapping boxes by penetration depth:
// the axis with the smaller gap is the cheaper push-out, and the center
// delta sign picks the side. a is the moving box, b the obstacle.
func StaticOverlap(a, b Rect) Hit {
	deltaX := b.CenterX() - a.CenterX()
	gapX := math.Abs(deltaX) - a.Width/2 - b.Width/2
	deltaY := b.CenterY() - a.CenterY()
	gapY := math.Abs(deltaY) - a.Height/2 - b.Height/2

	if math.Abs(gapX) > math.Abs(gapY) {
		if deltaY < 0 {
			return Hit{Point: Vec2{X: a.Left(), Y: b.Bottom()}, Side: SideBottom}
		}
		return Hit{Point: Vec2{X: a.Left(), Y: b.Top() - a.Height - 1}, Side: SideTop}
	}
	if deltaX < 0 {
		return Hit{Point: Vec2{X: a.Right(), Y: a.Top()}, Side: SideRight}
	}
	return Hit{Point: Vec2{X: b.Left() - a.Width, Y: a.Top()}, Side: SideLeft}
}

// CheckCollision sweeps the player's center along its velocity against every
// obstacle box padded by the player's half-extents, so the segment test
// doubles as a rectangle sweep. An origin-inside result falls back to the
// static overlap check. The reported point is translated back to top-left
// coordinates, matching Player.Pos.
func CheckCollision(p *Player, obstacles []Obstacle) (Hit, bool) {
	start := p.Box.Center()
	end := start.Add(p.Vel)

	for _, obs := range obstacles {
		padded := obs.Box.Inflate(p.Box.Width, p.Box.Height)
		hit, ok := SegmentVsBox(start, end, padded)
		if !ok {
			continue
		}
		if hit.Side == SideInside {
			return StaticOverlap(p.Box, obs.Box), true
		}
		hit.Point.X -= p.Box.Width / 2
		hit.Point.Y -= p.Box.Height / 2
		return hit, true
	}
	return Hit{}, false
}
