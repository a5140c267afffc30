package game

import "math"

// SimpleAI is the built-in opponent: it thinks for a moment, shuffles a
// short random distance, and release-fires a closed-form ballistic solution
// at a random living enemy with aim and power jitter plus a crude wind
// correction. It drives the turn purely through the public intents.
type SimpleAI struct {
	thinkLeft float64
	moveLeft  float64
	moveDir   int
	planned   bool
	aimAngle  float64
	aimPower  float64
}

func NewSimpleAI() *SimpleAI {
	return &SimpleAI{}
}

func (a *SimpleAI) StartTurn(g *Game) {
	r := g.Rng()
	a.thinkLeft = r.RangeF(AiThinkTimeMin, AiThinkTimeMax)
	a.moveLeft = r.RangeF(0, AiMoveTimeMax)
	a.moveDir = 1
	if r.Chance(0.5) {
		a.moveDir = -1
	}
	a.planned = false
}

func (a *SimpleAI) Update(g *Game, dt float64) {
	switch g.State {
	case StateAiThinking:
		a.thinkLeft -= dt
		if a.thinkLeft <= 0 {
			g.aiBeginMoving()
			g.StartWalking(a.moveDir)
		}
	case StateAiMoving:
		a.moveLeft -= dt
		if a.moveLeft > 0 {
			return
		}
		g.StopWalking()
		if !a.planned {
			a.plan(g)
			a.planned = true
		}
		g.ReleaseFire(a.aimAngle, a.aimPower)
	}
}

// plan solves launch angle and power for the chosen target, then blurs the
// solution so the AI misses like a nervous gunner rather than a compiler.
func (a *SimpleAI) plan(g *Game) {
	actor := g.Turn.Current
	r := g.Rng()

	target := a.pickTarget(g, actor)
	if target == nil {
		a.aimAngle = -math.Pi / 4
		a.aimPower = r.RangeF(0.3, 0.8)
		return
	}

	dx := target.X - actor.X
	dy := target.Y - actor.Y
	dist := math.Hypot(dx, dy)

	// Fixed 55 degree loft toward the target; solve speed for the range
	// equation on flat ground, then nudge against the wind.
	loft := 55.0 * math.Pi / 180.0
	angle := -loft
	if dx < 0 {
		angle = -math.Pi + loft
	}
	speed := math.Sqrt(math.Abs(dx) * g.Tun.Gravity / math.Max(math.Sin(2*loft), 0.1))
	// Height difference and wind both shift the landing point; fold them
	// into the speed estimate rather than re-deriving the full quadratic.
	speed *= 1 - clampF(dy/(dist+1), -0.3, 0.3)*0.5
	windPush := g.Wind * g.Tun.WindAccel
	if (windPush > 0) == (dx > 0) {
		speed *= 0.94
	} else {
		speed *= 1.07
	}

	cfg := WeaponFor(actor.Selected)
	power := speed / (g.Tun.MaxPower * math.Max(cfg.SpeedMul, 0.1))
	a.aimAngle = clampF(angle+r.RangeF(-0.06, 0.06), -math.Pi, 0)
	a.aimPower = clampF(power*r.RangeF(0.92, 1.08), 0.15, 1)
}

func (a *SimpleAI) pickTarget(g *Game, actor *Combatant) *Combatant {
	var enemies []*Combatant
	for _, c := range g.Roster {
		if c.Alive && c.Team != actor.Team {
			enemies = append(enemies, c)
		}
	}
	if len(enemies) == 0 {
		return nil
	}
	return enemies[g.Rng().Intn(len(enemies))]
}
