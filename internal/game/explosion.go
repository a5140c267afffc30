package game

import "math"

// ExplosionFade is how long a resolved explosion stays visible.
const ExplosionFade = 0.55

// Explosion is a one-shot area damage event. Damage and terrain mutation
// happen entirely inside Resolve on the tick the explosion is created; the
// struct then lingers in the arena only for its fade-out.
type Explosion struct {
	ID        uint64
	X, Y      float64
	Radius    float64
	Damage    int
	DamageMul float64
	CraterMul float64
	OwnerTeam int

	Age    float64
	Active bool
}

type ExplosionSystem struct {
	E      []Explosion
	free   []int
	nextID uint64
	active int
}

func NewExplosionSystem() *ExplosionSystem {
	return &ExplosionSystem{
		E:    make([]Explosion, 0, 16),
		free: make([]int, 0, 16),
	}
}

func (es *ExplosionSystem) add(e Explosion) {
	es.nextID++
	e.ID = es.nextID
	e.Active = true
	if n := len(es.free); n > 0 {
		idx := es.free[n-1]
		es.free = es.free[:n-1]
		es.E[idx] = e
	} else {
		es.E = append(es.E, e)
	}
	es.active++
}

// Update ages fades out; damage was already applied on creation.
func (es *ExplosionSystem) Update(dt float64) {
	for i := range es.E {
		if !es.E[i].Active {
			continue
		}
		es.E[i].Age += dt
		if es.E[i].Age >= ExplosionFade {
			es.E[i].Active = false
			es.free = append(es.free, i)
			es.active--
		}
	}
}

// ActiveCount returns explosions still in their fade window.
func (es *ExplosionSystem) ActiveCount() int {
	return es.active
}

func (es *ExplosionSystem) Clear() {
	es.E = es.E[:0]
	es.free = es.free[:0]
	es.active = 0
}

// falloffDamage is the distance falloff: linear from base at the center to
// zero at the radius edge. Monotonic and continuous by construction.
func falloffDamage(base int, dist, radius float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	raw := float64(base) * (1 - dist/radius)
	if raw < 0 {
		return 0
	}
	return raw
}

// resolveExplosion applies one explosion: crater first, then falloff damage
// to every living combatant inside the radius, with the firer's damage
// multiplier applied before shield absorption. Kills are checked per
// combatant, immediately, so a team wipe ends the match mid-resolution.
func (g *Game) resolveExplosion(e Explosion) {
	g.Terrain.Carve(e.X, e.Y, e.Radius, e.CraterMul)

	for _, c := range g.Roster {
		if !c.Alive {
			continue
		}
		dist := c.distTo(e.X, e.Y)
		if dist >= e.Radius {
			continue
		}
		final := int(math.Floor(falloffDamage(e.Damage, dist, e.Radius) * e.DamageMul))
		g.applyDamage(c, final, e.OwnerTeam)
	}

	g.Explosions.add(e)
	g.emit(Event{
		Type:   EventExplosionOccurred,
		X:      e.X,
		Y:      e.Y,
		Team:   e.OwnerTeam,
		Amount: int(e.Radius),
	})
}

// applyDamage routes damage through shield absorption into health, updates
// the attacker's counters, flags criticals, and short-circuits into
// GameOver the moment a team's alive count reaches zero. Negative damage
// clamps to zero; it never heals.
func (g *Game) applyDamage(c *Combatant, damage, attackerTeam int) {
	if damage < 0 {
		damage = 0
	}
	excess := c.AbsorbWithShield(damage)
	lost := c.HP.Damage(excess)
	if lost > 0 {
		g.recordHit(attackerTeam, lost)
		if damage >= g.Tun.CriticalDamage {
			g.emit(Event{Type: EventCriticalHit, X: c.X, Y: c.Y, Team: attackerTeam, Combatant: c.ID, Amount: damage})
		}
	}
	if c.HP.IsDead() && c.Alive {
		c.kill()
		g.emit(Event{Type: EventCombatantEliminated, X: c.X, Y: c.Y, Team: c.Team, Combatant: c.ID})
		g.checkMatchOver()
	}
}
