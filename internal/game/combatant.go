package game

import (
	"errors"
	"math"
)

var ErrNoAmmo = errors.New("no ammo for weapon")

// Combatant is one team-owned unit. Its y is derived state: after every
// physics step it is reconciled against the terrain surface at its x, either
// pinned to the ground or falling toward it.
type Combatant struct {
	ID   int
	Team int
	Slot int // roster slot within the team

	X, Y float64
	VY   float64 // vertical speed while airborne (carve fall, jump)

	HP    Health
	Alive bool

	Selected WeaponKind
	Ammo     map[WeaponKind]int
	Buffs    []Buff

	AimAngle float64 // radians, 0 = right, -pi/2 = straight up
	Facing   int     // -1 left, +1 right (display + default aim side)
	WalkDir  int     // -1, 0, +1; set by walk intents
	OnGround bool
}

func NewCombatant(id, team, slot int, x float64, terr *Terrain) *Combatant {
	facing := 1
	aim := -math.Pi / 4
	if team == 1 {
		facing = -1
		aim = -3 * math.Pi / 4
	}
	return &Combatant{
		ID:       id,
		Team:     team,
		Slot:     slot,
		X:        x,
		Y:        terr.GroundY(x),
		HP:       NewHealth(100),
		Alive:    true,
		Selected: WeaponBazooka,
		Ammo:     startingAmmo(),
		AimAngle: aim,
		Facing:   facing,
		OnGround: true,
	}
}

// Update advances walking and vertical physics for one tick and reconciles
// y against the terrain. Runs for every living combatant in every active
// state so that units over a fresh crater fall rather than snap.
func (c *Combatant) Update(dt float64, terr *Terrain, tun *Tunables) {
	if !c.Alive {
		return
	}

	if c.WalkDir != 0 && c.OnGround {
		c.Facing = c.WalkDir
		nx := clampF(c.X+float64(c.WalkDir)*WalkSpeed*dt, CombatantHalfW, MapWidth-CombatantHalfW)
		// Refuse steps up cliffs steeper than a unit can climb.
		if terr.GroundY(nx) > c.Y-6 {
			c.X = nx
		}
	}

	ground := terr.GroundY(c.X)
	if c.Y < ground-0.01 || c.VY < 0 {
		c.OnGround = false
		c.VY += tun.Gravity * dt
		c.Y += c.VY * dt
		if c.Y >= ground {
			c.Y = ground
			c.VY = 0
			c.OnGround = true
		}
	} else {
		// Pinned: terrain may have risen beneath us is impossible (craters
		// only dig), but float drift gets reconciled here.
		c.Y = ground
		c.VY = 0
		c.OnGround = true
	}
}

// Jump pops the unit off the ground.
func (c *Combatant) Jump() {
	if c.Alive && c.OnGround {
		c.VY = -JumpSpeed
		c.OnGround = false
	}
}

// AdjustAim nudges the aim angle, clamped to the upper half-circle.
func (c *Combatant) AdjustAim(delta float64) {
	c.AimAngle = clampF(c.AimAngle+delta, -math.Pi, 0)
	if math.Cos(c.AimAngle) >= 0 {
		c.Facing = 1
	} else {
		c.Facing = -1
	}
}

// FiringPoint is the muzzle position along the current aim direction,
// offset past the hit radius so a shot cannot collide with its own firer
// on the spawn tick.
func (c *Combatant) FiringPoint(angle float64) (float64, float64) {
	return c.X + math.Cos(angle)*MuzzleLength, c.Y - 3 + math.Sin(angle)*MuzzleLength
}

// SelectWeapon switches the active weapon. Selecting a weapon with zero
// remaining ammo fails and leaves the current selection unchanged.
func (c *Combatant) SelectWeapon(kind WeaponKind) error {
	if kind < 0 || kind >= WeaponKindCount {
		return ErrNoAmmo
	}
	if c.Ammo[kind] == 0 {
		return ErrNoAmmo
	}
	c.Selected = kind
	return nil
}

// HasAmmo reports whether the selected weapon can fire.
func (c *Combatant) HasAmmo() bool {
	return c.Ammo[c.Selected] != 0
}

// consumeAmmo decrements the selected weapon's ammo. The -1 unlimited
// sentinel is never decremented.
func (c *Combatant) consumeAmmo() {
	if n := c.Ammo[c.Selected]; n > 0 {
		c.Ammo[c.Selected] = n - 1
	}
}

// kill marks the combatant destroyed. Irreversible.
func (c *Combatant) kill() {
	c.Alive = false
	c.WalkDir = 0
	c.Buffs = c.Buffs[:0]
}

func (c *Combatant) distTo(x, y float64) float64 {
	return math.Hypot(c.X-x, c.Y-y)
}
