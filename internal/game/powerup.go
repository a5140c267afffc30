package game

import "math"

type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpShield
	PowerUpDamageBoost
	PowerUpDoubleShot
	PowerUpClusterAmmo

	PowerUpKindCount // must stay last
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpShield:
		return "shield"
	case PowerUpDamageBoost:
		return "damage boost"
	case PowerUpDoubleShot:
		return "double shot"
	case PowerUpClusterAmmo:
		return "cluster ammo"
	}
	return "?"
}

// CrateFallSpeed caps the terminal velocity of a falling supply crate.
const CrateFallSpeed = 85.0

// Crate is a supply drop: it falls from the sky ceiling under reduced
// gravity with wind drift, then sits on the terrain until collected.
type Crate struct {
	X, Y    float64
	VY      float64
	Kind    PowerUpKind
	Falling bool
	Alive   bool
	Timer   float64 // spin/flash animation
}

type PowerUpSystem struct {
	Crates   []Crate
	seed     uint64
	spawnSeq uint64
}

func NewPowerUpSystem(seed uint64) *PowerUpSystem {
	if seed == 0 {
		seed = 1
	}
	return &PowerUpSystem{seed: seed}
}

func (pu *PowerUpSystem) nextRand() *Rand {
	pu.spawnSeq++
	return NewRand(splitmix64(pu.seed ^ pu.spawnSeq*0x9E3779B185EBCA87))
}

// SpawnFalling drops a random crate at a random x above the map and returns
// it. The caller owns the PowerUpFalling state while Falling is true.
func (pu *PowerUpSystem) SpawnFalling() *Crate {
	r := pu.nextRand()
	kind := PowerUpKind(r.Intn(int(PowerUpKindCount)))
	x := float64(r.Range(20, MapWidth-20))
	pu.Crates = append(pu.Crates, Crate{
		X:       x,
		Y:       -20,
		Kind:    kind,
		Falling: true,
		Alive:   true,
	})
	return &pu.Crates[len(pu.Crates)-1]
}

// Update advances falling crates (reduced gravity, wind drift) and the spin
// timers of landed ones. Returns whether any crate is still falling, plus
// the indices of crates that touched down this tick.
func (pu *PowerUpSystem) Update(dt float64, terr *Terrain, wind float64, tun *Tunables) (bool, []int) {
	falling := false
	var landed []int
	for i := range pu.Crates {
		c := &pu.Crates[i]
		if !c.Alive {
			continue
		}
		c.Timer += dt
		if !c.Falling {
			continue
		}
		c.VY = clampF(c.VY+tun.Gravity*0.4*dt, 0, CrateFallSpeed)
		c.Y += c.VY * dt
		c.X = clampF(c.X+wind*0.35*dt, 4, MapWidth-4)
		if ground := terr.GroundY(c.X); c.Y >= ground {
			c.Y = ground - 2
			c.VY = 0
			c.Falling = false
			landed = append(landed, i)
		} else {
			falling = true
		}
	}
	return falling, landed
}

// CollectNear hands any landed crate within pickup range of the combatant
// to it and returns the collected kinds.
func (pu *PowerUpSystem) CollectNear(c *Combatant, tun *Tunables) []PowerUpKind {
	var picked []PowerUpKind
	for i := range pu.Crates {
		cr := &pu.Crates[i]
		if !cr.Alive || cr.Falling {
			continue
		}
		if math.Hypot(cr.X-c.X, cr.Y-c.Y) > PickupRadius {
			continue
		}
		cr.Alive = false
		applyPowerUp(cr.Kind, c, tun)
		picked = append(picked, cr.Kind)
	}
	return picked
}

// applyPowerUp grants the crate's payload. Health only restores the living;
// there is no resurrection path.
func applyPowerUp(kind PowerUpKind, c *Combatant, tun *Tunables) {
	switch kind {
	case PowerUpHealth:
		c.HP.Heal(tun.HealthPack)
	case PowerUpShield:
		c.GrantBuff(Buff{Kind: BuffShield, Value: tun.ShieldValue, Uses: -1})
	case PowerUpDamageBoost:
		c.GrantBuff(Buff{Kind: BuffDamageBoost, Uses: tun.DamageBoostUses})
	case PowerUpDoubleShot:
		c.GrantBuff(Buff{Kind: BuffDoubleShot, Uses: tun.DoubleShotUses})
	case PowerUpClusterAmmo:
		if c.Ammo[WeaponCluster] >= 0 {
			c.Ammo[WeaponCluster]++
		}
	}
}

func (pu *PowerUpSystem) Clear() {
	pu.Crates = pu.Crates[:0]
}

func powerUpColor(k PowerUpKind) (r, g, b float32) {
	switch k {
	case PowerUpHealth:
		return 0.35, 0.95, 0.40
	case PowerUpShield:
		return 0.40, 0.70, 1.0
	case PowerUpDamageBoost:
		return 1.0, 0.45, 0.25
	case PowerUpDoubleShot:
		return 1.0, 0.85, 0.30
	case PowerUpClusterAmmo:
		return 0.85, 0.50, 1.0
	}
	return 1, 1, 1
}

// RenderData returns crate sprites for the rotated-box shader.
// Format: [x, y, size, r, g, b, a, rotation] * N.
func (pu *PowerUpSystem) RenderData() []float32 {
	var buf []float32
	for i := range pu.Crates {
		c := &pu.Crates[i]
		if !c.Alive {
			continue
		}
		r, g, b := powerUpColor(c.Kind)
		rot := float32(math.Sin(c.Timer*1.7) * 0.35)
		if c.Falling {
			rot = float32(c.Timer * 2.2)
		}
		buf = append(buf, float32(c.X), float32(c.Y-2), 6.5, r, g, b, 1, rot)
	}
	return buf
}

// GlowData returns soft halos under landed crates so pickups read at night.
func (pu *PowerUpSystem) GlowData() []float32 {
	var buf []float32
	for i := range pu.Crates {
		c := &pu.Crates[i]
		if !c.Alive || c.Falling {
			continue
		}
		r, g, b := powerUpColor(c.Kind)
		pulse := float32(0.6 + 0.25*math.Sin(c.Timer*3.0))
		buf = append(buf, float32(c.X), float32(c.Y-2), 11, r*pulse*0.5, g*pulse*0.5, b*pulse*0.5, 1, 0)
	}
	return buf
}
