package game

import "math"

// Projectile is a point mass under gravity and wind. Projectiles live in a
// fixed arena (tombstoned slots, reused by Spawn) so per-tick updates never
// reallocate and "still active" checks stay O(1) per entity.
type Projectile struct {
	ID     uint64
	X, Y   float64
	VX, VY float64

	OwnerID   int
	OwnerTeam int
	Weapon    WeaponKind
	DamageMul float64 // firer's multiplier, captured at fire time

	Active        bool
	IsSubmunition bool
}

// effective returns the damage/radius/crater this projectile delivers on a
// non-splitting impact; submunitions use the weapon's cluster numbers.
func (p *Projectile) effective() (damage int, radius, crater float64) {
	cfg := WeaponFor(p.Weapon)
	if p.IsSubmunition {
		return cfg.ClusterDamage, cfg.ClusterRadius, cfg.ClusterCrater
	}
	return cfg.BaseDamage, cfg.Radius, cfg.CraterMul
}

// shouldCluster reports whether end-of-life splits into submunitions.
func (p *Projectile) shouldCluster() bool {
	return !p.IsSubmunition && WeaponFor(p.Weapon).ClusterCount > 0
}

type ProjectileSystem struct {
	P      []Projectile
	free   []int
	nextID uint64
	active int
}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{
		P:    make([]Projectile, 0, 32),
		free: make([]int, 0, 32),
	}
}

func (ps *ProjectileSystem) Spawn(p Projectile) uint64 {
	ps.nextID++
	p.ID = ps.nextID
	p.Active = true
	if n := len(ps.free); n > 0 {
		idx := ps.free[n-1]
		ps.free = ps.free[:n-1]
		ps.P[idx] = p
	} else {
		ps.P = append(ps.P, p)
	}
	ps.active++
	return p.ID
}

func (ps *ProjectileSystem) despawn(idx int) {
	if !ps.P[idx].Active {
		return
	}
	ps.P[idx].Active = false
	ps.free = append(ps.free, idx)
	ps.active--
}

// ActiveCount returns the number of live projectiles.
func (ps *ProjectileSystem) ActiveCount() int {
	return ps.active
}

func (ps *ProjectileSystem) Clear() {
	ps.P = ps.P[:0]
	ps.free = ps.free[:0]
	ps.active = 0
}

// Update integrates every live projectile one tick (semi-implicit Euler:
// velocity first, then position) with gravity plus wind acceleration, and
// resolves collisions in priority order: terrain, combatant, out-of-bounds.
// Impacts are handed to the game for explosion or cluster resolution.
func (ps *ProjectileSystem) Update(g *Game, dt float64) {
	windAcc := g.Wind * g.Tun.WindAccel
	for i := range ps.P {
		p := &ps.P[i]
		if !p.Active {
			continue
		}

		p.VY += g.Tun.Gravity * dt
		p.VX += windAcc * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt

		// 1. Terrain: the projectile crossed the surface at its x.
		if p.X >= 0 && p.X <= MapWidth-1 {
			if ground := g.Terrain.GroundY(p.X); p.Y >= ground {
				impact := *p
				impact.Y = ground
				ps.despawn(i)
				g.onProjectileImpact(impact)
				continue
			}
		}

		// 2. Direct hit: distance to a living combatant under the hit
		// radius, independent of explosion radius.
		if hit := g.combatantNear(p.X, p.Y, g.Tun.HitRadius); hit != nil {
			impact := *p
			impact.X, impact.Y = hit.X, hit.Y
			ps.despawn(i)
			g.onProjectileImpact(impact)
			continue
		}

		// 3. Out of bounds: silent despawn, no explosion.
		if p.X < 0 || p.X > MapWidth || p.Y > MapHeight || p.Y < -SkyCeiling {
			ps.despawn(i)
		}
	}
}

// spawnCluster launches the submunition fan from an impact point: count
// children evenly spaced across the upward semicircle, each with randomized
// speed, each an ordinary non-splitting projectile thereafter.
func (g *Game) spawnCluster(parent Projectile) {
	cfg := WeaponFor(parent.Weapon)
	n := cfg.ClusterCount
	for i := 0; i < n; i++ {
		angle := -math.Pi * (float64(i) + 0.5) / float64(n)
		speed := cfg.ClusterSpeed * g.rng.RangeF(0.75, 1.25)
		g.Projectiles.Spawn(Projectile{
			X:  parent.X,
			Y:  parent.Y - 2,
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,

			OwnerID:       parent.OwnerID,
			OwnerTeam:     parent.OwnerTeam,
			Weapon:        parent.Weapon,
			DamageMul:     parent.DamageMul,
			IsSubmunition: true,
		})
	}
}
