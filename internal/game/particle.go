package game

import "math"

type ParticleKind uint8

const (
	ParticleDebris ParticleKind = iota
	ParticleFire
	ParticleGlow
	ParticleSmoke
	ParticleSpark
	ParticleRain
	ParticleSnow
)

// Particle is purely cosmetic; the simulation never reads particle state.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Size float64

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Update integrates particles and retires the expired in place.
func (ps *ParticleSystem) Update(dt float64, terr *Terrain) {
	kept := ps.P[:0]
	for _, p := range ps.P {
		p.Life += dt
		if p.Life >= p.MaxLife {
			continue
		}
		if p.Life >= 0 {
			switch p.Kind {
			case ParticleDebris, ParticleSpark:
				p.VY += 180 * dt
			case ParticleSmoke:
				p.VY -= 14 * dt
			case ParticleFire:
				p.VY -= 8 * dt
			}
			p.X += p.VX * dt
			p.Y += p.VY * dt
			// Precipitation and debris stop at the surface.
			if terr != nil && p.X >= 0 && p.X < MapWidth && p.Y >= terr.GroundY(p.X) {
				switch p.Kind {
				case ParticleRain, ParticleSnow:
					continue
				case ParticleDebris, ParticleSpark:
					p.Y = terr.GroundY(p.X)
					p.VX *= 0.4
					p.VY = 0
				}
			}
		}
		kept = append(kept, p)
	}
	ps.P = kept
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// SpawnExplosion bursts fire, debris, and smoke scaled to the blast radius.
func (ps *ParticleSystem) SpawnExplosion(x, y, radius float64) {
	r := NewRand(ps.nextSeed())
	n := clamp(int(radius*2.2), 16, 140)
	for i := 0; i < n; i++ {
		ang := r.RangeF(0, 2*math.Pi)
		speed := r.RangeF(18, 26+radius*2.4)
		kind := ParticleFire
		col := Palette.FireHot
		life := r.RangeF(0.25, 0.6)
		switch r.Intn(3) {
		case 1:
			kind = ParticleDebris
			col = Palette.DirtDark
			life = r.RangeF(0.5, 1.1)
		case 2:
			kind = ParticleSmoke
			col = Palette.Smoke
			life = r.RangeF(0.8, 1.7)
			speed *= 0.4
		}
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * speed,
			VY:      math.Sin(ang)*speed - r.RangeF(0, radius),
			Size:    r.RangeF(0.7, 1.6),
			Life:    r.RangeF(-0.05, 0),
			MaxLife: life,
			Col:     col,
			Kind:    kind,
		})
	}
	// Central flash.
	ps.Add(Particle{
		X: x, Y: y,
		Size:    radius * 0.5,
		MaxLife: 0.22,
		Col:     Palette.Glow,
		Kind:    ParticleGlow,
	})
}

// SpawnMuzzleFlash marks a shot leaving the barrel.
func (ps *ParticleSystem) SpawnMuzzleFlash(x, y, angle float64) {
	r := NewRand(ps.nextSeed())
	for i := 0; i < 6; i++ {
		a := angle + r.RangeF(-0.3, 0.3)
		speed := r.RangeF(30, 70)
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(a) * speed,
			VY:      math.Sin(a) * speed,
			Size:    r.RangeF(0.5, 1.0),
			MaxLife: r.RangeF(0.08, 0.18),
			Col:     Palette.FireHot,
			Kind:    ParticleSpark,
		})
	}
}

// SpawnLightning draws the bolt flash and scorch sparks at a strike point.
func (ps *ParticleSystem) SpawnLightning(x, y float64) {
	r := NewRand(ps.nextSeed())
	// Bolt: stacked glow segments from the sky ceiling to the surface.
	steps := 14
	px := x
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		py := lerpF(-SkyCeiling*0.5, y, t)
		px += r.RangeF(-5, 5) * (1 - t)
		ps.Add(Particle{
			X: px, Y: py,
			Size:    r.RangeF(1.2, 2.4),
			MaxLife: 0.3,
			Col:     Palette.Lightning,
			Kind:    ParticleGlow,
		})
	}
	for i := 0; i < 22; i++ {
		ang := r.RangeF(-math.Pi, 0)
		speed := r.RangeF(25, 90)
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * speed,
			VY:      math.Sin(ang) * speed,
			Size:    r.RangeF(0.4, 0.9),
			MaxLife: r.RangeF(0.2, 0.55),
			Col:     Palette.Lightning,
			Kind:    ParticleSpark,
		})
	}
}

// SpawnPickup celebrates a collected crate.
func (ps *ParticleSystem) SpawnPickup(x, y float64, col RGB) {
	r := NewRand(ps.nextSeed())
	for i := 0; i < 14; i++ {
		ang := r.RangeF(-math.Pi, 0)
		speed := r.RangeF(15, 55)
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * speed,
			VY:      math.Sin(ang) * speed,
			Size:    r.RangeF(0.5, 1.1),
			MaxLife: r.RangeF(0.3, 0.8),
			Col:     col,
			Kind:    ParticleSpark,
		})
	}
}

func (ps *ParticleSystem) nextSeed() uint64 {
	ps.seed = splitmix64(ps.seed)
	return ps.seed
}

// ParticleRenderData splits particles into glow (additive) and normal
// (alpha blend) buffers. Format: [x, y, size, r, g, b, a, rotation] * N.
func (ps *ParticleSystem) ParticleRenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		col := p.Col
		a := 1.0 - t

		switch p.Kind {
		case ParticleDebris:
			a = 1.0
		case ParticleSmoke:
			fadeIn := clampF(t/0.18, 0, 1)
			a = (1.0 - t) * fadeIn * 0.85
		case ParticleGlow:
			a = (1.0 - t) * 1.15
		case ParticleFire:
			fadeIn := clampF(t/0.08, 0, 1)
			a = (1.0 - t) * fadeIn * 1.25
			if t < 0.5 {
				col = lerpRGB(Palette.FireHot, Palette.FireMid, t*2.0)
			} else {
				col = lerpRGB(Palette.FireMid, Palette.FireCool, (t-0.5)*2.0)
			}
		case ParticleSpark:
			a = 1.0 - t*t
		case ParticleRain:
			a = (1.0 - t) * 0.75
		case ParticleSnow:
			a = (1.0 - t) * 0.95
		}
		if a <= 0 {
			continue
		}

		visSize := p.Size
		if p.Kind == ParticleSmoke {
			visSize *= 1.0 + t*1.6
		}

		rc := float32(col.R) / 255.0
		gc := float32(col.G) / 255.0
		bc := float32(col.B) / 255.0
		ac := float32(clampF(a, 0, 1))

		// Additive passes pre-multiply color by alpha.
		if p.Kind == ParticleGlow || p.Kind == ParticleFire || p.Kind == ParticleSpark {
			glowBuf = append(glowBuf, float32(p.X), float32(p.Y), float32(visSize), rc*ac, gc*ac, bc*ac, ac, 0)
		} else {
			normBuf = append(normBuf, float32(p.X), float32(p.Y), float32(visSize), rc, gc, bc, ac, 0)
		}
	}
	return glowBuf, normBuf
}
