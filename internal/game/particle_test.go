package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticleCapOverwrites(t *testing.T) {
	ps := NewParticleSystem(4, 1)
	for i := 0; i < 10; i++ {
		ps.Add(Particle{X: float64(i), MaxLife: 5})
	}
	assert.Len(t, ps.P, 4, "the pool never grows past its cap")
}

func TestParticleUpdateRetiresExpired(t *testing.T) {
	ps := NewParticleSystem(16, 1)
	ps.Add(Particle{MaxLife: 0.1, Y: -50})
	ps.Add(Particle{MaxLife: 5, Y: -50})

	ps.Update(0.2, nil)
	assert.Len(t, ps.P, 1)

	ps.Update(10, nil)
	assert.Empty(t, ps.P)
}

func TestPrecipitationStopsAtSurface(t *testing.T) {
	terr := flatTerrain(100)
	ps := NewParticleSystem(16, 1)
	ps.Add(Particle{X: 200, Y: terr.GroundY(200) - 1, VY: 100, MaxLife: 10, Kind: ParticleRain})

	ps.Update(0.1, terr)
	assert.Empty(t, ps.P, "raindrops vanish on the ground")
}

func TestDebrisSettlesOnSurface(t *testing.T) {
	terr := flatTerrain(100)
	ps := NewParticleSystem(16, 1)
	ps.Add(Particle{X: 200, Y: terr.GroundY(200) - 1, VY: 100, MaxLife: 10, Kind: ParticleDebris})

	ps.Update(0.1, terr)
	assert.Len(t, ps.P, 1)
	assert.Equal(t, terr.GroundY(ps.P[0].X), ps.P[0].Y)
	assert.Equal(t, 0.0, ps.P[0].VY)
}

func TestParticleRenderDataSplitsPasses(t *testing.T) {
	ps := NewParticleSystem(16, 1)
	ps.Add(Particle{Kind: ParticleGlow, MaxLife: 1, Size: 2})
	ps.Add(Particle{Kind: ParticleSmoke, MaxLife: 1, Life: 0.5, Size: 2})
	ps.Add(Particle{Kind: ParticleSpark, MaxLife: 1, Size: 1})
	ps.Add(Particle{Kind: ParticleRain, MaxLife: 1, Size: 1})
	ps.Add(Particle{Kind: ParticleFire, MaxLife: 1, Life: -0.5, Size: 1}) // delayed, hidden

	glow, norm := ps.ParticleRenderData(nil, nil)
	assert.Len(t, glow, 2*8, "glow and spark render additively")
	assert.Len(t, norm, 2*8, "smoke and rain render alpha-blended")
}

func TestSpawnExplosionScalesWithRadius(t *testing.T) {
	small := NewParticleSystem(MaxParticles, 1)
	small.SpawnExplosion(100, 100, 8)
	big := NewParticleSystem(MaxParticles, 1)
	big.SpawnExplosion(100, 100, 34)
	assert.Greater(t, len(big.P), len(small.P))
}
