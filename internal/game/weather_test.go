package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickMatchWeatherDeterministic(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 0xFEED} {
		assert.Equal(t, PickMatchWeather(seed), PickMatchWeather(seed), "seed %d", seed)
	}
}

func TestPickMatchWeatherCoversModes(t *testing.T) {
	seen := map[WeatherType]bool{}
	for seed := uint64(1); seed < 400; seed++ {
		seen[PickMatchWeather(seed)] = true
	}
	assert.True(t, seen[WeatherClear])
	assert.True(t, seen[WeatherRain])
	assert.True(t, seen[WeatherSnow])
	assert.True(t, seen[WeatherStorm])
}

func TestModifyWind(t *testing.T) {
	tests := []struct {
		name string
		mode WeatherType
		base float64
		lo   float64
		hi   float64
	}{
		{"clear passes through", WeatherClear, 10, 10, 10},
		{"rain strengthens", WeatherRain, 10, 11.5, 11.5},
		{"snow dampens", WeatherSnow, 10, 9, 9},
		{"storm gusts", WeatherStorm, 10, 10*1.45 - 6, 10*1.45 + 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWeatherSystem(1)
			ws.Configure(tt.mode, 1)
			r := NewRand(5)
			for i := 0; i < 50; i++ {
				wind, _ := ws.ModifyWind(tt.base, r)
				assert.GreaterOrEqual(t, wind, tt.lo-1e-9)
				assert.LessOrEqual(t, wind, tt.hi+1e-9)
			}
		})
	}
}

func TestLightningNeverInClearOrSnow(t *testing.T) {
	for _, mode := range []WeatherType{WeatherClear, WeatherSnow} {
		ws := NewWeatherSystem(1)
		ws.Configure(mode, 1)
		r := NewRand(9)
		for i := 0; i < 500; i++ {
			assert.False(t, ws.TryLightning(r), "mode %v", mode)
		}
	}
}

func TestLightningStrikesInStorm(t *testing.T) {
	ws := NewWeatherSystem(1)
	ws.Configure(WeatherStorm, 1)
	r := NewRand(9)
	hits := 0
	for i := 0; i < 500; i++ {
		if ws.TryLightning(r) {
			hits++
		}
	}
	// 35% per roll; anything remotely near that means the gate works.
	assert.Greater(t, hits, 100)
	assert.Less(t, hits, 300)
}

func TestNewStrikeLandsOnTheMap(t *testing.T) {
	terr := flatTerrain(100)
	ws := NewWeatherSystem(1)
	ws.Configure(WeatherStorm, 1)
	r := NewRand(3)

	roster := []*Combatant{
		NewCombatant(0, 0, 0, 60, terr),
		NewCombatant(1, 1, 0, 420, terr),
	}

	for i := 0; i < 200; i++ {
		s := ws.NewStrike(r, terr, roster)
		require.GreaterOrEqual(t, s.X, 2.0)
		require.LessOrEqual(t, s.X, float64(MapWidth-2))
		assert.InDelta(t, terr.GroundY(s.X), s.Y, 1e-9)
		assert.False(t, s.Applied)
	}
}

func TestNewStrikeBiasHitsNearUnits(t *testing.T) {
	terr := flatTerrain(100)
	ws := NewWeatherSystem(1)
	ws.Configure(WeatherStorm, 1)
	r := NewRand(11)

	roster := []*Combatant{NewCombatant(0, 0, 0, 240, terr)}
	near := 0
	for i := 0; i < 300; i++ {
		s := ws.NewStrike(r, terr, roster)
		if math.Abs(s.X-240) <= 6 {
			near++
		}
	}
	// The 45% bias branch lands within 6px of the only living unit.
	assert.Greater(t, near, 60)
}

func TestGameLightningStrikeFlow(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)

	g.Strike = Strike{X: a.X, Y: a.Y}
	g.strikeLive = true
	g.State = StateLightning

	g.Update(0.016)
	assert.True(t, g.Strike.Applied)
	assert.Equal(t, 100-g.Tun.LightningDamage, a.HP.Current, "flat damage inside the radius")

	types := drainTypes(g)
	assert.Contains(t, types, EventLightningStrike)

	// The cinematic hold, then the next turn.
	for i := 0; i < 200 && g.State == StateLightning; i++ {
		g.Update(0.016)
	}
	assert.Equal(t, StatePlaying, g.State)
	assert.Equal(t, 1, g.Turn.CurrentTeam)
}

func TestWeatherStringAndPrecipitation(t *testing.T) {
	assert.Equal(t, "storm", WeatherStorm.String())
	assert.Equal(t, "clear", WeatherClear.String())

	ps := NewParticleSystem(MaxParticles, 1)
	ws := NewWeatherSystem(1)
	ws.Configure(WeatherRain, 1)
	for i := 0; i < 60; i++ {
		ws.UpdateAndSpawn(ps, 0.016)
	}
	assert.NotEmpty(t, ps.P, "rain spawns droplets")

	clear := NewWeatherSystem(1)
	empty := NewParticleSystem(MaxParticles, 1)
	clear.UpdateAndSpawn(empty, 0.016)
	assert.Empty(t, empty.P)
}
