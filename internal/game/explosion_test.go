package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFalloffDamage(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		dist   float64
		radius float64
		want   float64
	}{
		{"center hit", 40, 0, 20, 40},
		{"half way", 40, 10, 20, 20},
		{"at the rim", 40, 20, 20, 0},
		{"beyond the rim", 40, 25, 20, 0},
		{"zero radius", 40, 0, 0, 0},
		{"negative radius", 40, 5, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, falloffDamage(tt.base, tt.dist, tt.radius), 1e-9)
		})
	}
}

func TestFalloffDamageMonotonic(t *testing.T) {
	prev := falloffDamage(50, 0, 30)
	for d := 1.0; d <= 35; d++ {
		cur := falloffDamage(50, d, 30)
		assert.LessOrEqual(t, cur, prev, "dist %v", d)
		prev = cur
	}
}

func TestResolveExplosionDamagesAndCarves(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	b := deploy(g, 1, 1, 300)

	elevBefore := g.Terrain.Elev[100]
	g.resolveExplosion(Explosion{
		X: a.X, Y: a.Y,
		Radius:    20,
		Damage:    40,
		DamageMul: 1,
		CraterMul: 0.5,
		OwnerTeam: 1,
	})

	assert.Equal(t, 60, a.HP.Current, "center hit takes full base damage")
	assert.Equal(t, 100, b.HP.Current, "far combatant untouched")
	assert.InDelta(t, elevBefore-10, g.Terrain.Elev[100], 1e-9, "crater depth scales with CraterMul")
	assert.Equal(t, 1, g.Explosions.ActiveCount())

	events := g.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventExplosionOccurred, events[0].Type)
	assert.Equal(t, 20, events[0].Amount)
	assert.Equal(t, 1, events[0].Team)
}

func TestResolveExplosionMultiplierBeforeShield(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	deploy(g, 1, 1, 300)
	a.GrantBuff(Buff{Kind: BuffShield, Value: 30, Uses: -1})

	// floor(40 * 1.5) = 60 is settled before absorption: the 30-point
	// shield drains completely and the remaining 30 reaches health.
	g.resolveExplosion(Explosion{
		X: a.X, Y: a.Y,
		Radius:    26,
		Damage:    40,
		DamageMul: 1.5,
		CraterMul: 0.8,
		OwnerTeam: 1,
	})

	assert.Equal(t, 70, a.HP.Current)
	assert.False(t, a.HasBuff(BuffShield), "drained shield is pruned")
	assert.Equal(t, 1, g.Stats[1].Hits)
	assert.Equal(t, 30, g.Stats[1].DamageDealt, "stats count the post-shield loss")

	types := drainTypes(g)
	assert.Contains(t, types, EventCriticalHit, "pre-shield damage decides the critical")
	assert.Contains(t, types, EventExplosionOccurred)
}

func TestResolveExplosionFloorsMultipliedDamage(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)

	// falloff 25 * 0.5 = 12.5, boosted 1.5x = 18.75, floored to 18.
	g.resolveExplosion(Explosion{
		X: a.X + 10, Y: a.Y,
		Radius:    20,
		Damage:    25,
		DamageMul: 1.5,
		CraterMul: 0,
		OwnerTeam: 1,
	})
	assert.Equal(t, 82, a.HP.Current)
}

func TestApplyDamageShieldFirst(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	deploy(g, 1, 1, 300)
	a.GrantBuff(Buff{Kind: BuffShield, Value: 50, Uses: -1})

	g.applyDamage(a, 60, 1)

	assert.Equal(t, 90, a.HP.Current, "only the excess reaches health")
	assert.False(t, a.HasBuff(BuffShield))
	assert.Equal(t, 1, g.Stats[1].Hits)
	assert.Equal(t, 10, g.Stats[1].DamageDealt, "stats count post-shield loss")
}

func TestApplyDamageCriticalFlag(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	deploy(g, 1, 1, 300)

	g.applyDamage(a, g.Tun.CriticalDamage, 1)
	events := g.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCriticalHit, events[0].Type)
	assert.Equal(t, g.Tun.CriticalDamage, events[0].Amount)
}

func TestApplyDamageNoCriticalWhenShieldEatsIt(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	deploy(g, 1, 1, 300)
	a.GrantBuff(Buff{Kind: BuffShield, Value: 100, Uses: -1})

	g.applyDamage(a, g.Tun.CriticalDamage, 1)
	assert.Empty(t, g.DrainEvents(), "no health lost, no critical")
	assert.Equal(t, 0, g.Stats[1].Hits)
}

func TestApplyDamageNegativeClamps(t *testing.T) {
	g := newTestGame(1)
	a := deploy(g, 0, 0, 100)
	g.applyDamage(a, -25, 1)
	assert.Equal(t, 100, a.HP.Current, "negative damage never heals")
	assert.Empty(t, g.DrainEvents())
}

func TestApplyDamageKillEndsMatch(t *testing.T) {
	g := newTestGame(1)
	deploy(g, 0, 0, 100)
	b := deploy(g, 1, 1, 300)
	g.State = StatePlaying

	g.applyDamage(b, 200, 0)

	assert.False(t, b.Alive)
	assert.True(t, g.Over)
	assert.Equal(t, 0, g.Victor)
	assert.Equal(t, StateGameOver, g.State)

	var types []EventType
	for _, e := range g.DrainEvents() {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, EventCombatantEliminated)
	assert.Contains(t, types, EventMatchOver)
}

func TestExplosionSystemSlotReuse(t *testing.T) {
	es := NewExplosionSystem()
	es.add(Explosion{Radius: 10})
	es.add(Explosion{Radius: 12})
	require.Equal(t, 2, es.ActiveCount())
	require.Len(t, es.E, 2)

	es.Update(ExplosionFade + 0.01)
	assert.Equal(t, 0, es.ActiveCount())

	es.add(Explosion{Radius: 14})
	assert.Len(t, es.E, 2, "tombstoned slots are reused")
	assert.Equal(t, 1, es.ActiveCount())
}
