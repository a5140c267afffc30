package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a game on flat terrain with an empty roster so tests
// can place combatants precisely.
func newTestGame(seed uint64) *Game {
	g := NewGame(seed, DefaultTunables())
	for x := range g.Terrain.Elev {
		g.Terrain.Elev[x] = 100
	}
	g.Terrain.ClearDirty()
	return g
}

// deploy adds one combatant standing on the terrain at x.
func deploy(g *Game, id, team int, x float64) *Combatant {
	slot := 0
	for _, c := range g.Roster {
		if c.Team == team {
			slot++
		}
	}
	c := NewCombatant(id, team, slot, x, g.Terrain)
	g.Roster = append(g.Roster, c)
	return c
}

// beginDuel stands one combatant per team and opens RED's turn.
func beginDuel(g *Game) (*Combatant, *Combatant) {
	a := deploy(g, 0, 0, 100)
	b := deploy(g, 1, 1, 380)
	g.Turn.Advance(g.Roster)
	g.State = StatePlaying
	return a, b
}

func drainTypes(g *Game) []EventType {
	var out []EventType
	for _, e := range g.DrainEvents() {
		out = append(out, e.Type)
	}
	return out
}

func TestNewGameDefaults(t *testing.T) {
	g := NewGame(0, DefaultTunables())
	assert.Equal(t, StateMenu, g.State)
	assert.Equal(t, -1, g.Victor)
	assert.False(t, g.Over)
	require.NotNil(t, g.Terrain)
	require.NotNil(t, g.Turn)
}

func TestStartMatchDeploysTeams(t *testing.T) {
	g := NewGame(99, DefaultTunables())
	g.StartMatch()

	require.Len(t, g.Roster, TeamCount*g.Tun.TeamSize)
	for _, c := range g.Roster {
		assert.True(t, c.Alive)
		assert.Equal(t, 100, c.HP.Current)
		assert.Equal(t, g.Terrain.GroundY(c.X), c.Y)
		if c.Team == 0 {
			assert.Less(t, c.X, float64(MapWidth)/2, "red deploys left")
		} else {
			assert.Greater(t, c.X, float64(MapWidth)/2, "blue deploys right")
		}
	}

	assert.Equal(t, StateIntroPan, g.State)
	require.NotNil(t, g.Turn.Current)
	assert.Equal(t, 0, g.Turn.CurrentTeam, "red opens the match")
	assert.LessOrEqual(t, math.Abs(g.Wind), g.Tun.WindMax)
}

func TestStartMatchIsDeterministic(t *testing.T) {
	a := NewGame(1234, DefaultTunables())
	b := NewGame(1234, DefaultTunables())
	a.StartMatch()
	b.StartMatch()

	require.Equal(t, len(a.Roster), len(b.Roster))
	for i := range a.Roster {
		assert.Equal(t, a.Roster[i].X, b.Roster[i].X, "slot %d", i)
	}
	assert.Equal(t, a.Wind, b.Wind)
	assert.Equal(t, a.Weather.Mode(), b.Weather.Mode())
}

func TestStartMatchResetsPreviousMatch(t *testing.T) {
	g := NewGame(7, DefaultTunables())
	g.StartMatch()
	g.Roster[0].HP.Damage(60)
	g.Stats[0].Shots = 5
	g.Projectiles.Spawn(Projectile{X: 10, Y: 10})

	g.StartMatch()
	assert.Equal(t, 100, g.Roster[0].HP.Current)
	assert.Equal(t, 0, g.Stats[0].Shots)
	assert.Equal(t, 0, g.Projectiles.ActiveCount())
	assert.False(t, g.Over)
}

func TestIntroPanEntersPlaying(t *testing.T) {
	g := NewGame(7, DefaultTunables())
	g.StartMatch()
	require.Equal(t, StateIntroPan, g.State)

	g.Update(IntroPanPhase1 + IntroPanPhase2 + 0.1)
	assert.Equal(t, StatePlaying, g.State)
	assert.Greater(t, g.BannerTime, 0.0, "turn banner shows on entry")
}

func TestUpdateFrozenStates(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	before := g.Turn.TimeLeft

	for _, s := range []State{StateMenu, StatePaused, StateSettings} {
		g.State = s
		a.WalkDir = 1
		x := a.X
		g.Update(0.5)
		assert.Equal(t, x, a.X, "state %v runs no physics", s)
		assert.Equal(t, before, g.Turn.TimeLeft, "state %v runs no clock", s)
	}
}

func TestReleaseFireLaunches(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)

	g.ReleaseFire(-math.Pi/4, 0.5)

	assert.Equal(t, StateFiring, g.State)
	assert.Equal(t, 1, g.Projectiles.ActiveCount())
	assert.Equal(t, 1, g.Stats[0].Shots)
	assert.Equal(t, -1, a.Ammo[WeaponBazooka], "bazooka ammo is unlimited")

	types := drainTypes(g)
	assert.Contains(t, types, EventShotFired)

	p := g.Projectiles.P[0]
	assert.Equal(t, a.ID, p.OwnerID)
	assert.Less(t, p.VY, 0.0, "upward launch")
	assert.Greater(t, p.VX, 0.0, "rightward launch")
}

func TestReleaseFireClampsPower(t *testing.T) {
	g := newTestGame(1)
	beginDuel(g)

	g.ReleaseFire(-math.Pi/2, 5.0)
	require.Equal(t, 1, g.Projectiles.ActiveCount())
	p := g.Projectiles.P[0]
	speed := math.Hypot(p.VX, p.VY)
	assert.InDelta(t, g.Tun.MaxPower, speed, 1e-6, "power caps at 1")
}

func TestDoubleShotFiresTwice(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	a.GrantBuff(Buff{Kind: BuffDoubleShot, Uses: 1})

	g.ReleaseFire(-math.Pi/4, 0.5)

	assert.Equal(t, 2, g.Projectiles.ActiveCount())
	assert.Equal(t, 2, g.Stats[0].Shots, "each barrel counts as a shot")
	assert.False(t, a.HasBuff(BuffDoubleShot), "consumed at fire time")
}

func TestDamageBoostCapturedAtFire(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	a.GrantBuff(Buff{Kind: BuffDamageBoost, Uses: 1})

	g.ReleaseFire(-math.Pi/4, 0.5)

	require.Equal(t, 1, g.Projectiles.ActiveCount())
	assert.Equal(t, g.Tun.DamageBoostMul, g.Projectiles.P[0].DamageMul)
	assert.False(t, a.HasBuff(BuffDamageBoost), "use consumed on launch, not on impact")
}

func TestInstantWeaponPaths(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	require.NoError(t, g.SelectWeapon(WeaponRifle))

	// Charge-release intents do nothing for an instant weapon.
	g.StartCharging()
	assert.False(t, g.Charging)
	g.ReleaseFire(-math.Pi/4, 0.5)
	assert.Equal(t, 0, g.Projectiles.ActiveCount())
	assert.Equal(t, StatePlaying, g.State)

	g.FireInstant(-math.Pi / 4)
	assert.Equal(t, StateFiring, g.State)
	require.Equal(t, 1, g.Projectiles.ActiveCount())
	assert.Equal(t, 3, a.Ammo[WeaponRifle])

	speed := math.Hypot(g.Projectiles.P[0].VX, g.Projectiles.P[0].VY)
	assert.InDelta(t, g.Tun.MaxPower*WeaponFor(WeaponRifle).SpeedMul, speed, 1e-6, "instant shots leave at full power")
}

func TestFireInstantRejectsChargeWeapons(t *testing.T) {
	g := newTestGame(1)
	beginDuel(g)
	g.FireInstant(-math.Pi / 4)
	assert.Equal(t, 0, g.Projectiles.ActiveCount())
	assert.Equal(t, StatePlaying, g.State)
}

func TestChargeRampBounces(t *testing.T) {
	g := newTestGame(1)
	beginDuel(g)

	g.StartCharging()
	require.True(t, g.Charging)

	g.Update(0.5)
	assert.InDelta(t, ChargeRate*0.5, g.Charge, 1e-9)

	// Ride past the top; the ramp pins at 1 then reverses.
	g.Update(1.0)
	assert.Equal(t, 1.0, g.Charge)
	for i := 0; i < 200; i++ {
		g.Update(0.05)
		assert.GreaterOrEqual(t, g.Charge, 0.0)
		assert.LessOrEqual(t, g.Charge, 1.0)
	}
}

func TestAutoFireOnClockExpiry(t *testing.T) {
	g := newTestGame(1)
	beginDuel(g)
	g.Turn.TimeLeft = 0.05

	g.Update(0.1)
	assert.Equal(t, StateFiring, g.State)
	assert.Equal(t, 1, g.Projectiles.ActiveCount())
}

func TestAutoFireDryFallsBackToBazooka(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	a.Selected = WeaponMortar
	a.Ammo[WeaponMortar] = 0
	g.Turn.TimeLeft = 0.05

	g.Update(0.1)
	assert.Equal(t, WeaponBazooka, a.Selected)
	assert.Equal(t, StateFiring, g.State)
	assert.Equal(t, 1, g.Projectiles.ActiveCount())
}

func TestIntentsRejectedOutsideOwnTurnStates(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)

	for _, s := range []State{StateFiring, StateAiThinking, StateAiMoving, StateLightning, StateGameOver} {
		g.State = s
		g.ReleaseFire(-math.Pi/4, 0.5)
		assert.Equal(t, 0, g.Projectiles.ActiveCount(), "fire in %v", s)

		g.StartWalking(1)
		assert.Equal(t, 0, a.WalkDir, "walk in %v", s)

		g.StartCharging()
		assert.False(t, g.Charging, "charge in %v", s)
	}
}

func TestIdleInputCannotCancelAiWalk(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)

	g.State = StateAiMoving
	g.aiActing = true
	g.StartWalking(1)
	require.Equal(t, 1, a.WalkDir)

	// The keyboard layer sends StopWalking every frame no arrow is held;
	// outside the actor's own turn it must not touch WalkDir.
	g.aiActing = false
	g.StopWalking()
	assert.Equal(t, 1, a.WalkDir)

	g.aiActing = true
	g.StopWalking()
	assert.Equal(t, 0, a.WalkDir)

	g.State = StatePlaying
	g.StartWalking(-1)
	require.Equal(t, -1, a.WalkDir)
	g.StopWalking()
	assert.Equal(t, 0, a.WalkDir)
}

func TestCycleWeaponSkipsEmpty(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)

	g.CycleWeapon()
	assert.Equal(t, WeaponMortar, a.Selected)

	a.Ammo[WeaponCluster] = 0
	g.CycleWeapon()
	assert.Equal(t, WeaponRifle, a.Selected, "empty cluster launcher is skipped")
}

func TestPauseResumeSettings(t *testing.T) {
	g := newTestGame(1)
	beginDuel(g)

	g.Pause()
	assert.Equal(t, StatePaused, g.State)

	g.OpenSettings()
	assert.Equal(t, StateSettings, g.State)
	g.CloseSettings()
	assert.Equal(t, StatePaused, g.State)

	g.Resume()
	assert.Equal(t, StatePlaying, g.State)

	// Pause resumes into the state it interrupted.
	g.State = StateFiring
	g.Pause()
	g.Resume()
	assert.Equal(t, StateFiring, g.State)

	g.State = StateMenu
	g.Pause()
	assert.Equal(t, StateMenu, g.State, "nothing to pause in the menu")

	g.State = StatePaused
	g.QuitToMenu()
	assert.Equal(t, StateMenu, g.State)

	g.State = StateGameOver
	g.QuitToMenu()
	assert.Equal(t, StateMenu, g.State)
}

func TestRollWindStaysClamped(t *testing.T) {
	g := newTestGame(9)
	for i := 0; i < 500; i++ {
		g.rollWind()
		assert.LessOrEqual(t, math.Abs(g.Wind), g.Tun.WindMax)
	}
}

func TestFocusPointFollowsActor(t *testing.T) {
	g := newTestGame(1)
	a, _ := beginDuel(g)
	fx, fy := g.FocusPoint()
	assert.Equal(t, a.X, fx)
	assert.Equal(t, a.Y-14, fy)
}

// TestFiringResolvesIntoNextTurn drives a full human shot through flight,
// impact, any supply drop or lightning interlude, and out the other side.
func TestFiringResolvesIntoNextTurn(t *testing.T) {
	g := newTestGame(5)
	beginDuel(g)

	g.ReleaseFire(-math.Pi/3, 0.6)
	require.Equal(t, StateFiring, g.State)

	var seen []EventType
	for i := 0; i < 20000; i++ {
		g.Update(0.016)
		seen = append(seen, drainTypes(g)...)
		if g.State == StatePlaying || g.State == StateGameOver {
			break
		}
	}

	require.Equal(t, StatePlaying, g.State, "the turn pipeline must settle")
	assert.Equal(t, 1, g.Turn.CurrentTeam, "turn passes to blue")
	assert.Contains(t, seen, EventProjectileImpact)
	assert.Contains(t, seen, EventTurnAdvanced)
	assert.Equal(t, 0, g.Projectiles.ActiveCount())
}

func TestDirectHitScenarioResolvesExactly(t *testing.T) {
	g := newTestGame(5)
	_, blue := beginDuel(g)

	g.ReleaseFire(-math.Pi/4, 0.5)
	require.Equal(t, StateFiring, g.State)
	require.Equal(t, 1, g.Stats[0].Shots)

	// Steer the shell so it drops straight onto the defender. A direct
	// hit detonates at the combatant's center, so the full base damage
	// lands with no falloff.
	require.Equal(t, 1, g.Projectiles.ActiveCount())
	p := &g.Projectiles.P[0]
	p.X, p.Y = blue.X, blue.Y-40
	p.VX, p.VY = 0, 120

	var seen []EventType
	for i := 0; i < 20000; i++ {
		g.Update(0.016)
		seen = append(seen, drainTypes(g)...)
		if g.State == StatePlaying || g.State == StateGameOver {
			break
		}
	}

	assert.Equal(t, 60, blue.HP.Current, "full bazooka damage at center distance")
	assert.True(t, blue.Alive)
	assert.Equal(t, 1, g.Stats[0].Hits)
	assert.Equal(t, 40, g.Stats[0].DamageDealt)
	require.Equal(t, StatePlaying, g.State)
	assert.Equal(t, 1, g.Turn.CurrentTeam, "turn passes to the defender's team")
	assert.Contains(t, seen, EventProjectileImpact)
	assert.Contains(t, seen, EventTurnAdvanced)
	assert.NotContains(t, seen, EventCriticalHit, "40 is under the critical threshold")
}

func TestLethalHitEndsMatchBeforeTurnHandoff(t *testing.T) {
	g := newTestGame(5)
	red, blue := beginDuel(g)
	blue.HP.Current = 1

	g.Projectiles.Spawn(Projectile{
		X: blue.X, Y: blue.Y - 30,
		VY:        120,
		OwnerID:   red.ID,
		OwnerTeam: red.Team,
		Weapon:    WeaponBazooka,
		DamageMul: 1,
	})
	g.State = StateFiring

	var seen []EventType
	for i := 0; i < 2000 && g.State == StateFiring; i++ {
		g.Update(0.016)
		seen = append(seen, drainTypes(g)...)
	}

	require.Equal(t, StateGameOver, g.State)
	assert.True(t, g.Over)
	assert.Equal(t, 0, g.Victor)
	assert.Equal(t, 0, g.Turn.CurrentTeam, "the match ends on the firer's turn")
	assert.Contains(t, seen, EventMatchOver)
	assert.NotContains(t, seen, EventTurnAdvanced)
}
