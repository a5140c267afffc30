package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAiPlanStaysInLegalRange(t *testing.T) {
	g := newTestGame(3)
	beginDuel(g)

	a := NewSimpleAI()
	for i := 0; i < 50; i++ {
		a.plan(g)
		assert.GreaterOrEqual(t, a.aimAngle, -math.Pi)
		assert.LessOrEqual(t, a.aimAngle, 0.0)
		assert.GreaterOrEqual(t, a.aimPower, 0.15)
		assert.LessOrEqual(t, a.aimPower, 1.0)
	}
}

func TestAiPlanAimsTowardTheEnemy(t *testing.T) {
	g := newTestGame(3)
	beginDuel(g) // red at x=100, blue at x=380

	a := NewSimpleAI()
	for i := 0; i < 20; i++ {
		a.plan(g)
		// Enemy is to the right, so the loft points into the right quadrant.
		assert.Greater(t, math.Cos(a.aimAngle), 0.0, "iteration %d", i)
	}
}

func TestAiPlanWithoutTargets(t *testing.T) {
	g := newTestGame(3)
	a1, _ := beginDuel(g)
	for _, c := range g.Roster {
		if c.Team != a1.Team {
			c.Alive = false
		}
	}

	a := NewSimpleAI()
	a.plan(g)
	assert.InDelta(t, -math.Pi/4, a.aimAngle, 1e-9, "no enemies falls back to a default lob")
}

// TestAiDrivesItsTurnThroughPublicIntents attaches the AI to blue and runs
// the full pipeline: think, shuffle, fire.
func TestAiDrivesItsTurnThroughPublicIntents(t *testing.T) {
	g := newTestGame(8)
	beginDuel(g)
	g.SetAI(1, NewSimpleAI())

	// Hand the turn to blue the way the game does.
	g.nextTurn()
	require.Equal(t, 1, g.Turn.CurrentTeam)
	require.Equal(t, StateAiThinking, g.State)

	fired := false
	for i := 0; i < 5000 && !fired; i++ {
		g.Update(0.016)
		for _, e := range g.DrainEvents() {
			if e.Type == EventShotFired {
				assert.Equal(t, 1, e.Team)
				fired = true
			}
		}
	}
	require.True(t, fired, "the AI must fire within its turn budget")
	assert.Equal(t, StateFiring, g.State)
	assert.Equal(t, 1, g.Projectiles.ActiveCount())
}

// TestAiMatchPlaysItself puts controllers on both teams and lets the match
// run unattended; turns must keep flowing with no outside input.
func TestAiMatchPlaysItself(t *testing.T) {
	g := NewGame(21, DefaultTunables())
	g.SetAI(0, NewSimpleAI())
	g.SetAI(1, NewSimpleAI())
	g.StartMatch()

	shots := 0
	turns := 0
	for i := 0; i < 60000; i++ {
		g.Update(0.016)
		for _, e := range g.DrainEvents() {
			switch e.Type {
			case EventShotFired:
				shots++
			case EventTurnAdvanced:
				turns++
			}
		}
		if g.State == StateGameOver || (shots >= 6 && turns >= 5) {
			break
		}
	}

	assert.GreaterOrEqual(t, shots, 3, "both sides keep shooting")
	assert.GreaterOrEqual(t, turns, 3, "the rotation keeps moving")
}

func TestAiIntentsRejectedForHumans(t *testing.T) {
	g := newTestGame(8)
	beginDuel(g)
	g.SetAI(1, NewSimpleAI())
	g.nextTurn()
	require.Equal(t, StateAiThinking, g.State)

	// Outside the controller callback the same intents bounce off.
	g.ReleaseFire(-math.Pi/4, 0.5)
	assert.Equal(t, 0, g.Projectiles.ActiveCount())
	g.StartWalking(1)
	assert.Equal(t, 0, g.Turn.Current.WalkDir)
}
