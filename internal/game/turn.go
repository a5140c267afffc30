package game

import "fmt"

// TeamName returns the display name for a team index.
func TeamName(team int) string {
	switch team {
	case 0:
		return "RED"
	case 1:
		return "BLUE"
	}
	return "?"
}

// TurnManager rotates the acting combatant strictly by team (0, 1, 0, ...)
// and within a team by a monotonically increasing per-team counter taken
// modulo the team's current alive count, so eliminated units are skipped
// without disturbing future ordering.
type TurnManager struct {
	CurrentTeam int
	Current     *Combatant
	TimeLeft    float64

	counters [TeamCount]int
	turnTime float64
	started  bool
}

func NewTurnManager(turnTime float64) *TurnManager {
	return &TurnManager{turnTime: turnTime}
}

// AliveForTeam returns the team's living combatants in slot order.
func AliveForTeam(roster []*Combatant, team int) []*Combatant {
	var out []*Combatant
	for _, c := range roster {
		if c.Team == team && c.Alive {
			out = append(out, c)
		}
	}
	return out
}

// Winner inspects alive counts. over=false while both teams stand; a
// simultaneous wipe resolves as a draw (winner=-1).
func Winner(roster []*Combatant) (over bool, winner int) {
	alive := [TeamCount]int{}
	for _, c := range roster {
		if c.Alive {
			alive[c.Team]++
		}
	}
	switch {
	case alive[0] == 0 && alive[1] == 0:
		return true, -1
	case alive[0] == 0:
		return true, 1
	case alive[1] == 0:
		return true, 0
	}
	return false, 0
}

// Advance rotates to the next team's next living combatant and resets the
// turn clock. Returns false if the next team has no one alive; the win
// condition must have been caught before that can happen.
func (tm *TurnManager) Advance(roster []*Combatant) bool {
	team := 0
	if tm.started {
		team = 1 - tm.CurrentTeam
	}
	alive := AliveForTeam(roster, team)
	if len(alive) == 0 {
		return false
	}
	pick := tm.counters[team] % len(alive)
	tm.counters[team]++
	tm.CurrentTeam = team
	tm.Current = alive[pick]
	tm.TimeLeft = tm.turnTime
	tm.started = true
	return true
}

// Tick counts the turn clock down and reports whether it just expired.
func (tm *TurnManager) Tick(dt float64) bool {
	if tm.TimeLeft <= 0 {
		return false
	}
	tm.TimeLeft -= dt
	return tm.TimeLeft <= 0
}

// Banner composes the turn announcement line.
func (tm *TurnManager) Banner() string {
	if tm.Current == nil {
		return ""
	}
	return fmt.Sprintf("%s %d'S TURN", TeamName(tm.CurrentTeam), tm.Current.Slot+1)
}
