package game

// TeamStats accumulates per-team combat counters for the whole match.
type TeamStats struct {
	Shots       int
	Hits        int
	DamageDealt int
}

// recordShot counts one shot fired by a team. Double-shot volleys count as
// one shot per projectile released.
func (g *Game) recordShot(team int) {
	if team >= 0 && team < TeamCount {
		g.Stats[team].Shots++
	}
}

// recordHit counts a successful hit (post-shield health reduction).
func (g *Game) recordHit(team, damage int) {
	if team >= 0 && team < TeamCount {
		g.Stats[team].Hits++
		g.Stats[team].DamageDealt += damage
	}
}
