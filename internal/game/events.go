package game

type EventType int

const (
	EventTurnAdvanced EventType = iota
	EventShotFired
	EventProjectileImpact
	EventExplosionOccurred
	EventCombatantEliminated
	EventCriticalHit
	EventClusterSplit
	EventPowerUpSpawned
	EventCrateLanded
	EventPowerUpCollected
	EventLightningStrike
	EventMatchOver
)

// Event is one simulation occurrence. The core appends events during a tick
// and the orchestrating loop drains the list afterwards; presentation
// (camera, audio, particles, battle log) reacts to the drained batch and
// never calls back into the simulation.
type Event struct {
	Type      EventType
	X, Y      float64
	Team      int // acting/owning team, -1 when not applicable
	Combatant int // affected combatant ID, -1 when not applicable
	Amount    int // damage, heal, radius... depending on Type
	Kind      int // weapon or power-up kind, -1 when not applicable
}

func (t EventType) String() string {
	switch t {
	case EventTurnAdvanced:
		return "turn_advanced"
	case EventShotFired:
		return "shot_fired"
	case EventProjectileImpact:
		return "projectile_impact"
	case EventExplosionOccurred:
		return "explosion"
	case EventCombatantEliminated:
		return "eliminated"
	case EventCriticalHit:
		return "critical"
	case EventClusterSplit:
		return "cluster_split"
	case EventPowerUpSpawned:
		return "powerup_spawned"
	case EventCrateLanded:
		return "crate_landed"
	case EventPowerUpCollected:
		return "powerup_collected"
	case EventLightningStrike:
		return "lightning"
	case EventMatchOver:
		return "match_over"
	}
	return "unknown"
}

// emit appends an event to the current tick's batch.
func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents returns the events produced since the last drain. The returned
// slice is only valid until the next call.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = g.events[:0]
	return out
}
