package game

import (
	"os"

	"github.com/rs/zerolog"
)

// BattleLog forwards drained simulation events to a structured logger.
// It is presentation: it only observes the drained batch and is inert
// unless enabled.
type BattleLog struct {
	log     zerolog.Logger
	enabled bool
}

// NewBattleLog builds a console logger on stderr. When debug is false the
// log methods are no-ops.
func NewBattleLog(debug bool) *BattleLog {
	if !debug {
		return &BattleLog{}
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	return &BattleLog{
		log:     zerolog.New(w).With().Timestamp().Logger(),
		enabled: true,
	}
}

// Record writes one log line per event in the drained batch.
func (bl *BattleLog) Record(events []Event) {
	if !bl.enabled {
		return
	}
	for _, e := range events {
		ev := bl.log.Info().
			Str("event", e.Type.String()).
			Float64("x", e.X).
			Float64("y", e.Y)
		if e.Team >= 0 {
			ev = ev.Str("team", TeamName(e.Team))
		}
		if e.Combatant >= 0 {
			ev = ev.Int("combatant", e.Combatant)
		}
		switch e.Type {
		case EventShotFired, EventProjectileImpact:
			ev = ev.Str("weapon", WeaponKind(e.Kind).String())
		case EventClusterSplit:
			ev = ev.Str("weapon", WeaponKind(e.Kind).String()).Int("children", e.Amount)
		case EventPowerUpSpawned, EventCrateLanded, EventPowerUpCollected:
			ev = ev.Str("powerup", PowerUpKind(e.Kind).String())
		case EventExplosionOccurred:
			ev = ev.Int("radius", e.Amount)
		case EventCombatantEliminated:
		case EventCriticalHit, EventLightningStrike:
			ev = ev.Int("damage", e.Amount)
		case EventMatchOver:
			if e.Team >= 0 {
				ev = ev.Str("winner", TeamName(e.Team))
			} else {
				ev = ev.Str("winner", "draw")
			}
		}
		ev.Msg("battle")
	}
}
