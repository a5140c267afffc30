package game

// Map dimensions (in world pixels). Terrain keeps one elevation sample
// per x column, so MapWidth is also the heightmap resolution.
const (
	MapWidth  = 480
	MapHeight = 270
)

// SkyCeiling extends the playable rectangle one screen above the map so
// lobbed shots can arc off-camera without despawning.
const SkyCeiling = MapHeight

// Window defaults.
const (
	WindowWidth  = 960
	WindowHeight = 540
	DefaultZoom  = 2.0
	MinZoom      = 1.0
	MaxZoom      = 6.0
)

// Teams.
const (
	TeamCount       = 2
	DefaultTeamSize = 3
)

// Combatant body/movement.
const (
	CombatantHalfW = 4.0
	WalkSpeed      = 26.0
	JumpSpeed      = 70.0
	PickupRadius   = 8.0
	MuzzleLength   = 9.0 // firing point offset along the barrel, past the hit radius
)

// Turn flow timing (seconds).
const (
	IntroPanPhase1  = 2.2 // sweep across the battlefield
	IntroPanPhase2  = 1.1 // settle on the first acting combatant
	HitHoldDelay    = 0.9 // camera hold after the last impact before advancing
	AiThinkTimeMin  = 0.6
	AiThinkTimeMax  = 1.8
	AiMoveTimeMax   = 2.0
	LightningCinema = 1.4 // cinematic hold while a strike resolves
	BannerTime      = 2.0
)

// Particles.
const (
	MaxParticles      = 6000
	MaxParticleRender = 8000
)

// Charge ramp: launch power sweeps 0..1 and back while the fire key is held.
const ChargeRate = 0.85

// Font atlas layout. Glyphs are rasterized at startup from the 5x7 table
// in font.go into a fixed-grid texture covering printable ASCII.
const (
	FontGlyphW = 5
	FontGlyphH = 7
	FontCellW  = FontGlyphW + 1
	FontCellH  = FontGlyphH + 1
	FontCols   = 16
	FontRows   = 6                    // 96 printable chars / FontCols
	FontAtlasW = FontCellW * FontCols // 96
	FontAtlasH = FontCellH * FontRows // 48
)

// Tunables are the gameplay constants that form the simulation's contract
// with the rest of the system. The struct is filled once before the match
// (defaults, optionally overridden from a config file) and never mutated
// after.
type Tunables struct {
	Gravity         float64 // px/s^2, positive is down
	WindAccel       float64 // wind units -> horizontal px/s^2 on projectiles
	MaxPower        float64 // launch speed at full charge, px/s
	TurnTime        float64 // seconds per turn before auto-fire
	WindMax         float64 // symmetric wind clamp, |wind| <= WindMax
	HitRadius       float64 // direct-hit distance to a combatant center
	CriticalDamage  int     // damage at/above this marks a critical hit
	ShieldValue     int     // HP absorbed by a fresh shield buff
	DamageBoostMul  float64 // damage multiplier while boosted
	DamageBoostUses int     // shots a damage boost lasts
	DoubleShotUses  int     // shots a double-shot buff lasts
	HealthPack      int     // HP restored by a health crate
	PowerUpChance   float64 // chance a crate drops after a turn resolves
	LightningDamage int     // direct-strike damage
	LightningRadius float64 // strike damage radius
	TeamSize        int     // combatants per team
}

// DefaultTunables returns the compiled-in balance.
func DefaultTunables() Tunables {
	return Tunables{
		Gravity:         140.0,
		WindAccel:       2.4,
		MaxPower:        290.0,
		TurnTime:        30.0,
		WindMax:         24.0,
		HitRadius:       7.0,
		CriticalDamage:  45,
		ShieldValue:     50,
		DamageBoostMul:  1.5,
		DamageBoostUses: 2,
		DoubleShotUses:  1,
		HealthPack:      35,
		PowerUpChance:   0.35,
		LightningDamage: 35,
		LightningRadius: 14.0,
		TeamSize:        DefaultTeamSize,
	}
}
