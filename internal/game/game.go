package game

import "math"

// State is the single source of truth for what may act this tick.
type State int

const (
	StateMenu State = iota
	StateIntroPan
	StatePlaying
	StateAiThinking
	StateAiMoving
	StateFiring
	StatePowerUpFalling
	StateLightning
	StatePaused
	StateSettings
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateIntroPan:
		return "intro_pan"
	case StatePlaying:
		return "playing"
	case StateAiThinking:
		return "ai_thinking"
	case StateAiMoving:
		return "ai_moving"
	case StateFiring:
		return "firing"
	case StatePowerUpFalling:
		return "powerup_falling"
	case StateLightning:
		return "lightning"
	case StatePaused:
		return "paused"
	case StateSettings:
		return "settings"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// AIController is the turn-control contract for a machine-driven team: the
// core announces the turn via StartTurn and then calls Update every tick
// while in the AI states. The controller acts through the same intents a
// human uses; the post-fire pipeline never special-cases who fired.
type AIController interface {
	StartTurn(g *Game)
	Update(g *Game, dt float64)
}

// Game is the whole simulation context: every subsystem hangs off this
// struct and every update function receives it by pointer. Presentation
// reads it, drains events, and never writes back.
type Game struct {
	Tun   Tunables
	State State

	Terrain     *Terrain
	Roster      []*Combatant
	Turn        *TurnManager
	Weather     *WeatherSystem
	Projectiles *ProjectileSystem
	Explosions  *ExplosionSystem
	PowerUps    *PowerUpSystem
	Particles   *ParticleSystem

	Stats  [TeamCount]TeamStats
	Wind   float64
	Over   bool
	Victor int // winning team once Over; -1 on a draw

	AIs [TeamCount]AIController

	rng    *Rand
	seed   uint64
	events []Event

	// Transient per-state bookkeeping.
	introTimer float64
	hitHold    float64
	BannerTime float64 // remaining banner display time
	WindFlash  float64 // weather transition flash hint, decays to 0

	Charging bool
	Charge   float64 // 0..1 launch power while charging
	chrgDir  float64

	pausedFrom State
	Strike     Strike
	strikeLive bool

	// aiActing is true only while the attached controller's callbacks run;
	// it lets the AI use the human intents while the same intents stay
	// rejected for everyone else during AI turns.
	aiActing bool
}

func NewGame(seed uint64, tun Tunables) *Game {
	if seed == 0 {
		seed = 1
	}
	g := &Game{
		Tun:         tun,
		State:       StateMenu,
		Terrain:     NewTerrain(seed),
		Turn:        NewTurnManager(tun.TurnTime),
		Weather:     NewWeatherSystem(seed ^ 0x57A7),
		Projectiles: NewProjectileSystem(),
		Explosions:  NewExplosionSystem(),
		PowerUps:    NewPowerUpSystem(seed ^ 0xB0B),
		Particles:   NewParticleSystem(MaxParticles, seed^0xBEAD),
		rng:         NewRand(seed ^ 0xD0E1),
		seed:        seed,
		Victor:      -1,
	}
	return g
}

// SetAI attaches a controller to a team; nil means human-controlled.
func (g *Game) SetAI(team int, ai AIController) {
	if team >= 0 && team < TeamCount {
		g.AIs[team] = ai
	}
}

// StartMatch builds the battlefield and rosters and begins the intro pan.
func (g *Game) StartMatch() {
	g.Terrain.Generate(g.seed)
	g.Weather.Configure(PickMatchWeather(g.seed), g.seed)

	g.Roster = g.Roster[:0]
	g.Projectiles.Clear()
	g.Explosions.Clear()
	g.PowerUps.Clear()
	g.Particles.Clear()
	g.Stats = [TeamCount]TeamStats{}
	g.Over = false
	g.Victor = -1
	g.strikeLive = false
	g.Charging = false
	g.Turn = NewTurnManager(g.Tun.TurnTime)

	// Deploy zones: team 0 on the left quarter, team 1 on the right,
	// slots spread with seeded jitter.
	id := 0
	for team := 0; team < TeamCount; team++ {
		for slot := 0; slot < g.Tun.TeamSize; slot++ {
			r := NewRand(hash2D(g.seed, team, slot))
			span := float64(MapWidth) * 0.28
			base := float64(MapWidth) * 0.06
			if team == 1 {
				base = float64(MapWidth)*0.94 - span
			}
			x := base + span*(float64(slot)+0.5)/float64(g.Tun.TeamSize) + r.RangeF(-8, 8)
			x = clampF(x, CombatantHalfW, MapWidth-CombatantHalfW)
			g.Roster = append(g.Roster, NewCombatant(id, team, slot, x, g.Terrain))
			id++
		}
	}

	g.Turn.Advance(g.Roster)
	g.rollWind()
	g.introTimer = 0
	g.State = StateIntroPan
}

// Update advances the simulation one tick. All physics, collision, and
// damage resolution for the tick run to completion before state
// transitions are re-evaluated.
func (g *Game) Update(dt float64) {
	if dt <= 0 {
		return
	}

	switch g.State {
	case StateMenu, StatePaused, StateSettings:
		// Frozen: no timers, no physics.
		return
	case StateGameOver:
		// Cosmetics keep moving on the result screen.
		g.Particles.Update(dt, g.Terrain)
		g.Explosions.Update(dt)
		return
	}

	if g.BannerTime > 0 {
		g.BannerTime -= dt
	}
	if g.WindFlash > 0 {
		g.WindFlash -= dt
	}

	switch g.State {
	case StateIntroPan:
		g.introTimer += dt
		if g.introTimer >= IntroPanPhase1+IntroPanPhase2 {
			g.beginTurnState()
		}

	case StatePlaying, StateAiThinking, StateAiMoving:
		g.updateCombatants(dt)
		g.collectPickups()
		if ai := g.AIs[g.Turn.CurrentTeam]; ai != nil && (g.State == StateAiThinking || g.State == StateAiMoving) {
			g.aiActing = true
			ai.Update(g, dt)
			g.aiActing = false
		}
		if g.Charging {
			g.Charge += g.chrgDir * ChargeRate * dt
			if g.Charge >= 1 {
				g.Charge = 1
				g.chrgDir = -1
			} else if g.Charge <= 0 {
				g.Charge = 0
				g.chrgDir = 1
			}
		}
		// Turn clock: expiry forces a shot with randomized power.
		if g.Turn.Tick(dt) {
			g.autoFire()
		}

	case StateFiring:
		g.updateCombatants(dt)
		g.Projectiles.Update(g, dt)
		if g.State != StateFiring {
			break // a kill mid-batch ended the match
		}
		if g.Projectiles.ActiveCount() == 0 && g.Explosions.ActiveCount() == 0 {
			g.hitHold += dt
			if g.hitHold >= HitHoldDelay {
				g.finishFiring()
			}
		} else {
			g.hitHold = 0
		}

	case StatePowerUpFalling:
		g.updateCombatants(dt)
		falling, landed := g.PowerUps.Update(dt, g.Terrain, g.Wind, &g.Tun)
		for _, idx := range landed {
			cr := &g.PowerUps.Crates[idx]
			g.emit(Event{Type: EventCrateLanded, X: cr.X, Y: cr.Y, Team: -1, Combatant: -1, Kind: int(cr.Kind)})
		}
		if !falling {
			g.afterDrop()
		}

	case StateLightning:
		g.updateCombatants(dt)
		if g.strikeLive && !g.Strike.Applied {
			g.applyStrike()
		}
		g.Strike.Age += dt
		if g.State == StateLightning && g.Strike.Age >= LightningCinema {
			g.strikeLive = false
			g.nextTurn()
		}
	}

	// Cosmetic updates run for every active state.
	g.Explosions.Update(dt)
	g.Weather.UpdateAndSpawn(g.Particles, dt)
	g.Particles.Update(dt, g.Terrain)
	if g.State != StatePowerUpFalling {
		g.PowerUps.Update(dt, g.Terrain, g.Wind, &g.Tun)
	}
}

// updateCombatants runs movement physics on every living unit, not only
// the one that was hit, so anyone standing over a fresh crater falls.
func (g *Game) updateCombatants(dt float64) {
	for _, c := range g.Roster {
		c.Update(dt, g.Terrain, &g.Tun)
	}
}

func (g *Game) collectPickups() {
	for _, c := range g.Roster {
		if !c.Alive {
			continue
		}
		for _, kind := range g.PowerUps.CollectNear(c, &g.Tun) {
			cr, cg, cb := powerUpColor(kind)
			g.Particles.SpawnPickup(c.X, c.Y-4, RGB{R: uint8(cr * 255), G: uint8(cg * 255), B: uint8(cb * 255)})
			g.emit(Event{Type: EventPowerUpCollected, X: c.X, Y: c.Y, Team: c.Team, Combatant: c.ID, Kind: int(kind)})
		}
	}
}

// --- turn flow ---

// beginTurnState enters either Playing or the AI pipeline for the current
// actor. Both paths resolve through the identical Firing exit.
func (g *Game) beginTurnState() {
	g.BannerTime = BannerTime
	if ai := g.AIs[g.Turn.CurrentTeam]; ai != nil {
		g.State = StateAiThinking
		ai.StartTurn(g)
		return
	}
	g.State = StatePlaying
}

func (g *Game) nextTurn() {
	if g.Over {
		return
	}
	if !g.Turn.Advance(g.Roster) {
		// A dead team must have been caught by the win check already.
		g.checkMatchOver()
		return
	}
	g.rollWind()
	g.emit(Event{
		Type:      EventTurnAdvanced,
		X:         g.Turn.Current.X,
		Y:         g.Turn.Current.Y,
		Team:      g.Turn.CurrentTeam,
		Combatant: g.Turn.Current.ID,
	})
	g.beginTurnState()
}

// rollWind draws the next turn's base wind, applies the weather modifier,
// and clamps to the symmetric range.
func (g *Game) rollWind() {
	base := g.Wind*0.4 + g.rng.RangeF(-g.Tun.WindMax, g.Tun.WindMax)*0.7
	wind, flash := g.Weather.ModifyWind(base, g.rng)
	g.Wind = clampF(wind, -g.Tun.WindMax, g.Tun.WindMax)
	if flash {
		g.WindFlash = 0.35
	}
}

// finishFiring leaves the Firing state once everything has settled:
// possibly via a supply drop and/or a lightning strike, otherwise straight
// to the next turn.
func (g *Game) finishFiring() {
	if g.Over {
		return
	}
	g.hitHold = 0
	if g.rng.Chance(g.Tun.PowerUpChance) {
		crate := g.PowerUps.SpawnFalling()
		g.emit(Event{Type: EventPowerUpSpawned, X: crate.X, Y: crate.Y, Team: -1, Combatant: -1, Kind: int(crate.Kind)})
		g.State = StatePowerUpFalling
		return
	}
	g.maybeLightningOrNext()
}

// afterDrop follows PowerUpFalling: lightning check, then the next turn.
func (g *Game) afterDrop() {
	if g.Over {
		return
	}
	g.maybeLightningOrNext()
}

func (g *Game) maybeLightningOrNext() {
	if g.Weather.TryLightning(g.rng) {
		g.Strike = g.Weather.NewStrike(g.rng, g.Terrain, g.Roster)
		g.strikeLive = true
		g.State = StateLightning
		return
	}
	g.nextTurn()
}

// applyStrike deals the direct lightning damage. A lightning kill is
// treated exactly like an explosion kill: the win check may flip the state
// to GameOver mid-cinematic.
func (g *Game) applyStrike() {
	g.Strike.Applied = true
	g.Particles.SpawnLightning(g.Strike.X, g.Strike.Y)
	g.Terrain.Carve(g.Strike.X, g.Strike.Y, g.Tun.LightningRadius*0.5, 0.4)
	g.emit(Event{Type: EventLightningStrike, X: g.Strike.X, Y: g.Strike.Y, Team: -1, Combatant: -1, Amount: g.Tun.LightningDamage})
	for _, c := range g.Roster {
		if !c.Alive {
			continue
		}
		if c.distTo(g.Strike.X, g.Strike.Y) <= g.Tun.LightningRadius {
			g.applyDamage(c, g.Tun.LightningDamage, -1)
		}
	}
}

// checkMatchOver flips to GameOver the instant a team is wiped. Called
// after every damage-applying event, not just at turn boundaries.
func (g *Game) checkMatchOver() {
	over, winner := Winner(g.Roster)
	if !over || g.Over {
		return
	}
	g.Over = true
	g.Victor = winner
	g.State = StateGameOver
	g.emit(Event{Type: EventMatchOver, Team: winner, Combatant: -1})
}

// --- firing ---

// canFire gates fire intents: Playing accepts them from anyone (Playing
// never holds during an AI turn), the AI states only from the controller's
// own callback, everything else rejects.
func (g *Game) canFire() bool {
	switch g.State {
	case StatePlaying:
	case StateAiThinking, StateAiMoving:
		if !g.aiActing {
			return false
		}
	default:
		return false
	}
	c := g.Turn.Current
	return c != nil && c.Alive && c.HasAmmo()
}

// StartCharging begins the power ramp for a charge-release weapon.
// Rejected outside the acting states, for instant weapons, and during AI
// turns (the input layer forwards nothing then, and Playing never holds
// during an AI turn).
func (g *Game) StartCharging() {
	if !g.canFire() || g.Charging {
		return
	}
	if WeaponFor(g.Turn.Current.Selected).Instant {
		return
	}
	g.Charging = true
	g.Charge = 0
	g.chrgDir = 1
}

// ReleaseFire launches the charged shot at the given angle and power
// (0..1]. A no-op when firing is not currently legal.
func (g *Game) ReleaseFire(angle, power float64) {
	if !g.canFire() {
		g.Charging = false
		return
	}
	if WeaponFor(g.Turn.Current.Selected).Instant {
		return
	}
	g.fire(angle, clampF(power, 0.05, 1))
}

// FireInstant fires an instant-class weapon (no charge) at full power.
func (g *Game) FireInstant(angle float64) {
	if !g.canFire() {
		return
	}
	if !WeaponFor(g.Turn.Current.Selected).Instant {
		return
	}
	g.fire(angle, 1)
}

// fire performs the shared launch path for human, AI, and auto-fire.
// Use-limited buffs are consumed here, at the moment of firing, never when
// damage lands.
func (g *Game) fire(angle, power float64) {
	actor := g.Turn.Current
	if actor == nil || !actor.Alive || !actor.HasAmmo() {
		return
	}
	actor.AimAngle = clampF(angle, -math.Pi, 0)
	actor.WalkDir = 0
	actor.consumeAmmo()

	mul := actor.DamageMultiplier(&g.Tun)
	shots := 1
	if actor.HasBuff(BuffDoubleShot) {
		shots = 2
	}
	actor.ConsumeBuffUse(BuffDamageBoost)
	actor.ConsumeBuffUse(BuffDoubleShot)

	cfg := WeaponFor(actor.Selected)
	for i := 0; i < shots; i++ {
		a := angle
		if i == 1 {
			a += 0.05 // second barrel of a double shot diverges slightly
		}
		speed := power * g.Tun.MaxPower * cfg.SpeedMul
		fx, fy := actor.FiringPoint(a)
		g.Projectiles.Spawn(Projectile{
			X:  fx,
			Y:  fy,
			VX: math.Cos(a) * speed,
			VY: math.Sin(a) * speed,

			OwnerID:   actor.ID,
			OwnerTeam: actor.Team,
			Weapon:    actor.Selected,
			DamageMul: mul,
		})
		g.recordShot(actor.Team)
		g.Particles.SpawnMuzzleFlash(fx, fy, a)
	}

	g.Charging = false
	g.hitHold = 0
	g.emit(Event{Type: EventShotFired, X: actor.X, Y: actor.Y, Team: actor.Team, Combatant: actor.ID, Kind: int(actor.Selected)})
	g.State = StateFiring
}

// autoFire is the turn-timer fallback: the clock ran out, so the shot
// leaves at the current aim with randomized power.
func (g *Game) autoFire() {
	actor := g.Turn.Current
	if actor == nil || !actor.Alive {
		return
	}
	if !actor.HasAmmo() {
		// The selected weapon ran dry mid-turn; the bazooka never does.
		actor.Selected = WeaponBazooka
	}
	g.fire(actor.AimAngle, g.rng.RangeF(0.25, 0.95))
}

// onProjectileImpact resolves one end-of-life: cluster weapons split
// silently, everything else detonates.
func (g *Game) onProjectileImpact(p Projectile) {
	g.emit(Event{Type: EventProjectileImpact, X: p.X, Y: p.Y, Team: p.OwnerTeam, Combatant: p.OwnerID, Kind: int(p.Weapon)})
	if p.shouldCluster() {
		g.emit(Event{Type: EventClusterSplit, X: p.X, Y: p.Y, Team: p.OwnerTeam, Combatant: p.OwnerID, Amount: WeaponFor(p.Weapon).ClusterCount, Kind: int(p.Weapon)})
		g.spawnCluster(p)
		return
	}
	damage, radius, crater := p.effective()
	g.Particles.SpawnExplosion(p.X, p.Y, radius)
	g.resolveExplosion(Explosion{
		X:         p.X,
		Y:         p.Y,
		Radius:    radius,
		Damage:    damage,
		DamageMul: p.DamageMul,
		CraterMul: crater,
		OwnerTeam: p.OwnerTeam,
	})
}

// combatantNear returns a living combatant within radius of (x, y), or nil.
func (g *Game) combatantNear(x, y, radius float64) *Combatant {
	for _, c := range g.Roster {
		if c.Alive && c.distTo(x, y) < radius {
			return c
		}
	}
	return nil
}

// --- movement / selection intents ---

func (g *Game) canAct() bool {
	switch g.State {
	case StatePlaying:
	case StateAiMoving:
		if !g.aiActing {
			return false
		}
	default:
		return false
	}
	c := g.Turn.Current
	return c != nil && c.Alive
}

func (g *Game) StartWalking(dir int) {
	if !g.canAct() || dir == 0 {
		return
	}
	if dir > 0 {
		g.Turn.Current.WalkDir = 1
	} else {
		g.Turn.Current.WalkDir = -1
	}
}

func (g *Game) StopWalking() {
	if g.canAct() {
		g.Turn.Current.WalkDir = 0
	}
}

func (g *Game) Jump() {
	if g.canAct() {
		g.Turn.Current.Jump()
	}
}

func (g *Game) AdjustAim(delta float64) {
	if g.canAct() {
		g.Turn.Current.AdjustAim(delta)
	}
}

// SelectWeapon validates ammo before switching; failure leaves the current
// weapon unchanged.
func (g *Game) SelectWeapon(kind WeaponKind) error {
	if !g.canAct() {
		return ErrNoAmmo
	}
	return g.Turn.Current.SelectWeapon(kind)
}

// CycleWeapon steps to the next weapon with remaining ammo.
func (g *Game) CycleWeapon() {
	if !g.canAct() {
		return
	}
	c := g.Turn.Current
	for i := 1; i <= int(WeaponKindCount); i++ {
		next := WeaponKind((int(c.Selected) + i) % int(WeaponKindCount))
		if c.SelectWeapon(next) == nil {
			return
		}
	}
}

// --- pause / settings ---

func (g *Game) Pause() {
	switch g.State {
	case StateMenu, StatePaused, StateSettings, StateGameOver:
		return
	}
	g.pausedFrom = g.State
	g.State = StatePaused
}

func (g *Game) Resume() {
	if g.State == StatePaused {
		g.State = g.pausedFrom
	}
}

func (g *Game) OpenSettings() {
	if g.State == StatePaused {
		g.State = StateSettings
	}
}

func (g *Game) CloseSettings() {
	if g.State == StateSettings {
		g.State = StatePaused
	}
}

// QuitToMenu abandons the match from the pause screen or result screen.
func (g *Game) QuitToMenu() {
	if g.State == StatePaused || g.State == StateGameOver {
		g.State = StateMenu
	}
}

// --- AI hooks ---

// aiBeginMoving moves the AI pipeline from thinking to acting. The firing
// exit stays identical to a human turn.
func (g *Game) aiBeginMoving() {
	if g.State == StateAiThinking {
		g.State = StateAiMoving
	}
}

// Rng exposes the match RNG to the attached AI controller so its choices
// stay inside the match's deterministic seed stream.
func (g *Game) Rng() *Rand {
	return g.rng
}

// --- camera focus helpers (read-only, for presentation) ---

// IntroProgress reports the two intro pan phases as (phase, t in [0,1]).
func (g *Game) IntroProgress() (int, float64) {
	if g.introTimer < IntroPanPhase1 {
		return 1, clampF(g.introTimer/IntroPanPhase1, 0, 1)
	}
	return 2, clampF((g.introTimer-IntroPanPhase1)/IntroPanPhase2, 0, 1)
}

// FocusPoint is where the camera should look this tick.
func (g *Game) FocusPoint() (float64, float64) {
	switch g.State {
	case StateIntroPan:
		phase, t := g.IntroProgress()
		if phase == 1 {
			x := lerpF(float64(MapWidth)*0.08, float64(MapWidth)*0.92, smoothstep(t))
			return x, g.Terrain.GroundY(x) - 20
		}
		if c := g.Turn.Current; c != nil {
			sx := float64(MapWidth) * 0.92
			return lerpF(sx, c.X, smoothstep(t)), g.Terrain.GroundY(c.X) - 20
		}
	case StateFiring:
		// Follow the leading live projectile.
		for i := range g.Projectiles.P {
			p := &g.Projectiles.P[i]
			if p.Active {
				return p.X, clampF(p.Y, -40, MapHeight)
			}
		}
		for i := range g.Explosions.E {
			e := &g.Explosions.E[i]
			if e.Active {
				return e.X, e.Y
			}
		}
	case StatePowerUpFalling:
		for i := range g.PowerUps.Crates {
			c := &g.PowerUps.Crates[i]
			if c.Alive && c.Falling {
				return c.X, clampF(c.Y, -20, MapHeight)
			}
		}
	case StateLightning:
		return g.Strike.X, g.Strike.Y - 16
	}
	if c := g.Turn.Current; c != nil {
		return c.X, c.Y - 14
	}
	return MapWidth / 2, MapHeight / 2
}
