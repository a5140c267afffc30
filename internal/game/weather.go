package game

type WeatherType uint8

const (
	WeatherClear WeatherType = iota
	WeatherRain
	WeatherSnow
	WeatherStorm
)

func (w WeatherType) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherStorm:
		return "storm"
	}
	return "?"
}

// PickMatchWeather rolls the weather for a match.
func PickMatchWeather(seed uint64) WeatherType {
	r := NewRand(seed ^ 0x57A7E12D)
	roll := r.Intn(100)
	switch {
	case roll < 14:
		return WeatherStorm
	case roll < 40:
		return WeatherRain
	case roll < 52:
		return WeatherSnow
	}
	return WeatherClear
}

// WeatherSystem supplies the wind modifier applied at every turn start and
// the lightning-strike rolls, plus cosmetic precipitation particles.
type WeatherSystem struct {
	seed      uint64
	mode      WeatherType
	intensity float64
	windX     float64 // precipitation drift, visual only
	spawnAcc  float64
	gustAcc   float64
	spawnSeq  uint64
}

func NewWeatherSystem(seed uint64) *WeatherSystem {
	if seed == 0 {
		seed = 1
	}
	return &WeatherSystem{
		seed:      seed,
		mode:      WeatherClear,
		intensity: 1.0,
	}
}

func (ws *WeatherSystem) Configure(mode WeatherType, seed uint64) {
	if seed == 0 {
		seed = 1
	}
	ws.seed = seed ^ 0x57A7E12D
	ws.mode = mode
	ws.spawnAcc = 0
	ws.gustAcc = 0
	ws.spawnSeq = 0

	r := NewRand(ws.seed ^ 0xA24BAED4)
	ws.intensity = 0.78 + r.RangeF(0, 0.62)
	ws.windX = r.RangeF(-14.0, 14.0)
}

func (ws *WeatherSystem) Mode() WeatherType {
	return ws.mode
}

// ModifyWind applies the weather's multiplicative wind modifier to the base
// wind rolled for a turn, plus a storm gust term, and returns the modified
// wind and a transition-flash hint. The caller owns the symmetric clamp.
func (ws *WeatherSystem) ModifyWind(base float64, r *Rand) (wind float64, flash bool) {
	switch ws.mode {
	case WeatherRain:
		wind = base * 1.15
	case WeatherSnow:
		wind = base * 0.9
	case WeatherStorm:
		wind = base*1.45 + r.RangeF(-6, 6)
		flash = r.Chance(0.3)
	default:
		wind = base
	}
	return wind, flash
}

// lightningChance is the per-turn strike probability by weather.
func (ws *WeatherSystem) lightningChance() float64 {
	switch ws.mode {
	case WeatherStorm:
		return 0.35
	case WeatherRain:
		return 0.08
	}
	return 0
}

// TryLightning rolls whether a strike happens between this turn's
// resolution and the next turn.
func (ws *WeatherSystem) TryLightning(r *Rand) bool {
	return r.Chance(ws.lightningChance())
}

// Strike is one lightning bolt: a surface point, damage pending until the
// game applies it, and a cinematic age.
type Strike struct {
	X, Y    float64
	Age     float64
	Applied bool
}

// NewStrike picks a strike point: biased toward a random living combatant,
// otherwise a random terrain column.
func (ws *WeatherSystem) NewStrike(r *Rand, terr *Terrain, roster []*Combatant) Strike {
	var x float64
	var living []*Combatant
	for _, c := range roster {
		if c.Alive {
			living = append(living, c)
		}
	}
	if len(living) > 0 && r.Chance(0.45) {
		target := living[r.Intn(len(living))]
		x = clampF(target.X+r.RangeF(-6, 6), 2, MapWidth-2)
	} else {
		x = float64(r.Range(10, MapWidth-10))
	}
	return Strike{X: x, Y: terr.GroundY(x)}
}

// UpdateAndSpawn emits precipitation particles for the current weather.
func (ws *WeatherSystem) UpdateAndSpawn(ps *ParticleSystem, dt float64) {
	if ps == nil || dt <= 0 || ws.mode == WeatherClear {
		return
	}

	// Slow gust drift so rain/snow direction changes over time.
	ws.gustAcc += dt
	if ws.gustAcc >= 0.6 {
		g := NewRand(ws.seed ^ uint64(int(ws.gustAcc*1000)+1)*0xC2B2AE3D27D4EB4F ^ ws.spawnSeq)
		ws.windX = clampF(ws.windX+g.RangeF(-2.8, 2.8), -18.0, 18.0)
		ws.gustAcc = 0
	}

	rate := 0.0
	switch ws.mode {
	case WeatherRain:
		rate = 130.0 * ws.intensity
	case WeatherStorm:
		rate = 210.0 * ws.intensity
	case WeatherSnow:
		rate = 70.0 * ws.intensity
	default:
		return
	}

	ws.spawnAcc += rate * dt
	count := int(ws.spawnAcc)
	if count <= 0 {
		return
	}
	ws.spawnAcc -= float64(count)

	for i := 0; i < count; i++ {
		ws.spawnSeq++
		r := NewRand(ws.seed ^ ws.spawnSeq*0x9E3779B185EBCA87)
		x := r.RangeF(-10.0, float64(MapWidth)+10.0)
		y := r.RangeF(-SkyCeiling*0.4, float64(MapHeight)*0.3)

		if ws.mode == WeatherSnow {
			ps.Add(Particle{
				X: x, Y: y,
				VX:      ws.windX + r.RangeF(-9.0, 9.0),
				VY:      18.0 + r.RangeF(0.0, 18.0),
				Size:    0.78 + r.RangeF(0.0, 0.95),
				Life:    0,
				MaxLife: 2.20 + r.RangeF(0.0, 2.00),
				Col:     Palette.Snow,
				Kind:    ParticleSnow,
			})
			continue
		}
		ps.Add(Particle{
			X: x, Y: y,
			VX:      ws.windX*0.35 + r.RangeF(-8.0, 8.0),
			VY:      94.0 + r.RangeF(0.0, 52.0),
			Size:    0.50 + r.RangeF(0.0, 0.20),
			Life:    0,
			MaxLife: 0.70 + r.RangeF(0.0, 0.70),
			Col:     Palette.Rain,
			Kind:    ParticleRain,
		})
	}
}
