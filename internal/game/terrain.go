package game

import "math"

// Terrain is the destructible battlefield: one elevation sample per x
// column, measured up from the map bottom. Ground surface y (screen space,
// y down) at column x is MapHeight - Elev[x]. The sample count never
// changes; only crater excavation and match-start regeneration mutate it.
type Terrain struct {
	Elev []float64
	seed uint64

	// Dirty column range for the renderer (inclusive/exclusive). Reset by
	// ClearDirty after the texture re-upload.
	DirtyMin, DirtyMax int
}

func NewTerrain(seed uint64) *Terrain {
	t := &Terrain{
		Elev: make([]float64, MapWidth),
		seed: seed,
	}
	t.Generate(seed)
	return t
}

// Generate rebuilds the height profile from a seed: a rolling baseline with
// two octaves of long hills plus per-column jitter, biased so both deploy
// zones get fightable ground.
func (t *Terrain) Generate(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	t.seed = seed
	r := NewRand(seed ^ 0x7E44A1)

	base := MapHeight * 0.30
	amp1 := MapHeight * r.RangeF(0.08, 0.16)
	amp2 := MapHeight * r.RangeF(0.03, 0.07)
	freq1 := r.RangeF(1.1, 2.3) * 2 * math.Pi / MapWidth
	freq2 := r.RangeF(4.0, 7.0) * 2 * math.Pi / MapWidth
	phase1 := r.RangeF(0, 2*math.Pi)
	phase2 := r.RangeF(0, 2*math.Pi)

	for x := 0; x < MapWidth; x++ {
		fx := float64(x)
		h := base
		h += amp1 * math.Sin(fx*freq1+phase1)
		h += amp2 * math.Sin(fx*freq2+phase2)
		// Deterministic per-column roughness.
		jr := NewRand(hash2D(seed, x, 0))
		h += jr.RangeF(-1.5, 1.5)
		t.Elev[x] = clampF(h, 6, MapHeight-40)
	}

	// Light smoothing pass so jitter reads as texture, not spikes.
	for x := 1; x < MapWidth-1; x++ {
		t.Elev[x] = (t.Elev[x-1] + 2*t.Elev[x] + t.Elev[x+1]) * 0.25
	}
	t.MarkDirty(0, MapWidth)
}

// HeightAt returns the elevation at a fractional x, linearly interpolated
// between columns and clamped to map bounds.
func (t *Terrain) HeightAt(x float64) float64 {
	if x <= 0 {
		return t.Elev[0]
	}
	if x >= MapWidth-1 {
		return t.Elev[MapWidth-1]
	}
	i := int(x)
	frac := x - float64(i)
	return lerpF(t.Elev[i], t.Elev[i+1], frac)
}

// GroundY returns the surface y (screen space) at a fractional x.
func (t *Terrain) GroundY(x float64) float64 {
	return MapHeight - t.HeightAt(x)
}

// Carve excavates a crater centered at (x, y): every column within radius
// loses elevation following a circular chord profile (deepest at center,
// zero at the rim) scaled by depthMul. Columns outside the map are clipped;
// elevation clamps at zero and never rises.
func (t *Terrain) Carve(x, y, radius, depthMul float64) {
	if radius <= 0 || depthMul <= 0 {
		return
	}
	minX := clamp(int(math.Floor(x-radius)), 0, MapWidth-1)
	maxX := clamp(int(math.Ceil(x+radius)), 0, MapWidth-1)
	for cx := minX; cx <= maxX; cx++ {
		dx := float64(cx) - x
		d2 := radius*radius - dx*dx
		if d2 <= 0 {
			continue
		}
		depth := depthMul * math.Sqrt(d2)
		t.Elev[cx] = clampF(t.Elev[cx]-depth, 0, MapHeight)
	}
	t.MarkDirty(minX, maxX+1)
}

// MarkDirty widens the dirty column range to cover [lo, hi).
func (t *Terrain) MarkDirty(lo, hi int) {
	lo = clamp(lo, 0, MapWidth)
	hi = clamp(hi, 0, MapWidth)
	if t.DirtyMin == t.DirtyMax {
		t.DirtyMin, t.DirtyMax = lo, hi
		return
	}
	if lo < t.DirtyMin {
		t.DirtyMin = lo
	}
	if hi > t.DirtyMax {
		t.DirtyMax = hi
	}
}

func (t *Terrain) ClearDirty() {
	t.DirtyMin, t.DirtyMax = 0, 0
}
