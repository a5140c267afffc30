package game

import "math"

type Camera struct {
	X, Y float64 // world-pixel space, camera centre
	Zoom float64 // screen pixels per world pixel

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world pixels
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}

// Follow eases the camera toward the game's focus point. The intro pan
// tracks exactly (the pan itself is the easing); everything else gets a
// critically-damped chase so impacts read without whiplash.
func (c *Camera) Follow(g *Game, dt float64) {
	fx, fy := g.FocusPoint()
	if g.State == StateIntroPan {
		c.X, c.Y = fx, fy
		return
	}
	k := 1 - math.Exp(-6.5*dt)
	c.X += (fx - c.X) * k
	c.Y += (fy - c.Y) * k
}

func (c *Camera) Clamp(fbW, fbH int) {
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}

	halfW := float64(fbW) / (2.0 * c.Zoom)
	halfH := float64(fbH) / (2.0 * c.Zoom)

	minX := halfW
	maxX := float64(MapWidth) - halfW
	// The sky above the map is in frame during lobs; only the bottom is hard.
	minY := -SkyCeiling * 0.5
	maxY := float64(MapHeight) - halfH

	if minX > maxX {
		c.X = float64(MapWidth) * 0.5
	} else {
		c.X = clampF(c.X, minX, maxX)
	}
	if minY > maxY {
		c.Y = float64(MapHeight) * 0.5
	} else {
		c.Y = clampF(c.Y, minY, maxY)
	}
}
