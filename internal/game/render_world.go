package game

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// rasterizeColumns repaints terrain pixels for columns [lo, hi) into the
// CPU-side buffer. Sky texels get alpha 0 so the clear-color gradient shows
// through the field quad.
func (r *Renderer) rasterizeColumns(t *Terrain, lo, hi int) {
	for x := lo; x < hi; x++ {
		ground := int(math.Round(MapHeight - t.Elev[x]))
		if ground < 0 {
			ground = 0
		}
		for y := 0; y < MapHeight; y++ {
			i := (y*MapWidth + x) * 4
			if y < ground {
				r.fieldPix[i+0] = 0
				r.fieldPix[i+1] = 0
				r.fieldPix[i+2] = 0
				r.fieldPix[i+3] = 0
				continue
			}
			depth := y - ground
			var col RGB
			switch {
			case depth < 3:
				col = Palette.GrassTop
			case y >= MapHeight-10:
				col = Palette.Bedrock
			default:
				// Banded dirt with per-texel hash speckle.
				n := hash2D(t.seed, x, y)
				col = Palette.DirtLight
				if (n>>8)&3 == 0 || depth > 56 {
					col = Palette.DirtDark
				}
				// Darken gradually with depth.
				shade := 255 - clamp(depth, 0, 120)/2
				col = col.Mul(uint8(shade))
			}
			r.fieldPix[i+0] = col.R
			r.fieldPix[i+1] = col.G
			r.fieldPix[i+2] = col.B
			r.fieldPix[i+3] = 255
		}
	}
}

// SyncTerrain repaints and re-uploads any columns the simulation carved
// since the last frame. Only the dirty column range is touched; the
// sub-rectangle upload reads straight out of the full-width pixel buffer.
func (r *Renderer) SyncTerrain(t *Terrain) {
	lo, hi := t.DirtyMin, t.DirtyMax
	if hi <= lo {
		return
	}
	r.rasterizeColumns(t, lo, hi)

	gl.BindTexture(gl.TEXTURE_2D, r.fieldTex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, MapWidth)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, int32(lo), 0,
		int32(hi-lo), MapHeight,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&r.fieldPix[lo*4]),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	t.ClearDirty()
}

// DrawField renders the battlefield quad (assumes field program is active).
func (r *Renderer) DrawField() {
	gl.BindTexture(gl.TEXTURE_2D, r.fieldTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// DrawSprites renders an array of point sprites using the sprite program.
// buf format: [x, y, size, r, g, b, a, rotation] * N (8 floats per sprite).
// additive: true = additive blend, false = standard alpha blend.
func (r *Renderer) DrawSprites(buf []float32, cam Camera, fbW, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}

	count := len(buf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.spUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.spUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.spUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial
// falloff. buf format matches DrawSprites; RGB pre-multiplied by brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(r.glowUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.glowUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawCrateSprites renders supply crates using the rotated-box shader.
// buf format matches DrawSprites.
func (r *Renderer) DrawCrateSprites(buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.crateProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.crateUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.crateUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.crateUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

func teamColor(team int) RGB {
	if team == 1 {
		return Palette.TeamB
	}
	return Palette.TeamA
}

func appendSprite(buf []float32, x, y, size float64, col RGB, alpha, rot float32) []float32 {
	return append(buf,
		float32(x), float32(y), float32(size),
		float32(col.R)/255.0, float32(col.G)/255.0, float32(col.B)/255.0, alpha, rot,
	)
}

// UnitSprites builds point sprites for the roster: body, head, and barrel
// dots, with the acting unit drawn brighter. Reuses buf.
func UnitSprites(g *Game, buf []float32) []float32 {
	buf = buf[:0]
	acting := g.Turn.Current
	for _, c := range g.Roster {
		if !c.Alive {
			continue
		}
		col := teamColor(c.Team)
		if c != acting {
			col = col.Mul(185)
		}
		// Body and head.
		buf = appendSprite(buf, c.X, c.Y-2, 6, col, 1, 0)
		buf = appendSprite(buf, c.X, c.Y-6.5, 3.5, col.Add(35, 35, 35), 1, 0)
		// Barrel: three dots from the shoulder along the aim angle.
		for i := 1; i <= 3; i++ {
			d := float64(i) * 2.6
			bx := c.X + math.Cos(c.AimAngle)*d
			by := c.Y - 3 + math.Sin(c.AimAngle)*d
			buf = appendSprite(buf, bx, by, 1.6, Palette.Barrel, 1, 0)
		}
	}
	return buf
}

// HealthBarSprites builds one-pixel bar segments above each damaged unit,
// plus blue shield pips when a shield buff is active.
func HealthBarSprites(g *Game, tun *Tunables, buf []float32) []float32 {
	buf = buf[:0]
	const barWidth = 7
	for _, c := range g.Roster {
		if !c.Alive {
			continue
		}
		frac := c.HP.Fraction()
		col := HealthBarColor(frac)
		bx := c.X - float64(barWidth)*0.5
		by := c.Y - 11
		filled := int(float64(barWidth) * frac)
		if filled < 1 {
			filled = 1
		}
		for px := 0; px < barWidth; px++ {
			cc := RGB{R: 40, G: 40, B: 40}
			if px < filled {
				cc = col
			}
			buf = appendSprite(buf, bx+float64(px), by, 1, cc, 0.9, 0)
		}
		if sv := c.BuffValue(BuffShield); sv > 0 {
			pips := clamp((sv+tun.ShieldValue-1)/tun.ShieldValue, 1, 3)
			for p := 0; p < pips; p++ {
				buf = appendSprite(buf, bx+float64(p)*2, by-2, 1.4, Palette.TeamB.Add(60, 60, 20), 0.95, 0)
			}
		}
	}
	return buf
}

// AimGuideSprites builds a dotted arc hinting at the shot's initial
// trajectory for the acting human unit, brightness scaled by charge.
func AimGuideSprites(g *Game, buf []float32) []float32 {
	buf = buf[:0]
	c := g.Turn.Current
	if c == nil || !c.Alive || g.State != StatePlaying {
		return buf
	}
	power := 0.55
	if g.Charging {
		power = clampF(g.Charge, 0.05, 1)
	}
	speed := power * g.Tun.MaxPower
	vx := math.Cos(c.AimAngle) * speed
	vy := math.Sin(c.AimAngle) * speed
	px, py := c.FiringPoint(c.AimAngle)
	for i := 1; i <= 8; i++ {
		t := float64(i) * 0.055
		x := px + vx*t + 0.5*g.Wind*g.Tun.WindAccel*t*t
		y := py + vy*t + 0.5*g.Tun.Gravity*t*t
		a := float32(1.0 - float64(i)*0.1)
		buf = appendSprite(buf, x, y, 1.2, Palette.Barrel, a, 0)
	}
	return buf
}

// ProjectileSprites builds shells plus a trailing glow entry per shell.
func ProjectileSprites(g *Game, buf, glow []float32) ([]float32, []float32) {
	buf = buf[:0]
	glow = glow[:0]
	for i := range g.Projectiles.P {
		p := &g.Projectiles.P[i]
		if !p.Active {
			continue
		}
		size := 2.4
		if p.IsSubmunition {
			size = 1.6
		}
		buf = appendSprite(buf, p.X, p.Y, size, Palette.Barrel, 1, 0)
		glow = appendSprite(glow, p.X, p.Y, size*4, Palette.Glow.Mul(110), 1, 0)
	}
	return buf, glow
}

// ExplosionGlow builds the additive flash for explosions still fading.
func ExplosionGlow(g *Game, buf []float32) []float32 {
	buf = buf[:0]
	for i := range g.Explosions.E {
		e := &g.Explosions.E[i]
		if !e.Active {
			continue
		}
		k := 1.0 - e.Age/ExplosionFade
		if k <= 0 {
			continue
		}
		b := uint8(255 * k)
		buf = appendSprite(buf, e.X, e.Y, e.Radius*2.2*k, Palette.FireMid.Mul(b), 1, 0)
		buf = appendSprite(buf, e.X, e.Y, e.Radius*0.9*k, Palette.FireHot.Mul(b), 1, 0)
	}
	return buf
}

// StrikeSprites builds the lightning bolt column while a strike is live:
// a jagged run of bright segments from the sky ceiling to the impact point.
func StrikeSprites(g *Game, now float64, buf []float32) []float32 {
	buf = buf[:0]
	if g.State != StateLightning {
		return buf
	}
	s := g.Strike
	flicker := float32(0.6 + 0.4*math.Sin(now*47))
	y := -float64(SkyCeiling) * 0.4
	x := s.X
	r := NewRand(hash2D(uint64(s.X*31), int(now*30), 0))
	for y < s.Y {
		buf = appendSprite(buf, x, y, 1.8, Palette.Lightning, flicker, 0)
		y += 4
		x += r.RangeF(-2.4, 2.4)
		// Pull the jag back toward the strike column.
		x += (s.X - x) * 0.18
	}
	buf = appendSprite(buf, s.X, s.Y, 3, Palette.Lightning, flicker, 0)
	return buf
}
