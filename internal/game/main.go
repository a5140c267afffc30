package game

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Options configures a desktop session.
type Options struct {
	Seed    uint64
	Tun     Tunables
	Hotseat bool // both teams human; otherwise team BLUE is AI-driven
	Debug   bool // battle log to stderr
	Mute    bool
}

// RunDesktop opens the window and runs the match loop until the window
// closes. The loop owns the orchestration: input to intents, one simulation
// tick, drain events, then presentation.
func RunDesktop(opts Options) {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if !opts.Mute {
		if err := InitAudio(); err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	g := NewGame(opts.Seed, opts.Tun)
	if !opts.Hotseat {
		g.SetAI(1, NewSimpleAI())
	}
	blog := NewBattleLog(opts.Debug)

	cam := Camera{
		X:    float64(MapWidth) / 2,
		Y:    float64(MapHeight) / 2,
		Zoom: DefaultZoom,
	}
	input := NewInput()

	// Reusable render buffers.
	var unitBuf, barBuf, aimBuf []float32
	var projBuf, projGlow, boomBuf, boltBuf []float32
	var glowBuf, normBuf []float32

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if g.State == StateMenu && window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		ProcessInput(window, input, g, dt)
		UpdateCameraZoom(&cam, window, dt, fbW, fbH)

		g.Update(dt)

		events := g.DrainEvents()
		blog.Record(events)
		reactToEvents(events, g, &cam)

		cam.Follow(g, dt)
		cam.UpdateShake(dt, opts.Seed^uint64(now*1000))
		cam.Clamp(fbW, fbH)

		renderCam := cam
		sx, sy := cam.EffectivePos()
		renderCam.X = sx
		renderCam.Y = sy

		// Weather dims the scene; a live strike whites it out briefly.
		ambient := weatherAmbient(g.Weather.Mode())
		flash := float32(0)
		if g.State == StateLightning && g.Strike.Age < 0.12 {
			flash = 0.7
		}

		sky := lerpRGB(Palette.SkyTop, Palette.SkyBottom, 0.45)
		gl.ClearColor(
			float32(sky.R)/255.0*ambient,
			float32(sky.G)/255.0*ambient,
			float32(sky.B)/255.0*ambient,
			1.0,
		)

		rend.BeginFrame(renderCam, fbW, fbH)
		rend.SetAmbient(ambient, flash)
		rend.SyncTerrain(g.Terrain)
		rend.DrawField()

		// World-space sprites: units, bars, aim guide, shells.
		unitBuf = UnitSprites(g, unitBuf)
		rend.DrawSprites(unitBuf, renderCam, fbW, fbH, false)
		barBuf = HealthBarSprites(g, &g.Tun, barBuf)
		rend.DrawSprites(barBuf, renderCam, fbW, fbH, false)
		aimBuf = AimGuideSprites(g, aimBuf)
		rend.DrawSprites(aimBuf, renderCam, fbW, fbH, false)

		projBuf, projGlow = ProjectileSprites(g, projBuf, projGlow)
		rend.DrawSprites(projBuf, renderCam, fbW, fbH, false)
		rend.DrawGlowSprites(projGlow, renderCam, fbW, fbH)

		// Supply crates: rotated box sprites + soft color glow.
		if crateBuf := g.PowerUps.RenderData(); len(crateBuf) > 0 {
			rend.DrawCrateSprites(crateBuf, renderCam, fbW, fbH)
			rend.DrawGlowSprites(g.PowerUps.GlowData(), renderCam, fbW, fbH)
		}

		boomBuf = ExplosionGlow(g, boomBuf)
		rend.DrawGlowSprites(boomBuf, renderCam, fbW, fbH)

		boltBuf = StrikeSprites(g, now, boltBuf)
		if len(boltBuf) > 0 {
			rend.SetSpriteAmbient(1.0)
			rend.DrawSprites(boltBuf, renderCam, fbW, fbH, true)
			rend.SetSpriteAmbient(ambient)
		}

		// Particles: two passes (normal + glow).
		glowBuf, normBuf = g.Particles.ParticleRenderData(glowBuf, normBuf)
		if len(normBuf) > 0 {
			rend.DrawSprites(normBuf, renderCam, fbW, fbH, false)
		}
		if len(glowBuf) > 0 {
			rend.SetSpriteAmbient(1.0)
			rend.DrawSprites(glowBuf, renderCam, fbW, fbH, true)
			rend.SetSpriteAmbient(ambient)
		}

		// HUD uses the framebuffer, not the world camera.
		RenderHUD(rend, g, fbW, fbH)

		rend.RestoreFieldProgram()
		window.SwapBuffers()
	}
}

// reactToEvents turns the drained simulation batch into presentation:
// sounds and camera shake. The simulation never hears back.
func reactToEvents(events []Event, g *Game, cam *Camera) {
	for _, e := range events {
		switch e.Type {
		case EventTurnAdvanced:
			PlaySound(SoundTurnChime)
		case EventShotFired:
			if WeaponKind(e.Kind) == WeaponRifle {
				PlaySound(SoundRifle)
			} else {
				PlaySound(SoundLaunch)
			}
		case EventClusterSplit:
			PlaySound(SoundClusterPop)
		case EventCrateLanded:
			PlaySound(SoundCrateLand)
		case EventExplosionOccurred:
			PlayExplosionSound(float64(e.Amount))
			cam.AddShake(float64(e.Amount)*0.09, 0.35)
		case EventCriticalHit:
			PlaySound(SoundHurt)
		case EventCombatantEliminated:
			PlaySoundWithGain(SoundHurt, 0.9)
		case EventPowerUpCollected:
			PlaySound(SoundPickup)
		case EventLightningStrike:
			PlaySound(SoundLightning)
			cam.AddShake(4.5, 0.6)
		case EventMatchOver:
			PlaySound(SoundGameOver)
		}
	}
}

// weatherAmbient maps the match weather to a scene brightness multiplier.
func weatherAmbient(w WeatherType) float32 {
	switch w {
	case WeatherRain:
		return 0.84
	case WeatherSnow:
		return 0.93
	case WeatherStorm:
		return 0.72
	}
	return 1.0
}

// UpdateCameraZoom handles E/R zoom keys.
func UpdateCameraZoom(cam *Camera, window *glfw.Window, dt float64, fbW, fbH int) {
	zoomRate := 1.4
	if window.GetKey(glfw.KeyE) == glfw.Press {
		cam.Zoom *= math.Exp(zoomRate * dt)
	}
	if window.GetKey(glfw.KeyR) == glfw.Press {
		cam.Zoom *= math.Exp(-zoomRate * dt)
	}
	cam.Clamp(fbW, fbH)
}
