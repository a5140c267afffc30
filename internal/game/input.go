package game

import "github.com/go-gl/glfw/v3.3/glfw"

// aimRate is how fast held aim keys sweep the barrel, radians per second.
const aimRate = 1.7

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Edge reports both edges of a key in one call, for hold-and-release keys.
func (in *Input) Edge(window *glfw.Window, key glfw.Key) (pressed, released bool) {
	down := window.GetKey(key) == glfw.Press
	pressed = down && !in.prevKeys[key]
	released = !down && in.prevKeys[key]
	in.prevKeys[key] = down
	return
}

// ProcessInput maps this frame's keyboard state onto simulation intents.
// During AI turns the intents are rejected inside the simulation, so the
// mapping runs unconditionally.
func ProcessInput(window *glfw.Window, in *Input, g *Game, dt float64) {
	switch g.State {
	case StateMenu:
		if in.JustPressed(window, glfw.KeyEnter) {
			PlaySound(SoundMenuSelect)
			g.StartMatch()
		}

	case StateGameOver:
		if in.JustPressed(window, glfw.KeyEnter) {
			PlaySound(SoundMenuSelect)
			g.QuitToMenu()
		}

	case StatePaused:
		if in.JustPressed(window, glfw.KeyEscape) {
			g.Resume()
		}
		if in.JustPressed(window, glfw.KeyS) {
			g.OpenSettings()
		}
		if in.JustPressed(window, glfw.KeyQ) {
			g.QuitToMenu()
		}

	case StateSettings:
		if in.JustPressed(window, glfw.KeyEscape) {
			g.CloseSettings()
		}
		if window.GetKey(glfw.KeyLeft) == glfw.Press {
			SetSFXVolume(SfxVolume() - 0.8*dt)
		}
		if window.GetKey(glfw.KeyRight) == glfw.Press {
			SetSFXVolume(SfxVolume() + 0.8*dt)
		}

	case StateIntroPan:
		// No intents during the pan; Escape skips straight to pause.
		if in.JustPressed(window, glfw.KeyEscape) {
			g.Pause()
		}

	default:
		if in.JustPressed(window, glfw.KeyEscape) || in.JustPressed(window, glfw.KeyP) {
			g.Pause()
			return
		}
		battleInput(window, in, g, dt)
	}
}

// battleInput handles movement, aiming, weapon selection, and firing.
func battleInput(window *glfw.Window, in *Input, g *Game, dt float64) {
	c := g.Turn.Current
	if c == nil {
		return
	}

	left := window.GetKey(glfw.KeyLeft) == glfw.Press
	right := window.GetKey(glfw.KeyRight) == glfw.Press
	switch {
	case left && !right:
		g.StartWalking(-1)
	case right && !left:
		g.StartWalking(1)
	default:
		g.StopWalking()
	}

	// Up always raises the barrel regardless of which way the unit faces.
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		g.AdjustAim(-float64(c.Facing) * aimRate * dt)
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		g.AdjustAim(float64(c.Facing) * aimRate * dt)
	}

	if in.JustPressed(window, glfw.KeyJ) {
		g.Jump()
	}
	if in.JustPressed(window, glfw.KeyTab) {
		g.CycleWeapon()
	}
	weaponKeys := []glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4}
	for i, key := range weaponKeys {
		if in.JustPressed(window, key) {
			if err := g.SelectWeapon(WeaponKind(i)); err != nil {
				PlaySound(SoundNoAmmo)
			}
		}
	}

	pressed, released := in.Edge(window, glfw.KeySpace)
	if WeaponFor(c.Selected).Instant {
		if pressed {
			g.FireInstant(c.AimAngle)
		}
	} else {
		if pressed {
			g.StartCharging()
		}
		if released && g.Charging {
			g.ReleaseFire(c.AimAngle, g.Charge)
		}
	}
}
