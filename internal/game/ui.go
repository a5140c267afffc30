package game

import "fmt"

// ammoLabel formats a weapon's remaining shots; negative means unlimited.
func ammoLabel(n int) string {
	if n < 0 {
		return "--"
	}
	return fmt.Sprintf("%d", n)
}

// windGauge renders the wind as a direction arrow run, one arrow per 6 units.
func windGauge(wind float64) string {
	n := 1 + int(absF(wind)/6)
	if n > 4 {
		n = 4
	}
	if wind < -0.5 {
		return repeatChar('<', n) + fmt.Sprintf(" %2.0f", absF(wind))
	}
	if wind > 0.5 {
		return fmt.Sprintf("%2.0f ", wind) + repeatChar('>', n)
	}
	return "CALM"
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// RenderHUD draws all screen-space UI using the font atlas.
func RenderHUD(r *Renderer, g *Game, fbW, fbH int) {
	white := RGB{R: 255, G: 255, B: 255}
	grey := RGB{R: 170, G: 170, B: 175}
	yellow := RGB{R: 255, G: 255, B: 100}
	red := RGB{R: 255, G: 80, B: 80}
	s := float32(2.0)

	switch g.State {
	case StateMenu:
		title := "BARRAGE"
		titleScale := float32(7.0)
		r.DrawString(title, fbW/2-TextWidth(title, titleScale)/2, fbH/2-130, titleScale, yellow)

		msg := "PRESS ENTER TO START"
		r.DrawString(msg, fbW/2-TextWidth(msg, s)/2, fbH/2+30, s, white)

		hint := "ARROWS MOVE/AIM   SPACE CHARGE+FIRE   TAB WEAPON   J JUMP"
		hintScale := float32(1.5)
		r.DrawString(hint, fbW/2-TextWidth(hint, hintScale)/2, fbH/2+70, hintScale, grey)

	case StateGameOver:
		var msg string
		col := yellow
		if g.Victor < 0 {
			msg = "DRAW - EVERYONE IS GONE"
			col = grey
		} else {
			msg = fmt.Sprintf("%s TEAM WINS!", TeamName(g.Victor))
			col = teamColor(g.Victor)
		}
		r.DrawString(msg, fbW/2-TextWidth(msg, 4)/2, fbH/2-110, 4, col)

		for team := 0; team < TeamCount; team++ {
			st := g.Stats[team]
			acc := 0
			if st.Shots > 0 {
				acc = 100 * st.Hits / st.Shots
			}
			line := fmt.Sprintf("%-4s SHOTS %2d  HITS %2d (%d%%)  DMG %4d",
				TeamName(team), st.Shots, st.Hits, acc, st.DamageDealt)
			r.DrawString(line, fbW/2-TextWidth(line, s)/2, fbH/2-20+team*30, s, white)
		}

		next := "PRESS ENTER FOR MENU"
		r.DrawString(next, fbW/2-TextWidth(next, s)/2, fbH/2+80, s, white)

	case StatePaused:
		msg := "PAUSED"
		r.DrawString(msg, fbW/2-TextWidth(msg, 4)/2, fbH/2-60, 4, white)
		hint := "ESC RESUME   S SETTINGS   Q QUIT TO MENU"
		r.DrawString(hint, fbW/2-TextWidth(hint, 1.5)/2, fbH/2+10, 1.5, grey)
		drawBattleHUD(r, g, fbW, fbH, s, white, grey, red)

	case StateSettings:
		msg := "SETTINGS"
		r.DrawString(msg, fbW/2-TextWidth(msg, 4)/2, fbH/2-80, 4, white)
		vol := fmt.Sprintf("SFX VOLUME  < %3.0f%% >", SfxVolume()*100)
		r.DrawString(vol, fbW/2-TextWidth(vol, s)/2, fbH/2, s, white)
		hint := "LEFT/RIGHT ADJUST   ESC BACK"
		r.DrawString(hint, fbW/2-TextWidth(hint, 1.5)/2, fbH/2+50, 1.5, grey)

	case StateIntroPan:
		w := fmt.Sprintf("WEATHER: %s", g.Weather.Mode())
		r.DrawString(w, fbW/2-TextWidth(w, s)/2, 14, s, grey)

	default:
		drawBattleHUD(r, g, fbW, fbH, s, white, grey, red)
	}

	r.FlushText(fbW, fbH)
}

// drawBattleHUD draws the in-match overlay: acting unit panel, turn clock,
// wind gauge, charge bar, and the turn banner.
func drawBattleHUD(r *Renderer, g *Game, fbW, fbH int, s float32, white, grey, red RGB) {
	c := g.Turn.Current
	if c != nil && c.Alive {
		col := teamColor(c.Team)
		name := fmt.Sprintf("%s %d", TeamName(c.Team), c.Slot+1)
		r.DrawString(name, 10, 10, s, col)

		w := WeaponFor(c.Selected)
		wep := fmt.Sprintf("%s [%s]", w.Name, ammoLabel(c.Ammo[c.Selected]))
		r.DrawString(wep, 10, 36, s, white)

		// Active buffs, one tag each.
		bx := 10
		for _, b := range c.Buffs {
			var tag string
			switch b.Kind {
			case BuffShield:
				tag = fmt.Sprintf("SHIELD %d", b.Value)
			case BuffDamageBoost:
				tag = fmt.Sprintf("BOOST X%d", b.Uses)
			case BuffDoubleShot:
				tag = "2X SHOT"
			}
			r.DrawString(tag, bx, 62, 1.5, grey)
			bx += TextWidth(tag, 1.5) + 14
		}

		if g.Charging {
			const barChars = 16
			bar := fmt.Sprintf("[%-*s]", barChars, repeatChar('#', int(float64(barChars)*g.Charge)))
			r.DrawString(bar, 10, fbH-40, s, HealthBarColor(1-g.Charge))
		}
	}

	// Top-center: turn clock.
	timeStr := fmt.Sprintf("%2.0f", clampF(g.Turn.TimeLeft, 0, 99))
	r.DrawString(timeStr, fbW/2-TextWidth(timeStr, s)/2, 10, s, white)

	// Top-right: wind gauge, flashing after a fresh gust.
	gauge := fmt.Sprintf("WIND %s", windGauge(g.Wind))
	gcol := grey
	if g.WindFlash > 0 {
		gcol = white
	}
	r.DrawString(gauge, fbW-TextWidth(gauge, s)-10, 10, s, gcol)

	if g.State == StateAiThinking {
		think := "..."
		r.DrawString(think, fbW/2-TextWidth(think, s)/2, 40, s, grey)
	}

	// Center banner while a new turn is announced.
	if g.BannerTime > 0 && g.Turn.Current != nil {
		alpha := clampF(g.BannerTime, 0, 1)
		col := teamColor(g.Turn.CurrentTeam).Mul(uint8(255 * alpha))
		banner := g.Turn.Banner()
		r.DrawString(banner, fbW/2-TextWidth(banner, 3)/2, fbH/4, 3, col)
	}

	if g.State == StateLightning {
		warn := "LIGHTNING STRIKE"
		r.DrawString(warn, fbW/2-TextWidth(warn, s)/2, fbH/4+40, s, red)
	}
}

// repeatChar returns a string of n copies of ch.
func repeatChar(ch byte, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ch
	}
	return string(b)
}
