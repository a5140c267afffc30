package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

var Palette = struct {
	SkyTop    RGB
	SkyBottom RGB
	GrassTop  RGB
	DirtLight RGB
	DirtDark  RGB
	Bedrock   RGB
	Scorch    RGB
	TeamA     RGB
	TeamB     RGB
	Barrel    RGB
	Crate     RGB
	Smoke     RGB
	Glow      RGB
	FireHot   RGB
	FireMid   RGB
	FireCool  RGB
	Lightning RGB
	Rain      RGB
	Snow      RGB
}{
	SkyTop:    RGB{R: 38, G: 50, B: 82},
	SkyBottom: RGB{R: 96, G: 120, B: 160},
	GrassTop:  RGB{R: 112, G: 150, B: 74},
	DirtLight: RGB{R: 134, G: 102, B: 66},
	DirtDark:  RGB{R: 94, G: 70, B: 46},
	Bedrock:   RGB{R: 62, G: 58, B: 56},
	Scorch:    RGB{R: 70, G: 56, B: 44},
	TeamA:     RGB{R: 225, G: 86, B: 70},
	TeamB:     RGB{R: 86, G: 140, B: 235},
	Barrel:    RGB{R: 206, G: 206, B: 212},
	Crate:     RGB{R: 205, G: 160, B: 80},
	Smoke:     RGB{R: 120, G: 120, B: 125},
	Glow:      RGB{R: 255, G: 200, B: 90},
	FireHot:   RGB{R: 255, G: 210, B: 110},
	FireMid:   RGB{R: 255, G: 150, B: 70},
	FireCool:  RGB{R: 190, G: 70, B: 45},
	Lightning: RGB{R: 225, G: 235, B: 255},
	Rain:      RGB{R: 175, G: 195, B: 220},
	Snow:      RGB{R: 235, G: 242, B: 250},
}
