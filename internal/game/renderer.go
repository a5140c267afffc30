package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Field (terrain quad) program.
	fieldProg uint32
	fieldVAO  uint32
	fieldVBO  uint32

	uFieldOrigin  int32
	uFieldSize    int32
	uCamera       int32
	uZoom         int32
	uResolution   int32
	uTex          int32
	fieldUAmbient int32
	fieldUFlash   int32

	// Terrain texture and its CPU-side pixel buffer.
	fieldTex uint32
	fieldPix []uint8

	// Particle/sprite program.
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32
	spUAmbient    int32

	// Glow (radial light) program — uses spriteVAO, additive blend only.
	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32

	// Supply crate program.
	crateProg        uint32
	crateUCamera     int32
	crateUZoom       int32
	crateUResolution int32
	crateUAmbient    int32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	fieldProg, err := linkProgram(fieldVertSrc, fieldFragSrc)
	if err != nil {
		return nil, fmt.Errorf("field program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(fieldProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(fieldProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	crateProg, err := linkProgram(spriteVertSrc, crateFragSrc)
	if err != nil {
		gl.DeleteProgram(fieldProg)
		gl.DeleteProgram(spriteProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("crate program: %w", err)
	}

	r := &Renderer{
		fieldProg:  fieldProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
		crateProg:  crateProg,
		fieldPix:   make([]uint8, MapWidth*MapHeight*4),
	}

	// Field VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var fVAO, fVBO uint32
	gl.GenVertexArrays(1, &fVAO)
	gl.GenBuffers(1, &fVBO)
	gl.BindVertexArray(fVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, fVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.fieldVAO = fVAO
	r.fieldVBO = fVBO

	// Field uniforms.
	gl.UseProgram(fieldProg)
	r.uFieldOrigin = gl.GetUniformLocation(fieldProg, gl.Str("uFieldOrigin\x00"))
	r.uFieldSize = gl.GetUniformLocation(fieldProg, gl.Str("uFieldSize\x00"))
	r.uCamera = gl.GetUniformLocation(fieldProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(fieldProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(fieldProg, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(fieldProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)
	r.fieldUAmbient = gl.GetUniformLocation(fieldProg, gl.Str("uAmbient\x00"))
	r.fieldUFlash = gl.GetUniformLocation(fieldProg, gl.Str("uFlash\x00"))
	gl.Uniform1f(r.fieldUAmbient, 1.0)
	gl.Uniform1f(r.fieldUFlash, 0.0)

	// Terrain texture: one RGBA8 texel per world pixel.
	gl.GenTextures(1, &r.fieldTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fieldTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		MapWidth, MapHeight, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.fieldPix),
	)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	// Sprite uniforms.
	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))
	r.spUAmbient = gl.GetUniformLocation(spriteProg, gl.Str("uAmbient\x00"))
	gl.Uniform1f(r.spUAmbient, 1.0)

	// Glow uniforms.
	gl.UseProgram(glowProg)
	r.glowUCamera = gl.GetUniformLocation(glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	// Crate uniforms.
	gl.UseProgram(crateProg)
	r.crateUCamera = gl.GetUniformLocation(crateProg, gl.Str("uCamera\x00"))
	r.crateUZoom = gl.GetUniformLocation(crateProg, gl.Str("uZoom\x00"))
	r.crateUResolution = gl.GetUniformLocation(crateProg, gl.Str("uResolution\x00"))
	r.crateUAmbient = gl.GetUniformLocation(crateProg, gl.Str("uAmbient\x00"))
	gl.Uniform1f(r.crateUAmbient, 1.0)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.fieldVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.fieldVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.fieldProg, r.spriteProg, r.glowProg, r.crateProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.fieldTex, r.fontTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Set up field program as default for the frame.
	gl.UseProgram(r.fieldProg)
	gl.BindVertexArray(r.fieldVAO)

	gl.Uniform2f(r.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.Uniform2f(r.uFieldOrigin, 0, 0)
	gl.Uniform2f(r.uFieldSize, float32(MapWidth), float32(MapHeight))

	gl.ActiveTexture(gl.TEXTURE0)
}

// SetAmbient sets the weather dimming multiplier and the lightning flash
// amount on the field, sprite, and crate programs.
func (r *Renderer) SetAmbient(ambient, flash float32) {
	gl.UseProgram(r.fieldProg)
	gl.Uniform1f(r.fieldUAmbient, ambient)
	gl.Uniform1f(r.fieldUFlash, flash)

	gl.UseProgram(r.spriteProg)
	gl.Uniform1f(r.spUAmbient, ambient)

	gl.UseProgram(r.crateProg)
	gl.Uniform1f(r.crateUAmbient, ambient)

	// Restore field program as active.
	gl.UseProgram(r.fieldProg)
	gl.BindVertexArray(r.fieldVAO)
}

// SetSpriteAmbient overrides ambient on the sprite program only (for glow bypass).
func (r *Renderer) SetSpriteAmbient(ambient float32) {
	gl.UseProgram(r.spriteProg)
	gl.Uniform1f(r.spUAmbient, ambient)
}

// RestoreFieldProgram switches back to the field program after sprite drawing.
func (r *Renderer) RestoreFieldProgram() {
	gl.UseProgram(r.fieldProg)
	gl.BindVertexArray(r.fieldVAO)
}
