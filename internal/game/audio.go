package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundLaunch SoundKind = iota
	SoundRifle
	SoundExplosion
	SoundClusterPop
	SoundPickup
	SoundHurt
	SoundLightning
	SoundTurnChime
	SoundGameOver
	SoundMenuSelect
	SoundNoAmmo
	SoundCrateLand
)

// AudioSystem manages procedural sound effects.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// activeExplosions limits simultaneous explosion sounds to avoid speaker clipping.
var activeExplosions int32
var explosionVariantCounter uint64

var sfxVolume float64 = 0.58

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// SfxVolume returns the current effect volume in [0,1].
func SfxVolume() float64 { return sfxVolume }

// SetSFXVolume sets the effect volume, clamped to [0,1].
func SetSFXVolume(vol float64) {
	sfxVolume = clampF(vol, 0, 1)
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	playSoundWithGain(kind, 1.0)
}

func PlaySoundWithGain(kind SoundKind, gain float64) {
	playSoundWithGain(kind, gain)
}

func playSoundWithGain(kind SoundKind, gain float64) {
	if globalAudio == nil {
		return
	}
	if gain <= 0 {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	// Limit simultaneous explosions to 2 — more causes speaker clipping.
	if kind == SoundExplosion {
		if atomic.LoadInt32(&activeExplosions) >= 2 {
			return
		}
		atomic.AddInt32(&activeExplosions, 1)
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		if kind == SoundExplosion {
			atomic.AddInt32(&activeExplosions, -1)
		}
		return
	}
	go func() {
		if kind == SoundExplosion {
			defer atomic.AddInt32(&activeExplosions, -1)
		}
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// PlayExplosionSound plays an explosion whose timbre scales with blast radius.
func PlayExplosionSound(radius float64) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if atomic.LoadInt32(&activeExplosions) >= 2 {
		return
	}
	atomic.AddInt32(&activeExplosions, 1)
	samples := genExplosionScaled(radius)
	if len(samples) == 0 {
		atomic.AddInt32(&activeExplosions, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&activeExplosions, -1)
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundLaunch:
		return genLaunch()
	case SoundRifle:
		return genRifle()
	case SoundExplosion:
		return genExplosionScaled(20)
	case SoundClusterPop:
		return genClusterPop()
	case SoundPickup:
		return genPickup()
	case SoundHurt:
		return genHurt()
	case SoundLightning:
		return genLightningCrack()
	case SoundTurnChime:
		return genTurnChime()
	case SoundGameOver:
		return genGameOver()
	case SoundMenuSelect:
		return genMenuSelect()
	case SoundNoAmmo:
		return genNoAmmo()
	case SoundCrateLand:
		return genCrateLand()
	}
	return nil
}

// genLaunch: mortar-tube thump with a rising air whoosh.
func genLaunch() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(51515)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		// Tube thump: pitched sub drop.
		thumpFreq := 170 * math.Pow(0.25, p*3)
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*14) * 0.58
		// Whoosh: lowpassed noise swelling then fading.
		raw := lcg(&seed)
		lp = lp*0.82 + raw*0.18
		whoosh := lp * adsr(p, 0.18, 0.3, 0.4, 0.4) * 0.30
		s := thump + whoosh
		putStereoF32(buf, i, softSat(s*0.9))
	}
	return buf
}

// genRifle: sharp crack with a short pitched thump.
func genRifle() []byte {
	n := int(0.11 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(77777)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		// Sharp transient (first 15ms).
		crack := 0.0
		if p < 0.014 {
			crack = lcg(&seed) * (1 - p/0.014) * 0.88
		}
		// Pitched sub drop: 200→35 Hz.
		thumpFreq := 200 * math.Pow(0.04, p*4)
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*22) * 0.62
		// Noise body with decay.
		body := lcg(&seed) * math.Pow(1-p, 5) * 0.28
		// High-frequency ring.
		ring := math.Sin(2*math.Pi*3400*t) * math.Exp(-p*35) * 0.09
		s := crack + thump + body + ring
		putStereoF32(buf, i, softSat(s*0.82))
	}
	return buf
}

// genExplosionScaled adapts explosion timbre to blast size:
// larger blasts are deeper, longer, and rumblier; small blasts are snappier.
func genExplosionScaled(magnitude float64) []byte {
	norm := clampF((magnitude-3.0)/31.0, 0, 1)
	dur := 0.26 + 0.64*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := atomic.AddUint64(&explosionVariantCounter, 1) ^
		uint64(time.Now().UnixNano()) ^
		uint64(magnitude*4096)
	lp1, lp2 := 0.0, 0.0 // two lowpasses for bandpass body
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		// Sub boom: deeper and longer for larger blasts.
		subStart := 155.0 - 65.0*norm
		subEnd := 34.0 - 18.0*norm
		if subEnd < 10 {
			subEnd = 10
		}
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.5*norm))
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.8*norm)) * (0.44 + 0.34*norm)

		// Hard transient crack: stronger for small blasts.
		crack := 0.0
		crackWin := 0.038 - 0.020*norm
		if crackWin < 0.010 {
			crackWin = 0.010
		}
		if p < crackWin {
			crack = lcg(&seed) * (1 - p/crackWin) * (0.88 - 0.28*norm)
		}

		// Bandpassed body (~120–2200 Hz).
		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24   // upper lowpass
		lp2 = lp2*0.975 + raw*0.025 // lower lowpass
		body := (lp1 - lp2) * math.Exp(-p*(6.2-2.2*norm)) * (0.30 + 0.17*norm)

		// Low rumble tail becomes more prominent with magnitude.
		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*(3.0-1.5*norm)) * (0.06 + 0.20*norm)

		// High "snap" gives small explosions more bite.
		spark := math.Sin(2*math.Pi*(2400-900*p)*float64(i)/SampleRate) *
			math.Exp(-p*30) * (0.08 * (1.0 - 0.55*norm))

		s := sub + crack + body + rumble + spark
		putStereoF32(buf, i, softSat(s*0.86))
	}
	return buf
}

// genClusterPop: short bright pop for submunition release.
func genClusterPop() []byte {
	n := int(0.07 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(24680)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		pop := math.Sin(2*math.Pi*(900-500*p)*t) * math.Exp(-p*16) * 0.5
		fizz := lcg(&seed) * math.Pow(1-p, 3) * 0.22
		putStereoF32(buf, i, softSat(pop+fizz))
	}
	return buf
}

// genPickup: ascending FM bell arpeggio — rich, musical.
func genPickup() []byte {
	freqs := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := SampleRate * 75 / 1000
	tail := int(0.18 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.38
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.09
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHurt: descending FM tone — "oof".
func genHurt() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.52
		// Add warm second harmonic.
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLightningCrack: instant white crack into a long thunder rumble.
func genLightningCrack() []byte {
	n := int(1.1 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(time.Now().UnixNano()) | 1
	lp := 0.0
	rumLP := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		// Crack: full-band noise for the first 25ms.
		crack := 0.0
		if p < 0.022 {
			crack = lcg(&seed) * (1 - p/0.022) * 0.95
		}
		// Mid body decaying fast.
		raw := lcg(&seed)
		lp = lp*0.9 + raw*0.1
		body := lp * math.Exp(-p*9) * 0.4
		// Slow rolling rumble with a secondary swell.
		rumLP = rumLP*0.985 + raw*0.015
		swell := 1 + 0.6*math.Sin(p*math.Pi*2.3)
		rumble := rumLP * math.Exp(-p*2.4) * swell * 0.55
		s := crack + body + rumble
		putStereoF32(buf, i, softSat(s*0.9))
	}
	return buf
}

// genTurnChime: two-note blip announcing the next turn.
func genTurnChime() []byte {
	notes := []float64{659.25, 880}
	noteLen := SampleRate * 70 / 1000
	tail := int(0.12 * SampleRate)
	total := len(notes)*noteLen + tail
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.005, 0.5, 0.05, 0.3)
			mix[start+j] += fm(t, freq, 2.0, 2.5*env) * env * 0.3
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025) // slight pitch drop
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1 // sub
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuSelect: crisp click + brief high tone.
func genMenuSelect() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genNoAmmo: dull mechanical click, nothing fires.
func genNoAmmo() []byte {
	n := int(0.08 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(13131)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		click := math.Sin(2*math.Pi*180*t) * math.Exp(-p*30) * 0.5
		rattle := lcg(&seed) * math.Exp(-p*25) * 0.15
		putStereoF32(buf, i, softSat(click+rattle))
	}
	return buf
}

// genCrateLand: soft wooden thud for a supply crate touching down.
func genCrateLand() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(42424)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		knock := math.Sin(2*math.Pi*(140-60*p)*t) * math.Exp(-p*18) * 0.45
		raw := lcg(&seed)
		lp = lp*0.7 + raw*0.3
		scuff := lp * math.Exp(-p*14) * 0.18
		putStereoF32(buf, i, softSat(knock+scuff))
	}
	return buf
}
