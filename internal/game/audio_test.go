package game

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSoundCoversAllKinds(t *testing.T) {
	for kind := SoundLaunch; kind <= SoundCrateLand; kind++ {
		buf := generateSound(kind)
		require.NotEmpty(t, buf, "kind %d", kind)
		assert.Zero(t, len(buf)%8, "kind %d must be whole stereo float32 frames", kind)
	}
	assert.Nil(t, generateSound(SoundKind(99)))
}

func TestGeneratedSamplesStayInRange(t *testing.T) {
	for kind := SoundLaunch; kind <= SoundCrateLand; kind++ {
		buf := generateSound(kind)
		for i := 0; i+3 < len(buf); i += 4 {
			bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
			s := math.Float32frombits(bits)
			assert.False(t, math.IsNaN(float64(s)), "kind %d sample %d", kind, i/4)
			if math.Abs(float64(s)) > 1.0 {
				t.Fatalf("kind %d sample %d out of range: %v", kind, i/4, s)
			}
		}
	}
}

func TestSoftSat(t *testing.T) {
	assert.Equal(t, 0.0, softSat(0))
	assert.LessOrEqual(t, softSat(5), 1.0)
	assert.GreaterOrEqual(t, softSat(-5), -1.0)
	assert.InDelta(t, -softSat(0.7), softSat(-0.7), 1e-12, "odd symmetry")
}

func TestAdsrEnvelope(t *testing.T) {
	assert.Equal(t, 0.0, adsr(0, 0.1, 0.2, 0.6, 0.3))
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.6, 0.3), 1e-9, "peak at end of attack")
	assert.InDelta(t, 0.6, adsr(0.5, 0.1, 0.2, 0.6, 0.3), 1e-9, "sustain plateau")
	assert.InDelta(t, 0.0, adsr(1.0, 0.1, 0.2, 0.6, 0.3), 1e-9, "silent at the end")
}

func TestPutStereoF32(t *testing.T) {
	buf := makeBuf(2)
	putStereoF32(buf, 1, 0.5)

	bits := uint32(buf[8]) | uint32(buf[9])<<8 | uint32(buf[10])<<16 | uint32(buf[11])<<24
	assert.Equal(t, float32(0.5), math.Float32frombits(bits))
	// Both channels carry the same sample.
	assert.Equal(t, buf[8:12], buf[12:16])
	// Frame 0 untouched.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, buf[:8])
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4}}

	p := make([]byte, 3)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(4), p[0])

	_, err = r.Read(p)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSetSFXVolumeClamps(t *testing.T) {
	orig := SfxVolume()
	defer SetSFXVolume(orig)

	SetSFXVolume(2.5)
	assert.Equal(t, 1.0, SfxVolume())
	SetSFXVolume(-1)
	assert.Equal(t, 0.0, SfxVolume())
	SetSFXVolume(0.4)
	assert.Equal(t, 0.4, SfxVolume())
}

func TestExplosionSoundScaling(t *testing.T) {
	small := genExplosionScaled(8)
	big := genExplosionScaled(34)
	assert.Greater(t, len(big), len(small), "bigger blasts ring longer")
}
