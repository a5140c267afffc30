package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmmoLabel(t *testing.T) {
	assert.Equal(t, "--", ammoLabel(-1))
	assert.Equal(t, "0", ammoLabel(0))
	assert.Equal(t, "3", ammoLabel(3))
}

func TestWindGauge(t *testing.T) {
	assert.Equal(t, "CALM", windGauge(0))
	assert.Equal(t, "CALM", windGauge(0.4))
	assert.Equal(t, "CALM", windGauge(-0.4))

	assert.Equal(t, " 3 >", windGauge(3))
	assert.Equal(t, "10 >>", windGauge(10))
	assert.Equal(t, "<  3", windGauge(-3))
	assert.Equal(t, "<<<< 24", windGauge(-24))
}

func TestRepeatChar(t *testing.T) {
	assert.Equal(t, "###", repeatChar('#', 3))
	assert.Equal(t, "", repeatChar('#', 0))
}
