package aq

import (
	"testing"

	"github.com/jxlenc/adaptive-quant/dcttransform"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/threadpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDctModulationOfFlatTileIsZero(t *testing.T) {
	intensityY := imagef.NewImageF(8, 8)
	dctRescale := dcttransform.DctRescale()
	var out float32
	DctModulation(0, 0, intensityY, dctRescale, &out)
	assert.InDelta(t, 0.0, out, 1e-5)
}

func TestDctModulationOfNoisyTileIsNonzero(t *testing.T) {
	intensityY := imagef.NewImageF(8, 8)
	for y := 0; y < 8; y++ {
		row := intensityY.Row(y)
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				row[x] = 1
			} else {
				row[x] = -1
			}
		}
	}
	dctRescale := dcttransform.DctRescale()
	var out float32
	DctModulation(0, 0, intensityY, dctRescale, &out)
	assert.NotEqual(t, float32(0), out)
}

func TestRangeModulationClampsToSevenBothWays(t *testing.T) {
	x := imagef.NewImageF(8, 8)
	y := imagef.NewImageF(8, 8)
	for i := 0; i < 8; i++ {
		rx := x.Row(i)
		ry := y.Row(i)
		for j := 0; j < 8; j++ {
			rx[j] = float32(j) * 1000
			ry[j] = float32(j) * 1000
		}
	}
	var out float32
	RangeModulation(0, 0, x, y, &out)
	assert.LessOrEqual(t, out, float32(7.0))
	assert.GreaterOrEqual(t, out, float32(-7.0))
}

func TestHfModulationOfFlatTileIsZero(t *testing.T) {
	y := imagef.NewImageF(8, 8)
	var out float32
	HfModulation(0, 0, y, &out)
	assert.InDelta(t, 0.0, out, 1e-6)
}

func TestGammaModulationOfFlatTileIsFinite(t *testing.T) {
	x := imagef.NewImageF(8, 8)
	y := imagef.NewImageF(8, 8)
	var out float32
	GammaModulation(0, 0, x, y, &out)
	assert.False(t, out != out) // not NaN
}

func TestPerBlockModulationsProducesPositiveScaledField(t *testing.T) {
	x := imagef.NewImageF(16, 8)
	y := imagef.NewImageF(16, 8)
	out := imagef.NewImageF(2, 1)
	pool := threadpool.New(2)

	PerBlockModulations(x, y, 2.0, pool, out)

	require.Equal(t, 2, out.XSize())
	for _, v := range out.ConstRow(0) {
		assert.Greater(t, v, float32(0))
	}
}
