package opsin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSrgb8ToLinearTableMonotonic(t *testing.T) {
	require.Len(t, Srgb8ToLinearTable, 256)
	for i := 1; i < 256; i++ {
		assert.GreaterOrEqual(t, Srgb8ToLinearTable[i], Srgb8ToLinearTable[i-1])
	}
	assert.Equal(t, 0.0, Srgb8ToLinearTable[0])
	assert.InDelta(t, 255.0, Srgb8ToLinearTable[255], 1e-9)
}

func TestLinearToSrgb8RoundTrips(t *testing.T) {
	for _, i := range []int{0, 5, 10, 64, 128, 200, 255} {
		linear := Srgb8ToLinearTable[i]
		back := LinearToSrgb8(linear)
		assert.InDelta(t, float64(i), back, 0.5)
	}
}

func TestCubeRootClampsNegative(t *testing.T) {
	assert.Equal(t, 0.0, CubeRoot(-4))
	assert.InDelta(t, 2.0, CubeRoot(8), 1e-9)
}
