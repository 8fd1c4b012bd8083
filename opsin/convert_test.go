package opsin

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSRGBPadsToMultipleOf8(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 3))
	out := FromSRGB(img)
	require.Equal(t, 16, out.XSize())
	require.Equal(t, 8, out.YSize())
}

func TestFromSRGBBlackPixelMapsNearZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.Black)
		}
	}
	out := FromSRGB(img)
	assert.InDelta(t, float64(-CubeRoot(AbsorbanceBias[1])), float64(out.Plane(1).At(0, 0)), 1e-4)
}

func TestFromSRGBWhitePixelIsBrighterThanBlack(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	out := FromSRGB(img)
	assert.Greater(t, out.Plane(1).At(0, 0), out.Plane(1).At(1, 0))
}
