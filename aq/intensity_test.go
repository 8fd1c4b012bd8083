package aq

import (
	"testing"

	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/stretchr/testify/assert"
)

func TestIntensityAcEstimateOfConstantPlaneIsZero(t *testing.T) {
	plane := imagef.NewImageF(16, 16)
	imagef.FillImageF(0.5, plane)

	out := IntensityAcEstimate(plane)

	for y := 0; y < 16; y++ {
		for _, v := range out.ConstRow(y) {
			assert.InDelta(t, 0.0, v, 1e-6)
		}
	}
}

func TestIntensityAcEstimateHasSameDimensionsAsInput(t *testing.T) {
	plane := imagef.NewImageF(24, 9)
	out := IntensityAcEstimate(plane)
	assert.Equal(t, 24, out.XSize())
	assert.Equal(t, 9, out.YSize())
}

func TestIntensityAcEstimateNonzeroForEdge(t *testing.T) {
	plane := imagef.NewImageF(8, 8)
	for y := 0; y < 8; y++ {
		row := plane.Row(y)
		for x := 0; x < 8; x++ {
			if x >= 4 {
				row[x] = 1.0
			}
		}
	}
	out := IntensityAcEstimate(plane)
	assert.NotZero(t, out.At(4, 4))
}
