package aq

import (
	"testing"

	"github.com/jxlenc/adaptive-quant/threadpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialQuantDCDecreasesAsTargetGrows(t *testing.T) {
	low := InitialQuantDC(0.5)
	high := InitialQuantDC(5.0)
	assert.Greater(t, low, high)
}

func TestInitialQuantDCNeverExceeds50(t *testing.T) {
	dc := InitialQuantDC(0.001)
	assert.LessOrEqual(t, dc, float32(50))
}

func TestInitialQuantFieldMatchesBlockGrid(t *testing.T) {
	opsin := constOpsin(32, 16, 0, 0.1, 0)
	pool := threadpool.New(2)

	field := InitialQuantField(1.0, opsin, pool, 1.0)

	require.Equal(t, 4, field.XSize())
	require.Equal(t, 2, field.YSize())
	for y := 0; y < field.YSize(); y++ {
		for _, v := range field.ConstRow(y) {
			assert.Greater(t, v, float32(0))
		}
	}
}
