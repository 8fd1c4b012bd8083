package aq

import (
	"testing"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/stretchr/testify/assert"
)

func TestAdjustQuantFieldLeavesPlainDCT8Unchanged(t *testing.T) {
	ac := acstrategy.NewImage(2, 2)
	field := imagef.NewImageF(2, 2)
	field.Set(0, 0, 1)
	field.Set(1, 0, 2)
	field.Set(0, 1, 3)
	field.Set(1, 1, 4)

	AdjustQuantField(ac, field)

	assert.Equal(t, float32(1), field.At(0, 0))
	assert.Equal(t, float32(2), field.At(1, 0))
	assert.Equal(t, float32(3), field.At(0, 1))
	assert.Equal(t, float32(4), field.At(1, 1))
}

func TestAdjustQuantFieldSpreadsMaxAcrossDCT16(t *testing.T) {
	ac := acstrategy.NewImage(2, 2)
	ac.SetStrategy(0, 0, acstrategy.StrategyDCT16)

	field := imagef.NewImageF(2, 2)
	field.Set(0, 0, 1)
	field.Set(1, 0, 5)
	field.Set(0, 1, 2)
	field.Set(1, 1, 3)

	AdjustQuantField(ac, field)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, float32(5), field.At(x, y))
		}
	}
}
