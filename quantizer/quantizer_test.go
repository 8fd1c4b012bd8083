package quantizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxlenc/adaptive-quant/imagef"
)

func TestNewQuantizerDefaultsToUnitField(t *testing.T) {
	q := NewQuantizer(3, 2)
	raw := q.RawQuantField()
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 3; bx++ {
			assert.EqualValues(t, 1, raw.At(bx, by))
		}
	}
}

func TestScaleAndInvGlobalScaleAreReciprocal(t *testing.T) {
	q := NewQuantizer(1, 1)
	raw := imagef.NewImageI(1, 1)
	q.SetQuant(1.2, 0.84, raw)
	require.NotZero(t, q.Scale())
	require.InDelta(t, 1.0, float64(q.Scale()*q.InvGlobalScale()), 1e-4)
}

func TestSetQuantFieldRoundsAndClampsToRange(t *testing.T) {
	q := NewQuantizer(2, 1)
	field := imagef.NewImageF(2, 1)
	field.Set(0, 0, 0.3)  // below 1, must clamp up to 1
	field.Set(1, 0, 999)  // above 255, must clamp down to 255
	raw := imagef.NewImageI(2, 1)
	q.SetQuantField(1.0, field, raw)

	out := q.RawQuantField()
	assert.EqualValues(t, 1, out.At(0, 0))
	assert.EqualValues(t, 255, out.At(1, 0))
}

func TestQuantizeRoundsToNearestMultiple(t *testing.T) {
	assert.EqualValues(t, 10, Quantize(11, 10))
	assert.EqualValues(t, 20, Quantize(16, 10))
	assert.EqualValues(t, 0, Quantize(4, 10))
	assert.EqualValues(t, -10, Quantize(-11, 10))
}
