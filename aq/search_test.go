package aq

import (
	"testing"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/butteraugli"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/threadpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestQuantizationConvergesWithoutPanicking(t *testing.T) {
	opsin := constOpsin(16, 8, 0.02, 0.3, -0.01)
	reference := constOpsin(16, 8, 0.02, 0.3, -0.01)
	ac := acstrategy.NewImage(2, 1)
	q := quantizer.NewQuantizer(2, 1)
	cparams := config.DefaultCompressParams()
	cparams.MaxIters = 2
	comparator := butteraugli.NewPerceptualComparator()
	pool := threadpool.New(2)
	stats := NewSearchStats()

	require.NotPanics(t, func() {
		FindBestQuantization(reference, opsin, ac, q, cparams, comparator, pool, stats)
	})

	raw := q.RawQuantField()
	for y := 0; y < raw.YSize(); y++ {
		for _, v := range raw.ConstRow(y) {
			assert.GreaterOrEqual(t, v, int32(1))
			assert.LessOrEqual(t, v, int32(255))
		}
	}
	assert.Equal(t, 3, stats.Counters["butteraugli_iters"])
}

func TestFindBestQuantizationIdenticalReferenceKeepsValidRawField(t *testing.T) {
	opsin := constOpsin(8, 8, 0, 0.25, 0)
	reference := constOpsin(8, 8, 0, 0.25, 0)
	ac := acstrategy.NewImage(1, 1)
	q := quantizer.NewQuantizer(1, 1)
	cparams := config.DefaultCompressParams()
	cparams.MaxIters = 1
	comparator := butteraugli.NewPerceptualComparator()
	pool := threadpool.New(1)

	FindBestQuantization(reference, opsin, ac, q, cparams, comparator, pool, nil)

	raw := q.RawQuantField()
	assert.GreaterOrEqual(t, raw.At(0, 0), int32(1))
}
