package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/butteraugli"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/internal/assert"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/roundtrip"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// kMargins is the per-iteration tile margin TileDistMap widens its
// aggregation window by. Always zero: see SPEC_FULL.md §6, open question
// §9(a).
var kMargins [100]int

const (
	kOriginalComparisonRound      = 1
	kMaximumDistanceIncreaseFactor = 1.015
)

// FindBestQuantization runs the default Butteraugli-guided iterative
// search: seed the quant field, roundtrip, compare, shrink/grow each
// block's quant value toward the target distance, repeat for
// cparams.MaxIters+1 rounds, undoing a round if it made a block strictly
// worse off by more than kMaximumDistanceIncreaseFactor.
func FindBestQuantization(
	reference *imagef.Image3F,
	opsin *imagef.Image3F,
	acStrategy *acstrategy.Image,
	q *quantizer.Quantizer,
	cparams config.CompressParams,
	comparator butteraugli.Comparator,
	pool *threadpool.Pool,
	stats *SearchStats,
) {
	butteraugliTarget := cparams.ButteraugliTarget
	comparator.SetReferenceImage(reference)
	lowerIsBetter := comparator.GoodQualityScore() < comparator.BadQualityScore()

	initialQuantDC := InitialQuantDC(butteraugliTarget)
	quantField := InitialQuantField(butteraugliTarget, opsin, pool, 1.0)
	AdjustQuantField(acStrategy, quantField)

	initialQuantField := imagef.CopyImageF(quantField)
	lastQuantField := imagef.CopyImageF(initialQuantField)
	var lastTileDistmapLocalopt *imagef.ImageF

	initialMin, initialMax := imagef.MinMax(initialQuantField)
	initialRatio := float64(initialMax) / float64(initialMin)
	qfMaxDeviationLow := math.Sqrt(250 / initialRatio)
	asymmetry := 2.0
	if qfMaxDeviationLow < asymmetry {
		asymmetry = qfMaxDeviationLow
	}
	qfLower := float32(float64(initialMin) / (asymmetry * qfMaxDeviationLow))
	qfHigher := float32(float64(initialMax) * (qfMaxDeviationLow / asymmetry))
	assert.That(qfHigher/qfLower < 253, "quant field ratio %f/%f exceeds the raw field's representable range", qfHigher, qfLower)

	for i := 0; i < cparams.MaxIters+1; i++ {
		q.SetQuantField(initialQuantDC, quantField, q.RawQuantField())
		decoded := roundtrip.Image(opsin, acStrategy, q, pool, roundtrip.DefaultOptions())
		diffmap, score := comparator.CompareWith(decoded)
		if !lowerIsBetter {
			score = -score
			imagef.ScaleImageF(-1.0, diffmap)
		}

		margin := 0
		if i < len(kMargins) {
			margin = kMargins[i]
		}
		tileDistmap := TileDistMap(diffmap, 8, margin, acStrategy)
		tileDistmapLocalopt := TileDistMap(diffmap, 8, 2, acStrategy)

		if stats != nil {
			stats.LogIteration(i, score, quantField, initialQuantDC)
		}

		if i > kOriginalComparisonRound && lastTileDistmapLocalopt != nil {
			for y := 0; y < quantField.YSize(); y++ {
				rowQ := quantField.Row(y)
				rowDist := tileDistmapLocalopt.ConstRow(y)
				rowLastDist := lastTileDistmapLocalopt.ConstRow(y)
				rowLastQ := lastQuantField.ConstRow(y)
				for x := range rowQ {
					if rowQ[x] > rowLastQ[x] && rowDist[x] > kMaximumDistanceIncreaseFactor*rowLastDist[x] {
						rowQ[x] = rowLastQ[x]
					}
				}
			}
		}
		lastQuantField = imagef.CopyImageF(quantField)
		lastTileDistmapLocalopt = imagef.CopyImageF(tileDistmapLocalopt)

		if i == cparams.MaxIters {
			break
		}

		curPow := 0.0
		if i < 7 {
			curPow = cparams.CurPow(i)
			if curPow < 0 {
				curPow = 0
			}
		}

		if i == kOriginalComparisonRound {
			const kInitMul = 0.6
			const kOneMinusInitMul = 1.0 - kInitMul
			for y := 0; y < quantField.YSize(); y++ {
				rowQ := quantField.Row(y)
				rowInit := initialQuantField.ConstRow(y)
				for x := range rowQ {
					clamp := float32(kOneMinusInitMul)*rowQ[x] + float32(kInitMul)*rowInit[x]
					if rowQ[x] < clamp {
						v := clamp
						if v > qfHigher {
							v = qfHigher
						}
						if v < qfLower {
							v = qfLower
						}
						rowQ[x] = v
					}
				}
			}
		}

		if curPow == 0.0 {
			for y := 0; y < quantField.YSize(); y++ {
				rowDist := tileDistmap.ConstRow(y)
				rowQ := quantField.Row(y)
				for x := range rowQ {
					diff := rowDist[x] / butteraugliTarget
					if diff > 1.0 {
						old := rowQ[x]
						rowQ[x] *= diff
						qfOld := int(old*q.InvGlobalScale() + 0.5)
						qfNew := int(rowQ[x]*q.InvGlobalScale() + 0.5)
						if qfOld == qfNew {
							rowQ[x] = old + q.Scale()
						}
					}
					clampQuantRange(&rowQ[x], qfLower, qfHigher)
				}
			}
		} else {
			for y := 0; y < quantField.YSize(); y++ {
				rowDist := tileDistmap.ConstRow(y)
				rowQ := quantField.Row(y)
				for x := range rowQ {
					diff := rowDist[x] / butteraugliTarget
					if diff <= 1.0 {
						rowQ[x] *= float32(math.Pow(float64(diff), curPow))
					} else {
						old := rowQ[x]
						rowQ[x] *= diff
						qfOld := int(old*q.InvGlobalScale() + 0.5)
						qfNew := int(rowQ[x]*q.InvGlobalScale() + 0.5)
						if qfOld == qfNew {
							rowQ[x] = old + q.Scale()
						}
					}
					clampQuantRange(&rowQ[x], qfLower, qfHigher)
				}
			}
		}
	}

	q.SetQuantField(initialQuantDC, quantField, q.RawQuantField())
}

func clampQuantRange(v *float32, lo, hi float32) {
	if *v > hi {
		*v = hi
	}
	if *v < lo {
		*v = lo
	}
}
