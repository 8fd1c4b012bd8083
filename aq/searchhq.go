package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/butteraugli"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/roundtrip"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// TileDistMap downsamples distmap into one entry per first-block tile of
// acStrategy: each pixel's distance is raised to the 16th power, summed
// over the tile's footprint (widened by margin pixels on every side, with
// reduced weight kBorderMul/kCornerMul on the widened border when margin
// != 0), then the mean is taken back to the 16th root and scaled by
// kTileNorm. This biases the tile aggregate toward its worst pixels far
// more than a plain average would.
func TileDistMap(distmap *imagef.ImageF, tileSize, margin int, acStrategy *acstrategy.Image) *imagef.ImageF {
	const kBorderMul = 0.98
	const kCornerMul = 0.7

	tileXSize := imagef.DivCeil(distmap.XSize(), tileSize)
	tileYSize := imagef.DivCeil(distmap.YSize(), tileSize)
	tileDistmap := imagef.NewImageF(tileXSize, tileYSize)

	for tileY := 0; tileY < tileYSize; tileY++ {
		row := acStrategy.ConstRow(tileY)
		for tileX := 0; tileX < tileXSize; tileX++ {
			cell := row[tileX]
			if !cell.IsFirstBlock {
				continue
			}
			thisTileXSize := cell.CoveredBlocksX * tileSize
			thisTileYSize := cell.CoveredBlocksY * tileSize

			yBegin := maxInt(0, tileSize*tileY-margin)
			yEnd := minInt(distmap.YSize(), tileSize*tileY+thisTileYSize+margin)
			xBegin := maxInt(0, tileSize*tileX-margin)
			xEnd := minInt(distmap.XSize(), tileSize*tileX+thisTileXSize+margin)

			var distNorm float32
			var pixels float64
			for y := yBegin; y < yEnd; y++ {
				ymul := float32(1.0)
				if margin != 0 && (y == yBegin || y == yEnd-1) {
					ymul = kBorderMul
				}
				r := distmap.ConstRow(y)
				for x := xBegin; x < xEnd; x++ {
					xmul := ymul
					if margin != 0 && (x == xBegin || x == xEnd-1) {
						if xmul == 1.0 {
							xmul = kBorderMul
						} else {
							xmul = kCornerMul
						}
					}
					v := r[x]
					v *= v
					v *= v
					v *= v
					v *= v
					distNorm += xmul * v
					pixels += float64(xmul)
				}
			}
			if pixels == 0 {
				pixels = 1
			}
			const kTileNorm = 1.2
			tileDist := kTileNorm * float32(math.Pow(float64(distNorm)/pixels, 1.0/16.0))
			for iy := 0; iy < cell.CoveredBlocksY; iy++ {
				out := tileDistmap.Row(tileY + iy)
				for ix := 0; ix < cell.CoveredBlocksX; ix++ {
					out[tileX+ix] = tileDist
				}
			}
		}
	}
	return tileDistmap
}

// DistToPeakMap marks, for every cell within localRadius of a local peak
// (a cell exceeding the weighted blend of peakMin and its neighborhood
// max), the Chebyshev distance to its nearest qualifying peak; cells
// never covered by any peak's neighborhood stay -1.
func DistToPeakMap(field *imagef.ImageF, peakMin float32, localRadius int, peakWeight float32) *imagef.ImageF {
	result := imagef.NewImageF(field.XSize(), field.YSize())
	imagef.FillImageF(-1.0, result)

	for y0 := 0; y0 < field.YSize(); y0++ {
		for x0 := 0; x0 < field.XSize(); x0++ {
			xMin := maxInt(0, x0-localRadius)
			yMin := maxInt(0, y0-localRadius)
			xMax := minInt(field.XSize(), x0+1+localRadius)
			yMax := minInt(field.YSize(), y0+1+localRadius)

			localMax := peakMin
			for y := yMin; y < yMax; y++ {
				row := field.ConstRow(y)
				for x := xMin; x < xMax; x++ {
					if row[x] > localMax {
						localMax = row[x]
					}
				}
			}

			if field.At(x0, y0) > (1-peakWeight)*peakMin+peakWeight*localMax {
				for y := yMin; y < yMax; y++ {
					out := result.Row(y)
					for x := xMin; x < xMax; x++ {
						dist := float32(maxInt(absInt(y-y0), absInt(x-x0)))
						cur := out[x]
						if cur < 0 || cur > dist {
							out[x] = dist
						}
					}
				}
			}
		}
	}
	return result
}

// AdjustQuantVal nudges *q toward quant_max along an inverse-quant
// schedule weighted by factor/(d+1), returning false once q has already
// reached (or is within 0.1% of) quantMax.
func AdjustQuantVal(q *float32, d, factor, quantMax float32) bool {
	if *q >= 0.999*quantMax {
		return false
	}
	invQ := 1.0 / *q
	adjInvQ := invQ - factor/(d+1.0)
	newQ := 1.0 / adjInvQ
	if adjInvQ < 1.0/quantMax {
		newQ = quantMax
	}
	*q = newQ
	return true
}

// FindBestQuantizationHQ runs the slower peak-descent search: for up to
// kMaxOuterIters passes, it iteratively grows the search radius used by
// DistToPeakMap, the DC quant floor, and the quant ceiling until a pass
// nudges at least one block, tracking the best (lowest-score) field seen.
func FindBestQuantizationHQ(
	reference *imagef.Image3F,
	opsin *imagef.Image3F,
	acStrategy *acstrategy.Image,
	q *quantizer.Quantizer,
	cparams config.CompressParams,
	comparator butteraugli.Comparator,
	pool *threadpool.Pool,
	stats *SearchStats,
) {
	comparator.SetReferenceImage(reference)
	butteraugliTarget := cparams.ButteraugliTarget
	lowerIsBetter := comparator.GoodQualityScore() < comparator.BadQualityScore()

	quantField := InitialQuantField(butteraugliTarget, opsin, pool, 1.0)
	AdjustQuantField(acStrategy, quantField)
	bestQuantField := imagef.CopyImageF(quantField)

	bestScore := float32(1000000.0)
	const kMaxOuterIters = 2
	outerIter := 0
	butteraugliIter := 0
	searchRadius := 0
	quantCeil := float32(5.0)
	quantDC := float32(1.2)
	bestQuantDC := quantDC
	numStallingIters := 0
	maxIters := cparams.MaxItersHQ
	kAdjSpeed := [kMaxOuterIters]float32{0.1, 0.04}

	for {
		butteraugliIter++
		_, qmax := imagef.MinMax(quantField)
		q.SetQuantField(quantDC, quantField, q.RawQuantField())
		decoded := roundtrip.Image(opsin, acStrategy, q, pool, roundtrip.DefaultOptions())
		diffmap, score := comparator.CompareWith(decoded)
		if !lowerIsBetter {
			score = -score
			imagef.ScaleImageF(-1.0, diffmap)
		}

		if score <= bestScore {
			bestQuantField = imagef.CopyImageF(quantField)
			if score > butteraugliTarget {
				bestScore = score
			} else {
				bestScore = butteraugliTarget
			}
			bestQuantDC = quantDC
			numStallingIters = 0
		} else if outerIter == 0 {
			numStallingIters++
		}

		tileDistmap := TileDistMap(diffmap, 8, 0, acStrategy)
		if stats != nil {
			stats.LogIteration(butteraugliIter, score, quantField, quantDC)
		}

		if butteraugliIter >= maxIters {
			break
		}

		changed := false
		for !changed && score > butteraugliTarget {
			for radius := 0; radius <= searchRadius && !changed; radius++ {
				distToPeakMap := DistToPeakMap(tileDistmap, butteraugliTarget, radius, 0.0)
				for y := 0; y < quantField.YSize(); y++ {
					rowQ := quantField.Row(y)
					rowDist := distToPeakMap.ConstRow(y)
					rowTile := tileDistmap.ConstRow(y)
					for x := range rowQ {
						if rowDist[x] >= 0.0 {
							factor := kAdjSpeed[outerIter] * rowTile[x]
							if AdjustQuantVal(&rowQ[x], rowDist[x], factor, quantCeil) {
								changed = true
							}
						}
					}
				}
			}
			if !changed || numStallingIters >= 3 {
				if searchRadius < 4 && (qmax < 0.99*quantCeil || quantCeil >= 3.0+float32(searchRadius)) {
					searchRadius++
					continue
				}
				if quantDC < 0.4*quantCeil-0.8 {
					quantDC += 0.2
					changed = true
					continue
				}
				if quantCeil < 8.0 {
					quantCeil += 0.5
					continue
				}
				break
			}
		}

		if !changed {
			outerIter++
			if outerIter == kMaxOuterIters {
				break
			}
			const kQuantScale = 0.75
			imagef.ScaleImageF(kQuantScale, quantField)
			numStallingIters = 0
		}
	}

	q.SetQuantField(bestQuantDC, bestQuantField, q.RawQuantField())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
