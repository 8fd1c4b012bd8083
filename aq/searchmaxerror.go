package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/roundtrip"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// FindBestQuantizationMaxError runs the pixel-domain search driven by a
// fixed per-channel maximum absolute error rather than a perceptual
// score: each block's quant multiplier is scaled up when the opsin-space
// roundtrip error in its footprint exceeds the target, and down when it
// is comfortably under half the target.
func FindBestQuantizationMaxError(
	opsin *imagef.Image3F,
	acStrategy *acstrategy.Image,
	q *quantizer.Quantizer,
	cparams config.CompressParams,
	pool *threadpool.Pool,
	stats *SearchStats,
) {
	initialQuantDC := 16 * float32(math.Sqrt(0.1/float64(cparams.ButteraugliTarget)))
	quantField := InitialQuantField(cparams.ButteraugliTarget, opsin, pool, 1.0)
	AdjustQuantField(acStrategy, quantField)

	var invMaxErr [3]float32
	for c := 0; c < 3; c++ {
		invMaxErr[c] = 1.0 / cparams.MaxError[c]
	}

	opts := roundtrip.Options{SaveDecompressed: false, ApplyColorTransform: false}

	for i := 0; i < cparams.MaxIters+1; i++ {
		q.SetQuantField(initialQuantDC, quantField, q.RawQuantField())
		decoded := roundtrip.Image(opsin, acStrategy, q, pool, opts)

		for by := 0; by < acStrategy.YSizeBlocks(); by++ {
			row := acStrategy.ConstRow(by)
			for bx, cell := range row {
				if !cell.IsFirstBlock {
					continue
				}
				var maxError float32
				for c := 0; c < 3; c++ {
					inPlane := opsin.Plane(c)
					decPlane := decoded.Plane(c)
					yEnd := minInt(decoded.YSize(), (by+cell.CoveredBlocksY)*8)
					xEnd := minInt(decoded.XSize(), (bx+cell.CoveredBlocksX)*8)
					for y := by * 8; y < yEnd; y++ {
						inRow := inPlane.ConstRow(y)
						decRow := decPlane.ConstRow(y)
						for x := bx * 8; x < xEnd; x++ {
							e := abs32(inRow[x]-decRow[x]) * invMaxErr[c]
							if e > maxError {
								maxError = e
							}
						}
					}
				}

				var qfMul float32
				switch {
				case maxError < 0.5:
					qfMul = maxError * 2.0
				case maxError > 1.0:
					qfMul = maxError
				default:
					qfMul = 1.0
				}

				for qy := by; qy < by+cell.CoveredBlocksY; qy++ {
					r := quantField.Row(qy)
					for qx := bx; qx < bx+cell.CoveredBlocksX; qx++ {
						r[qx] *= qfMul
					}
				}
			}
		}

		if stats != nil {
			stats.LogIteration(i, 0, quantField, initialQuantDC)
		}
	}

	q.SetQuantField(initialQuantDC, quantField, q.RawQuantField())
}
