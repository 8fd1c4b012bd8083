// Package aq implements the adaptive quantization field estimator: the
// psychovisual modulation pipeline and the three rate-distortion search
// regimes that refine a per-8x8-block quant field against a perceptual
// metric. Grounded throughout on the teacher's Processor/ButteraugliComparator
// search shape (processor.go, butteraugli_comparator.go), with every
// numeric constant taken verbatim from the system this estimator is
// modeled on.
package aq

import "github.com/jxlenc/adaptive-quant/imagef"

// weightsGaussianDC is the fixed 3x3 symmetric DC-preserving blur used by
// IntensityAcEstimate: center 0.320356, 4 edge-adjacent 0.122822, 4
// corner 0.047089 (center + 4*edge + 4*corner == 1).
var weightsGaussianDC = imagef.WeightsSymmetric3{
	Center: 0.320356,
	Edge:   0.122822,
	Corner: 0.047089,
}

// IntensityAcEstimate returns the high-pass image plane - Symmetric3(plane),
// i.e. the detail the DC-preserving blur does not capture.
func IntensityAcEstimate(plane *imagef.ImageF) *imagef.ImageF {
	blurred := imagef.NewImageF(plane.XSize(), plane.YSize())
	imagef.Symmetric3(plane, weightsGaussianDC, blurred)

	out := imagef.NewImageF(plane.XSize(), plane.YSize())
	for y := 0; y < plane.YSize(); y++ {
		src := plane.ConstRow(y)
		blur := blurred.ConstRow(y)
		dst := out.Row(y)
		for x := range src {
			dst[x] = src[x] - blur[x]
		}
	}
	return out
}
