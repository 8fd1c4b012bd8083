package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

const (
	kDcQuantPow = 0.55
	kDcQuant    = 1.18
	kAcQuant    = 0.84
)

// InitialQuantDC returns the flat DC quant multiplier for a target
// butteraugli distance: the target is first passed through a concave
// correction (kDcMul*pow((1/kDcMul)*target, kDcQuantPow)) so the DC quant
// does not grow linearly past the distance at which non-linearity kicks
// in, then capped at 50.
func InitialQuantDC(butteraugliTarget float32) float32 {
	const kDcMul = 2.9
	target := float64(butteraugliTarget)
	correctedTarget := kDcMul * math.Pow((1.0/kDcMul)*target, kDcQuantPow)
	if correctedTarget > target {
		correctedTarget = target
	}
	dc := kDcQuant / correctedTarget
	if dc > 50 {
		dc = 50
	}
	return float32(dc)
}

// InitialQuantField runs the full estimator pipeline — IntensityAcEstimate
// on the X and Y opsin planes, DiffPrecompute+DownsampleBy8 on the whole
// opsin image, PerBlockModulations to fold in the psychovisual terms —
// producing the seed per-block AC quant field at scale
// (kAcQuant/butteraugliTarget)*rescale.
func InitialQuantField(butteraugliTarget float32, opsin *imagef.Image3F, pool *threadpool.Pool, rescale float32) *imagef.ImageF {
	quantAc := kAcQuant / butteraugliTarget
	intensityAcX := IntensityAcEstimate(opsin.Plane(0))
	intensityAcY := IntensityAcEstimate(opsin.Plane(1))

	diff := DiffPrecompute(opsin, diffCutoff)
	field := DownsampleBy8(diff)
	PerBlockModulations(intensityAcX, intensityAcY, quantAc*rescale, pool, field)
	return field
}
