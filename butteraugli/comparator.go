// Package butteraugli provides the perceptual-distance collaborator the
// estimator's search loop drives: SetReferenceImage once, then
// CompareWith repeatedly against candidate roundtrips, reading back a
// per-pixel distmap and an aggregate score. It is a faithful-shaped but
// numerically simplified stand-in for the real metric (itself out of
// scope, per the core estimator's own external-interfaces contract) —
// grounded on the teacher's ButteraugliComparator (Compare/DistanceOK/
// distmap/distmap_aggregate/ScoreOutputSize) and its own admission that
// butteraugli.go's actual diff kernel (ButteraugliBlockDiff,
// DiffmapOpsinDynamicsImage) was left unfinished/unported.
package butteraugli

import (
	"math"

	"github.com/jxlenc/adaptive-quant/imagef"
)

// Comparator is the estimator's only required view of a perceptual
// metric: compare a candidate opsin image against the fixed reference
// and report a per-pixel distance map plus an aggregate score.
type Comparator interface {
	SetReferenceImage(reference *imagef.Image3F)
	CompareWith(candidate *imagef.Image3F) (distmap *imagef.ImageF, score float32)
	GoodQualityScore() float32
	BadQualityScore() float32
}

// planeWeight mirrors the teacher's per-channel mask_xyz_ scaling: the Y
// (luma-like) plane dominates perceptual error, X and B contribute less.
var planeWeight = [3]float32{0.3, 1.0, 0.25}

// PerceptualComparator is the reference Comparator implementation. It
// computes a distmap of the square root of the weighted per-plane
// squared differences and
// aggregates it the way the teacher's ButteraugliScoreFromDiffmap does
// (max over the map), rather than attempting the real butteraugli kernel.
type PerceptualComparator struct {
	reference *imagef.Image3F
	distmap   *imagef.ImageF
	score     float32
}

// NewPerceptualComparator returns a comparator with no reference set;
// call SetReferenceImage before the first CompareWith.
func NewPerceptualComparator() *PerceptualComparator {
	return &PerceptualComparator{}
}

func (c *PerceptualComparator) SetReferenceImage(reference *imagef.Image3F) {
	c.reference = reference
}

// CompareWith computes, per pixel, the square root of the weighted sum of
// squared opsin-space plane differences against the stored reference,
// aggregating with the max-over-map
// convention the teacher's ButteraugliScoreFromDiffmap uses.
func (c *PerceptualComparator) CompareWith(candidate *imagef.Image3F) (*imagef.ImageF, float32) {
	w, h := c.reference.XSize(), c.reference.YSize()
	distmap := imagef.NewImageF(w, h)
	var maxDist float32
	for y := 0; y < h; y++ {
		out := distmap.Row(y)
		for x := 0; x < w; x++ {
			var acc float32
			for p := 0; p < 3; p++ {
				d := c.reference.Plane(p).At(x, y) - candidate.Plane(p).At(x, y)
				acc += planeWeight[p] * d * d
			}
			v := float32(math.Sqrt(float64(acc)))
			out[x] = v
			if v > maxDist {
				maxDist = v
			}
		}
	}
	c.distmap = distmap
	c.score = maxDist
	return distmap, maxDist
}

// GoodQualityScore and BadQualityScore bracket the acceptance range a
// search loop drives the aggregate score between; lower scores are
// better here, matching the teacher's DistanceOK comparison direction.
func (c *PerceptualComparator) GoodQualityScore() float32 { return 1.0 }
func (c *PerceptualComparator) BadQualityScore() float32  { return 2.0 }
