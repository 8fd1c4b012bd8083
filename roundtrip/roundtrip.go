// Package roundtrip stands in for the full entropy-coded encode/decode
// pipeline the estimator's search loop needs to see the effect of a
// candidate quant field. The real RoundtripImage (enc_adaptive_
// quantization.cc) runs the frame through ComputeCoefficients and the
// actual group decoder; that full bitstream round trip is out of scope
// here (spec.md §1 excludes "the roundtrip encode/decode pipeline"
// itself). This package gives the estimator something that behaves like
// it: forward DCT each covered block, quantize/dequantize its
// coefficients against the quantizer's current raw field, inverse DCT
// back. Grounded on the teacher's QuantizeBlock (quantize.go) for the
// per-coefficient rounding step and on original_source's
// save_decompressed/apply_color_transform RoundtripImage parameters.
package roundtrip

import (
	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/dcttransform"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// Options generalizes the original's save_decompressed/
// apply_color_transform RoundtripImage parameters (see SPEC_FULL.md §4.5):
// FindBestQuantizationMaxError always roundtrips in opsin space with no
// color transform, while the other two search regimes request one. Image
// accepts but does not act on either field.
type Options struct {
	SaveDecompressed    bool
	ApplyColorTransform bool
}

// DefaultOptions matches the non-max-error search regimes' roundtrip mode.
func DefaultOptions() Options { return Options{SaveDecompressed: true, ApplyColorTransform: true} }

// Image quantizes and dequantizes, for every first block of ac's strategy
// grid, the 8x8 pixel block at that corner against q's current raw quant
// field, returning a reconstructed Image3F the comparator can diff against
// the reference. Only the corner 8x8 of a multi-block transform is
// roundtripped; its other covered cells are copied through unchanged.
// opts is accepted for interface parity with the original's
// RoundtripImage; this simplified roundtrip does not distinguish color
// transform modes (there is no entropy-coded color transform here).
func Image(opsin *imagef.Image3F, ac *acstrategy.Image, q *quantizer.Quantizer, pool *threadpool.Pool, opts Options) *imagef.Image3F {
	_ = opts
	w, h := opsin.XSize(), opsin.YSize()
	out := imagef.NewImage3F(w, h)
	for p := 0; p < 3; p++ {
		for y := 0; y < h; y++ {
			copy(out.Plane(p).Row(y), opsin.Plane(p).ConstRow(y))
		}
	}

	bh := ac.YSizeBlocks()
	raw := q.RawQuantField()
	invScale := q.InvGlobalScale()

	pool.Run(0, bh, func(int) bool { return true }, func(by, _ int) {
		row := ac.ConstRow(by)
		for bx, cell := range row {
			if !cell.IsFirstBlock {
				continue
			}
			step := int32(raw.At(bx, by))
			if step < 1 {
				step = 1
			}
			for p := 0; p < 3; p++ {
				roundtripBlock(out.Plane(p), bx*8, by*8, step, invScale)
			}
		}
	}, "roundtrip")

	return out
}

func roundtripBlock(plane *imagef.ImageF, x0, y0 int, step int32, invScale float32) {
	var block [64]float32
	for y := 0; y < 8; y++ {
		row := plane.ConstRow(y0 + y)
		copy(block[y*8:y*8+8], row[x0:x0+8])
	}
	dcttransform.ComputeBlockDCT(&block)

	const kCoeffScale = 1 << 8
	for i := range block {
		raw := int32(block[i] * kCoeffScale / invScale)
		q := quantizer.Quantize(raw, step)
		block[i] = float32(q) * invScale / kCoeffScale
	}

	dcttransform.ComputeBlockIDCT(&block)
	for y := 0; y < 8; y++ {
		dst := plane.Row(y0 + y)
		copy(dst[x0:x0+8], block[y*8:y*8+8])
	}
}
