// Package opsin implements the small set of color-space helpers the
// adaptive quantization estimator needs from the encoder's opsin model:
// the simple-gamma psychovisual curve Butteraugli uses internally, and
// the ratio-of-derivatives correction that lets the estimator move from
// opsin's cube-root-of-light space into that gamma space. Grounded on
// the teacher's gamma_correct.go (sRGB<->linear table) generalized with
// the exact constants from original_source/jxl/enc_adaptive_quantization.cc.
package opsin

import "math"

// AbsorbanceBias holds the fixed per-plane opsin absorbance biases. The
// real encoder derives these from a colorimetric fit against human cone
// sensitivity; the core estimator only needs them to validate
// GammaModulation's bias invariant (kBias must exceed each of these).
var AbsorbanceBias = [3]float64{0.0037930734, -0.0037930734, 0.0}

const (
	kSGmul    = 200.0
	kSGmul2   = 1.0 / 74.0
	kLog2     = 0.693147181
	kSGRetMul = kSGmul2 * 18.6580932135 * kLog2
	kSGRetAdd = kSGmul2 * -20.2789020414
	kSGVOffset = 7.14672470003
)

// FastLog2f18 is an 18-bit-mantissa log2 approximation. The real encoder
// uses a SIMD polynomial approximation for speed; this implementation
// uses math.Log2 directly (bit-identical is not required, see spec.md
// §7's "exact numeric parity... is otherwise not guaranteed"), but keeps
// the never-NaN-for-v>=0 contract the core's callers rely on.
func FastLog2f18(v float32) float32 {
	if v < 0 {
		v = 0
	}
	return float32(math.Log2(float64(v)))
}

// SimpleGamma is a simple HDR-compatible gamma function matching
// Butteraugli's internal psychovisual curve.
func SimpleGamma(v float32) float32 {
	v *= kSGmul
	if v < 0 {
		v = 0
	}
	return float32(kSGRetMul)*FastLog2f18(v+float32(kSGVOffset)) + float32(kSGRetAdd)
}

// RatioOfDerivativesOfCubicRootToSimpleGamma computes the ratio between
// the derivative of the cube root (opsin's gamma) and the derivative of
// SimpleGamma at v*v*v, letting quantization move from jxl's opsin space
// into butteraugli's log-gamma space. Negative v is clamped to 0.
//
// invert=false returns den/num (used by DiffPrecompute); invert=true
// returns num/den (used by GammaModulation).
func RatioOfDerivativesOfCubicRootToSimpleGamma(v float32, invert bool) float32 {
	if v < 0 {
		v = 0
	}
	const (
		kNumMul  = kSGRetMul * 3 * kSGmul
		kVOffset = kSGVOffset * kLog2
		kDenMul  = kLog2 * kSGmul
	)
	v2 := v * v
	num := float32(kNumMul) * v2
	den := float32(kDenMul)*v*v2 + float32(kVOffset)
	if invert {
		return num / den
	}
	return den / num
}
