// Package dcttransform provides the 8x8 forward DCT the estimator treats
// as an injected capability (spec: "TransposedScaledDCT<8>... an in-place
// forward DCT with standard scaled conventions"). It is grounded on the
// teacher's dct_double.go, which computes a fully orthonormal DCT-II by
// baking the per-frequency 0.5*alpha(u) scale into its basis matrix; this
// package instead factors that scale out into DCTScales8 so DctModulation
// can apply dct_rescale[i,j] = DCTScales8[i]*DCTScales8[j] itself, exactly
// as the original's DctModulation does against its own dct_rescale table.
package dcttransform

import "math"

const blockSize = 64

// rawBasis[8*u+x] = cos((2x+1)*u*pi/16), the unscaled DCT-II cosine basis.
// Multiplying a raw transform by DCTScales8[u]*DCTScales8[v] per output
// cell recovers the orthonormal DCT the teacher's kDCTMatrix computes
// directly (kDCTMatrix[8u+x] == DCTScales8[u] * rawBasis[8u+x]).
var rawBasis [64]float64

// DCTScales8 holds the per-frequency scale factors factored out of
// rawBasis: 0.5/sqrt(2) for the DC term, 0.5 for every AC term.
var DCTScales8 [8]float32

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			rawBasis[8*u+x] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
	DCTScales8[0] = float32(0.5 / math.Sqrt2)
	for u := 1; u < 8; u++ {
		DCTScales8[u] = 0.5
	}
}

// TransposedScaledDCT8 computes the raw (unscaled) 8x8 forward DCT of the
// pixel block in in (row-major, in[y*stride+x]) into the 64-entry
// row-major output out[8*u+v], written into the caller's out buffer rather
// than in place (out must not alias in's backing rows). "Transposed" names the
// fact the output is addressed [row-frequency][col-frequency] as a flat
// 8x8, matching the original's ToBlock/FromLines block addressing so
// DctModulation can index it the same way for both axes.
func TransposedScaledDCT8(in []float32, stride int, out *[64]float32) {
	var tmp [64]float64
	// Pass 1: DCT each column (vary x, transform over y) into tmp[u*8+x].
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			var acc float64
			for y := 0; y < 8; y++ {
				acc += rawBasis[8*u+y] * float64(in[y*stride+x])
			}
			tmp[u*8+x] = acc
		}
	}
	// Pass 2: DCT each row (vary u, transform over x) into out[u*8+v].
	for u := 0; u < 8; u++ {
		for v := 0; v < 8; v++ {
			var acc float64
			for x := 0; x < 8; x++ {
				acc += rawBasis[8*v+x] * tmp[u*8+x]
			}
			out[8*u+v] = float32(acc)
		}
	}
}

// DctRescale fills the 64-entry row-major dct_rescale table used by
// DctModulation: dct_rescale[8*i+j] = DCTScales8[i] * DCTScales8[j].
func DctRescale() *[64]float32 {
	var r [64]float32
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			r[8*i+j] = DCTScales8[i] * DCTScales8[j]
		}
	}
	return &r
}

// BlockSize is the number of coefficients in an 8x8 DCT block.
const BlockSize = blockSize

// orthoBasis[8*u+x] = DCTScales8[u] * rawBasis[8*u+x], the fully
// orthonormal DCT-II basis the teacher's kDCTMatrix bakes in directly.
// Since the basis is orthogonal, its transpose is its own inverse,
// exactly the DCT1d/IDCT1d relationship in the teacher's dct_double.go.
var orthoBasis [64]float64

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			orthoBasis[8*u+x] = float64(DCTScales8[u]) * rawBasis[8*u+x]
		}
	}
}

// ComputeBlockDCT computes the fully orthonormal forward 8x8 DCT of a
// flat 64-entry pixel block (row-major), in place. Grounded on the
// teacher's ComputeBlockDCTDouble/TransformBlock, generalized to float32.
func ComputeBlockDCT(block *[64]float32) {
	transformBlockOrtho(block, false)
}

// ComputeBlockIDCT computes the orthonormal inverse 8x8 DCT of a flat
// 64-entry coefficient block (row-major), in place. Grounded on the
// teacher's ComputeBlockIDCTDouble.
func ComputeBlockIDCT(block *[64]float32) {
	transformBlockOrtho(block, true)
}

func transformBlockOrtho(block *[64]float32, inverse bool) {
	var tmp [64]float64
	basisAt := func(u, x int) float64 {
		if inverse {
			return orthoBasis[8*x+u]
		}
		return orthoBasis[8*u+x]
	}
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			var acc float64
			for y := 0; y < 8; y++ {
				acc += basisAt(u, y) * float64(block[y*8+x])
			}
			tmp[u*8+x] = acc
		}
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var acc float64
			for u := 0; u < 8; u++ {
				acc += basisAt(x, u) * tmp[y*8+u]
			}
			block[y*8+x] = float32(acc)
		}
	}
}
