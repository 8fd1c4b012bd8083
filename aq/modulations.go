package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/dcttransform"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/opsin"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// DctModulation adds the DCT-space entropy proxy for the 8x8 tile of
// intensityAcY at pixel origin (x,y) to *outPos.
func DctModulation(x, y int, intensityAcY *imagef.ImageF, dctRescale *[64]float32, outPos *float32) {
	var block [64]float32
	for dy := 0; dy < 8; dy++ {
		row := intensityAcY.ConstRow(y + dy)
		copy(block[dy*8:dy*8+8], row[x:x+8])
	}
	var dct [64]float32
	dcttransform.TransposedScaledDCT8(block[:], 8, &dct)

	const (
		mulQL2 = 0.03142149886912976
		mulQL4 = -0.66751878683954047
		mulQL8 = 0.38537889965210825
		kMul   = 1.2429764719119114
	)
	var entropyQL2, entropyQL4, entropyQL8 float64
	for k := 0; k < 64; k++ {
		w := dct[k] * dctRescale[k]
		w2 := float64(w) * float64(w)
		q := float64(quant64[k])
		entropyQL2 += q * w2
		entropyQL4 += q * w2 * w2
		entropyQL8 += q * w2 * w2 * w2 * w2
	}
	entropyQL2 = math.Sqrt(entropyQL2)
	entropyQL4 = math.Sqrt(math.Sqrt(entropyQL4))
	entropyQL8 = math.Pow(entropyQL8, 0.125)

	v := mulQL2*entropyQL2 + mulQL4*entropyQL4 + mulQL8*entropyQL8
	*outPos += float32(kMul * v)
}

// RangeModulation adds a term reflecting local dynamic range over the
// 8x8 tile, clamped to [-7, 7].
func RangeModulation(x, y int, intensityAcX, intensityAcY *imagef.ImageF, outPos *float32) {
	minX, maxX := float32(1e30), float32(-1e30)
	minY, maxY := float32(1e30), float32(-1e30)
	var sumY2 float32
	for dy := 0; dy < 8; dy++ {
		rowX := intensityAcX.ConstRow(y + dy)[x : x+8]
		rowY := intensityAcY.ConstRow(y + dy)[x : x+8]
		for dx := 0; dx < 8; dx++ {
			vx, vy := rowX[dx], rowY[dx]
			if vx < minX {
				minX = vx
			}
			if vx > maxX {
				maxX = vx
			}
			if vy < minY {
				minY = vy
			}
			if vy > maxY {
				maxY = vy
			}
			sumY2 += vy * vy
		}
	}

	const xmul = 1.7221705747809317
	rangeX := float32(xmul) * (maxX - minX)
	rangeY := maxY - minY

	const (
		mul0 = -0.74090628990083873
		mul1 = 0.3768642185315102
		mul2 = -0.36402038014085836
		mul3 = 0.14396820717087175
		mul4 = 119.38245772972709
	)
	range0 := sqrt32(rangeX * rangeY)
	range1 := sqrt32(rangeX*rangeX + rangeY*rangeY)
	range2 := maxFloat32(rangeX, rangeY)
	range3 := minFloat32(rangeX, rangeY)
	range4 := rangeX * sqrt32(sumY2/64)

	v := float32(mul0)*range0 + float32(mul1)*range1 + float32(mul2)*range2 +
		float32(mul3)*range3 + float32(mul4)*range4
	if v > 7 {
		v = 7
	}
	if v < -7 {
		v = -7
	}
	*outPos += v
}

// HfModulation adds the mean absolute difference to right/down neighbors
// across the 8x8 tile of intensityAcY, scaled by kMul.
func HfModulation(x, y int, intensityAcY *imagef.ImageF, outPos *float32) {
	var sum float32
	n := 0
	for dy := 0; dy < 8; dy++ {
		row := intensityAcY.ConstRow(y + dy)[x : x+8]
		for dx := 0; dx < 7; dx++ {
			sum += abs32(row[dx] - row[dx+1])
			n++
		}
	}
	for dy := 0; dy < 7; dy++ {
		row := intensityAcY.ConstRow(y + dy)[x : x+8]
		rowNext := intensityAcY.ConstRow(y + dy + 1)[x : x+8]
		for dx := 0; dx < 8; dx++ {
			sum += abs32(row[dx] - rowNext[dx])
			n++
		}
	}
	if n != 0 {
		sum /= float32(n)
	}
	const kMul = -1.9272205829012994
	*outPos += float32(kMul) * sum
}

// GammaModulation adds a log-domain correction derived from the
// cube-root/simple-gamma derivative ratio evaluated on both xyb_x+xyb_y
// combinations across the 8x8 tile.
func GammaModulation(x, y int, intensityAcX, intensityAcY *imagef.ImageF, outPos *float32) {
	const kBias = 0.16
	var overallRatio float32
	for dy := 0; dy < 8; dy++ {
		rowX := intensityAcX.ConstRow(y + dy)[x : x+8]
		rowY := intensityAcY.ConstRow(y + dy)[x : x+8]
		for dx := 0; dx < 8; dx++ {
			iny := rowY[dx] + float32(kBias)
			inx := rowX[dx]
			r := iny - inx
			g := iny + inx
			ratioR := opsin.RatioOfDerivativesOfCubicRootToSimpleGamma(r, true)
			ratioG := opsin.RatioOfDerivativesOfCubicRootToSimpleGamma(g, true)
			overallRatio += 0.5 * (ratioR + ratioG)
		}
	}
	const gam = 0.34403164676083279
	*outPos += float32(gam) * float32(math.Log(float64(overallRatio)/64))
}

// PerBlockModulations runs ComputeMask then the four additive
// modulations for every 8x8 block, finishing with exp(.)*scale. xybX and
// xybY must each be divisible into out's block grid exactly.
func PerBlockModulations(xybX, xybY *imagef.ImageF, scale float32, pool *threadpool.Pool, out *imagef.ImageF) {
	dctRescale := dcttransform.DctRescale()
	blocksPerRow := imagef.DivCeil(xybX.XSize(), 8)

	pool.Run(0, out.YSize(), func(int) bool { return true }, func(iy, _ int) {
		y := iy * 8
		rowOut := out.Row(iy)
		for bx := 0; bx < blocksPerRow; bx++ {
			x := bx * 8
			outPos := &rowOut[bx]
			ComputeMask(outPos)
			DctModulation(x, y, xybY, dctRescale, outPos)
			RangeModulation(x, y, xybX, xybY, outPos)
			HfModulation(x, y, xybY, outPos)
			GammaModulation(x, y, xybX, xybY, outPos)
			*outPos = float32(math.Exp(float64(*outPos))) * scale
		}
	}, "aq-per-block-modulation")
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
