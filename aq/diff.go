package aq

import (
	"math"

	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/opsin"
)

const (
	diffMul0             = 0.030220460298316064
	diffMatchGammaOffset = 0.6542639346391887
)

// DiffPrecompute computes the local-difference map of opsin's Y plane
// (plane 1), gamma-matched and clamped to cutoff, padded to a multiple of
// 8 in both axes. Grounded directly on enc_adaptive_quantization.cc's
// DiffPrecompute: the first row/column mirror their missing neighbors, the
// last row/column use a one-sided weight-7 term instead of the full
// four-neighbor stencil, and the padding columns/rows
// are filled with the mean of the last up-to-3 valid cells of their axis.
func DiffPrecompute(opsinImg *imagef.Image3F, cutoff float32) *imagef.ImageF {
	xsize, ysize := opsinImg.XSize(), opsinImg.YSize()
	paddedW := imagef.RoundUpTo(xsize, 8)
	paddedH := imagef.RoundUpTo(ysize, 8)
	out := imagef.NewImageF(paddedW, paddedH)
	yPlane := opsinImg.Plane(1)

	ratio := func(v float32) float32 {
		return opsin.RatioOfDerivativesOfCubicRootToSimpleGamma(v+float32(diffMatchGammaOffset), false)
	}
	clampMin := func(v float32) float32 {
		if v > cutoff {
			return cutoff
		}
		return v
	}

	for y := 0; y < ysize; y++ {
		y1, y2 := mirrorNeighbors(y, ysize)
		rowIn := yPlane.ConstRow(y)
		rowIn1 := yPlane.ConstRow(y1)
		rowIn2 := yPlane.ConstRow(y2)
		rowOut := out.Row(y)

		for x := 0; x < xsize; x++ {
			switch {
			case x == 0:
				x2 := 1
				if xsize < 2 {
					x2 = 0
				}
				x1 := x2
				d := float32(diffMul0) * (abs32(rowIn[0]-rowIn[x2]) + abs32(rowIn[0]-rowIn2[0]) +
					abs32(rowIn[0]-rowIn[x1]) + abs32(rowIn[0]-rowIn1[0]) +
					3*(abs32(rowIn2[0]-rowIn1[0])+abs32(rowIn[x1]-rowIn[x2])))
				d *= ratio(rowIn[0])
				rowOut[0] = clampMin(d)
			case x == xsize-1:
				d := 7 * float32(diffMul0) * abs32(rowIn[x]-rowIn2[x])
				d *= ratio(rowIn[x])
				rowOut[x] = clampMin(d)
			default:
				x1, x2 := x-1, x+1
				d := float32(diffMul0) * (abs32(rowIn[x]-rowIn[x2]) + abs32(rowIn[x]-rowIn2[x]) +
					abs32(rowIn[x]-rowIn[x1]) + abs32(rowIn[x]-rowIn1[x]) +
					3*(abs32(rowIn2[x]-rowIn1[x])+abs32(rowIn[x1]-rowIn[x2])))
				d *= ratio(rowIn[x])
				rowOut[x] = clampMin(d)
			}
		}

		padRowTail(rowOut, xsize, paddedW)
	}

	// Last row: recompute with the one-sided horizontal term, discarding
	// the vertical-stencil values the main loop produced for it (matches
	// the original's separate post-loop "Last row" block).
	if ysize > 0 {
		y := ysize - 1
		rowIn := yPlane.ConstRow(y)
		rowOut := out.Row(y)
		for x := 0; x+1 < xsize; x++ {
			d := 7 * float32(diffMul0) * abs32(rowIn[x]-rowIn[x+1])
			d *= ratio(rowIn[x])
			rowOut[x] = clampMin(d)
		}
		if xsize > 1 {
			rowOut[xsize-1] = rowOut[xsize-2]
		}
	}

	padColumnTail(out, ysize, paddedH)
	return out
}

// mirrorNeighbors returns the row indices to use for the -1 and +1
// vertical neighbors of row y, mirroring at the top/bottom edges exactly
// as the original's y1/y2 selection does.
func mirrorNeighbors(y, ysize int) (y1, y2 int) {
	switch {
	case y+1 < ysize:
		y2 = y + 1
	case y > 0:
		y2 = y - 1
	default:
		y2 = y
	}
	switch {
	case y == 0 && ysize >= 2:
		y1 = y + 1
	case y > 0:
		y1 = y - 1
	default:
		y1 = y
	}
	return
}

// padRowTail fills row[xsize:paddedW] with the mean of the last up to 3
// valid cells of the row.
func padRowTail(row []float32, xsize, paddedW int) {
	if xsize >= paddedW {
		return
	}
	lastval := row[xsize-1]
	switch {
	case xsize >= 3:
		lastval = (lastval + row[xsize-3] + row[xsize-2]) / 3
	case xsize >= 2:
		lastval = (lastval + row[xsize-2]) / 2
	}
	for x := xsize; x < paddedW; x++ {
		row[x] = lastval
	}
}

// padColumnTail fills rows[ysize:paddedH] with, per column, the mean of
// the last up to 3 valid rows of that column.
func padColumnTail(out *imagef.ImageF, ysize, paddedH int) {
	if ysize >= paddedH {
		return
	}
	last := out.ConstRow(ysize - 1)
	for x, v := range last {
		lastval := v
		switch {
		case ysize >= 3:
			lastval = (lastval + out.At(x, ysize-2) + out.At(x, ysize-3)) / 3
		case ysize >= 2:
			lastval = (lastval + out.At(x, ysize-2)) / 2
		}
		for y := ysize; y < paddedH; y++ {
			out.Set(x, y, lastval)
		}
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
