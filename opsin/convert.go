package opsin

import (
	"image"

	"github.com/jxlenc/adaptive-quant/imagef"
)

// FromSRGB converts an 8-bit-per-channel sRGB image into a padded-to-8
// Image3F in the estimator's opsin space. Real XYB opsin mixes the three
// linear channels through a fixed absorbance matrix before the cube
// root; reproducing that matrix is out of scope (spec.md's non-goals
// exclude "supporting arbitrary color spaces," and the matrix itself
// never appears in the estimator this repo implements). This is a
// simplified per-channel stand-in: each plane is the cube root of the
// channel's linear-light value, offset by that plane's absorbance bias,
// giving GammaModulation/DiffPrecompute input with the same shape and
// sign conventions as the real opsin planes.
func FromSRGB(img image.Image) *imagef.Image3F {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	paddedW := imagef.RoundUpTo(w, 8)
	paddedH := imagef.RoundUpTo(h, 8)

	out := imagef.NewImage3F(paddedW, paddedH)
	biasCubeRoot := [3]float64{
		CubeRoot(AbsorbanceBias[0]),
		CubeRoot(AbsorbanceBias[1]),
		CubeRoot(AbsorbanceBias[2]),
	}

	for y := 0; y < h; y++ {
		rowX := out.Plane(0).Row(y)
		rowY := out.Plane(1).Row(y)
		rowB := out.Plane(2).Row(y)
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			linR := Srgb8ToLinearTable[r>>8]
			linG := Srgb8ToLinearTable[g>>8]
			linB := Srgb8ToLinearTable[b>>8]
			rowX[x] = float32(CubeRoot(linR) - biasCubeRoot[0])
			rowY[x] = float32(CubeRoot(linG) - biasCubeRoot[1])
			rowB[x] = float32(CubeRoot(linB) - biasCubeRoot[2])
		}
		padRight(rowX, w, paddedW)
		padRight(rowY, w, paddedW)
		padRight(rowB, w, paddedW)
	}
	for p := 0; p < 3; p++ {
		padBottom(out.Plane(p), h, paddedH)
	}
	return out
}

func padRight(row []float32, w, paddedW int) {
	if w >= paddedW || w == 0 {
		return
	}
	last := row[w-1]
	for x := w; x < paddedW; x++ {
		row[x] = last
	}
}

func padBottom(plane *imagef.ImageF, h, paddedH int) {
	if h >= paddedH || h == 0 {
		return
	}
	last := plane.ConstRow(h - 1)
	for y := h; y < paddedH; y++ {
		copy(plane.Row(y), last)
	}
}
