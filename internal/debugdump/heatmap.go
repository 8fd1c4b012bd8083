package debugdump

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/jxlenc/adaptive-quant/imagef"
)

// DumpHeatmap renders field as a false-color PNG under <Dir>/<label>
// <iter>.png: cells at or below goodThreshold render blue, cells at or
// above badThreshold render red, with a green-weighted gradient between,
// the Go analogue of the original's CreateHeatMapImage/DumpHeatmap pair.
func (a *AuxOut) DumpHeatmap(label string, field *imagef.ImageF, goodThreshold, badThreshold float32) error {
	if a == nil {
		return nil
	}
	img := heatmapImage(field, goodThreshold, badThreshold)
	name := fmt.Sprintf("%s%05d.png", label, a.NumButteraugliIters)
	path := filepath.Join(a.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debugdump: create %s: %w", path, err)
	}
	defer f.Close()

	return imaging.Encode(f, img, imaging.PNG)
}

func heatmapImage(field *imagef.ImageF, goodThreshold, badThreshold float32) *image.NRGBA {
	w, h := field.XSize(), field.YSize()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	spread := badThreshold - goodThreshold
	if spread <= 0 {
		spread = 1
	}
	for y := 0; y < h; y++ {
		row := field.ConstRow(y)
		for x, v := range row {
			t := (v - goodThreshold) / spread
			img.Set(x, y, heatColor(t))
		}
	}
	return img
}

// heatColor maps t in [0,1] (clamped) to a blue -> green -> red ramp.
func heatColor(t float32) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	var r, g, b float32
	switch {
	case t < 0.5:
		u := t / 0.5
		b = 1 - u
		g = u
	default:
		u := (t - 0.5) / 0.5
		g = 1 - u
		r = u
	}
	return color.NRGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}
