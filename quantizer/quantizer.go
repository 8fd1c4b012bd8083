// Package quantizer owns the global/DC/AC quantization scale and the raw
// per-block quant field the estimator writes. Shaped after the pack's
// other JPEG XL port's Quantizer (globalScale, quantLF, scaledDequant) and
// grounded on the teacher's integer round-to-nearest Quantize/QuantizeBlock
// for the rounding convention SetQuantField's callers assume.
package quantizer

import (
	"math"

	"github.com/jxlenc/adaptive-quant/imagef"
)

const (
	// kQuantMax mirrors the original's raw_quant_field clamp ceiling: raw
	// per-block multipliers are stored as integers in [1, 255].
	kQuantMax = 255
	// kGlobalScaleDenom keeps GlobalScale an integer while still giving
	// sub-unit precision to InvGlobalScale, matching the original's
	// fixed-point global_scale/quant_dc split.
	kGlobalScaleDenom = 1 << 16
)

// Quantizer holds the encoder-wide DC/AC quantization multipliers and the
// per-block raw quant field (an integer multiplier per 8x8 block) that
// FindBestQuantization/HQ/MaxError iteratively refine.
type Quantizer struct {
	globalScale uint32
	quantDC     int
	rawQuantField *imagef.ImageI
}

// NewQuantizer allocates a quantizer whose raw field covers a bw x bh
// block grid, with every block defaulted to multiplier 1.
func NewQuantizer(bw, bh int) *Quantizer {
	raw := imagef.NewImageI(bw, bh)
	for by := 0; by < bh; by++ {
		row := raw.Row(by)
		for bx := range row {
			row[bx] = 1
		}
	}
	return &Quantizer{globalScale: kGlobalScaleDenom, quantDC: 1, rawQuantField: raw}
}

// SetQuant sets a flat DC/AC quantization pair and writes the
// corresponding flat raw field (every block gets multiplier 1, with the
// DC/AC split folded entirely into globalScale/quantDC).
func (q *Quantizer) SetQuant(dc, ac float32, raw *imagef.ImageI) {
	q.quantDC = quantDCFromFloat(dc)
	q.globalScale = globalScaleFromFloat(ac)
	for by := 0; by < raw.YSize(); by++ {
		row := raw.Row(by)
		for bx := range row {
			row[bx] = 1
		}
	}
	q.rawQuantField = raw
}

// SetQuantField sets quant_dc and a per-block AC quant field, rounding
// each block's multiplier to the nearest integer in [1, kQuantMax] the
// way the teacher's Quantize rounds DCT coefficients to the nearest
// multiple of the step, generalized here to rounding a float ratio to an
// int. Exact halves round away from zero (math.Round).
func (q *Quantizer) SetQuantField(dc float32, field *imagef.ImageF, raw *imagef.ImageI) {
	q.quantDC = quantDCFromFloat(dc)
	scale := globalScaleFromFloat(1.0)
	q.globalScale = scale
	for by := 0; by < field.YSize(); by++ {
		src := field.ConstRow(by)
		dst := raw.Row(by)
		for bx, v := range src {
			dst[bx] = clampQuantInt(roundQuantMultiplier(v))
		}
	}
	q.rawQuantField = raw
}

// InvGlobalScale returns 1/globalScale in floating point, the factor the
// roundtrip dequantizer multiplies raw coefficients by.
func (q *Quantizer) InvGlobalScale() float32 {
	return float32(kGlobalScaleDenom) / float32(q.globalScale)
}

// Scale returns globalScale as a float, the inverse of InvGlobalScale.
func (q *Quantizer) Scale() float32 {
	return float32(q.globalScale) / float32(kGlobalScaleDenom)
}

// RawQuantField exposes the current integer per-block multiplier grid.
func (q *Quantizer) RawQuantField() *imagef.ImageI { return q.rawQuantField }

// QuantDC exposes the current flat DC quantization multiplier.
func (q *Quantizer) QuantDC() int { return q.quantDC }

func quantDCFromFloat(dc float32) int {
	v := int(math.Round(float64(dc)))
	if v < 1 {
		v = 1
	}
	return v
}

func globalScaleFromFloat(ac float32) uint32 {
	if ac <= 0 {
		ac = 1
	}
	return uint32(math.Round(float64(ac) * kGlobalScaleDenom))
}

func roundQuantMultiplier(v float32) int {
	return int(math.Round(float64(v)))
}

func clampQuantInt(v int) int32 {
	if v < 1 {
		return 1
	}
	if v > kQuantMax {
		return kQuantMax
	}
	return int32(v)
}

// Quantize rounds raw to the nearest multiple of quant, breaking ties
// toward zero (Quantize(15, 10) == 10). Direct generalization of the teacher's Quantize
// (quantize.go), used by the roundtrip package's dequantization step.
func Quantize(raw, quant int32) int32 {
	r := raw % quant
	var delta int32
	switch {
	case 2*r > quant:
		delta = quant - r
	case -2*r > quant:
		delta = -quant - r
	default:
		delta = -r
	}
	return raw + delta
}
