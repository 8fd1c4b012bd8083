package aq

import "math"

// kQuant64raw is DctModulation's fixed per-frequency weighting table, listed
// in zig-zag-free row-major order exactly as the original literal.
var kQuant64raw = [64]float64{
	0.00, 4.10, 3.30, 3.30, 1.10, 1.15, 0.70, 0.70, 4.10, 3.30, 3.30,
	1.10, 1.15, 1.30, 0.70, 0.50, 3.00, 3.30, 2.90, 2.10, 1.30, 0.70,
	0.50, 0.50, 0.87, 2.90, 2.10, 1.40, 0.70, 0.50, 0.50, 0.50, 0.87,
	1.40, 1.40, 1.60, 0.50, 0.50, 0.50, 0.50, 1.40, 0.90, 1.60, 0.50,
	0.50, 0.50, 0.50, 0.50, 0.90, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
	0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
}

const quant64Pow = 4.6629037508279616

// quant64 holds kQuant64raw[i] raised to quant64Pow, applied after the
// power as the original's Quant64() does, never before.
var quant64 [64]float32

func init() {
	for i, v := range kQuant64raw {
		quant64[i] = float32(math.Pow(v, quant64Pow))
	}
}
