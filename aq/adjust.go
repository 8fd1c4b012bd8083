package aq

import (
	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/imagef"
)

// AdjustQuantField replaces quantField's value across every cell a
// non-8x8 transform covers with the maximum value found anywhere in that
// transform's footprint, so a single quant decision applies uniformly to
// the whole block a larger transform spans.
func AdjustQuantField(acStrategy *acstrategy.Image, quantField *imagef.ImageF) {
	for by := 0; by < quantField.YSize(); by++ {
		row := acStrategy.ConstRow(by)
		quantRow := quantField.Row(by)
		for bx, cell := range row {
			if !cell.IsFirstBlock {
				continue
			}
			max := quantRow[bx]
			for iy := 0; iy < cell.CoveredBlocksY; iy++ {
				r := quantField.Row(by + iy)
				for ix := 0; ix < cell.CoveredBlocksX; ix++ {
					if v := r[bx+ix]; v > max {
						max = v
					}
				}
			}
			for iy := 0; iy < cell.CoveredBlocksY; iy++ {
				r := quantField.Row(by + iy)
				for ix := 0; ix < cell.CoveredBlocksX; ix++ {
					r[bx+ix] = max
				}
			}
		}
	}
}
