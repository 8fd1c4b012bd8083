// Package acstrategy describes, per 8x8 block-grid cell, which transform
// covers that region of the image (a plain 8x8 DCT, or a larger transform
// spanning several block-grid cells). It is a consumed interface for the
// estimator: AdjustQuantField, TileDistMap and the roundtrip walk it to find each
// transform's top-left corner and extent without caring which concrete
// transform it is.
//
// Grounded on the teacher's flat, array-backed metadata structs (see
// processor.go's per-block bookkeeping); generalized into a typed grid
// the way spec.md's AcStrategyImage const_row contract requires.
package acstrategy

import "github.com/jxlenc/adaptive-quant/internal/assert"

// Strategy enumerates the supported transform coverages. Only a handful
// are modeled; the estimator only needs to know a block's footprint, not
// how the transform itself works.
type Strategy uint8

const (
	StrategyDCT8 Strategy = iota
	StrategyDCT16
	StrategyDCT32
	StrategyDCT8x16
	StrategyDCT16x8
)

// CoveredBlocks returns how many 8x8 cells this strategy spans in x and y.
func (s Strategy) CoveredBlocks() (bx, by int) {
	switch s {
	case StrategyDCT16:
		return 2, 2
	case StrategyDCT32:
		return 4, 4
	case StrategyDCT8x16:
		return 1, 2
	case StrategyDCT16x8:
		return 2, 1
	default:
		return 1, 1
	}
}

// Cell is the per-grid-cell metadata AcStrategyImage exposes. Only the
// corner cell of a multi-cell transform has IsFirstBlock set; the other
// cells covered by the same transform carry the same RawStrategy and
// covered-block extents but IsFirstBlock false, mirroring the original's
// block-coverage bitmap.
type Cell struct {
	IsFirstBlock  bool
	CoveredBlocksX int
	CoveredBlocksY int
	RawStrategy   Strategy
}

// Image is a block-grid-sized array of Cell, one entry per 8x8 region.
type Image struct {
	bw, bh int
	rows   [][]Cell
}

// NewImage allocates an all-DCT8 strategy grid of bw x bh block cells.
func NewImage(bw, bh int) *Image {
	rows := make([][]Cell, bh)
	backing := make([]Cell, bw*bh)
	for by := 0; by < bh; by++ {
		row := backing[by*bw : (by+1)*bw : (by+1)*bw]
		for bx := range row {
			row[bx] = Cell{IsFirstBlock: true, CoveredBlocksX: 1, CoveredBlocksY: 1, RawStrategy: StrategyDCT8}
		}
		rows[by] = row
	}
	return &Image{bw: bw, bh: bh, rows: rows}
}

func (im *Image) XSizeBlocks() int { return im.bw }
func (im *Image) YSizeBlocks() int { return im.bh }

// ConstRow returns the block-grid row by, one Cell per block column.
func (im *Image) ConstRow(by int) []Cell { return im.rows[by] }

// SetStrategy places strategy s with its top-left corner at block (bx,
// by), marking the corner cell IsFirstBlock and stamping every covered
// cell with the shared extent. bx/by+extent must stay within the grid;
// callers (e.g. a future AC-strategy chooser) are responsible for not
// overlapping two placements, matching the original's invariant that the
// strategy grid partitions the image exactly once.
func (im *Image) SetStrategy(bx, by int, s Strategy) {
	ex, ey := s.CoveredBlocks()
	assert.That(bx+ex <= im.bw && by+ey <= im.bh, "strategy at (%d,%d) with extent %dx%d overflows the %dx%d block grid", bx, by, ex, ey, im.bw, im.bh)
	for dy := 0; dy < ey; dy++ {
		row := im.rows[by+dy]
		for dx := 0; dx < ex; dx++ {
			row[bx+dx] = Cell{
				IsFirstBlock:   dx == 0 && dy == 0,
				CoveredBlocksX: ex,
				CoveredBlocksY: ey,
				RawStrategy:    s,
			}
		}
	}
}
