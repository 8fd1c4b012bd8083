package aq

import (
	"fmt"
	"io"

	"github.com/jxlenc/adaptive-quant/imagef"
)

// SearchStats is the estimator's ProcessStats-equivalent: a counters
// table plus an optional verbose trace writer, gated the way the
// teacher's Params/Stats pair gates GUETZLI_LOG. LogSearchState and
// DumpQuantState generalize the original's FLAGS_log_search_state and
// FLAGS_dump_quant_state booleans into per-call fields rather than
// package-level globals.
type SearchStats struct {
	Counters map[string]int

	Trace          io.Writer
	LogSearchState bool
	DumpQuantState bool
}

// NewSearchStats returns a SearchStats with an initialized counters
// table and all logging disabled.
func NewSearchStats() *SearchStats {
	return &SearchStats{Counters: make(map[string]int)}
}

// LogIteration records one search iteration: bumps the
// "butteraugli_iters" counter and, if LogSearchState is set, writes a
// one-line trace of the iteration index, score, quant range and DC
// quant to Trace. DumpQuantState additionally dumps the full field.
func (s *SearchStats) LogIteration(iter int, score float32, quantField *imagef.ImageF, quantDC float32) {
	if s == nil {
		return
	}
	s.Counters["butteraugli_iters"]++
	if !s.LogSearchState || s.Trace == nil {
		return
	}
	minVal, maxVal := imagef.MinMax(quantField)
	fmt.Fprintf(s.Trace, "butteraugli iter: %d  distance: %f  quant range: %f ... %f  dc quant: %f\n",
		iter, score, minVal, maxVal, quantDC)
	if s.DumpQuantState {
		s.dumpField(quantField)
	}
}

func (s *SearchStats) dumpField(quantField *imagef.ImageF) {
	fmt.Fprintln(s.Trace, "quantization field:")
	for y := 0; y < quantField.YSize(); y++ {
		row := quantField.ConstRow(y)
		for _, v := range row {
			fmt.Fprintf(s.Trace, " %.5f", v)
		}
		fmt.Fprintln(s.Trace)
	}
}
