// Package config holds the compression parameters the estimator's
// search loop is driven by. Shaped after the teacher's Params/params()
// (processor.go): a plain struct with a documented zero value and a
// DefaultCompressParams constructor, rather than a builder or functional
// options — the teacher never reaches for either.
package config

// SpeedTier enumerates the encoder's speed/quality tradeoff presets, from
// slowest (most thorough search) to fastest (least adaptive) — the same
// direction the original's SpeedTier enum orders them in, where a larger
// value means faster. Ordering matters: FindBestQuantizer compares tiers
// with `>`, and that comparison is only correct in this direction.
type SpeedTier int

const (
	Tortoise SpeedTier = iota
	Kitten
	Squirrel
	Wombat
	Hare
	Cheetah
	Falcon
)

// CompressParams mirrors the teacher's Params struct shape. Every field
// has a meaningful zero value except ButteraugliTarget, which
// DefaultCompressParams sets to 1.0 the way the teacher's params()
// explicitly sets butteraugli_target rather than relying on zero.
type CompressParams struct {
	ButteraugliTarget float32
	SpeedTier         SpeedTier
	MaxErrorMode      bool
	MaxError          [3]float32
	UniformQuant      float32
	MaxIters          int
	MaxItersHQ        int

	// PowSchedule/PowModSchedule generalize the original's kPow/kPowMod
	// tuning tables (see SPEC_FULL.md §4.2); both default to all-zero,
	// which keeps FindBestQuantization's update step on its always-taken
	// cur_pow==0 branch exactly as today.
	PowSchedule    [8]float64
	PowModSchedule [8]float64
}

// DefaultCompressParams returns the parameters the default Squirrel speed
// tier runs under. Squirrel sits above Kitten in the speed ordering, so
// FindBestQuantizer dispatches it to the fast adaptive-field-only estimate
// rather than the full Butteraugli-guided search, matching the original.
func DefaultCompressParams() CompressParams {
	return CompressParams{
		ButteraugliTarget: 1.0,
		SpeedTier:         Squirrel,
		MaxErrorMode:      false,
		MaxError:          [3]float32{1, 1, 1},
		UniformQuant:      0,
		MaxIters:          4,
		MaxItersHQ:        4,
	}
}

// CurPow returns kPow[i] + (target-1)*kPowMod[i], the original's per-slot
// power-schedule blend used by FindBestQuantization's update step.
func (c CompressParams) CurPow(i int) float64 {
	return c.PowSchedule[i] + float64(c.ButteraugliTarget-1)*c.PowModSchedule[i]
}
