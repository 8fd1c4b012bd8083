package aq

import (
	"github.com/jxlenc/adaptive-quant/acstrategy"
	"github.com/jxlenc/adaptive-quant/butteraugli"
	"github.com/jxlenc/adaptive-quant/config"
	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/jxlenc/adaptive-quant/quantizer"
	"github.com/jxlenc/adaptive-quant/threadpool"
)

// FindBestQuantizer dispatches to the search regime cparams selects:
// fixed max-error search, a flat Falcon-speed estimate, a flat uniform
// quant, a fast adaptive-field-only estimate for speed tiers above
// Kitten, or one of the two Butteraugli-guided iterative searches
// (FindBestQuantizationHQ for Tortoise, FindBestQuantization otherwise).
// reference may be nil only when cparams selects a regime that never
// compares against a reference image (max-error mode, Falcon, uniform
// quant, or the fast adaptive field).
func FindBestQuantizer(
	reference *imagef.Image3F,
	opsin *imagef.Image3F,
	acStrategy *acstrategy.Image,
	q *quantizer.Quantizer,
	cparams config.CompressParams,
	comparator butteraugli.Comparator,
	pool *threadpool.Pool,
	rescale float32,
	stats *SearchStats,
) {
	switch {
	case cparams.MaxErrorMode:
		FindBestQuantizationMaxError(opsin, acStrategy, q, cparams, pool, stats)
	case cparams.SpeedTier == config.Falcon:
		quantDC := InitialQuantDC(cparams.ButteraugliTarget)
		quantAc := kAcQuant / cparams.ButteraugliTarget
		q.SetQuant(quantDC, quantAc, q.RawQuantField())
	case cparams.UniformQuant > 0.0:
		q.SetQuant(cparams.UniformQuant*rescale, cparams.UniformQuant*rescale, q.RawQuantField())
	case cparams.SpeedTier > config.Kitten:
		quantDC := InitialQuantDC(cparams.ButteraugliTarget)
		field := InitialQuantField(cparams.ButteraugliTarget, opsin, pool, 1.0)
		AdjustQuantField(acStrategy, field)
		q.SetQuantField(quantDC, field, q.RawQuantField())
	case cparams.SpeedTier == config.Tortoise:
		FindBestQuantizationHQ(reference, opsin, acStrategy, q, cparams, comparator, pool, stats)
	default:
		FindBestQuantization(reference, opsin, acStrategy, q, cparams, comparator, pool, stats)
	}
}
