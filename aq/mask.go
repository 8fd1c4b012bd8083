package aq

const (
	maskKBase    = 0.9
	maskKMul1    = 0.012830564950968305
	maskKOffset1 = 0.010638874536303307
	maskKMul2    = -0.17766197567565159
	maskKOffset2 = 0.10647602832848234
)

// ComputeMask overwrites *outPos with the masking term seeded from the
// downsampled diff value already sitting there.
func ComputeMask(outPos *float32) {
	val := *outPos
	div := val + float32(maskKOffset1)
	if div < 1e-3 {
		div = 1e-3
	}
	*outPos = float32(maskKBase) + float32(maskKMul1)/div + float32(maskKMul2)/(val*val+float32(maskKOffset2))
}
