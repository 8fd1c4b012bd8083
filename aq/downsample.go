package aq

import "github.com/jxlenc/adaptive-quant/imagef"

const (
	downsampleSigma     = 8.2553856725566153
	diffCutoff          = 0.11883287948847132
)

func downsampleRadius() int {
	v := 2*downsampleSigma + 0.5
	return int(v)
}

// DownsampleBy8 convolves diff with a Gaussian kernel (sigma ≈ 8.2554,
// radius floor(2*sigma+0.5)) in both axes, sampling every 8th output
// pixel, producing the seed quant field at block resolution.
func DownsampleBy8(diff *imagef.ImageF) *imagef.ImageF {
	kernel := imagef.GaussianKernel(downsampleRadius(), downsampleSigma)
	return imagef.ConvolveAndSample(diff, kernel, 8)
}
