package imagef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalPeaksAtZero(t *testing.T) {
	at0 := Normal(0, 1)
	at1 := Normal(1, 1)
	assert.Greater(t, at0, at1)
}

func TestGaussianKernelSumsToOne(t *testing.T) {
	kernel := GaussianKernel(8, 8.2553856725566153)
	var sum float64
	for _, v := range kernel {
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, 17, len(kernel))
}

func TestMirrorIndex(t *testing.T) {
	assert.Equal(t, 0, mirrorIndex(-1, 5))
	assert.Equal(t, 1, mirrorIndex(-2, 5))
	assert.Equal(t, 4, mirrorIndex(5, 5))
	assert.Equal(t, 3, mirrorIndex(6, 5))
	assert.Equal(t, 2, mirrorIndex(2, 5))
}

func TestConvolveAndSampleConstantImagePreservesValue(t *testing.T) {
	src := NewImageF(16, 16)
	FillImageF(3, src)
	kernel := GaussianKernel(2, 1.0)
	out := ConvolveAndSample(src, kernel, 8)
	assert.Equal(t, 2, out.XSize())
	assert.Equal(t, 2, out.YSize())
	for y := 0; y < out.YSize(); y++ {
		for x := 0; x < out.XSize(); x++ {
			require.InDelta(t, 3.0, float64(out.At(x, y)), 1e-4)
		}
	}
}

func TestSymmetric3PreservesConstantImage(t *testing.T) {
	src := NewImageF(4, 4)
	FillImageF(5, src)
	dst := NewImageF(4, 4)
	w := WeightsSymmetric3{Center: 0.25, Edge: 0.125, Corner: 0.0625}
	// Weight set chosen so center+4*edge+4*corner == 1, DC-preserving.
	sum := w.Center + 4*w.Edge + 4*w.Corner
	require.InDelta(t, 1.0, float64(sum), 1e-6)
	Symmetric3(src, w, dst)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.InDelta(t, 5.0, float64(dst.At(x, y)), 1e-4)
		}
	}
}

func TestSymmetric3CenterOnlyWeightsCopySource(t *testing.T) {
	src := NewImageF(3, 3)
	src.Set(0, 0, 1)
	dst := NewImageF(3, 3)
	w := WeightsSymmetric3{Center: 1, Edge: 0, Corner: 0}
	Symmetric3(src, w, dst)
	assert.Equal(t, float32(1), dst.At(0, 0))
	assert.Equal(t, float32(0), dst.At(1, 1))
}
