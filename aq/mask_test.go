package aq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMaskAtZeroMatchesClosedForm(t *testing.T) {
	v := float32(0)
	ComputeMask(&v)
	expected := float32(maskKBase) + float32(maskKMul1)/float32(maskKOffset1) + float32(maskKMul2)/float32(maskKOffset2)
	assert.InDelta(t, expected, v, 1e-5)
}

func TestComputeMaskClampsDivisorNearZero(t *testing.T) {
	v := float32(-maskKOffset1 + 1e-6)
	assert.NotPanics(t, func() { ComputeMask(&v) })
}

func TestComputeMaskDiffersForSmallAndLargeDiff(t *testing.T) {
	small := float32(0.01)
	large := float32(1.0)
	ComputeMask(&small)
	ComputeMask(&large)
	assert.NotEqual(t, small, large)
}
