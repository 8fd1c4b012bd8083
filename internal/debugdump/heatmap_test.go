package debugdump

import (
	"os"
	"testing"

	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpHeatmapOnNilAuxOutIsNoop(t *testing.T) {
	var a *AuxOut
	field := imagef.NewImageF(2, 2)
	assert.NoError(t, a.DumpHeatmap("heat", field, 1, 2))
}

func TestDumpHeatmapWritesPNG(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	require.NoError(t, err)

	field := imagef.NewImageF(4, 4)
	imagef.FillImageF(1.5, field)

	require.NoError(t, a.DumpHeatmap("heat", field, 1.0, 2.0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "heat00000.png", entries[0].Name())
}

func TestHeatColorClampsToRange(t *testing.T) {
	below := heatColor(-1)
	above := heatColor(2)
	mid := heatColor(0.5)

	assert.Equal(t, uint8(255), below.B)
	assert.Equal(t, uint8(255), above.R)
	assert.Greater(t, mid.G, uint8(0))
}
