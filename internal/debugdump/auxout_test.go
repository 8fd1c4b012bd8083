package debugdump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jxlenc/adaptive-quant/imagef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWantDebugOutputNilIsFalse(t *testing.T) {
	var a *AuxOut
	assert.False(t, WantDebugOutput(a))
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "dumps")
	a, err := New(sub)
	require.NoError(t, err)
	assert.True(t, WantDebugOutput(a))

	info, err := os.Stat(sub)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDumpQuantFieldOnNilAuxOutIsNoop(t *testing.T) {
	var a *AuxOut
	field := imagef.NewImageF(2, 2)
	assert.NoError(t, a.DumpQuantField("quant", field))
}

func TestDumpQuantFieldWritesContentAddressedFile(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	require.NoError(t, err)

	field := imagef.NewImageF(2, 2)
	field.Set(0, 0, 1.5)

	require.NoError(t, a.DumpQuantField("quant", field))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "quant.")
	assert.Contains(t, entries[0].Name(), ".f32.gz")
}

func TestDumpQuantFieldReusesFileForUnchangedField(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	require.NoError(t, err)

	field := imagef.NewImageF(2, 2)
	field.Set(0, 0, 1.5)

	require.NoError(t, a.DumpQuantField("quant", field))
	require.NoError(t, a.DumpQuantField("quant", field))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
