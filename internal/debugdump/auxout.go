// Package debugdump is the optional AuxOut-style debug-dump collaborator:
// gzip-compressed, content-addressed quant-field snapshots and false-color
// heatmap PNGs. The search regimes in package aq do not call it; the CLI
// dumps the final quant field through it after the search.
// Grounded on the teacher's (stubbed) DumpHeatmap/AuxOut::DumpImage
// hooks in enc_adaptive_quantization.cc, wired to real libraries instead
// of left unported.
package debugdump

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/jxlenc/adaptive-quant/imagef"
)

// AuxOut accumulates search-loop debug output under Dir. A nil *AuxOut
// is a valid no-op collaborator, mirroring the original's nullable
// AuxOut* pointer threaded through every search regime.
type AuxOut struct {
	Dir                 string
	NumButteraugliIters int
}

// New returns an AuxOut writing dumps under dir, creating it if needed.
func New(dir string) (*AuxOut, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("debugdump: create dir: %w", err)
	}
	return &AuxOut{Dir: dir}, nil
}

// WantDebugOutput reports whether a (possibly nil) AuxOut is collecting
// dumps, the Go analogue of the original's WantDebugOutput(aux_out).
func WantDebugOutput(a *AuxOut) bool { return a != nil }

// DumpQuantField gzip-compresses field's raw float32 pixels and writes
// them to <Dir>/<label>.<hash>.f32.gz, content-addressed by the
// uncompressed bytes' xxHash64 so repeated dumps of an unchanged field
// reuse the same file.
func (a *AuxOut) DumpQuantField(label string, field *imagef.ImageF) error {
	if a == nil {
		return nil
	}
	raw := encodeFloat32Image(field)
	hash := xxhash.Sum64(raw)
	name := fmt.Sprintf("%s.%s.f32.gz", label, hex.EncodeToString(uint64Bytes(hash)))
	path := filepath.Join(a.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil // unchanged field, already dumped under this hash
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debugdump: create %s: %w", path, err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if _, err := gw.Write(raw); err != nil {
		return fmt.Errorf("debugdump: write %s: %w", path, err)
	}
	return gw.Close()
}

func encodeFloat32Image(field *imagef.ImageF) []byte {
	var buf bytes.Buffer
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], uint32(field.XSize()))
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], uint32(field.YSize()))
	buf.Write(scratch[:])
	for y := 0; y < field.YSize(); y++ {
		for _, v := range field.ConstRow(y) {
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
			buf.Write(scratch[:])
		}
	}
	return buf.Bytes()
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
