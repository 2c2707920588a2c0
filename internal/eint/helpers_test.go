package eint

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"testing"

	"github.com/agbru/fasteint/internal/oracle"
)

// batchSizes covers the single, batch-8, batch-16 and bench-sized runs.
var batchSizes = []int{1, 8, 16, 128}

// newRNG returns a ChaCha8 stream seeded from a 64-bit value.
func newRNG(seed uint64) *rand.ChaCha8 {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return rand.NewChaCha8(s)
}

func randomBytes(rng *rand.ChaCha8, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// assertElements compares got and want element by element and reports the
// first differing element index.
func assertElements(t *testing.T, op string, got, want []byte, stride int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", op, len(got), len(want))
	}
	for off := 0; off < len(got); off += stride {
		if !bytes.Equal(got[off:off+stride], want[off:off+stride]) {
			t.Fatalf("%s: element %d differs\n got %s\nwant %s", op, off/stride,
				hex.EncodeToString(got[off:off+stride]), hex.EncodeToString(want[off:off+stride]))
		}
	}
}

var ref oracle.Big
