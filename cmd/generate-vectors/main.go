// Command generate-vectors writes seeded test vectors for every kernel as
// JSON. Inputs are random little-endian limbs with zero and all-ones
// elements mixed in; outputs come from the math/big reference backend, so
// other implementations can be checked against the same file.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/agbru/fasteint/internal/backend"
	"github.com/agbru/fasteint/internal/eint"
	"github.com/agbru/fasteint/internal/oracle"
)

// Vector is one input set and its expected output. Byte strings are hex
// of the little-endian encoding. The borrow flag is "00" or "01".
type Vector struct {
	A      string  `json:"a"`
	B      string  `json:"b,omitempty"`
	Shift  *uint32 `json:"shift,omitempty"`
	Result string  `json:"result"`
}

// File is the document written by the command.
type File struct {
	Seed    uint64                  `json:"seed"`
	Count   int                     `json:"count"`
	Backend string                  `json:"backend"`
	Vectors map[backend.Op][]Vector `json:"vectors"`
}

// edgeShifts are always included for the narrowing shift.
var edgeShifts = []uint32{0, 1, 63, 64, 65, 128, 255, 256, 257, 511, 512, 513, 1 << 31}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate-vectors", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Uint64("seed", 1, "Generator seed.")
	count := fs.Int("count", 32, "Random vectors per kernel.")
	out := fs.String("o", "", "Output file (default stdout).")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *count < 0 {
		fmt.Fprintf(stderr, "count cannot be negative: %d\n", *count)
		return 2
	}

	doc := Generate(*seed, *count)
	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Generate builds count random vectors per kernel from seed.
func Generate(seed uint64, count int) File {
	var s [32]byte
	for i := range 8 {
		s[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(s)
	ref := oracle.Big{}

	doc := File{Seed: seed, Count: count, Backend: ref.Name(), Vectors: make(map[backend.Op][]Vector)}
	for _, op := range backend.AllOps() {
		var vs []Vector
		for i := range count {
			vs = append(vs, vector(op, ref, src, i))
		}
		if op == backend.OpNarrowingRightShift512 {
			for _, sh := range edgeShifts {
				a := make([]byte, eint.Size512)
				operand(src, a, -1)
				vs = append(vs, shiftVector(ref, a, sh))
			}
		}
		doc.Vectors[op] = vs
	}
	return doc
}

func vector(op backend.Op, ref oracle.Big, src *rand.ChaCha8, i int) Vector {
	switch op {
	case backend.OpWideningMul256:
		buf := make([]byte, 2*eint.Size256+eint.Size512)
		operand(src, buf[:eint.Size256], i)
		operand(src, buf[eint.Size256:2*eint.Size256], i+1)
		ref.WideningMul256(buf, 2*eint.Size256, 0, eint.Size256, 1)
		return Vector{A: hex.EncodeToString(buf[:eint.Size256]), B: hex.EncodeToString(buf[eint.Size256 : 2*eint.Size256]),
			Result: hex.EncodeToString(buf[2*eint.Size256:])}
	case backend.OpWrappingMul256:
		return binary(src, i, eint.Size256, ref.WrappingMul256)
	case backend.OpWrappingAdd512:
		return binary(src, i, eint.Size512, ref.WrappingAdd512)
	case backend.OpWrappingSub256:
		return binary(src, i, eint.Size256, ref.WrappingSub256)
	case backend.OpBorrowSub256:
		a, b := make([]byte, eint.Size256), make([]byte, eint.Size256)
		operand(src, a, i)
		if i%5 == 4 {
			copy(b, a)
		} else {
			operand(src, b, i+1)
		}
		result := "00"
		if ref.BorrowSub256(a, b) {
			result = "01"
		}
		return Vector{A: hex.EncodeToString(a), B: hex.EncodeToString(b), Result: result}
	default:
		a := make([]byte, eint.Size512)
		operand(src, a, i)
		return shiftVector(ref, a, uint32(src.Uint64()))
	}
}

func binary(src *rand.ChaCha8, i, size int, f func(a, b, dst []byte, count int)) Vector {
	a, b, dst := make([]byte, size), make([]byte, size), make([]byte, size)
	operand(src, a, i)
	operand(src, b, i+1)
	f(a, b, dst, 1)
	return Vector{A: hex.EncodeToString(a), B: hex.EncodeToString(b), Result: hex.EncodeToString(dst)}
}

func shiftVector(ref oracle.Big, a []byte, shift uint32) Vector {
	dst := make([]byte, eint.Size256)
	ref.NarrowingRightShift512(a, dst, shift, 1)
	return Vector{A: hex.EncodeToString(a), Shift: &shift, Result: hex.EncodeToString(dst)}
}

// operand fills b randomly, except that every seventh element is zero
// and every eleventh is all ones.
func operand(src *rand.ChaCha8, b []byte, i int) {
	switch {
	case i >= 0 && i%7 == 6:
		clear(b)
	case i >= 0 && i%11 == 10:
		for j := range b {
			b[j] = 0xff
		}
	default:
		src.Read(b)
	}
}
