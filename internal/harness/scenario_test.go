package harness

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/agbru/fasteint/internal/backend"
	apperrors "github.com/agbru/fasteint/internal/errors"
	"github.com/agbru/fasteint/internal/oracle"
)

func TestScenarioLayouts(t *testing.T) {
	t.Parallel()
	const count = 8
	for _, op := range backend.AllOps() {
		for _, mode := range aliasModes(op) {
			t.Run(string(op)+"/"+mode.String(), func(t *testing.T) {
				t.Parallel()
				s, err := newScenario(op, mode, count, rand.NewChaCha8(seedFor(3, op)))
				if err != nil {
					t.Fatalf("newScenario: %v", err)
				}
				_, out := operandSizes(op)
				if s.dst.Stride != out || s.dst.Count != count {
					t.Errorf("dst = %+v, want stride %d count %d", s.dst, out, count)
				}
				if s.dst.End() > len(s.buf) {
					t.Errorf("dst ends at %d beyond buffer of %d", s.dst.End(), len(s.buf))
				}
				switch mode {
				case aliasA:
					if s.dst.Off != s.a.Off {
						t.Error("same_a: dst does not start at a")
					}
				case aliasB:
					if s.dst.Off != s.b.Off {
						t.Error("same_b: dst does not start at b")
					}
				case aliasInPlace:
					if s.dst.Off != s.a.Off {
						t.Error("in_place: dst does not start at src")
					}
				}
				if op == backend.OpWideningMul256 {
					if s.b.Off != s.a.End()+regionGap || s.dst.Off != s.b.End()+regionGap {
						t.Errorf("widening layout a=%+v b=%+v dst=%+v lacks %d-byte gaps", s.a, s.b, s.dst, regionGap)
					}
				}
			})
		}
	}
}

func TestScenarioDeterministic(t *testing.T) {
	t.Parallel()
	s1, _ := newScenario(backend.OpWrappingMul256, aliasNone, 16, rand.NewChaCha8(seedFor(9, backend.OpWrappingMul256)))
	s2, _ := newScenario(backend.OpWrappingMul256, aliasNone, 16, rand.NewChaCha8(seedFor(9, backend.OpWrappingMul256)))
	if string(s1.buf) != string(s2.buf) {
		t.Error("same seed produced different inputs")
	}
	if seedFor(9, backend.OpWrappingMul256) == seedFor(9, backend.OpWrappingSub256) {
		t.Error("kernels share a seed")
	}
}

func TestScenarioCompare(t *testing.T) {
	t.Parallel()
	s, err := newScenario(backend.OpWrappingSub256, aliasNone, 4, rand.NewChaCha8(seedFor(5, backend.OpWrappingSub256)))
	if err != nil {
		t.Fatal(err)
	}
	want := s.clone()
	s.apply(oracle.Big{}, want, 0)

	if err := s.compare(want, want, "big"); err != nil {
		t.Fatalf("equal buffers reported %v", err)
	}

	got := s.clone()
	s.apply(oracle.Big{}, got, 0)
	got[s.dst.Off+2*s.dst.Stride+5] ^= 1

	var mismatch apperrors.MismatchError
	if err := s.compare(got, want, "big"); !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want MismatchError", err)
	}
	if mismatch.Element != 2 {
		t.Errorf("Element = %d, want 2", mismatch.Element)
	}
	if len(mismatch.Got) != 2*s.dst.Stride {
		t.Errorf("Got carries %d hex digits, want one element", len(mismatch.Got))
	}

	stray := s.clone()
	s.apply(oracle.Big{}, stray, 0)
	stray[s.a.Off] ^= 1
	if err := s.compare(stray, want, "big"); !errors.As(err, &mismatch) || mismatch.Element != -1 {
		t.Errorf("write outside dst: err = %v, want element -1", err)
	}
}

func TestBorrowScenarioSeedsEqualPairs(t *testing.T) {
	t.Parallel()
	s, err := newScenario(backend.OpBorrowSub256, aliasNone, 256, rand.NewChaCha8(seedFor(11, backend.OpBorrowSub256)))
	if err != nil {
		t.Fatal(err)
	}
	equal := 0
	for i := range s.count {
		if string(s.a.Elem(s.buf, i)) == string(s.b.Elem(s.buf, i)) {
			equal++
		}
	}
	if equal == 0 {
		t.Error("no equal operand pairs among 256 borrow elements")
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Error("aggregator for zero tasks should be nil")
	}
	agg := NewProgressAggregator(2)
	if agg.NumTasks() != 2 {
		t.Errorf("NumTasks = %d, want 2", agg.NumTasks())
	}
	got := agg.Update(ProgressUpdate{TaskIndex: 1, Value: 0.5})
	if got.AverageProgress != 0.25 || got.TaskIndex != 1 {
		t.Errorf("Update = %+v, want average 0.25 for task 1", got)
	}
	agg.Update(ProgressUpdate{TaskIndex: 0, Value: 1})
	if avg := agg.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %v, want 0.75", avg)
	}
	if agg.GetETA() < 0 {
		t.Error("negative ETA")
	}
}
