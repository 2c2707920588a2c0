package backend

import (
	"bytes"
	"slices"
	"testing"
)

type stubShifter struct{ name string }

func (s stubShifter) Name() string                                     { return s.name }
func (stubShifter) NarrowingRightShift512(_, _ []byte, _ uint32, _ int) {}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()
	names := r.List()

	for _, want := range []string{"big", "fast", "words"} {
		if !slices.Contains(names, want) {
			t.Errorf("default registry missing %q: %v", want, names)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("List() not sorted: %v", names)
	}

	k, err := r.Kernels("fast")
	if err != nil {
		t.Fatalf("Kernels(fast): %v", err)
	}
	if k.Name() != "fast" {
		t.Errorf("Name() = %q", k.Name())
	}
	if _, err := r.Shifter("big"); err != nil {
		t.Errorf("full kernel sets should resolve as shifters: %v", err)
	}
}

func TestRegistryUnknown(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()
	if _, err := r.Kernels("nope"); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := r.Select("fast,nope"); err == nil {
		t.Error("expected error for unknown backend in selection")
	}
}

func TestRegistryShifterNamespace(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(Fast{})
	r.RegisterShifter(stubShifter{name: "stub"})

	if _, err := r.Kernels("stub"); err == nil {
		t.Error("shift-only backend must not resolve as a full kernel set")
	}
	sel, err := r.Select("all")
	if err != nil {
		t.Fatal(err)
	}
	if len(sel.Kernels) != 1 || len(sel.Shifters) != 1 {
		t.Errorf("selection = %d kernels, %d shifters", len(sel.Kernels), len(sel.Shifters))
	}

	// Re-registering a name as a full set moves it out of the shifter table.
	r.Register(renamed{Fast{}, "stub"})
	if _, err := r.Kernels("stub"); err != nil {
		t.Error(err)
	}
	if got := r.List(); !slices.Equal(got, []string{"fast", "stub"}) {
		t.Errorf("List() = %v", got)
	}
}

type renamed struct {
	Fast
	name string
}

func (r renamed) Name() string { return r.name }

func TestParseOps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    []Op
		wantErr bool
	}{
		{"", AllOps(), false},
		{"all", AllOps(), false},
		{"wrapping_add_512", []Op{OpWrappingAdd512}, false},
		{" borrow_sub_256 , narrowing_right_shift_512", []Op{OpBorrowSub256, OpNarrowingRightShift512}, false},
		{"mul", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseOps(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOps(%q) error = %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseOps(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFastDelegates(t *testing.T) {
	t.Parallel()
	a := bytes.Repeat([]byte{1}, 64)
	b := bytes.Repeat([]byte{2}, 64)
	got := make([]byte, 64)
	Fast{}.WrappingAdd512(a, b, got, 1)
	if !bytes.Equal(got, bytes.Repeat([]byte{3}, 64)) {
		t.Errorf("Fast.WrappingAdd512 = %x", got)
	}
	if !(Fast{}).BorrowSub256(a, b) {
		t.Error("Fast.BorrowSub256(1.., 2..) should borrow")
	}
}
