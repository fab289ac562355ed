package random

import (
	"slices"
	"testing"
)

func TestValuesDeterministic(t *testing.T) {
	a := Values("galaxy-dev_sx_bg", 40, 10, 840)
	b := Values("galaxy-dev_sx_bg", 40, 10, 840)
	if !slices.Equal(a, b) {
		t.Fatal("identical arguments produced different sequences")
	}
}

func TestValuesRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"unit", 0, 1},
		{"star x", 10, 840},
		{"opacity", 0.08, 0.3},
		{"negative", -5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := Values("seed-"+tt.name, 200, tt.min, tt.max)
			if len(vals) != 200 {
				t.Fatalf("len = %d, want 200", len(vals))
			}
			for i, v := range vals {
				if v < tt.min || v > tt.max {
					t.Errorf("vals[%d] = %v outside [%v, %v]", i, v, tt.min, tt.max)
				}
			}
		})
	}
}

func TestValuesEmpty(t *testing.T) {
	for _, n := range []int{0, -3} {
		got := Values("x", n, 0, 1)
		if got == nil || len(got) != 0 {
			t.Errorf("Values(count=%d) = %v, want empty slice", n, got)
		}
	}
}

func TestValuesDistinctSeeds(t *testing.T) {
	a := Values("alice_sx_bg", 10, 0, 1)
	b := Values("bob_sx_bg", 10, 0, 1)
	if slices.Equal(a, b) {
		t.Error("different seeds produced the same sequence")
	}
}

func TestValuesPrefixStable(t *testing.T) {
	short := Values("prefix", 5, 0, 100)
	long := Values("prefix", 50, 0, 100)
	if !slices.Equal(short, long[:5]) {
		t.Error("element i must not depend on count")
	}
}

func TestValuesDegenerateRange(t *testing.T) {
	for _, v := range Values("flat", 10, 3, 3) {
		if v != 3 {
			t.Errorf("value = %v, want 3", v)
		}
	}
}
