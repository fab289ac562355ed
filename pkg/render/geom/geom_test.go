package geom

import (
	"math"
	"slices"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSpiralPoints(t *testing.T) {
	pts := SpiralPoints(425, 155, 25, 30, 220, 0.85, 1.5, 0.38)
	if len(pts) != 30 {
		t.Fatalf("len = %d, want 30", len(pts))
	}
	if pts[0] != (Point{425, 155}) {
		t.Errorf("first point = %v, want center", pts[0])
	}

	// The last point lies at the full radius after 0.85 turns.
	angle := Radians(25) + 0.85*2*math.Pi
	wantX := 425 + 220*math.Cos(angle)*1.5
	wantY := 155 + 220*math.Sin(angle)*0.38
	last := pts[29]
	if !near(last.X, wantX) || !near(last.Y, wantY) {
		t.Errorf("last point = %v, want (%v, %v)", last, wantX, wantY)
	}
}

func TestSpiralPointsEdgeCases(t *testing.T) {
	if got := SpiralPoints(0, 0, 0, 0, 10, 1, 1, 1); len(got) != 0 {
		t.Errorf("n=0: got %d points", len(got))
	}
	if got := SpiralPoints(0, 0, 0, -1, 10, 1, 1, 1); len(got) != 0 {
		t.Errorf("n<0: got %d points", len(got))
	}
	one := SpiralPoints(7, 9, 45, 1, 10, 1, 1, 1)
	if len(one) != 1 || one[0] != (Point{7, 9}) {
		t.Errorf("n=1: got %v, want center only", one)
	}
}

func TestArcSectorPath(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       string
	}{
		{
			name:  "quarter",
			start: 0, end: 90,
			want: "M 100 100 L 100.0 50.0 A 50 50 0 0 1 150.0 100.0 Z",
		},
		{
			name:  "large arc",
			start: 0, end: 270,
			want: "M 100 100 L 100.0 50.0 A 50 50 0 1 1 50.0 100.0 Z",
		},
		{
			name:  "exactly half is small",
			start: 0, end: 180,
			want: "M 100 100 L 100.0 50.0 A 50 50 0 0 1 100.0 150.0 Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArcSectorPath(100, 100, 50, tt.start, tt.end); got != tt.want {
				t.Errorf("ArcSectorPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"wraps", "hello world foo", 11, []string{"hello world", "foo"}},
		{"long word", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
		{"collapses spaces", "  a   b  ", 10, []string{"a b"}},
		{"empty", "", 10, []string{}},
		{"blank", "   ", 10, []string{}},
		{"wide runes", "日本語 テキスト", 8, []string{"日本語", "テキスト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.max)
			if !slices.Equal(got, tt.want) {
				t.Errorf("WrapText(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestWrapTextPreservesWords(t *testing.T) {
	text := "High-performance API gateway with rate limiting and observability built in."
	lines := WrapText(text, 32)
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("joined = %q, want %q", got, text)
	}
	for _, l := range lines {
		if len(l) > 32 {
			t.Errorf("line %q exceeds 32 chars", l)
		}
	}
}

func TestTextWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Go", 14},
		{"Frontend", 56},
	}
	for _, tt := range tests {
		if got := TextWidth(tt.in); got != tt.want {
			t.Errorf("TextWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFmt(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want string
	}{
		{1.26, 1, "1.3"},
		{3, 1, "3.0"},
		{-0.01, 1, "0.0"},
		{-0.0, 2, "0.00"},
		{-1.5, 1, "-1.5"},
		{425, -1, "425"},
		{0.3, -1, "0.3"},
	}
	for _, tt := range tests {
		if got := Fmt(tt.v, tt.prec); got != tt.want {
			t.Errorf("Fmt(%v, %d) = %q, want %q", tt.v, tt.prec, got, tt.want)
		}
	}
}
