// Package geom holds the small amount of plane geometry the renderers share:
// spiral arm sampling, pie-sector paths, text wrapping and measurement, and
// number formatting for SVG attributes.
package geom

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Point is a position in SVG user units.
type Point struct {
	X, Y float64
}

// SpiralPoints samples n points along an Archimedean spiral.
//
// Point i sits at t = i/max(n-1, 1) of the way out: its angle is
// startDeg (in radians) plus t*turns full turns, its radius t*maxRadius,
// and the offsets are stretched by xScale and yScale. The first point is
// always the center.
func SpiralPoints(cx, cy, startDeg float64, n int, maxRadius, turns, xScale, yScale float64) []Point {
	if n <= 0 {
		return []Point{}
	}
	pts := make([]Point, n)
	denom := float64(max(n-1, 1))
	start := Radians(startDeg)
	for i := range pts {
		t := float64(i) / denom
		angle := start + t*turns*2*math.Pi
		r := t * maxRadius
		pts[i] = Point{
			X: cx + r*math.Cos(angle)*xScale,
			Y: cy + r*math.Sin(angle)*yScale,
		}
	}
	return pts
}

// ArcSectorPath returns the path data of a filled pie slice between two
// angles measured clockwise from twelve o'clock.
func ArcSectorPath(cx, cy, r, startDeg, endDeg float64) string {
	x1, y1 := Polar(cx, cy, r, startDeg)
	x2, y2 := Polar(cx, cy, r, endDeg)
	large := 0
	if endDeg-startDeg > 180 {
		large = 1
	}
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(Num(cx) + " " + Num(cy))
	b.WriteString(" L " + Fmt(x1, 1) + " " + Fmt(y1, 1))
	b.WriteString(" A " + Num(r) + " " + Num(r) + " 0 " + strconv.Itoa(large) + " 1 ")
	b.WriteString(Fmt(x2, 1) + " " + Fmt(y2, 1) + " Z")
	return b.String()
}

// Polar returns the point at distance r from (cx, cy) along deg, where 0
// points up and angles grow clockwise.
func Polar(cx, cy, r, deg float64) (x, y float64) {
	rad := Radians(deg - 90)
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// WrapText greedily packs whitespace-separated words into lines no wider
// than maxChars display cells. A word wider than maxChars gets a line of
// its own and is never split.
func WrapText(text string, maxChars int) []string {
	lines := []string{}
	var cur string
	curW := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if cur != "" && curW+1+w > maxChars {
			lines = append(lines, cur)
			cur, curW = word, w
			continue
		}
		if cur == "" {
			cur, curW = word, w
		} else {
			cur += " " + word
			curW += 1 + w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// TextWidth is the advance of s in the 7x13 monospace face, in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// Fmt formats v with prec decimals, normalizing negative zero.
func Fmt(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		return s[1:]
	}
	return s
}

// Num formats v with the fewest digits that round-trip.
func Num(v float64) string {
	return Fmt(v, -1)
}
