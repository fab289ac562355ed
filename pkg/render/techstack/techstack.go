// Package techstack renders the tech-stack card: language share bars on the
// left and a rotating radar of focus sectors, one per galaxy arm, on the
// right.
package techstack

import (
	"math"
	"strconv"

	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
	"github.com/matzehuels/galaxyprofile/pkg/render/svg"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

const Width = 850

// Bar chart layout.
const (
	barsX       = 30
	barsY       = 65
	rowStep     = 22
	barMaxWidth = 200.0
	minHeight   = 200
)

// Radar layout.
const (
	radarX      = 637.0 // center of the right half
	radarRadius = 65.0
	radarY      = barsY + radarRadius + 10
	edgePad     = 10.0 // degrees kept clear at sector edges
	sweepPeriod = 8.0  // seconds per needle revolution
)

var gridRings = []float64{22, 44, 65}

var dotRadii = []float64{24, 40, 56}

// Height returns the card height for the given number of language rows.
func Height(rows int) int {
	return max(minHeight, barsY+rows*rowStep+20, int(radarY+radarRadius+35))
}

// Render draws the tech-stack card.
func Render(in render.Input) []byte {
	cfg := in.Config
	th := in.Theme()
	langs := profile.LanguagePercentages(in.Languages, cfg.Languages.Exclude, cfg.Languages.MaxDisplay)
	height := Height(len(langs))

	doc := svg.Doc(Width, height)
	doc.Add(svg.Defs())

	faint := th.Color(theme.TextFaint)
	doc.Add(
		svg.Comment("Card background"),
		svg.Rect(svg.A("x", "0.5"), svg.A("y", "0.5"), svg.I("width", Width-1), svg.I("height", height-1),
			svg.I("rx", 12), svg.I("ry", 12), svg.A("fill", th.Color(theme.Nebula)),
			svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1)),
		svg.Comment("Left: Language Telemetry"),
		title("LANGUAGE TELEMETRY", 30, faint),
		svg.Comment("Vertical divider"),
		svg.Line(svg.I("x1", 425), svg.I("y1", 25), svg.I("x2", 425), svg.I("y2", height-25),
			svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1), svg.A("opacity", "0.4")),
		svg.Comment("Right: Focus Sectors"),
		title("FOCUS SECTORS", 460, faint),
	)

	for i, l := range langs {
		doc.Add(bar(th, l, i))
	}

	doc.Add(radar(cfg, th)...)
	return svg.Render(doc)
}

func title(text string, x int, fill string) *svg.Element {
	return svg.Text(text, svg.I("x", x), svg.I("y", 38), svg.A("fill", fill), svg.I("font-size", 11),
		svg.A("font-family", "monospace"), svg.I("letter-spacing", 3))
}

func bar(th theme.Theme, l profile.LanguageShare, i int) *svg.Element {
	w := geom.Num(math.Max(4, l.Percentage/100*barMaxWidth))
	y := barsY + i*rowStep
	return svg.Group(svg.A("transform", "translate("+strconv.Itoa(barsX)+", "+strconv.Itoa(y)+")")).Add(
		svg.Text(l.Name, svg.I("x", 0), svg.I("y", 0), svg.A("fill", th.Color(theme.TextDim)), svg.I("font-size", 11),
			svg.A("font-family", "sans-serif"), svg.A("dominant-baseline", "middle")),
		svg.Rect(svg.I("x", 110), svg.I("y", -6), svg.A("width", w), svg.I("height", 12), svg.I("rx", 3),
			svg.A("fill", l.Color), svg.A("opacity", "0.85")).Add(
			svg.Animate(svg.A("attributeName", "width"), svg.A("from", "0"), svg.A("to", w), svg.A("dur", "0.8s"),
				svg.A("begin", geom.Fmt(float64(i)*0.1, 1)+"s"), svg.A("fill", "freeze"))),
		svg.Text(geom.Fmt(l.Percentage, 1)+"%", svg.I("x", 320), svg.I("y", 0), svg.A("fill", th.Color(theme.TextFaint)),
			svg.I("font-size", 10), svg.A("font-family", "monospace"), svg.A("dominant-baseline", "middle")),
	)
}

type sector struct {
	name       string
	color      string
	items      []string
	start, end float64
}

func sectors(cfg *profile.Config) []sector {
	colors := cfg.ArmColors()
	span := 360 / float64(len(cfg.Arms))
	out := make([]sector, len(cfg.Arms))
	for i, a := range cfg.Arms {
		out[i] = sector{
			name:  a.Name,
			color: colors[i],
			items: a.Items,
			start: float64(i)*span + 1,
			end:   float64(i+1)*span - 1,
		}
	}
	return out
}

func radar(cfg *profile.Config, th theme.Theme) []*svg.Element {
	faint := th.Color(theme.TextFaint)
	cx, cy := svg.F("cx", radarX, -1), svg.F("cy", radarY, -1)

	var out []*svg.Element
	for _, r := range gridRings {
		out = append(out, svg.Circle(cx, cy, svg.F("r", r, -1), svg.A("fill", "none"), svg.A("stroke", faint),
			svg.A("stroke-width", "0.5"), svg.A("stroke-dasharray", "3,3"), svg.A("opacity", "0.25")))
	}
	if len(cfg.Arms) == 0 {
		return append(out, needle(th))
	}

	secs := sectors(cfg)
	for _, s := range secs {
		out = append(out, svg.Path(svg.A("d", geom.ArcSectorPath(radarX, radarY, radarRadius, s.start, s.end)),
			svg.A("fill", s.color), svg.A("fill-opacity", "0.10"), svg.A("stroke", s.color),
			svg.A("stroke-opacity", "0.3"), svg.A("stroke-width", "0.5")))
	}
	span := 360 / float64(len(secs))
	for i := range secs {
		x, y := geom.Polar(radarX, radarY, radarRadius, float64(i)*span)
		out = append(out, svg.Line(svg.F("x1", radarX, -1), svg.F("y1", radarY, -1), svg.F("x2", x, 1), svg.F("y2", y, 1),
			svg.A("stroke", faint), svg.A("stroke-width", "0.5"), svg.A("opacity", "0.3")))
	}

	out = append(out, needle(th))

	for _, s := range secs {
		mid := (s.start + s.end) / 2
		lx, ly := geom.Polar(radarX, radarY, radarRadius+18, mid)
		anchor := "end"
		switch {
		case math.Abs(lx-radarX) < 5:
			anchor = "middle"
		case lx > radarX:
			anchor = "start"
		}
		out = append(out,
			svg.Text(s.name, svg.F("x", lx, 1), svg.F("y", ly, 1), svg.A("fill", s.color), svg.I("font-size", 9),
				svg.A("font-family", "monospace"), svg.A("text-anchor", anchor), svg.A("dominant-baseline", "middle")),
			svg.Text("("+strconv.Itoa(len(s.items))+")", svg.F("x", lx, 1), svg.F("y", ly+12, 1), svg.A("fill", faint),
				svg.I("font-size", 8), svg.A("font-family", "monospace"), svg.A("text-anchor", anchor),
				svg.A("dominant-baseline", "middle")),
		)
	}

	for _, s := range secs {
		out = append(out, dots(s)...)
	}
	return out
}

// dots spreads one blip per item across the sector. Each blip flashes as
// the needle passes over its angle.
func dots(s sector) []*svg.Element {
	n := len(s.items)
	lo, hi := s.start+edgePad, s.end-edgePad
	out := make([]*svg.Element, n)
	for j := range s.items {
		angle := (lo + hi) / 2
		if n > 1 {
			angle = lo + (hi-lo)*float64(j)/float64(n-1)
		}
		x, y := geom.Polar(radarX, radarY, dotRadii[j%len(dotRadii)], angle)
		out[j] = svg.Circle(svg.F("cx", x, 1), svg.F("cy", y, 1), svg.I("r", 3), svg.A("fill", s.color), svg.A("opacity", "0.35")).Add(
			svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.35;0.35;1.0;0.35;0.35"),
				svg.A("keyTimes", "0;0.04;0.06;0.10;1"), svg.A("dur", "8s"),
				svg.A("begin", geom.Fmt(PulseBegin(angle), 2)+"s"), svg.A("repeatCount", "indefinite")))
	}
	return out
}

// PulseBegin is the animation offset at which the needle reaches angle,
// led by 0.3s and wrapped into one revolution.
func PulseBegin(angle float64) float64 {
	b := angle/360*sweepPeriod - 0.3
	b = math.Mod(b, sweepPeriod)
	if b < 0 {
		b += sweepPeriod
	}
	return b
}

func needle(th theme.Theme) *svg.Element {
	color := th.Color(theme.SynapseCyan)
	tipX, tipY := radarX, radarY-radarRadius
	wedge := func(hw float64) string {
		return geom.Num(radarX-hw) + "," + geom.Num(radarY) + " " +
			geom.Num(tipX) + "," + geom.Num(tipY) + " " +
			geom.Num(radarX+hw) + "," + geom.Num(radarY)
	}
	center := geom.Num(radarX) + " " + geom.Num(radarY)

	return svg.Group().Add(
		svg.Comment("Sweep trail"),
		svg.Path(svg.A("d", geom.ArcSectorPath(radarX, radarY, radarRadius, 330, 360)), svg.A("fill", color), svg.A("fill-opacity", "0.07")),
		svg.Comment("Outer wedge"),
		svg.Polygon(svg.A("points", wedge(2.5)), svg.A("fill", color), svg.A("opacity", "0.25")),
		svg.Comment("Inner bright core"),
		svg.Polygon(svg.A("points", wedge(0.8)), svg.A("fill", color), svg.A("opacity", "0.5")),
		svg.Comment("Tip glow"),
		svg.Circle(svg.F("cx", tipX, -1), svg.F("cy", tipY, -1), svg.I("r", 2), svg.A("fill", color), svg.A("opacity", "0.6")).Add(
			svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.4;0.8;0.4"), svg.A("dur", "2s"), svg.A("repeatCount", "indefinite"))),
		svg.AnimateTransform(svg.A("attributeName", "transform"), svg.A("type", "rotate"),
			svg.A("from", "0 "+center), svg.A("to", "360 "+center), svg.A("dur", "8s"), svg.A("repeatCount", "indefinite")),
	)
}
