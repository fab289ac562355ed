// Package projects renders the featured systems panel: up to three project
// cards on a star field, joined by dashed constellation lines.
package projects

import (
	"math"
	"strconv"

	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
	"github.com/matzehuels/galaxyprofile/pkg/render/random"
	"github.com/matzehuels/galaxyprofile/pkg/render/svg"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

const Width, Height = 850, 220

const (
	cardY       = 55
	cardHeight  = 140
	starY       = 85 // card star and connection lines
	bracketArm  = 16
	wideCard    = 340
	narrowCard  = 240
	descLines   = 2
	charsPerPx  = 7.5
	cardTintMix = 0.15
)

const panelCSS = `
@keyframes twinkle { 0%, 100% { opacity: 0.1; } 50% { opacity: 0.6; } }
@keyframes orbit { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }
@keyframes card-appear { from { opacity: 0; transform: translateY(8px); } to { opacity: 1; transform: translateY(0); } }
@keyframes scan-sweep { 0% { transform: translateY(0); } 100% { transform: translateY(160px); } }
`

// layout holds the horizontal placement of n cards.
type layout struct {
	n     int
	width float64
	gap   float64
}

func newLayout(n int) layout {
	w := float64(narrowCard)
	if n == 2 {
		w = wideCard
	}
	return layout{n: n, width: w, gap: (Width - w*float64(n)) / float64(n+1)}
}

func (l layout) x(i int) float64  { return l.gap + float64(i)*(l.width+l.gap) }
func (l layout) cx(i int) float64 { return l.x(i) + l.width/2 }

// Render draws the projects panel. Only the first three projects are shown;
// with none configured a placeholder card is drawn.
func Render(in render.Input) []byte {
	cfg := in.Config
	th := in.Theme()
	projects := cfg.FeaturedProjects()
	n := len(projects)

	doc := svg.Doc(Width, Height)
	background := svg.Rect(svg.A("x", "0.5"), svg.A("y", "0.5"), svg.I("width", Width-1), svg.I("height", Height-1),
		svg.I("rx", 12), svg.I("ry", 12), svg.A("fill", th.Color(theme.Nebula)),
		svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1))

	if n == 0 {
		doc.Add(background, svg.Text("No featured projects configured",
			svg.F("x", Width/2.0, -1), svg.F("y", Height/2.0, -1), svg.A("fill", th.Color(theme.TextFaint)),
			svg.I("font-size", 12), svg.A("font-family", "monospace"), svg.A("text-anchor", "middle"),
			svg.A("dominant-baseline", "middle")))
		return svg.Render(doc)
	}

	l := newLayout(n)
	allColors := cfg.ArmColors()
	colors := make([]string, n)
	for i, p := range projects {
		colors[i] = allColors[cfg.ArmIndex(p.Arm)]
	}

	doc.Add(defs(th, l, colors))
	doc.Add(svg.Comment("Background"), background)
	doc.Add(svg.Comment("Star field"))
	doc.Add(starField(th, colors)...)
	doc.Add(svg.Comment("Grid overlay"))
	doc.Add(grid(th)...)

	doc.Add(svg.Comment("Connection lines"))
	for i := range n - 1 {
		doc.Add(svg.Line(svg.F("x1", l.cx(i), 1), svg.I("y1", starY), svg.F("x2", l.cx(i+1), 1), svg.I("y2", starY),
			svg.A("stroke", "url(#conn-grad)"), svg.I("stroke-width", 1), svg.A("stroke-dasharray", "6,4"), svg.A("opacity", "0.5")))
	}

	doc.Add(svg.Comment("Title area"))
	doc.Add(titleArea(th, n)...)

	doc.Add(svg.Comment("Project cards"))
	for i, p := range projects {
		doc.Add(card(th, l, i, p, cfg.Arms[cfg.ArmIndex(p.Arm)], colors[i]))
	}

	doc.Add(svg.Comment("Global scan line"),
		svg.Rect(svg.I("x", 12), svg.I("y", 50), svg.I("width", Width-24), svg.A("height", "1.5"),
			svg.A("fill", th.Color(theme.SynapseCyan)), svg.A("opacity", "0.08")).Add(sweep("160")))

	return svg.Render(doc)
}

func sweep(to string) *svg.Element {
	return svg.AnimateTransform(svg.A("attributeName", "transform"), svg.A("type", "translate"),
		svg.A("from", "0 0"), svg.A("to", "0 "+to), svg.A("dur", "6s"), svg.A("repeatCount", "indefinite"))
}

func defs(th theme.Theme, l layout, colors []string) *svg.Element {
	d := svg.Defs()
	for i, c := range colors {
		d.Add(svg.Filter("proj-glow-"+strconv.Itoa(i), svg.A("x", "-80%"), svg.A("y", "-80%"), svg.A("width", "260%"), svg.A("height", "260%")).Add(
			svg.New("feGaussianBlur", svg.A("stdDeviation", "4"), svg.A("in", "SourceGraphic"), svg.A("result", "blur")),
			svg.New("feFlood", svg.A("flood-color", c), svg.A("flood-opacity", "0.6"), svg.A("result", "color")),
			svg.New("feComposite", svg.A("in", "color"), svg.A("in2", "blur"), svg.A("operator", "in"), svg.A("result", "glow")),
			svg.New("feMerge").Add(
				svg.New("feMergeNode", svg.A("in", "glow")),
				svg.New("feMergeNode", svg.A("in", "SourceGraphic")),
			),
		))
	}

	d.Add(svg.GaussianBlur("card-nebula", "15", svg.A("x", "-50%"), svg.A("y", "-50%"), svg.A("width", "200%"), svg.A("height", "200%")))

	for i, c := range colors {
		top := theme.Blend(th.Color(theme.StarDust), c, cardTintMix)
		d.Add(gradient("card-bg-"+strconv.Itoa(i), "0", "1",
			stop("0%", top, "0.6"), stop("100%", th.Color(theme.Nebula), "0.9")))
	}

	if len(colors) >= 2 {
		d.Add(gradient("conn-grad", "1", "0",
			stop("0%", colors[0], "0.4"), stop("100%", colors[len(colors)-1], "0.4")))
	}

	for i := range colors {
		d.Add(svg.New("clipPath", svg.A("id", "card-clip-"+strconv.Itoa(i))).Add(cardRect(l, i)))
	}

	d.Add(svg.Style(panelCSS))
	return d
}

func gradient(id, x2, y2 string, stops ...*svg.Element) *svg.Element {
	return svg.New("linearGradient", svg.A("id", id), svg.A("x1", "0"), svg.A("y1", "0"),
		svg.A("x2", x2), svg.A("y2", y2)).Add(stops...)
}

func stop(offset, color, opacity string) *svg.Element {
	return svg.Stop(svg.A("offset", offset), svg.A("stop-color", color), svg.A("stop-opacity", opacity))
}

func cardRect(l layout, i int, attrs ...svg.Attr) *svg.Element {
	base := []svg.Attr{svg.F("x", l.x(i), 1), svg.I("y", cardY), svg.F("width", l.width, -1), svg.I("height", cardHeight),
		svg.I("rx", 8), svg.I("ry", 8)}
	return svg.Rect(append(base, attrs...)...)
}

type starSet struct {
	prefix           string
	count            int
	margin           float64
	rMin, rMax       float64
	oMin, oMax       float64
	dMin, dMax       float64
	peakMul, peakCap float64
}

var starSets = []starSet{
	{"proj-star", 15, 10, 0.3, 0.9, 0.05, 0.25, 5, 8, 3, 0.6},
	{"proj-mstar", 10, 15, 0.5, 1.2, 0.10, 0.40, 3, 6, 2.5, 0.8},
}

func starField(th theme.Theme, colors []string) []*svg.Element {
	dim := th.Color(theme.TextDim)
	var out []*svg.Element
	for _, s := range starSets {
		xs := random.Values(s.prefix+"-x", s.count, s.margin, Width-s.margin)
		ys := random.Values(s.prefix+"-y", s.count, s.margin, Height-s.margin)
		rs := random.Values(s.prefix+"-r", s.count, s.rMin, s.rMax)
		ops := random.Values(s.prefix+"-o", s.count, s.oMin, s.oMax)
		ds := random.Values(s.prefix+"-d", s.count, s.dMin, s.dMax)
		for i := range s.count {
			fill := dim
			if i%4 == 0 {
				fill = colors[i%len(colors)]
			}
			o := geom.Fmt(ops[i], 2)
			peak := geom.Fmt(math.Min(ops[i]*s.peakMul, s.peakCap), 2)
			out = append(out, svg.Circle(svg.F("cx", xs[i], 1), svg.F("cy", ys[i], 1), svg.F("r", rs[i], 1),
				svg.A("fill", fill), svg.A("opacity", o)).Add(
				svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", o+";"+peak+";"+o),
					svg.A("dur", geom.Fmt(ds[i], 1)+"s"), svg.A("repeatCount", "indefinite"))))
		}
	}
	return out
}

func grid(th theme.Theme) []*svg.Element {
	faint := th.Color(theme.TextFaint)
	var out []*svg.Element
	for y := 40; y < Height; y += 40 {
		out = append(out, svg.Line(svg.I("x1", 12), svg.I("y1", y), svg.I("x2", Width-12), svg.I("y2", y),
			svg.A("stroke", faint), svg.A("stroke-width", "0.5"), svg.A("stroke-dasharray", "4,8"), svg.A("opacity", "0.12")))
	}
	for x := 80; x < Width; x += 80 {
		out = append(out, svg.Line(svg.I("x1", x), svg.I("y1", 12), svg.I("x2", x), svg.I("y2", Height-12),
			svg.A("stroke", faint), svg.A("stroke-width", "0.5"), svg.A("stroke-dasharray", "4,8"), svg.A("opacity", "0.08")))
	}
	return out
}

func titleArea(th theme.Theme, n int) []*svg.Element {
	faint := th.Color(theme.TextFaint)
	pt := func(x, y int) string { return strconv.Itoa(x) + "," + strconv.Itoa(y) }
	bracket := func(a, b, c string) *svg.Element {
		return svg.Polyline(svg.A("points", a+" "+b+" "+c), svg.A("fill", "none"), svg.A("stroke", faint), svg.A("stroke-width", "1.5"))
	}
	const e, w, h = 5, Width - 5, Height - 5

	count := strconv.Itoa(n)
	return []*svg.Element{
		svg.Group(svg.A("opacity", "0.4")).Add(
			bracket(pt(e, bracketArm+e), pt(e, e), pt(bracketArm+e, e)),
			bracket(pt(w-bracketArm, e), pt(w, e), pt(w, bracketArm+e)),
			bracket(pt(e, h-bracketArm), pt(e, h), pt(bracketArm+e, h)),
			bracket(pt(w-bracketArm, h), pt(w, h), pt(w, h-bracketArm)),
		),
		svg.Text("FEATURED SYSTEMS", svg.I("x", 30), svg.I("y", 38), svg.A("fill", faint), svg.I("font-size", 11),
			svg.A("font-family", "monospace"), svg.I("letter-spacing", 3)),
		svg.Circle(svg.I("cx", 218), svg.I("cy", 34), svg.I("r", 3), svg.A("fill", th.Color(theme.SynapseCyan)), svg.A("opacity", "0.8")).Add(
			svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.4;1;0.4"), svg.A("dur", "2s"), svg.A("repeatCount", "indefinite"))),
		svg.Text("SYS "+count+"/"+count+" ONLINE", svg.I("x", Width-30), svg.I("y", 38), svg.A("fill", faint), svg.I("font-size", 10),
			svg.A("font-family", "monospace"), svg.A("text-anchor", "end"), svg.A("opacity", "0.5")),
	}
}

func card(th theme.Theme, l layout, i int, p profile.Project, arm profile.Arm, color string) *svg.Element {
	x, cx := l.x(i), l.cx(i)
	delay := geom.Fmt(float64(i)*0.3, 1) + "s"
	cxA := svg.F("cx", cx, 1)
	center := geom.Fmt(cx, 1) + " " + strconv.Itoa(starY)

	g := svg.Group(svg.A("opacity", "0"), svg.A("style", "animation: card-appear 0.6s ease "+delay+" forwards"))
	g.Add(cardRect(l, i, svg.A("fill", "url(#card-bg-"+strconv.Itoa(i)+")"), svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1)))

	g.Add(svg.Group(svg.A("clip-path", "url(#card-clip-"+strconv.Itoa(i)+")")).Add(
		svg.Circle(svg.F("cx", x+l.width*0.3, 1), svg.I("cy", 90), svg.I("r", 50), svg.A("fill", color),
			svg.A("opacity", "0.025"), svg.A("filter", "url(#card-nebula)")),
		svg.Circle(svg.F("cx", x+l.width*0.7, 1), svg.I("cy", 150), svg.I("r", 40), svg.A("fill", color),
			svg.A("opacity", "0.03"), svg.A("filter", "url(#card-nebula)")),
		svg.Rect(svg.F("x", x, 1), svg.I("y", cardY), svg.F("width", l.width, -1), svg.I("height", 2),
			svg.A("fill", color), svg.A("opacity", "0.1")).Add(sweep(strconv.Itoa(cardHeight))),
	))

	g.Add(
		svg.Circle(cxA, svg.I("cy", starY), svg.I("r", 14), svg.A("fill", "none"), svg.A("stroke", color),
			svg.A("stroke-width", "0.8"), svg.A("stroke-dasharray", "4,3"), svg.A("opacity", "0.5")).Add(
			svg.AnimateTransform(svg.A("attributeName", "transform"), svg.A("type", "rotate"),
				svg.A("from", "0 "+center), svg.A("to", "360 "+center), svg.A("dur", "12s"), svg.A("repeatCount", "indefinite"))),
		svg.Circle(cxA, svg.I("cy", starY), svg.I("r", 8), svg.A("fill", color), svg.A("opacity", "0.15"),
			svg.A("filter", "url(#proj-glow-"+strconv.Itoa(i)+")")),
		svg.Circle(cxA, svg.I("cy", starY), svg.I("r", 5), svg.A("fill", color), svg.A("opacity", "0.7")).Add(
			svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.5;0.9;0.5"), svg.A("dur", "3s"),
				svg.A("begin", delay), svg.A("repeatCount", "indefinite")),
			svg.Animate(svg.A("attributeName", "r"), svg.A("values", "4.5;5.5;4.5"), svg.A("dur", "3s"),
				svg.A("begin", delay), svg.A("repeatCount", "indefinite"))),
		svg.Circle(cxA, svg.I("cy", starY), svg.I("r", 2), svg.A("fill", "#ffffff"), svg.A("opacity", "0.9")),
	)

	g.Add(svg.Text(p.ShortName(), svg.F("x", cx, 1), svg.I("y", 111), svg.A("fill", th.Color(theme.TextBright)),
		svg.I("font-size", 14), svg.A("font-weight", "bold"), svg.A("font-family", "sans-serif"), svg.A("text-anchor", "middle")))

	lines := geom.WrapText(p.Description, int(l.width/charsPerPx))
	for j, line := range lines[:min(len(lines), descLines)] {
		g.Add(svg.Text(line, svg.F("x", cx, 1), svg.I("y", 129+j*15), svg.A("fill", th.Color(theme.TextDim)),
			svg.I("font-size", 11), svg.A("font-family", "sans-serif"), svg.A("text-anchor", "middle")))
	}

	tagW := float64(geom.TextWidth(arm.Name) + 16)
	g.Add(
		svg.Rect(svg.F("x", cx-tagW/2, 1), svg.I("y", 163), svg.F("width", tagW, -1), svg.I("height", 18),
			svg.I("rx", 9), svg.I("ry", 9), svg.A("fill", color), svg.A("opacity", "0.12")),
		svg.Text(arm.Name, svg.F("x", cx, 1), svg.I("y", 175), svg.A("fill", color), svg.I("font-size", 9),
			svg.A("font-family", "monospace"), svg.A("text-anchor", "middle"), svg.A("opacity", "0.85")),
	)
	return g
}
