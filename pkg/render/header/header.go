// Package header renders the galaxy header: a spiral galaxy banner whose
// arms carry the profile's technology groups, with the featured projects
// shining as stars and the owner's initial at the core.
package header

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
	"github.com/matzehuels/galaxyprofile/pkg/render/random"
	"github.com/matzehuels/galaxyprofile/pkg/render/svg"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// Document size and spiral geometry.
const (
	Width, Height = 850, 280

	centerX, centerY = 425.0, 155.0
	maxRadius        = 220.0
	spiralTurns      = 0.85
	numPoints        = 30
	xScale, yScale   = 1.5, 0.38

	segmentCount = 4
	outerStart   = 8 // items sit on the outer part of each arm
	labelOffset  = 18.0
	projectPoint = 24
)

var startAngles = []float64{25, 150, 265}

var (
	segmentOpacity = []float64{0.50, 0.40, 0.30, 0.20}
	segmentWidth   = []float64{2.0, 1.7, 1.4, 1.1}
)

type starLayer struct {
	label          string
	count          int
	rMin, rMax     float64
	oMin, oMax     float64
	durMin, durMax float64
}

var starLayers = []starLayer{
	{"bg", 40, 0.3, 0.8, 0.08, 0.3, 5.0, 9.0},
	{"mid", 20, 0.6, 1.2, 0.15, 0.5, 3.5, 7.0},
	{"fg", 10, 1.0, 1.8, 0.4, 0.7, 2.0, 4.5},
}

type shootingStar struct {
	x, y, tx, ty, dur int
}

var shootingStars = []shootingStar{
	{120, 30, 200, 80, 6},
	{650, 20, 180, 70, 8},
	{400, 250, 160, 60, 7},
}

// Render draws the galaxy header for in.Config.
func Render(in render.Input) []byte {
	cfg := in.Config
	th := in.Theme()
	colors := cfg.ArmColors()

	arms := make([][]geom.Point, len(cfg.Arms))
	for i := range cfg.Arms {
		arms[i] = geom.SpiralPoints(centerX, centerY, startAngles[i%len(startAngles)],
			numPoints, maxRadius, spiralTurns, xScale, yScale)
	}

	doc := svg.Doc(Width, Height)
	doc.Add(defs(th, colors))

	doc.Add(svg.Comment("1. Background"),
		svg.Rect(svg.I("x", 0), svg.I("y", 0), svg.I("width", Width), svg.I("height", Height),
			svg.I("rx", 12), svg.I("ry", 12), svg.A("fill", th.Color(theme.Void))))

	doc.Add(svg.Comment("2. Outer nebula"))
	doc.Add(nebula(th, "nebula-outer", [][4]float64{
		{-180, -30, 120, 0.015}, {200, 20, 100, 0.012}, {0, 40, 140, 0.01},
	})...)

	doc.Add(svg.Comment("3. Star field (3 layers)"))
	doc.Add(starField(cfg.Username, th)...)

	doc.Add(svg.Comment("4. Inner nebula"))
	doc.Add(nebula(th, "nebula-inner", [][4]float64{
		{0, 0, 70, 0.04}, {-60, -20, 50, 0.035}, {70, 15, 45, 0.03},
	})...)

	doc.Add(svg.Comment("5. Shooting stars"))
	for i, s := range shootingStars {
		style := fmt.Sprintf("animation-delay: %ss; --shoot-tx: %dpx; --shoot-ty: %dpx; animation-duration: %ds",
			geom.Fmt(float64(i)*2.5, 1), s.tx, s.ty, s.dur)
		doc.Add(svg.Line(svg.I("x1", s.x), svg.I("y1", s.y), svg.I("x2", s.x+20), svg.I("y2", s.y+5),
			svg.A("stroke", "url(#shoot-grad)"), svg.A("stroke-width", "1.2"), svg.A("stroke-linecap", "round"),
			svg.A("class", "shooting-star"), svg.A("style", style)))
	}

	paths, particles := spiralArms(arms, colors)
	doc.Add(svg.Comment("6. Spiral arm paths (segmented fade)"))
	doc.Add(paths...)
	doc.Add(svg.Comment("7. Arm particles"))
	doc.Add(particles...)

	doc.Add(svg.Comment("8. Tech dots + leader lines + labels"))
	doc.Add(techLabels(cfg, arms, colors)...)

	doc.Add(svg.Comment("9. Project stars"))
	doc.Add(projectStars(cfg, arms, colors)...)

	doc.Add(svg.Comment("10. Orbital rings"))
	doc.Add(orbitalRings(th)...)

	doc.Add(svg.Comment("11. Galaxy core"))
	doc.Add(core(th, cfg.Initial())...)

	doc.Add(svg.Comment("12. Profile text"))
	doc.Add(
		svg.Text(cfg.Profile.Name, svg.F("x", centerX, -1), svg.I("y", 26), svg.A("text-anchor", "middle"),
			svg.A("fill", th.Color(theme.TextBright)), svg.I("font-size", 20), svg.A("font-weight", "bold"),
			svg.A("font-family", "sans-serif")),
		svg.Text(cfg.Profile.Tagline, svg.F("x", centerX, -1), svg.I("y", 44), svg.A("text-anchor", "middle"),
			svg.A("fill", th.Color(theme.TextDim)), svg.I("font-size", 12), svg.A("font-family", "sans-serif")),
		svg.Text(cfg.Profile.Philosophy, svg.F("x", centerX, -1), svg.I("y", Height-12), svg.A("text-anchor", "middle"),
			svg.A("fill", th.Color(theme.TextFaint)), svg.I("font-size", 11), svg.A("font-family", "monospace"),
			svg.A("font-style", "italic")),
	)

	return svg.Render(doc)
}

func nebula(th theme.Theme, filter string, blobs [][4]float64) []*svg.Element {
	slots := []string{theme.DendriteViolet, theme.AxonAmber, theme.SynapseCyan}
	if filter == "nebula-inner" {
		slots = []string{theme.SynapseCyan, theme.DendriteViolet, theme.AxonAmber}
	}
	out := make([]*svg.Element, len(blobs))
	for i, b := range blobs {
		out[i] = svg.Circle(svg.F("cx", centerX+b[0], -1), svg.F("cy", centerY+b[1], -1), svg.F("r", b[2], -1),
			svg.A("fill", th.Color(slots[i])), svg.F("opacity", b[3], -1), svg.A("filter", "url(#"+filter+")"))
	}
	return out
}

// starField scatters the three depth layers. Positions derive from the
// username so each profile gets its own sky.
func starField(username string, th theme.Theme) []*svg.Element {
	accents := map[int]string{
		0: th.Color(theme.SynapseCyan),
		4: th.Color(theme.DendriteViolet),
		8: th.Color(theme.AxonAmber),
	}

	var out []*svg.Element
	for _, l := range starLayers {
		sx := random.Values(username+"_sx_"+l.label, l.count, 10, Width-10)
		sy := random.Values(username+"_sy_"+l.label, l.count, 10, Height-10)
		sr := random.Values(username+"_sr_"+l.label, l.count, l.rMin, l.rMax)
		so := random.Values(username+"_so_"+l.label, l.count, l.oMin, l.oMax)
		sd := random.Values(username+"_sd_"+l.label, l.count, l.durMin, l.durMax)

		for i := range l.count {
			fill, ok := accents[i%12]
			if !ok {
				fill = "#ffffff"
			}
			out = append(out, svg.Circle(
				svg.F("cx", sx[i], 1), svg.F("cy", sy[i], 1), svg.F("r", sr[i], 2),
				svg.A("fill", fill), svg.F("opacity", so[i], 2), svg.A("class", "star-"+l.label),
				svg.A("style", "animation-delay: "+geom.Fmt(sd[i]*0.3, 1)+"s"),
			))
		}
	}
	return out
}

// pathData builds a smoothed path through pts using quadratic segments whose
// control points are the samples and whose ends are the midpoints.
func pathData(pts []geom.Point) string {
	var b strings.Builder
	b.WriteString("M " + geom.Fmt(pts[0].X, 1) + " " + geom.Fmt(pts[0].Y, 1))
	for j := 1; j < len(pts); j++ {
		p, q := pts[j-1], pts[j]
		fmt.Fprintf(&b, " Q %s %s %s %s",
			geom.Fmt(p.X, 1), geom.Fmt(p.Y, 1), geom.Fmt((p.X+q.X)/2, 1), geom.Fmt((p.Y+q.Y)/2, 1))
	}
	last := pts[len(pts)-1]
	b.WriteString(" L " + geom.Fmt(last.X, 1) + " " + geom.Fmt(last.Y, 1))
	return b.String()
}

func spiralArms(arms [][]geom.Point, colors []string) (paths, particles []*svg.Element) {
	for a, pts := range arms {
		if len(pts) < 2 {
			continue
		}
		color := colors[a]

		perSeg := len(pts) / segmentCount
		for seg := range segmentCount {
			start := seg * perSeg
			end := min(start+perSeg+1, len(pts))
			if end-start < 2 {
				continue
			}
			op := segmentOpacity[seg]
			values := geom.Fmt(op-0.1, 2) + ";" + geom.Fmt(op+0.1, 2) + ";" + geom.Fmt(op-0.1, 2)
			paths = append(paths, svg.Path(
				svg.A("d", pathData(pts[start:end])), svg.A("fill", "none"), svg.A("stroke", color),
				svg.F("stroke-width", segmentWidth[seg], 1), svg.F("opacity", op, 2), svg.A("stroke-linecap", "round"),
			).Add(svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", values),
				svg.A("dur", "8s"), svg.A("begin", strconv.Itoa(a)+"s"), svg.A("repeatCount", "indefinite"))))
		}

		full := pathData(pts)
		for p := range 2 {
			begin := strconv.Itoa(a*4+p*6) + "s"
			particles = append(particles, svg.Circle(svg.A("r", "1.5"), svg.A("fill", color), svg.A("opacity", "0.6")).Add(
				svg.AnimateMotion(svg.A("dur", "12s"), svg.A("begin", begin), svg.A("repeatCount", "indefinite"), svg.A("path", full)),
				svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0;0.7;0.3;0"), svg.A("dur", "12s"),
					svg.A("begin", begin), svg.A("repeatCount", "indefinite")),
			))
		}
	}
	return paths, particles
}

// techLabels places each arm's items along its outer stretch, with a label
// pushed radially away from the core.
func techLabels(cfg *profile.Config, arms [][]geom.Point, colors []string) []*svg.Element {
	var out []*svg.Element
	for a, arm := range cfg.Arms {
		pts := arms[a]
		if len(arm.Items) == 0 || len(pts) == 0 {
			continue
		}
		color := colors[a]
		available := len(pts) - outerStart - 2
		spacing := max(1, available/len(arm.Items))

		for i, item := range arm.Items {
			p := pts[min(outerStart+i*spacing, len(pts)-1)]
			dx, dy := p.X-centerX, p.Y-centerY
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				dist = 1
			}
			lx, ly := p.X+dx/dist*labelOffset, p.Y+dy/dist*labelOffset

			anchor := "middle"
			switch {
			case dx > 20:
				anchor = "start"
			case dx < -20:
				anchor = "end"
			}

			out = append(out,
				svg.Circle(svg.F("cx", p.X, 1), svg.F("cy", p.Y, 1), svg.A("r", "2.5"), svg.A("fill", color), svg.A("opacity", "0.85")).Add(
					svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.85;1;0.85"), svg.A("dur", "5s"),
						svg.A("begin", geom.Fmt(float64(i)*0.7, 1)+"s"), svg.A("repeatCount", "indefinite"))),
				svg.Line(svg.F("x1", p.X, 1), svg.F("y1", p.Y, 1), svg.F("x2", lx, 1), svg.F("y2", ly, 1),
					svg.A("stroke", color), svg.A("stroke-width", "0.5"), svg.A("opacity", "0.25"), svg.A("stroke-dasharray", "2 2")),
				svg.Text(item, svg.F("x", lx, 1), svg.F("y", ly+3, 1), svg.A("text-anchor", anchor), svg.A("fill", color),
					svg.I("font-size", 9), svg.A("font-family", "monospace"), svg.A("opacity", "0.2"), svg.A("filter", "url(#label-glow)")),
				svg.Text(item, svg.F("x", lx, 1), svg.F("y", ly+3, 1), svg.A("text-anchor", anchor), svg.A("fill", color),
					svg.I("font-size", 9), svg.A("font-family", "monospace"), svg.A("opacity", "0.85")),
			)
		}
	}
	return out
}

func projectStars(cfg *profile.Config, arms [][]geom.Point, colors []string) []*svg.Element {
	var out []*svg.Element
	for _, p := range cfg.FeaturedProjects() {
		a := cfg.ArmIndex(p.Arm)
		pts := arms[a]
		if len(pts) < 3 {
			continue
		}
		pt := pts[min(len(pts)-3, projectPoint)]
		out = append(out, svg.Circle(svg.F("cx", pt.X, 1), svg.F("cy", pt.Y, 1), svg.I("r", 4), svg.A("fill", colors[a]),
			svg.A("filter", "url(#star-glow-"+strconv.Itoa(a)+")")).Add(
			svg.Animate(svg.A("attributeName", "opacity"), svg.A("values", "0.6;1;0.6"), svg.A("dur", "4s"),
				svg.A("begin", geom.Fmt(float64(a)*0.8, 1)+"s"), svg.A("repeatCount", "indefinite"))))
	}
	return out
}

func orbitalRings(th theme.Theme) []*svg.Element {
	c := geom.Num(centerX) + " " + geom.Num(centerY)
	ring := func(rx, ry int, slot, width, opacity, dash, from, to, dur string) *svg.Element {
		return svg.Ellipse(svg.F("cx", centerX, -1), svg.F("cy", centerY, -1), svg.I("rx", rx), svg.I("ry", ry),
			svg.A("fill", "none"), svg.A("stroke", th.Color(slot)), svg.A("stroke-width", width),
			svg.A("opacity", opacity), svg.A("stroke-dasharray", dash)).Add(
			svg.AnimateTransform(svg.A("attributeName", "transform"), svg.A("type", "rotate"),
				svg.A("from", from+" "+c), svg.A("to", to+" "+c), svg.A("dur", dur), svg.A("repeatCount", "indefinite")))
	}
	return []*svg.Element{
		ring(55, 18, theme.SynapseCyan, "0.6", "0.15", "4 6", "0", "360", "20s"),
		ring(75, 24, theme.DendriteViolet, "0.5", "0.1", "3 8", "360", "0", "30s"),
	}
}

func core(th theme.Theme, initial string) []*svg.Element {
	cx, cy := svg.F("cx", centerX, -1), svg.F("cy", centerY, -1)
	cyan := th.Color(theme.SynapseCyan)
	return []*svg.Element{
		svg.Comment("Outer haze"),
		svg.Circle(cx, cy, svg.I("r", 40), svg.A("fill", "url(#core-haze-gradient)"), svg.A("opacity", "0.4")),
		svg.Comment("Inner glow"),
		svg.Circle(cx, cy, svg.I("r", 24), svg.A("fill", "url(#core-inner-gradient)"), svg.A("opacity", "0.6")),
		svg.Comment("Outer ring"),
		svg.Ellipse(cx, cy, svg.I("rx", 20), svg.I("ry", 18), svg.A("fill", "none"), svg.A("stroke", cyan),
			svg.A("stroke-width", "1.2"), svg.A("opacity", "0.55"), svg.A("stroke-dasharray", "5 3"), svg.A("class", "core-ring")),
		svg.Comment("Inner ring"),
		svg.Circle(cx, cy, svg.I("r", 14), svg.A("fill", "none"), svg.A("stroke", th.Color(theme.DendriteViolet)),
			svg.A("stroke-width", "0.8"), svg.A("opacity", "0.4"), svg.A("class", "core-ring-inner")),
		svg.Comment("Solid core"),
		svg.Circle(cx, cy, svg.I("r", 11), svg.A("fill", th.Color(theme.Nebula)), svg.A("stroke", th.Color(theme.StarDust)),
			svg.A("stroke-width", "0.5")),
		svg.Comment("Bright center dot"),
		svg.Circle(cx, cy, svg.I("r", 3), svg.A("fill", cyan), svg.A("filter", "url(#core-bright-glow)"), svg.A("opacity", "0.9")),
		svg.Comment("Initial"),
		svg.Text(initial, svg.F("x", centerX, -1), svg.F("y", centerY+5, -1), svg.A("text-anchor", "middle"),
			svg.A("fill", cyan), svg.I("font-size", 14), svg.A("font-weight", "bold"), svg.A("font-family", "monospace")),
	}
}
