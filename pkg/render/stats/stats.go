// Package stats renders the mission telemetry card: one cell per configured
// metric with an icon, a glowing abbreviated value and a label.
package stats

import (
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
	"github.com/matzehuels/galaxyprofile/pkg/render/svg"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

const Width, Height = 850, 180

const cardCSS = `
.metric-icon { animation: count-glow 4s ease-in-out infinite; }
@keyframes count-glow { 0%, 100% { fill-opacity: 0.7; } 50% { fill-opacity: 1; } }
`

// Render draws the stats card. Metrics missing from in.Stats show as 0;
// with no configured metrics the card is drawn without cells.
func Render(in render.Input) []byte {
	th := in.Theme()
	metrics := in.Config.Stats.Metrics

	doc := svg.Doc(Width, Height)
	doc.Add(svg.Defs(
		svg.Style(cardCSS),
		svg.GaussianBlur("num-glow", "3", svg.A("x", "-30%"), svg.A("y", "-30%"), svg.A("width", "160%"), svg.A("height", "160%")),
	))

	doc.Add(svg.Comment("Card background"),
		svg.Rect(svg.A("x", "0.5"), svg.A("y", "0.5"), svg.I("width", Width-1), svg.I("height", Height-1),
			svg.I("rx", 12), svg.I("ry", 12), svg.A("fill", th.Color(theme.Nebula)),
			svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1)))

	doc.Add(svg.Comment("Section title"),
		svg.Text("MISSION TELEMETRY", svg.I("x", 30), svg.I("y", 38), svg.A("fill", th.Color(theme.TextFaint)),
			svg.I("font-size", 11), svg.A("font-family", "monospace"), svg.I("letter-spacing", 3)))

	if len(metrics) == 0 {
		return svg.Render(doc)
	}

	cellWidth := float64(Width) / float64(len(metrics))

	doc.Add(svg.Comment("Dividers"))
	for i := range len(metrics) - 1 {
		x := cellWidth * float64(i+1)
		doc.Add(svg.Line(svg.F("x1", x, -1), svg.I("y1", 55), svg.F("x2", x, -1), svg.I("y2", 155),
			svg.A("stroke", th.Color(theme.StarDust)), svg.I("stroke-width", 1), svg.A("opacity", "0.5")))
	}

	doc.Add(svg.Comment("Metric cells"))
	for i, m := range metrics {
		doc.Add(cell(th, m, in.Stats.Get(m), cellWidth*float64(i)+cellWidth/2, i))
	}
	return svg.Render(doc)
}

func cell(th theme.Theme, m profile.Metric, count int, cx float64, i int) *svg.Element {
	color := th.Color(Slot(m))
	value := profile.FormatCount(count)

	icon := svg.New("svg", svg.A("viewBox", "0 0 16 16"), svg.I("width", 16), svg.I("height", 16),
		svg.A("fill", color), svg.A("class", "metric-icon"),
		svg.A("style", "animation-delay: "+geom.Fmt(float64(i)*0.3, 1)+"s"))
	icon.Raw = icons[m]

	valueAttrs := func(fill string) []svg.Attr {
		return []svg.Attr{svg.I("x", 0), svg.I("y", 2), svg.A("text-anchor", "middle"), svg.A("fill", fill),
			svg.I("font-size", 28), svg.A("font-weight", "bold"), svg.A("font-family", "sans-serif")}
	}

	return svg.Group(svg.A("class", "metric-cell"), svg.A("transform", "translate("+geom.Num(cx)+", 95)")).Add(
		svg.Group(svg.A("transform", "translate(-8, -30) scale(1)")).Add(icon),
		svg.Text(value, append(valueAttrs(color), svg.A("opacity", "0.35"), svg.A("filter", "url(#num-glow)"))...),
		svg.Text(value, valueAttrs(th.Color(theme.TextBright))...),
		svg.Text(m.Label(), svg.I("x", 0), svg.I("y", 20), svg.A("text-anchor", "middle"),
			svg.A("fill", th.Color(theme.TextFaint)), svg.I("font-size", 11), svg.A("font-family", "monospace"),
			svg.I("letter-spacing", 1)),
	)
}
