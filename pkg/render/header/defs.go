package header

import (
	"strconv"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
	"github.com/matzehuels/galaxyprofile/pkg/render/svg"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

const starCSS = `
.star-bg { animation: twinkle-slow 7s ease-in-out infinite; }
.star-mid { animation: twinkle-mid 5s ease-in-out infinite; }
.star-fg { animation: twinkle-fast 3s ease-in-out infinite; }
@keyframes twinkle-slow { 0%, 100% { opacity: 0.08; } 50% { opacity: 0.3; } }
@keyframes twinkle-mid { 0%, 100% { opacity: 0.15; } 50% { opacity: 0.5; } }
@keyframes twinkle-fast { 0%, 100% { opacity: 0.4; } 50% { opacity: 0.8; } }
.core-ring { animation: pulse-core 3s ease-in-out infinite; }
.core-ring-inner { animation: pulse-core 3s ease-in-out infinite 1.5s; }
@keyframes pulse-core {
  0%, 100% { stroke-opacity: 0.3; transform: scale(1); transform-origin: {cx}px {cy}px; }
  50% { stroke-opacity: 0.8; transform: scale(1.06); transform-origin: {cx}px {cy}px; }
}
.shooting-star { opacity: 0; animation: shoot linear infinite; }
@keyframes shoot {
  0% { opacity: 0; transform: translate(0, 0); }
  5% { opacity: 0.9; }
  15% { opacity: 0.6; transform: translate(var(--shoot-tx), var(--shoot-ty)); }
  20% { opacity: 0; transform: translate(var(--shoot-tx), var(--shoot-ty)); }
  100% { opacity: 0; }
}
`

func defs(th theme.Theme, colors []string) *svg.Element {
	cyan, violet := th.Color(theme.SynapseCyan), th.Color(theme.DendriteViolet)

	d := svg.Defs(
		svg.Style(strings.NewReplacer("{cx}", geom.Num(centerX), "{cy}", geom.Num(centerY)).Replace(starCSS)),
		svg.GaussianBlur("nebula-outer", "60"),
		svg.GaussianBlur("nebula-inner", "30"),
		svg.Filter("label-glow", svg.A("x", "-20%"), svg.A("y", "-20%"), svg.A("width", "140%"), svg.A("height", "140%")).Add(
			svg.New("feGaussianBlur", svg.A("stdDeviation", "2"), svg.A("result", "blur"))),
		svg.GaussianBlur("core-bright-glow", "4", svg.A("x", "-100%"), svg.A("y", "-100%"), svg.A("width", "300%"), svg.A("height", "300%")),
		radial("core-haze-gradient",
			stop("0%", cyan, "0.5"), stop("50%", violet, "0.2"), stop("100%", cyan, "0")),
		radial("core-inner-gradient",
			stop("0%", "#ffffff", "0.6"), stop("40%", cyan, "0.3"), stop("100%", cyan, "0")),
		svg.New("linearGradient", svg.A("id", "shoot-grad"), svg.A("x1", "0%"), svg.A("y1", "0%"), svg.A("x2", "100%"), svg.A("y2", "0%")).Add(
			stop("0%", "#ffffff", "0.8"), stop("100%", "#ffffff", "0")),
	)

	for i, color := range colors {
		d.Add(svg.Filter("star-glow-"+strconv.Itoa(i), svg.A("x", "-100%"), svg.A("y", "-100%"), svg.A("width", "300%"), svg.A("height", "300%")).Add(
			svg.New("feGaussianBlur", svg.A("stdDeviation", "3"), svg.A("result", "blur")),
			svg.New("feFlood", svg.A("flood-color", color), svg.A("flood-opacity", "0.5"), svg.A("result", "color")),
			svg.New("feComposite", svg.A("in", "color"), svg.A("in2", "blur"), svg.A("operator", "in"), svg.A("result", "glow")),
			svg.New("feMerge").Add(
				svg.New("feMergeNode", svg.A("in", "glow")),
				svg.New("feMergeNode", svg.A("in", "SourceGraphic")),
			),
		))
	}
	return d
}

func radial(id string, stops ...*svg.Element) *svg.Element {
	return svg.New("radialGradient", svg.A("id", id), svg.A("cx", "50%"), svg.A("cy", "50%"), svg.A("r", "50%")).Add(stops...)
}

func stop(offset, color, opacity string) *svg.Element {
	return svg.Stop(svg.A("offset", offset), svg.A("stop-color", color), svg.A("stop-opacity", opacity))
}
