// Package raster converts generated SVG documents into PNG previews.
//
// Rasterization runs in-process on oksvg and rasterx. A preview is a single
// still frame: animations, CSS and filter effects are dropped, and text is
// painted in a fixed bitmap face.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// DefaultScale renders previews at 2x resolution.
const DefaultScale = 2.0

var defaultTextColor = color.RGBA{0xe6, 0xed, 0xf3, 0xff}

// ToPNG rasterizes svg at scale times its viewBox size.
// A non-positive scale uses DefaultScale.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	static, labels, err := flatten(svg)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(static), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg")
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg has no usable viewBox")
	}

	outW := int(math.Ceil(w * scale))
	outH := int(math.Ceil(h * scale))
	icon.SetTarget(0, 0, float64(outW), float64(outH))

	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	scanner := rasterx.NewScannerGV(outW, outH, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(outW, outH, scanner), 1.0)

	sx, sy := float64(outW)/w, float64(outH)/h
	for _, l := range labels {
		drawLabel(img, l, (l.X-icon.ViewBox.X)*sx, (l.Y-icon.ViewBox.Y)*sy)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawLabel(img *image.RGBA, l label, x, y float64) {
	var c color.Color = defaultTextColor
	if parsed, err := theme.Parse(l.Fill); err == nil {
		c = parsed
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	width := float64(d.MeasureString(l.Text).Ceil())
	switch l.Anchor {
	case "middle":
		x -= width / 2
	case "end":
		x -= width
	}
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(y)))
	d.DrawString(l.Text)
}
