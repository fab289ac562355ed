package raster

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

// dropped elements are removed with their whole subtree before
// rasterizing. oksvg cannot evaluate them and would misdraw or fail.
var dropped = map[string]bool{
	"style":            true,
	"animate":          true,
	"animateTransform": true,
	"animateMotion":    true,
	"filter":           true,
	"clipPath":         true,
	"title":            true,
}

// strippedAttrs are presentation attributes that refer to dropped
// elements or to CSS.
var strippedAttrs = map[string]bool{
	"style":     true,
	"class":     true,
	"filter":    true,
	"clip-path": true,
}

// label is a text element lifted out of the document. oksvg does not draw
// text, so labels are painted separately onto the raster.
type label struct {
	X, Y   float64
	Text   string
	Fill   string
	Anchor string
}

type frame struct {
	name    string
	dx, dy  float64
	inexact bool // under a rotation or non-identity scale
}

// flatten rewrites an animated SVG into the static subset oksvg draws:
// animation, CSS and filter elements go away, nested <svg> viewports become
// scaled groups, and elements that fade in via CSS are drawn in their final
// state. Text is returned as labels in absolute coordinates; text under a
// transform other than a translation is left out.
func flatten(src []byte) ([]byte, []label, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	var (
		stack   []frame
		labels  []label
		skip    int
		text    *label
		textBuf strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			name := t.Name.Local
			var parent frame
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			dx, dy, exact := translation(attr(t.Attr, "transform"))
			exact = exact && !parent.inexact

			if name == "text" {
				skip = 1
				if exact {
					l := label{
						X:      parent.dx + dx + num(attr(t.Attr, "x")),
						Y:      parent.dy + dy + num(attr(t.Attr, "y")),
						Fill:   attr(t.Attr, "fill"),
						Anchor: attr(t.Attr, "text-anchor"),
					}
					if attr(t.Attr, "filter") == "" {
						text = &l
						textBuf.Reset()
					}
				}
				continue
			}
			if dropped[name] {
				skip = 1
				continue
			}

			attrs := cleanAttrs(t.Attr)
			if name == "svg" && len(stack) > 0 {
				name = "g"
				attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "transform"}, Value: viewportTransform(t.Attr)})
			}
			stack = append(stack, frame{name: name, dx: parent.dx + dx, dy: parent.dy + dy, inexact: !exact})
			if err := enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode svg")
			}

		case xml.EndElement:
			if skip > 0 {
				skip--
				if skip == 0 && text != nil {
					text.Text = strings.Join(strings.Fields(textBuf.String()), " ")
					if text.Text != "" {
						labels = append(labels, *text)
					}
					text = nil
				}
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: top.name}}); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode svg")
			}

		case xml.CharData:
			if skip > 0 {
				if text != nil {
					textBuf.Write(t)
				}
				continue
			}
			if len(stack) > 0 {
				if err := enc.EncodeToken(t.Copy()); err != nil {
					return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode svg")
				}
			}
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode svg")
	}
	return buf.Bytes(), labels, nil
}

func cleanAttrs(in []xml.Attr) []xml.Attr {
	fadesIn := strings.Contains(attr(in, "style"), "animation")
	out := make([]xml.Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" || strippedAttrs[a.Name.Local] {
			continue
		}
		if fadesIn && a.Name.Local == "opacity" && num(a.Value) == 0 {
			continue
		}
		out = append(out, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}
	return out
}

// viewportTransform maps a nested viewport onto its parent.
func viewportTransform(attrs []xml.Attr) string {
	x, y := num(attr(attrs, "x")), num(attr(attrs, "y"))
	sx, sy := 1.0, 1.0
	if vb := strings.Fields(strings.ReplaceAll(attr(attrs, "viewBox"), ",", " ")); len(vb) == 4 {
		if w := num(vb[2]); w > 0 {
			if width := num(attr(attrs, "width")); width > 0 {
				sx = width / w
			}
		}
		if h := num(vb[3]); h > 0 {
			if height := num(attr(attrs, "height")); height > 0 {
				sy = height / h
			}
		}
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return "translate(" + f(x) + " " + f(y) + ") scale(" + f(sx) + " " + f(sy) + ")"
}

// translation sums the translate() terms of a transform list. exact is
// false when the list holds any other kind of transform besides an
// identity scale.
func translation(transform string) (dx, dy float64, exact bool) {
	exact = true
	for _, term := range strings.Split(transform, ")") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		fn, args, ok := strings.Cut(term, "(")
		if !ok {
			return dx, dy, false
		}
		vals := strings.Fields(strings.ReplaceAll(args, ",", " "))
		switch strings.TrimSpace(fn) {
		case "translate":
			if len(vals) > 0 {
				dx += num(vals[0])
			}
			if len(vals) > 1 {
				dy += num(vals[1])
			}
		case "scale":
			for _, v := range vals {
				if num(v) != 1 {
					exact = false
				}
			}
		default:
			exact = false
		}
	}
	return dx, dy, exact
}

func attr(attrs []xml.Attr, key string) string {
	for _, a := range attrs {
		if a.Name.Local == key {
			return a.Value
		}
	}
	return ""
}

func num(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
