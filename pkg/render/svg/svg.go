// Package svg builds SVG documents as a tree of elements and serializes
// them in one pass.
//
// Renderers never concatenate markup by hand. Every attribute value and text
// node goes through [EscapeXML] when the tree is written, so user-supplied
// strings (names, taglines, repository descriptions) cannot break out of
// the document structure. Trusted constant markup such as CSS keyframes or
// icon paths is carried in [Element.Raw] and emitted verbatim.
//
//	doc := svg.Doc(850, 180)
//	doc.Add(svg.Rect(svg.I("width", 850), svg.I("height", 180), svg.A("fill", bg)))
//	doc.Add(svg.Text(title, svg.I("x", 30), svg.I("y", 38)))
//	out := svg.Render(doc)
package svg

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/render/geom"
)

const namespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute. Order of attributes is preserved on output.
type Attr struct {
	Key, Value string
}

// A returns a string attribute.
func A(key, value string) Attr { return Attr{key, value} }

// F returns a float attribute formatted with prec decimals (-1 for the
// shortest round-trip form).
func F(key string, v float64, prec int) Attr { return Attr{key, geom.Fmt(v, prec)} }

// I returns an integer attribute.
func I(key string, v int) Attr { return Attr{key, strconv.Itoa(v)} }

// Element is a node of an SVG document.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string // escaped on output
	Raw      string // written verbatim, one indented line per source line
	Comment  bool   // render Text as <!-- Text -->
}

// New creates an element.
func New(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Doc creates a root <svg> element of the given size with a matching viewBox.
func Doc(width, height int) *Element {
	w, h := strconv.Itoa(width), strconv.Itoa(height)
	return New("svg", A("xmlns", namespace), A("width", w), A("height", h), A("viewBox", "0 0 "+w+" "+h))
}

// Add appends children, skipping nil entries, and returns e.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Set replaces the value of key, appending the attribute if absent.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{key, value})
	return e
}

// Get returns the value of key and whether it is present.
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// String serializes e and its subtree.
func (e *Element) String() string {
	return string(Render(e))
}

// Render serializes root with two-space indentation and a trailing newline.
func Render(root *Element) []byte {
	var buf bytes.Buffer
	root.write(&buf, 0)
	return buf.Bytes()
}

func (e *Element) write(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)

	if e.Comment {
		buf.WriteString("<!-- ")
		buf.WriteString(strings.ReplaceAll(e.Text, "--", "- -"))
		buf.WriteString(" -->\n")
		return
	}

	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		buf.WriteString(EscapeXML(a.Value))
		buf.WriteByte('"')
	}

	switch {
	case len(e.Children) == 0 && e.Raw == "" && e.Text == "":
		buf.WriteString("/>\n")
		return
	case len(e.Children) == 0 && e.Raw == "":
		buf.WriteByte('>')
		buf.WriteString(EscapeXML(e.Text))
		buf.WriteString("</" + e.Name + ">\n")
		return
	}

	buf.WriteByte('>')
	if e.Text != "" {
		buf.WriteString(EscapeXML(e.Text))
	}
	buf.WriteByte('\n')
	if e.Raw != "" {
		inner := strings.Repeat("  ", depth+1)
		for _, line := range strings.Split(strings.Trim(e.Raw, "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			buf.WriteString(inner)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	for _, c := range e.Children {
		c.write(buf, depth+1)
	}
	buf.WriteString(indent)
	buf.WriteString("</" + e.Name + ">\n")
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
