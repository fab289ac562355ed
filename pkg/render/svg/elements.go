package svg

// Shorthand constructors for the elements the renderers use.

func Group(attrs ...Attr) *Element            { return New("g", attrs...) }
func Rect(attrs ...Attr) *Element             { return New("rect", attrs...) }
func Circle(attrs ...Attr) *Element           { return New("circle", attrs...) }
func Ellipse(attrs ...Attr) *Element          { return New("ellipse", attrs...) }
func Line(attrs ...Attr) *Element             { return New("line", attrs...) }
func Path(attrs ...Attr) *Element             { return New("path", attrs...) }
func Polygon(attrs ...Attr) *Element          { return New("polygon", attrs...) }
func Polyline(attrs ...Attr) *Element         { return New("polyline", attrs...) }
func Stop(attrs ...Attr) *Element             { return New("stop", attrs...) }
func Animate(attrs ...Attr) *Element          { return New("animate", attrs...) }
func AnimateTransform(attrs ...Attr) *Element { return New("animateTransform", attrs...) }
func AnimateMotion(attrs ...Attr) *Element    { return New("animateMotion", attrs...) }

// Defs creates a <defs> element holding children.
func Defs(children ...*Element) *Element {
	return New("defs").Add(children...)
}

// Filter creates a <filter> with the given id.
func Filter(id string, attrs ...Attr) *Element {
	return New("filter", append([]Attr{A("id", id)}, attrs...)...)
}

// GaussianBlur is the common single-primitive blur filter.
func GaussianBlur(id, stdDev string, attrs ...Attr) *Element {
	return Filter(id, attrs...).Add(New("feGaussianBlur", A("stdDeviation", stdDev)))
}

// Text creates a <text> element with escaped content.
func Text(content string, attrs ...Attr) *Element {
	e := New("text", attrs...)
	e.Text = content
	return e
}

// Style creates a <style> element holding trusted CSS.
func Style(css string) *Element {
	return &Element{Name: "style", Raw: css}
}

// Comment creates an XML comment.
func Comment(text string) *Element {
	return &Element{Comment: true, Text: text}
}
