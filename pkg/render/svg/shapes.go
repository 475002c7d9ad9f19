package svg

import (
	"bytes"
	"fmt"
	"strings"
)

// Shape is anything that can be written into a document.
type Shape interface {
	writeTo(buf *bytes.Buffer, indent string)
}

// Style is the presentation attributes shared by all shapes. Zero fields
// are omitted.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FillOpacity float64
	Dash        string
	Class       string
}

func (s Style) attrs() string {
	var b strings.Builder
	if s.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, EscapeXML(s.Class))
	}
	if s.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, EscapeXML(s.Fill))
	}
	if s.FillOpacity > 0 {
		fmt.Fprintf(&b, ` fill-opacity="%s"`, Num(s.FillOpacity))
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, EscapeXML(s.Stroke))
	}
	if s.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, Num(s.StrokeWidth))
	}
	if s.Dash != "" {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, EscapeXML(s.Dash))
	}
	if s.Opacity > 0 {
		fmt.Fprintf(&b, ` opacity="%s"`, Num(s.Opacity))
	}
	return b.String()
}

// Rect is an axis-aligned rectangle. Negative sizes are normalized.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Title      string
	Style      Style
}

func (r Rect) writeTo(buf *bytes.Buffer, indent string) {
	x, y, w, h := r.X, r.Y, r.W, r.H
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"`, indent, Num(x), Num(y), Num(w), Num(h))
	if r.RX > 0 {
		fmt.Fprintf(buf, ` rx="%s"`, Num(r.RX))
	}
	buf.WriteString(r.Style.attrs())
	closeWithTitle(buf, "rect", r.Title)
}

// Circle is a circle centered on (CX, CY).
type Circle struct {
	CX, CY, R float64
	Title     string
	Style     Style
}

func (c Circle) writeTo(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"`, indent, Num(c.CX), Num(c.CY), Num(c.R))
	buf.WriteString(c.Style.attrs())
	closeWithTitle(buf, "circle", c.Title)
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          Style
}

func (l Line) writeTo(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		indent, Num(l.X1), Num(l.Y1), Num(l.X2), Num(l.Y2), l.Style.attrs())
}

// Path is an arbitrary outline given as SVG path data.
type Path struct {
	D     string
	Title string
	Style Style
}

func (p Path) writeTo(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<path d="%s"`, indent, EscapeXML(p.D))
	buf.WriteString(p.Style.attrs())
	closeWithTitle(buf, "path", p.Title)
}

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }

func points(ps []Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = Num(p.X) + "," + Num(p.Y)
	}
	return strings.Join(parts, " ")
}

// Polygon is a closed polyline.
type Polygon struct {
	Points []Point
	Title  string
	Style  Style
}

func (p Polygon) writeTo(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<polygon points="%s"`, indent, points(p.Points))
	buf.WriteString(p.Style.attrs())
	closeWithTitle(buf, "polygon", p.Title)
}

// Polyline is an open sequence of segments.
type Polyline struct {
	Points []Point
	Style  Style
}

func (p Polyline) writeTo(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<polyline points="%s"%s/>`+"\n", indent, points(p.Points), p.Style.attrs())
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a single line of text. Baseline defaults to "middle" so Y is
// the vertical center of the glyphs.
type Text struct {
	X, Y     float64
	Content  string
	Size     float64
	Anchor   Anchor
	Baseline string
	Rotate   float64
	Bold     bool
	Style    Style
}

func (t Text) writeTo(buf *bytes.Buffer, indent string) {
	anchor, baseline := t.Anchor, t.Baseline
	if anchor == "" {
		anchor = AnchorStart
	}
	if baseline == "" {
		baseline = "middle"
	}
	size := t.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	fmt.Fprintf(buf, `%s<text x="%s" y="%s" font-family="%s" font-size="%s" text-anchor="%s" dominant-baseline="%s"`,
		indent, Num(t.X), Num(t.Y), FontFamily, Num(size), anchor, EscapeXML(baseline))
	if t.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if t.Rotate != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, Num(t.Rotate), Num(t.X), Num(t.Y))
	}
	buf.WriteString(t.Style.attrs())
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(t.Content))
}

// Group wraps shapes in a <g> element.
type Group struct {
	ID       string
	Class    string
	Children []Shape
}

// Add appends shapes to the group.
func (g *Group) Add(shapes ...Shape) { g.Children = append(g.Children, shapes...) }

func (g *Group) writeTo(buf *bytes.Buffer, indent string) {
	buf.WriteString(indent + "<g")
	if g.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, EscapeXML(g.ID))
	}
	if g.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, EscapeXML(g.Class))
	}
	buf.WriteString(">\n")
	for _, c := range g.Children {
		c.writeTo(buf, indent+"  ")
	}
	buf.WriteString(indent + "</g>\n")
}

func closeWithTitle(buf *bytes.Buffer, tag, title string) {
	if title == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></%s>\n", EscapeXML(title), tag)
}
