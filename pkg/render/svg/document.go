package svg

import (
	"bytes"
	"fmt"
)

// Document is an SVG canvas that shapes are added to in paint order.
type Document struct {
	Width      float64
	Height     float64
	Background string
	Title      string

	shapes []Shape
	grads  gradients
}

// New creates an empty document of the given pixel size.
func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

// Add appends shapes to the document.
func (d *Document) Add(shapes ...Shape) { d.shapes = append(d.shapes, shapes...) }

// Len returns the number of top-level shapes.
func (d *Document) Len() int { return len(d.shapes) }

// Shapes returns the top-level shapes in paint order.
func (d *Document) Shapes() []Shape { return d.shapes }

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		Num(d.Width), Num(d.Height), Num(d.Width), Num(d.Height))
	if d.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(d.Title))
	}
	d.grads.writeTo(&buf)
	if d.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(d.Background))
	}
	for _, s := range d.shapes {
		s.writeTo(&buf, "  ")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
