package svg

import (
	"bytes"
	"fmt"
	"strconv"
)

// Stop is one color stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset  float64
	Color   string
	Opacity float64
}

// LinearGradient runs from (X1, Y1) to (X2, Y2) in bounding-box units.
type LinearGradient struct {
	X1, Y1, X2, Y2 float64
	Stops          []Stop
}

// Vertical returns a top-to-bottom gradient fading color from the given
// opacity at the top to transparent.
func Vertical(color string, opacity float64) LinearGradient {
	return LinearGradient{
		Y2: 1,
		Stops: []Stop{
			{Offset: 0, Color: color, Opacity: opacity},
			{Offset: 1, Color: color, Opacity: 0.05},
		},
	}
}

func (g LinearGradient) key() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%v,%v,%v,%v", g.X1, g.Y1, g.X2, g.Y2)
	for _, s := range g.Stops {
		fmt.Fprintf(&b, "|%v,%s,%v", s.Offset, s.Color, s.Opacity)
	}
	return b.String()
}

type gradients struct {
	ids   map[string]string
	order []LinearGradient
}

// Gradient registers g and returns a fill value referencing it. Registering
// an identical gradient twice returns the same reference.
func (d *Document) Gradient(g LinearGradient) string {
	if d.grads.ids == nil {
		d.grads.ids = make(map[string]string)
	}
	k := g.key()
	id, ok := d.grads.ids[k]
	if !ok {
		id = "grad-" + strconv.Itoa(len(d.grads.order))
		d.grads.ids[k] = id
		d.grads.order = append(d.grads.order, g)
	}
	return "url(#" + id + ")"
}

func (gs *gradients) writeTo(buf *bytes.Buffer) {
	if len(gs.order) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for i, g := range gs.order {
		fmt.Fprintf(buf, `    <linearGradient id="grad-%d" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			i, Num(g.X1), Num(g.Y1), Num(g.X2), Num(g.Y2))
		for _, s := range g.Stops {
			op := s.Opacity
			if op <= 0 {
				op = 1
			}
			fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
				Num(s.Offset), EscapeXML(s.Color), Num(op))
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}
