package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/scale"
)

const (
	pieFill         = 0.9     // share of the available radius a pie uses
	fullTurn        = 0.99999 // fraction of a turn drawn for a single full slice
	minLabelPercent = 0.05
)

// polar returns the point at radius r and angle a, measured clockwise from
// twelve o'clock.
func polar(cx, cy, r, a float64) svg.Point {
	return svg.Point{X: cx + r*math.Sin(a), Y: cy - r*math.Cos(a)}
}

// arc returns the outline of a wedge between angles a0 and a1. A positive
// inner radius cuts a ring segment instead.
func arc(cx, cy, inner, outer, a0, a1 float64) string {
	if a1-a0 >= 2*math.Pi {
		a1 = a0 + 2*math.Pi*fullTurn
	}
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	p0, p1 := polar(cx, cy, outer, a0), polar(cx, cy, outer, a1)
	n := svg.Num
	if inner <= 0 {
		return fmt.Sprintf("M%s,%s L%s,%s A%s,%s 0 %d 1 %s,%s Z",
			n(cx), n(cy), n(p0.X), n(p0.Y), n(outer), n(outer), large, n(p1.X), n(p1.Y))
	}
	q1, q0 := polar(cx, cy, inner, a1), polar(cx, cy, inner, a0)
	return fmt.Sprintf("M%s,%s A%s,%s 0 %d 1 %s,%s L%s,%s A%s,%s 0 %d 0 %s,%s Z",
		n(p0.X), n(p0.Y), n(outer), n(outer), large, n(p1.X), n(p1.Y),
		n(q1.X), n(q1.Y), n(inner), n(inner), large, n(q0.X), n(q0.Y))
}

// sliceLabel names wedge i after the chart categories.
func sliceLabel(c *chart.Chart, i int) string {
	if i < len(c.Categories) {
		return c.Categories[i]
	}
	return "Slice " + strconv.Itoa(i+1)
}

// pieSlices computes the wedges of one series. Missing, zero and negative
// values get no wedge but keep their color.
func pieSlices(c *chart.Chart, s chart.Series, radius float64) []Slice {
	var total float64
	for _, v := range s.Values {
		if n := v.OrZero(); n > 0 {
			total += n
		}
	}
	if total == 0 {
		return nil
	}
	var out []Slice
	angle := 0.0
	for i, v := range s.Values {
		n := v.OrZero()
		if n <= 0 {
			continue
		}
		frac := n / total
		out = append(out, Slice{
			Series:   s.Name,
			Label:    sliceLabel(c, i),
			Value:    n,
			Fraction: frac,
			Start:    angle,
			End:      angle + frac*2*math.Pi,
			Radius:   radius,
			Color:    c.Color(i),
		})
		angle += frac * 2 * math.Pi
	}
	return out
}

// drawPie draws the wedges of one series centered on (cx, cy).
func (f *frame) drawPie(g *svg.Group, wedges []Slice, cx, cy, radius float64) {
	inner := radius * f.chart.InnerRadius
	if len(wedges) == 0 {
		g.Add(svg.Circle{CX: cx, CY: cy, R: radius, Style: svg.Style{Fill: "none", Stroke: gridColor}})
		return
	}
	for _, w := range wedges {
		g.Add(svg.Path{
			D:     arc(cx, cy, inner, radius, w.Start, w.End),
			Title: fmt.Sprintf("%s: %s (%.1f%%)", w.Label, strconv.FormatFloat(w.Value, 'g', -1, 64), w.Fraction*100),
			Style: svg.Style{Fill: w.Color, Stroke: "#fff", StrokeWidth: 1},
		})
	}
	for _, w := range wedges {
		if w.Fraction < minLabelPercent {
			continue
		}
		labelR := (inner + radius) / 2
		if inner == 0 {
			labelR = radius * 0.65
		}
		p := polar(cx, cy, labelR, (w.Start+w.End)/2)
		g.Add(svg.Text{
			X: p.X, Y: p.Y,
			Content: fmt.Sprintf("%.0f%%", w.Fraction*100),
			Size:    labelFontSize,
			Anchor:  svg.AnchorMiddle,
			Style:   svg.Style{Fill: "#fff"},
		})
	}
}

func (f *frame) categoryLegend(n int) {
	for i := 0; i < n; i++ {
		f.addLegend(sliceLabel(f.chart, i), f.chart.Color(i))
	}
}

// renderPie draws the first series as a pie, or a donut when the chart
// has an inner radius.
func renderPie(f *frame) error {
	c := f.chart
	if len(c.Series) == 0 {
		return nil
	}
	radius := math.Min(f.plot.Width, f.plot.Height) / 2 * pieFill
	wedges := pieSlices(c, c.Series[0], radius)
	g := &svg.Group{Class: string(c.Type)}
	f.drawPie(g, wedges, f.plot.CenterX(), f.plot.CenterY(), radius)
	f.doc.Add(g)

	f.result.Slices = wedges
	f.categoryLegend(len(c.Series[0].Values))
	return nil
}

// renderMultiPie draws one pie per series side by side, each titled with
// the series name.
func renderMultiPie(f *frame) error {
	c := f.chart
	n := len(c.Series)
	if n == 0 {
		return nil
	}
	cell := f.plot.Width / float64(n)
	radius := math.Min(cell, f.plot.Height-2*labelFontSize) / 2 * pieFill
	entries := 0
	for si, s := range c.Series {
		cx := f.plot.X + cell*(float64(si)+0.5)
		cy := f.plot.CenterY() - labelFontSize
		wedges := pieSlices(c, s, radius)
		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: "pie"}
		f.drawPie(g, wedges, cx, cy, radius)
		g.Add(svg.Text{
			X: cx, Y: cy + radius + 2*labelFontSize,
			Content: svg.TruncateLabel(s.Name, cell, labelFontSize),
			Size:    labelFontSize,
			Anchor:  svg.AnchorMiddle,
			Bold:    true,
			Style:   svg.Style{Fill: labelColor},
		})
		f.doc.Add(g)
		f.result.Slices = append(f.result.Slices, wedges...)
		entries = max(entries, len(s.Values))
	}
	f.categoryLegend(entries)
	return nil
}

// renderPolar draws a polar area chart: equal wedges whose radius grows
// linearly with the value on a nice scale starting at zero.
func renderPolar(f *frame) error {
	c := f.chart
	if len(c.Series) == 0 {
		return nil
	}
	s := c.Series[0]
	cx, cy := f.plot.CenterX(), f.plot.CenterY()
	radius := math.Min(f.plot.Width, f.plot.Height) / 2 * pieFill

	var nums []float64
	for _, v := range s.Values {
		nums = append(nums, math.Max(0, v.OrZero()))
	}
	lo, hi, _ := scale.Extent(nums)
	sc := scale.Nice(lo, hi, c.TickHint, scale.Options{ForceZero: true})

	f.drawRings(sc, cx, cy, radius)

	g := &svg.Group{Class: "polar"}
	step := 2 * math.Pi / float64(max(len(s.Values), 1))
	for i, n := range nums {
		r := (n - sc.Min) / (sc.Max - sc.Min) * radius
		w := Slice{
			Series:   s.Name,
			Label:    sliceLabel(c, i),
			Value:    n,
			Fraction: 1 / float64(len(nums)),
			Start:    float64(i) * step,
			End:      float64(i+1) * step,
			Radius:   r,
			Color:    c.Color(i),
		}
		f.result.Slices = append(f.result.Slices, w)
		if r <= 0 {
			continue
		}
		g.Add(svg.Path{
			D:     arc(cx, cy, 0, r, w.Start, w.End),
			Title: tooltip(s.Name, w.Label, n),
			Style: svg.Style{Fill: w.Color, FillOpacity: 0.75, Stroke: "#fff", StrokeWidth: 1},
		})
	}
	f.doc.Add(g)
	f.categoryLegend(len(s.Values))
	return nil
}

// drawRings draws one concentric guide ring per tick of sc with its label
// on the vertical spoke.
func (f *frame) drawRings(sc scale.Scale, cx, cy, radius float64) {
	g := &svg.Group{Class: "grid"}
	decimals := sc.Decimals()
	for _, t := range sc.Ticks() {
		r := (t - sc.Min) / (sc.Max - sc.Min) * radius
		if r <= 0 {
			continue
		}
		g.Add(
			svg.Circle{CX: cx, CY: cy, R: r, Style: svg.Style{Fill: "none", Stroke: gridColor}},
			svg.Text{
				X: cx + 3, Y: cy - r,
				Content: strconv.FormatFloat(t, 'f', decimals, 64),
				Size:    labelFontSize - 2,
				Style:   svg.Style{Fill: labelColor},
			},
		)
	}
	f.doc.Add(g)
}
