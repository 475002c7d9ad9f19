package render

import (
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/scale"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// radarAxis is the stack axis id used for radar charts, which have no
// cartesian axes.
const radarAxis = "r"

// renderRadar draws one closed polygon per series over a spoke per
// category. Stacked radars accumulate in declaration order and fill the
// band between each series' inner and outer ring.
func renderRadar(f *frame) error {
	c := f.chart
	spokes := len(c.Categories)
	for _, s := range c.Series {
		spokes = max(spokes, len(s.Values))
	}
	if spokes == 0 {
		return nil
	}
	cx, cy := f.plot.CenterX(), f.plot.CenterY()
	radius := math.Min(f.plot.Width, f.plot.Height) / 2 * 0.8
	step := 2 * math.Pi / float64(spokes)

	order := c.Type.StackOrder().Indices(len(c.Series))
	var (
		acc   *stack.Accumulator
		bands = make([][]stack.Band, len(c.Series))
		nums  []float64
	)
	if c.Stacked {
		acc = stack.NewAccumulator()
		for _, si := range order {
			s := c.Series[si]
			bands[si] = make([]stack.Band, len(s.Values))
			for i, v := range s.Values {
				key := stack.Key{Category: sliceLabel(c, i), Group: s.Stack, Axis: radarAxis}
				bands[si][i] = acc.Accumulate(key, s.Name, v.OrZero())
			}
		}
		lo, hi := acc.Extent()
		nums = []float64{lo, hi}
	} else {
		for _, s := range c.Series {
			for _, v := range s.Values {
				nums = append(nums, v.OrZero())
			}
		}
	}
	lo, hi, _ := scale.Extent(nums)
	sc := scale.Nice(lo, hi, c.TickHint, scale.Options{ForceZero: true})
	r := func(v float64) float64 {
		return math.Max(0, (v-sc.Min)/(sc.Max-sc.Min)*radius)
	}

	f.drawWeb(sc, spokes, cx, cy, radius)

	for _, si := range order {
		s := c.Series[si]
		color := c.SeriesColor(si)
		outer := make([]svg.Point, spokes)
		inner := make([]svg.Point, spokes)
		vals := make([]float64, spokes)
		for i := 0; i < spokes; i++ {
			lo, hi := sc.Min, sc.Min
			switch {
			case acc != nil && i < len(bands[si]):
				lo, hi = bands[si][i].Start, bands[si][i].End
				vals[i] = bands[si][i].Value
			case acc == nil && i < len(s.Values):
				hi = s.Values[i].OrZero()
				vals[i] = hi
			}
			outer[i] = polar(cx, cy, r(hi), float64(i)*step)
			inner[i] = polar(cx, cy, r(lo), float64(i)*step)
		}

		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: "radar"}
		shape := outer
		if acc != nil {
			slices.Reverse(inner)
			shape = append(slices.Clone(outer), inner...)
		}
		g.Add(svg.Polygon{Points: shape, Title: s.Name, Style: svg.Style{Fill: color, FillOpacity: 0.3}})
		g.Add(svg.Polygon{Points: outer, Style: svg.Style{Fill: "none", Stroke: color, StrokeWidth: lineWidth}})
		if c.Markers {
			for i, p := range outer {
				g.Add(svg.Circle{CX: p.X, CY: p.Y, R: markerRadius, Title: tooltip(s.Name, sliceLabel(c, i), vals[i]), Style: svg.Style{Fill: color}})
			}
		}
		f.doc.Add(g)
	}

	if acc != nil {
		f.result.Stacks = acc.Stacks()
	}
	f.seriesLegend()
	return nil
}

// drawWeb draws the polygon rings, spokes and category labels of a radar.
func (f *frame) drawWeb(sc scale.Scale, spokes int, cx, cy, radius float64) {
	g := &svg.Group{Class: "grid"}
	step := 2 * math.Pi / float64(spokes)
	style := svg.Style{Fill: "none", Stroke: gridColor}
	for _, t := range sc.Ticks() {
		rr := (t - sc.Min) / (sc.Max - sc.Min) * radius
		if rr <= 0 {
			continue
		}
		ring := make([]svg.Point, spokes)
		for i := range ring {
			ring[i] = polar(cx, cy, rr, float64(i)*step)
		}
		g.Add(
			svg.Polygon{Points: ring, Style: style},
			svg.Text{X: cx + 3, Y: cy - rr, Content: strconv.FormatFloat(t, 'f', sc.Decimals(), 64), Size: labelFontSize - 2, Style: svg.Style{Fill: labelColor}},
		)
	}
	for i := 0; i < spokes; i++ {
		a := float64(i) * step
		end := polar(cx, cy, radius, a)
		g.Add(svg.Line{X1: cx, Y1: cy, X2: end.X, Y2: end.Y, Style: svg.Style{Stroke: gridColor}})

		lp := polar(cx, cy, radius+tickGap+6, a)
		anchor := svg.AnchorMiddle
		switch s := math.Sin(a); {
		case s > 0.1:
			anchor = svg.AnchorStart
		case s < -0.1:
			anchor = svg.AnchorEnd
		}
		g.Add(svg.Text{X: lp.X, Y: lp.Y, Content: sliceLabel(f.chart, i), Size: labelFontSize, Anchor: anchor, Style: svg.Style{Fill: labelColor}})
	}
	f.doc.Add(g)
}
