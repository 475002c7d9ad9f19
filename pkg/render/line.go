package render

import (
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/stack"
)

const (
	lineWidth    = 2.0
	markerRadius = 3.5
	areaOpacity  = 0.65
)

// renderLine draws one polyline per series. Missing values and unknown
// categories break the line.
func renderLine(f *frame) error {
	c := f.chart
	f.deriveCategories()
	values := make(map[string][]float64)
	f.categoryIndexes(values)
	f.numericValues(values)
	if err := f.prepareAxes(values); err != nil {
		return err
	}
	f.drawAxes()

	for si, s := range c.Series {
		cat, val, err := f.seriesAxes(s)
		if err != nil {
			return err
		}
		color := c.SeriesColor(si)
		d := f.decl(s.XAxis)
		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: "line"}
		var (
			seg     []svg.Point
			markers []svg.Shape
		)
		flush := func() {
			switch {
			case len(seg) > 1:
				g.Add(svg.Polyline{Points: seg, Style: svg.Style{Fill: "none", Stroke: color, StrokeWidth: lineWidth}})
			case len(seg) == 1 && !c.Markers:
				g.Add(svg.Circle{CX: seg[0].X, CY: seg[0].Y, R: lineWidth, Style: svg.Style{Fill: color}})
			}
			seg = nil
		}

		for i, v := range s.Values {
			if !f.inSlot(d, i) {
				continue
			}
			n, ok := f.resolve(val, v)
			if !ok {
				flush()
				continue
			}
			p := point(cat, float64(i), val, n)
			seg = append(seg, p)
			if c.Markers {
				markers = append(markers, svg.Circle{
					CX: p.X, CY: p.Y, R: markerRadius,
					Title: tooltip(s.Name, categoryName(d, i), n),
					Style: svg.Style{Fill: color, Stroke: "#fff", StrokeWidth: 1},
				})
			}
		}
		flush()
		g.Add(markers...)
		f.doc.Add(g)
	}
	f.seriesLegend()
	return nil
}

// renderArea fills the band under each series, or between its stacked
// bounds when the chart is stacked. Series paint in reverse declaration
// order so the first declared series is on top.
func renderArea(f *frame) error {
	c := f.chart
	f.deriveCategories()
	order := c.Type.StackOrder().Indices(len(c.Series))

	values := make(map[string][]float64)
	f.categoryIndexes(values)
	var (
		acc   *stack.Accumulator
		bands [][]stack.Band
	)
	if c.Stacked {
		acc, bands = f.stackSeries(order)
		stackValues(acc, values)
	} else {
		f.numericValues(values)
	}
	if err := f.prepareAxes(values); err != nil {
		return err
	}
	f.drawAxes()

	for _, si := range order {
		s := c.Series[si]
		cat, val, err := f.seriesAxes(s)
		if err != nil {
			return err
		}
		d := f.decl(s.XAxis)
		color := c.SeriesColor(si)
		zero := math.Min(math.Max(0, val.Min), val.Max)

		var top, bottom []svg.Point
		for i, v := range s.Values {
			if !f.inSlot(d, i) {
				continue
			}
			lo, hi := zero, v.OrZero()
			if acc != nil {
				lo, hi = bands[si][i].Start, bands[si][i].End
			} else if n, ok := f.resolve(val, v); ok {
				hi = n
			}
			top = append(top, point(cat, float64(i), val, hi))
			bottom = append(bottom, point(cat, float64(i), val, lo))
		}
		if len(top) == 0 {
			continue
		}
		slices.Reverse(bottom)

		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: "area"}
		style := svg.Style{Fill: f.fill(color), FillOpacity: areaOpacity}
		if c.Gradient {
			style.FillOpacity = 0
		}
		g.Add(
			svg.Polygon{Points: append(slices.Clone(top), bottom...), Title: s.Name, Style: style},
			svg.Polyline{Points: top, Style: svg.Style{Fill: "none", Stroke: color, StrokeWidth: lineWidth}},
		)
		f.doc.Add(g)
	}

	if acc != nil {
		f.result.Stacks = acc.Stacks()
	}
	f.seriesLegend()
	return nil
}
