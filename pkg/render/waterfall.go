package render

import (
	"strconv"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// Waterfall bar colors by step kind.
const (
	increaseColor = "#59a14f"
	decreaseColor = "#e15759"
	totalColor    = "#4e79a7"
)

func stepColor(k stack.StepKind) string {
	switch k {
	case stack.StepIncrease:
		return increaseColor
	case stack.StepDecrease:
		return decreaseColor
	}
	return totalColor
}

// renderWaterfall resolves the steps into running-total bars, draws them
// on the first series' axes (x and y by default) and joins adjacent bars
// with dashed connectors.
func renderWaterfall(f *frame) error {
	c := f.chart
	bars, conns := stack.Waterfall(c.WaterfallSteps())
	f.result.Waterfall = &Waterfall{Bars: bars, Connectors: conns}

	lo, hi := stack.WaterfallExtent(bars)
	idx := make([]float64, len(bars))
	for i := range idx {
		idx[i] = float64(i)
	}
	if err := f.prepareAxes(map[string][]float64{"x": idx, "y": {lo, hi}}); err != nil {
		return err
	}
	f.drawAxes()

	cat, val, err := f.seriesAxes(chart.Series{Name: "steps", XAxis: "x", YAxis: "y"})
	if err != nil {
		return err
	}

	type span struct{ start, width float64 }
	spans := make([]span, len(bars))
	g := &svg.Group{Class: "waterfall"}
	for i, b := range bars {
		s, w := slot(cat, i, len(bars))
		spans[i] = span{start: s + w*groupPadding, width: w * (1 - 2*groupPadding)}
		r := band(cat, spans[i].start, spans[i].width, val.ValueToCoordinate(b.Start), val.ValueToCoordinate(b.End))
		r.Title = b.Label + ": " + strconv.FormatFloat(b.Value, 'g', -1, 64)
		r.Style = svg.Style{Fill: f.fill(stepColor(b.Kind))}
		g.Add(r)
	}

	dash := svg.Style{Stroke: axisColor, StrokeWidth: 1, Dash: "3,3"}
	for _, cn := range conns {
		from, to := spans[cn.From], spans[cn.To]
		p := val.ValueToCoordinate(cn.Level)
		l := svg.Line{Style: dash}
		if cat.Direction == axis.Horizontal {
			l.X1, l.Y1, l.X2, l.Y2 = from.start+from.width, p, to.start, p
		} else {
			l.X1, l.Y1, l.X2, l.Y2 = p, from.start+from.width, p, to.start
		}
		g.Add(l)
	}
	f.doc.Add(g)
	return nil
}
