package render

import (
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/render/svg"
)

const (
	legendSwatch = 12.0
	legendRow    = 20.0
	legendGap    = 24.0
)

type legendEntry struct {
	label string
	color string
}

func (f *frame) addLegend(label, color string) {
	f.legend = append(f.legend, legendEntry{label: label, color: color})
}

// seriesLegend adds one entry per series.
func (f *frame) seriesLegend() {
	for i, s := range f.chart.Series {
		f.addLegend(s.Name, f.chart.SeriesColor(i))
	}
}

// drawLegend lays entries out in a column right of the plot area or in a
// wrapping row below it.
func (f *frame) drawLegend() {
	if len(f.legend) == 0 || f.chart.Legend == chart.LegendNone {
		return
	}
	g := &svg.Group{Class: "legend"}
	text := svg.Style{Fill: labelColor}

	switch f.chart.Legend {
	case chart.LegendBottom:
		x, y := f.plot.X, f.chart.Height-legendRow
		for _, e := range f.legend {
			w := legendSwatch + 6 + svg.TextWidth(e.label, labelFontSize)
			if x+w > f.chart.Width && x > f.plot.X {
				x, y = f.plot.X, y+legendRow
			}
			g.Add(
				svg.Rect{X: x, Y: y - legendSwatch/2, W: legendSwatch, H: legendSwatch, RX: 2, Style: svg.Style{Fill: e.color}},
				svg.Text{X: x + legendSwatch + 6, Y: y, Content: e.label, Size: labelFontSize, Style: text},
			)
			x += w + legendGap
		}
	default:
		x := f.chart.Width - chart.DefaultLegendWidth + 10
		avail := chart.DefaultLegendWidth - legendSwatch - 16
		for i, e := range f.legend {
			y := f.plot.Y + float64(i)*legendRow
			g.Add(
				svg.Rect{X: x, Y: y - legendSwatch/2, W: legendSwatch, H: legendSwatch, RX: 2, Style: svg.Style{Fill: e.color}},
				svg.Text{X: x + legendSwatch + 6, Y: y, Content: svg.TruncateLabel(e.label, avail, labelFontSize), Size: labelFontSize, Style: text},
			)
		}
	}
	f.doc.Add(g)
}
