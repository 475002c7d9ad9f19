package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/render/svg"
)

const (
	scatterRadius   = 4.0
	minBubbleRadius = 2.0
	maxBubbleRadius = 40.0
)

// renderScatter draws every point of every series. Bubble charts scale
// the circle area with Point.Size relative to the largest size.
func renderScatter(f *frame) error {
	c := f.chart
	values := make(map[string][]float64)
	maxSize := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			values[s.XAxis] = append(values[s.XAxis], p.X)
			values[s.YAxis] = append(values[s.YAxis], p.Y)
			maxSize = math.Max(maxSize, math.Abs(p.Size))
		}
	}
	if err := f.prepareAxes(values); err != nil {
		return err
	}
	f.drawAxes()

	maxR := math.Min(maxBubbleRadius, math.Min(f.plot.Width, f.plot.Height)/10)
	for si, s := range c.Series {
		xa, ya, err := f.seriesAxes(s)
		if err != nil {
			return err
		}
		color := c.SeriesColor(si)
		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: string(c.Type)}
		for _, p := range s.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				continue
			}
			pt := point(xa, p.X, ya, p.Y)
			r := scatterRadius
			if c.Type == chart.TypeBubble {
				r = minBubbleRadius
				if maxSize > 0 {
					r = math.Max(minBubbleRadius, math.Sqrt(math.Abs(p.Size)/maxSize)*maxR)
				}
			}
			g.Add(svg.Circle{
				CX: pt.X, CY: pt.Y, R: r,
				Title: pointTitle(s.Name, p),
				Style: svg.Style{Fill: color, FillOpacity: 0.7, Stroke: color, StrokeWidth: 1},
			})
		}
		f.doc.Add(g)
	}
	f.seriesLegend()
	return nil
}

func pointTitle(series string, p chart.Point) string {
	name := series
	if p.Label != "" {
		name = p.Label
	}
	t := fmt.Sprintf("%s: (%g, %g)", name, p.X, p.Y)
	if p.Size != 0 {
		t += fmt.Sprintf(" size %g", p.Size)
	}
	return t
}
