package render

import (
	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/render/svg"
)

const (
	tickLength  = 5.0
	tickGap     = 8.0
	titleGap    = 40.0
	axisColor   = "#666"
	gridColor   = "#e5e5e5"
	labelColor  = "#444"
	titleOffset = 50.0
)

// drawAxes draws gridlines for the innermost continuous axes, then every
// axis line with its ticks, labels and title.
func (f *frame) drawAxes() {
	grid := &svg.Group{Class: "grid"}
	lines := &svg.Group{Class: "axes"}
	for _, a := range f.axes.Axes() {
		if !a.Kind().IsDiscrete() && a.Position.Offset == 0 {
			f.gridlines(grid, a)
		}
		f.axisLine(lines, a)
	}
	f.doc.Add(grid, lines)
}

func (f *frame) gridlines(g *svg.Group, a *axis.Axis) {
	style := svg.Style{Stroke: gridColor, StrokeWidth: 1}
	for _, t := range a.Ticks {
		if a.Direction == axis.Horizontal {
			g.Add(svg.Line{X1: t.Pixel, Y1: f.plot.Y, X2: t.Pixel, Y2: f.plot.Bottom(), Style: style})
		} else {
			g.Add(svg.Line{X1: f.plot.X, Y1: t.Pixel, X2: f.plot.Right(), Y2: t.Pixel, Style: style})
		}
	}
}

func (f *frame) axisLine(g *svg.Group, a *axis.Axis) {
	p := a.Position
	g.Add(svg.Line{X1: p.X1, Y1: p.Y1, X2: p.X2, Y2: p.Y2, Style: svg.Style{Stroke: axisColor, StrokeWidth: 1}})

	mark := svg.Style{Stroke: axisColor, StrokeWidth: 1}
	text := svg.Style{Fill: labelColor}
	for _, t := range a.Ticks {
		label := t.Label
		switch p.Side {
		case axis.Bottom, axis.Top:
			dir := 1.0
			if p.Side == axis.Top {
				dir = -1
			}
			if a.Kind().IsDiscrete() && a.CategoryExtent > 0 {
				label = svg.TruncateLabel(label, a.CategoryExtent, labelFontSize)
			}
			g.Add(
				svg.Line{X1: t.Pixel, Y1: p.Y1, X2: t.Pixel, Y2: p.Y1 + dir*tickLength, Style: mark},
				svg.Text{X: t.Pixel, Y: p.Y1 + dir*(tickLength+tickGap+2), Content: label, Size: labelFontSize, Anchor: svg.AnchorMiddle, Style: text},
			)
		default:
			dir, anchor := -1.0, svg.AnchorEnd
			if p.Side == axis.Right {
				dir, anchor = 1, svg.AnchorStart
			}
			g.Add(
				svg.Line{X1: p.X1, Y1: t.Pixel, X2: p.X1 + dir*tickLength, Y2: t.Pixel, Style: mark},
				svg.Text{X: p.X1 + dir*(tickLength+tickGap), Y: t.Pixel, Content: label, Size: labelFontSize, Anchor: anchor, Style: text},
			)
		}
	}

	if a.Decl.Title == "" {
		return
	}
	title := svg.Text{Content: a.Decl.Title, Size: labelFontSize + 1, Anchor: svg.AnchorMiddle, Bold: true, Style: text}
	switch p.Side {
	case axis.Bottom:
		title.X, title.Y = f.plot.CenterX(), p.Y1+titleGap
	case axis.Top:
		title.X, title.Y = f.plot.CenterX(), p.Y1-titleGap
	case axis.Left:
		title.X, title.Y, title.Rotate = p.X1-titleOffset, f.plot.CenterY(), -90
	case axis.Right:
		title.X, title.Y, title.Rotate = p.X1+titleOffset, f.plot.CenterY(), 90
	}
	g.Add(title)
}
