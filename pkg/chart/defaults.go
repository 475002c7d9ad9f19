package chart

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/scale"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// Default canvas parameters.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultInnerRadius = 0.5
	DefaultLegendWidth = 130.0
)

// Legend positions.
const (
	LegendRight  = "right"
	LegendBottom = "bottom"
	LegendNone   = "none"
)

// DefaultMargin is used when a chart declares no margin.
var DefaultMargin = Margin{Top: 50, Right: 30, Bottom: 60, Left: 70}

// DefaultPalette colors series in declaration order.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// SetDefaults resolves every optional field in one place. Renderers rely
// on it having run: series have axis ids, stack groups and names, and
// cartesian charts have an "x" and a "y" axis.
func (c *Chart) SetDefaults() {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.TickHint <= 0 {
		c.TickHint = scale.DefaultTickHint
	}
	if c.Type == TypeDonut && c.InnerRadius <= 0 {
		c.InnerRadius = DefaultInnerRadius
	}
	if c.Legend == "" {
		c.Legend = LegendNone
		if c.legendEntries() > 1 {
			c.Legend = LegendRight
		}
	}
	if c.Margin == nil {
		m := DefaultMargin
		switch c.Legend {
		case LegendRight:
			m.Right += DefaultLegendWidth
		case LegendBottom:
			m.Bottom += 30
		}
		c.Margin = &m
	}

	for i := range c.Series {
		s := &c.Series[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("Series %d", i+1)
		}
		if s.XAxis == "" {
			s.XAxis = "x"
		}
		if s.YAxis == "" {
			s.YAxis = "y"
		}
		if s.Stack == "" {
			s.Stack = stack.DefaultGroup
		}
	}

	if c.Type.Cartesian() {
		c.defaultAxes()
	}
	for i := range c.Axes {
		if c.Axes[i].TickHint <= 0 {
			c.Axes[i].TickHint = c.TickHint
		}
	}
	c.Sankey.SetDefaults()
}

// legendEntries returns how many legend rows the chart would draw.
func (c *Chart) legendEntries() int {
	switch c.Type {
	case TypePie, TypeDonut, TypePolar, TypeMultiPie:
		if len(c.Series) > 0 {
			return len(c.Series[0].Values)
		}
		return 0
	case TypeSankey, TypeWaterfall:
		return 0
	}
	return len(c.Series)
}

func (c *Chart) defaultAxes() {
	categories := c.Categories
	if c.Type == TypeWaterfall && len(categories) == 0 {
		for _, s := range c.Steps {
			categories = append(categories, s.Label)
		}
	}

	x := axis.Declaration{ID: "x", Kind: axis.Category, Categories: categories}
	if c.Type == TypeScatter || c.Type == TypeBubble {
		x = axis.Declaration{ID: "x", Kind: axis.Numeric}
	}
	y := axis.Declaration{ID: "y", Kind: axis.Numeric}
	switch c.Type {
	case TypeBar, TypeArea, TypeWaterfall:
		y.BeginAtZero = true
	}

	if i := c.axisIndex("x"); i < 0 {
		c.Axes = append([]axis.Declaration{x}, c.Axes...)
	} else if c.Axes[i].Kind.IsDiscrete() && len(c.Axes[i].Categories) == 0 {
		c.Axes[i].Categories = categories
	}
	if c.axisIndex("y") < 0 {
		c.Axes = append(c.Axes, y)
	}
}

func (c *Chart) axisIndex(id string) int {
	for i, d := range c.Axes {
		if d.ID == id {
			return i
		}
	}
	return -1
}
