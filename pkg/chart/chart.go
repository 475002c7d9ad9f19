package chart

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/dag"
	"github.com/matzehuels/stackchart/pkg/sankey"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// Type is a chart type.
type Type string

const (
	TypeBar       Type = "bar"
	TypeLine      Type = "line"
	TypeArea      Type = "area"
	TypePie       Type = "pie"
	TypeDonut     Type = "donut"
	TypeMultiPie  Type = "multipie"
	TypeBubble    Type = "bubble"
	TypeScatter   Type = "scatter"
	TypeRadar     Type = "radar"
	TypePolar     Type = "polar"
	TypeSankey    Type = "sankey"
	TypeWaterfall Type = "waterfall"
)

// Types lists every supported chart type.
var Types = []Type{
	TypeBar, TypeLine, TypeArea, TypePie, TypeDonut, TypeMultiPie,
	TypeBubble, TypeScatter, TypeRadar, TypePolar, TypeSankey, TypeWaterfall,
}

// ParseType parses a chart type name case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// Cartesian reports whether the type is drawn against x/y axes.
func (t Type) Cartesian() bool {
	switch t {
	case TypeBar, TypeLine, TypeArea, TypeBubble, TypeScatter, TypeWaterfall:
		return true
	}
	return false
}

// Stackable reports whether series of the type can be stacked.
func (t Type) Stackable() bool {
	return t == TypeBar || t == TypeArea || t == TypeRadar
}

// StackOrder returns the accumulation order used when stacking the type.
func (t Type) StackOrder() stack.Order {
	if t == TypeRadar {
		return stack.Declaration
	}
	return stack.Reverse
}

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Point is one scatter or bubble sample.
type Point struct {
	X     float64 `json:"x" toml:"x"`
	Y     float64 `json:"y" toml:"y"`
	Size  float64 `json:"size,omitempty" toml:"size"`
	Label string  `json:"label,omitempty" toml:"label"`
}

// Series is one named data series.
type Series struct {
	Name   string  `json:"name" toml:"name"`
	Values []Value `json:"values,omitempty" toml:"values"`
	Points []Point `json:"points,omitempty" toml:"points"`
	Color  string  `json:"color,omitempty" toml:"color"`
	XAxis  string  `json:"x_axis,omitempty" toml:"x_axis"`
	YAxis  string  `json:"y_axis,omitempty" toml:"y_axis"`
	Stack  string  `json:"stack,omitempty" toml:"stack"`
}

// Step is one waterfall category.
type Step struct {
	Label string         `json:"label" toml:"label"`
	Kind  stack.StepKind `json:"kind,omitempty" toml:"kind"`
	Value float64        `json:"value" toml:"value"`
}

// Node is a sankey node declaration. Nodes referenced only by links are
// created implicitly.
type Node struct {
	ID    string `json:"id" toml:"id"`
	Label string `json:"label,omitempty" toml:"label"`
	Color string `json:"color,omitempty" toml:"color"`
}

// Link is a sankey flow.
type Link struct {
	Source string  `json:"source" toml:"source"`
	Target string  `json:"target" toml:"target"`
	Value  float64 `json:"value" toml:"value"`
}

// Chart is the declarative description of one chart.
type Chart struct {
	Name  string `json:"name,omitempty" toml:"name"`
	Type  Type   `json:"type" toml:"type"`
	Title string `json:"title,omitempty" toml:"title"`

	Width      float64  `json:"width,omitempty" toml:"width"`
	Height     float64  `json:"height,omitempty" toml:"height"`
	Margin     *Margin  `json:"margin,omitempty" toml:"margin"`
	Background string   `json:"background,omitempty" toml:"background"`
	Palette    []string `json:"palette,omitempty" toml:"palette"`

	Horizontal  bool    `json:"horizontal,omitempty" toml:"horizontal"`
	Stacked     bool    `json:"stacked,omitempty" toml:"stacked"`
	Gradient    bool    `json:"gradient,omitempty" toml:"gradient"`
	Markers     bool    `json:"markers,omitempty" toml:"markers"`
	Legend      string  `json:"legend,omitempty" toml:"legend"` // right, bottom or none
	InnerRadius float64 `json:"inner_radius,omitempty" toml:"inner_radius"`
	TickHint    int     `json:"ticks,omitempty" toml:"ticks"`

	Categories []string           `json:"categories,omitempty" toml:"categories"`
	Axes       []axis.Declaration `json:"axes,omitempty" toml:"axes"`
	Series     []Series           `json:"series,omitempty" toml:"series"`
	Steps      []Step             `json:"steps,omitempty" toml:"steps"`
	Nodes      []Node             `json:"nodes,omitempty" toml:"nodes"`
	Links      []Link             `json:"links,omitempty" toml:"links"`
	Sankey     sankey.Config      `json:"sankey,omitempty" toml:"sankey"`
}

// PlotArea returns the canvas minus the margins. Call SetDefaults first.
func (c *Chart) PlotArea() axis.PlotArea {
	m := c.margin()
	return axis.PlotArea{
		X:      m.Left,
		Y:      m.Top,
		Width:  c.Width - m.Left - m.Right,
		Height: c.Height - m.Top - m.Bottom,
	}
}

func (c *Chart) margin() Margin {
	if c.Margin == nil {
		return DefaultMargin
	}
	return *c.Margin
}

// Color returns the palette color of the i-th series, cycling.
func (c *Chart) Color(i int) string {
	if len(c.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return c.Palette[i%len(c.Palette)]
}

// SeriesColor returns the series' own color or its palette color.
func (c *Chart) SeriesColor(i int) string {
	if i < len(c.Series) && c.Series[i].Color != "" {
		return c.Series[i].Color
	}
	return c.Color(i)
}

// Graph builds the sankey flow graph from Nodes and Links. Nodes that only
// appear in links are added in order of first reference.
func (c *Chart) Graph() (*dag.DAG, error) {
	g := dag.New(dag.Metadata{"chart": c.Name})
	for _, n := range c.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.Label, Color: n.Color}); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, l := range c.Links {
		if err := g.EnsureNode(l.Source); err != nil {
			return nil, fmt.Errorf("link source %q: %w", l.Source, err)
		}
		if err := g.EnsureNode(l.Target); err != nil {
			return nil, fmt.Errorf("link target %q: %w", l.Target, err)
		}
		if err := g.AddEdge(dag.Edge{From: l.Source, To: l.Target, Value: l.Value}); err != nil {
			return nil, fmt.Errorf("link %s -> %s: %w", l.Source, l.Target, err)
		}
	}
	return g, nil
}

// WaterfallSteps converts Steps for stack.Waterfall.
func (c *Chart) WaterfallSteps() []stack.Step {
	out := make([]stack.Step, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = stack.Step{Label: s.Label, Kind: s.Kind, Value: s.Value}
	}
	return out
}

// Axis returns the declaration with the given id.
func (c *Chart) Axis(id string) (axis.Declaration, bool) {
	for _, d := range c.Axes {
		if d.ID == id {
			return d, true
		}
	}
	return axis.Declaration{}, false
}

// DisplayName returns Name, Title or the type, whichever is set first.
func (c *Chart) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Title != "":
		return c.Title
	}
	return string(c.Type)
}
