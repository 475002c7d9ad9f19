package render

import (
	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/sankey"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// Result is the output of one render call.
type Result struct {
	Chart  string         `json:"chart"`
	Type   chart.Type     `json:"type"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Plot   axis.PlotArea  `json:"plot"`
	SVG    []byte         `json:"-"`
	Axes   []axis.Output  `json:"axes,omitempty"`
	Stacks []stack.Stack  `json:"stacks,omitempty"`
	Slices []Slice        `json:"slices,omitempty"`
	Sankey *sankey.Result `json:"sankey,omitempty"`

	Waterfall *Waterfall `json:"waterfall,omitempty"`

	// Skipped counts values dropped because their category label is not
	// on the axis.
	Skipped int `json:"skipped,omitempty"`
}

// Slice is one wedge of a pie, donut, multipie or polar chart. Angles are
// in radians, clockwise from twelve o'clock.
type Slice struct {
	Series   string  `json:"series,omitempty"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Fraction float64 `json:"fraction"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`
}

// Waterfall is the resolved waterfall geometry in value units.
type Waterfall struct {
	Bars       []stack.Bar       `json:"bars"`
	Connectors []stack.Connector `json:"connectors"`
}

type renderer func(f *frame) error

var renderers = map[chart.Type]renderer{
	chart.TypeBar:       renderBar,
	chart.TypeLine:      renderLine,
	chart.TypeArea:      renderArea,
	chart.TypePie:       renderPie,
	chart.TypeDonut:     renderPie,
	chart.TypeMultiPie:  renderMultiPie,
	chart.TypePolar:     renderPolar,
	chart.TypeScatter:   renderScatter,
	chart.TypeBubble:    renderScatter,
	chart.TypeRadar:     renderRadar,
	chart.TypeSankey:    renderSankey,
	chart.TypeWaterfall: renderWaterfall,
}

// Render draws c. Defaults are applied to c and it is validated first.
// Every call builds its own document, axes and accumulators, so Render is
// safe to call concurrently on distinct charts.
func Render(c *chart.Chart) (*Result, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil chart")
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	draw, ok := renderers[c.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidChartType, "no renderer for chart type %q", c.Type)
	}

	f := newFrame(c)
	f.drawTitle()
	if err := draw(f); err != nil {
		return nil, err
	}
	f.drawLegend()

	if f.axes != nil {
		f.result.Axes = f.axes.Outputs()
	}
	f.result.SVG = f.doc.Bytes()
	return f.result, nil
}
