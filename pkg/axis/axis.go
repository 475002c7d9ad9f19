package axis

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/scale"
)

// StackOffset is the distance between axes sharing the same side.
const StackOffset = 40.0

// DefaultTimeLayout formats Time axis labels when no layout is declared.
const DefaultTimeLayout = "2006-01-02"

// PlotArea is the pixel rectangle data is drawn into.
type PlotArea struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate rejects areas that cannot be mapped to pixels.
func (p PlotArea) Validate() error {
	return errors.ValidatePlotArea(p.Width, p.Height)
}

// Right returns the x coordinate of the right edge.
func (p PlotArea) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the bottom edge.
func (p PlotArea) Bottom() float64 { return p.Y + p.Height }

// CenterX returns the horizontal center.
func (p PlotArea) CenterX() float64 { return p.X + p.Width/2 }

// CenterY returns the vertical center.
func (p PlotArea) CenterY() float64 { return p.Y + p.Height/2 }

// Declaration is the user-facing description of an axis.
type Declaration struct {
	ID          string   `json:"id" toml:"id"`
	Kind        Kind     `json:"kind" toml:"kind"`
	Min         *float64 `json:"min,omitempty" toml:"min"`
	Max         *float64 `json:"max,omitempty" toml:"max"`
	TickHint    int      `json:"ticks,omitempty" toml:"ticks"`
	Categories  []string `json:"categories,omitempty" toml:"categories"`
	Side        Side     `json:"side,omitempty" toml:"side"`
	BeginAtZero bool     `json:"begin_at_zero,omitempty" toml:"begin_at_zero"`
	Format      string   `json:"format,omitempty" toml:"format"`
	TimeLayout  string   `json:"time_layout,omitempty" toml:"time_layout"`
	Title       string   `json:"title,omitempty" toml:"title"`
}

// Tick is one labelled position along an axis.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pixel float64 `json:"pixel"`
}

// Position locates the axis line relative to the plot area.
type Position struct {
	Side   Side    `json:"side"`
	Offset float64 `json:"offset"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Axis holds the computed state of one axis. It is built in two phases:
// New records the declaration, Prepare derives bounds, ticks and position
// from the values plotted against it. After Prepare the axis is read-only.
//
// The zero value is not usable; use New.
type Axis struct {
	Decl Declaration

	Direction      Direction
	Min, Max       float64
	Interval       float64
	ScaleFactor    float64 // pixels per unit (per decade on Log axes)
	CategoryExtent float64 // pixels per category slot
	Categories     []string
	Ticks          []Tick
	Position       Position

	plot     PlotArea
	offset   float64
	side     Side
	prepared bool
}

// New creates an unprepared axis for decl.
func New(decl Declaration) *Axis {
	return &Axis{Decl: decl}
}

// ID returns the declared axis id.
func (a *Axis) ID() string { return a.Decl.ID }

// Kind returns the declared kind.
func (a *Axis) Kind() Kind { return a.Decl.Kind }

// Prepared reports whether Prepare has completed.
func (a *Axis) Prepared() bool { return a.prepared }

// Prepare computes bounds, ticks, scale factor and position from the values
// plotted on this axis. NaN values are ignored. For discrete kinds values
// are category indexes and only widen the category count when no
// categories were declared.
//
// horizontal swaps X and Y pixel directions for the whole render call; it
// must be the same for every axis of a chart.
//
// Prepare fails only for an invalid plot area.
func (a *Axis) Prepare(values []float64, plot PlotArea, horizontal bool) error {
	if err := plot.Validate(); err != nil {
		return fmt.Errorf("axis %s: %w", a.Decl.ID, err)
	}
	a.plot = plot
	a.Direction = DirectionOf(DimensionOf(a.Decl.ID), horizontal)

	switch {
	case a.Decl.Kind.IsDiscrete():
		a.prepareCategories(values)
	case a.Decl.Kind == Log:
		a.prepareLog(values)
	default:
		a.prepareLinear(values)
	}

	a.place()
	for i := range a.Ticks {
		a.Ticks[i].Pixel = a.ValueToCoordinate(a.Ticks[i].Value)
	}
	a.prepared = true
	return nil
}

func (a *Axis) extent() float64 {
	if a.Direction == Vertical {
		return a.plot.Height
	}
	return a.plot.Width
}

func (a *Axis) prepareLinear(values []float64) {
	min, max, ok := scale.Extent(values)
	if !ok {
		min, max = 0, 1
	}
	s := scale.Nice(min, max, a.Decl.TickHint, scale.Options{
		ForceZero:   a.Decl.BeginAtZero,
		DeclaredMin: a.Decl.Min,
		DeclaredMax: a.Decl.Max,
	})
	a.Min, a.Max, a.Interval = s.Min, s.Max, s.Interval
	a.ScaleFactor = a.extent() / (a.Max - a.Min)

	ticks := s.Ticks()
	a.Ticks = make([]Tick, len(ticks))
	decimals := s.Decimals()
	for i, v := range ticks {
		a.Ticks[i] = Tick{Value: v, Label: a.label(v, decimals)}
	}
}

func (a *Axis) prepareLog(values []float64) {
	min, max, ok := scale.Extent(values)
	if !ok {
		min, max = 1, 10
	}
	if a.Decl.Min != nil {
		min = *a.Decl.Min
	}
	if a.Decl.Max != nil {
		max = *a.Decl.Max
	}
	s := scale.Log(min, max)
	a.Min, a.Max, a.Interval = s.Min, s.Max, s.Interval
	a.ScaleFactor = a.extent() / (scale.Log10(a.Max) - scale.Log10(a.Min))

	decades := scale.Decades(s)
	a.Ticks = make([]Tick, len(decades))
	for i, v := range decades {
		a.Ticks[i] = Tick{Value: v, Label: a.label(v, 0)}
		if v < 1 {
			a.Ticks[i].Label = a.label(v, int(math.Round(-math.Log10(v))))
		}
	}
}

func (a *Axis) prepareCategories(values []float64) {
	a.Categories = a.Decl.Categories
	if len(a.Categories) == 0 {
		if _, max, ok := scale.Extent(values); ok && max >= 0 {
			n := int(math.Floor(max)) + 1
			a.Categories = make([]string, n)
			for i := range a.Categories {
				a.Categories[i] = strconv.Itoa(i + 1)
			}
		}
	}

	n := len(a.Categories)
	a.Min, a.Max, a.Interval = 0, float64(max(n, 1)), 1
	a.CategoryExtent = 0
	if n > 0 {
		a.CategoryExtent = a.extent() / float64(n)
	}
	a.ScaleFactor = a.CategoryExtent

	a.Ticks = make([]Tick, n)
	for i, c := range a.Categories {
		a.Ticks[i] = Tick{Value: float64(i), Label: c}
	}
}

func (a *Axis) label(v float64, decimals int) string {
	switch {
	case a.Decl.Kind == Time:
		layout := a.Decl.TimeLayout
		if layout == "" {
			layout = DefaultTimeLayout
		}
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(layout)
	case a.Decl.Format != "":
		return fmt.Sprintf(a.Decl.Format, v)
	default:
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
}

// place resolves the side and computes the axis line coordinates.
func (a *Axis) place() {
	side := a.side
	if side == SideAuto {
		side = a.Decl.Side
	}
	if side == SideAuto || side.Horizontal() != (a.Direction == Horizontal) {
		side = defaultSide(a.Direction)
	}
	a.side = side

	p, off := a.plot, a.offset
	pos := Position{Side: side, Offset: off}
	switch side {
	case Bottom:
		pos.X1, pos.X2 = p.X, p.Right()
		pos.Y1, pos.Y2 = p.Bottom()+off, p.Bottom()+off
	case Top:
		pos.X1, pos.X2 = p.X, p.Right()
		pos.Y1, pos.Y2 = p.Y-off, p.Y-off
	case Left:
		pos.X1, pos.X2 = p.X-off, p.X-off
		pos.Y1, pos.Y2 = p.Y, p.Bottom()
	case Right:
		pos.X1, pos.X2 = p.Right()+off, p.Right()+off
		pos.Y1, pos.Y2 = p.Y, p.Bottom()
	}
	a.Position = pos
}

func defaultSide(d Direction) Side {
	if d == Vertical {
		return Left
	}
	return Bottom
}

// ValueToCoordinate maps a data value to a pixel coordinate along the axis.
//
// Linear kinds interpolate between Min and Max; Log interpolates log10 of
// the value, floored at scale.LogEpsilon. Vertical axes are inverted so
// larger values sit higher. Discrete kinds treat v as a category index and
// return the center of its slot.
func (a *Axis) ValueToCoordinate(v float64) float64 {
	origin := a.plot.X
	if a.Direction == Vertical {
		origin = a.plot.Y
	}

	if a.Decl.Kind.IsDiscrete() {
		return origin + (v+0.5)*a.CategoryExtent
	}

	var d float64
	if a.Decl.Kind == Log {
		d = (scale.Log10(v) - scale.Log10(a.Min)) * a.ScaleFactor
	} else {
		d = (v - a.Min) * a.ScaleFactor
	}
	if a.Direction == Vertical {
		return a.plot.Bottom() - d
	}
	return origin + d
}

// CategoryIndex returns the slot index of label. ok is false when the
// label is not one of the axis categories; callers decide whether to skip
// or default such points.
func (a *Axis) CategoryIndex(label string) (int, bool) {
	for i, c := range a.Categories {
		if c == label {
			return i, true
		}
	}
	return 0, false
}

// CategoryCoordinate is CategoryIndex followed by ValueToCoordinate.
func (a *Axis) CategoryCoordinate(label string) (float64, bool) {
	i, ok := a.CategoryIndex(label)
	if !ok {
		return 0, false
	}
	return a.ValueToCoordinate(float64(i)), true
}

// SlotStart returns the pixel where category slot i begins.
func (a *Axis) SlotStart(i int) float64 {
	return a.ValueToCoordinate(float64(i)) - a.CategoryExtent/2
}

// Baseline returns the pixel coordinate of zero clamped into the axis
// range. Bars and areas grow from it.
func (a *Axis) Baseline() float64 {
	if a.Decl.Kind == Log {
		return a.ValueToCoordinate(a.Min)
	}
	return a.ValueToCoordinate(math.Min(math.Max(0, a.Min), a.Max))
}

// Length returns the pixel extent of the axis.
func (a *Axis) Length() float64 { return a.extent() }

// Output is the serializable view of a prepared axis.
type Output struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Direction   Direction `json:"direction"`
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	Interval    float64   `json:"interval"`
	ScaleFactor float64   `json:"scale_factor"`
	Categories  []string  `json:"categories,omitempty"`
	Ticks       []Tick    `json:"ticks"`
	Position    Position  `json:"position"`
}

// Output returns the computed axis state.
func (a *Axis) Output() Output {
	return Output{
		ID:          a.Decl.ID,
		Kind:        a.Decl.Kind,
		Direction:   a.Direction,
		Min:         a.Min,
		Max:         a.Max,
		Interval:    a.Interval,
		ScaleFactor: a.ScaleFactor,
		Categories:  a.Categories,
		Ticks:       a.Ticks,
		Position:    a.Position,
	}
}
