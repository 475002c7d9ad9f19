package render

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/svg"
)

const (
	titleFontSize = 16.0
	labelFontSize = 11.0
	groupPadding  = 0.1 // fraction of a category slot left empty on each side
)

// frame is the per-call render state.
type frame struct {
	chart  *chart.Chart
	doc    *svg.Document
	plot   axis.PlotArea
	decls  []axis.Declaration
	axes   *axis.Set
	result *Result
	legend []legendEntry
}

func newFrame(c *chart.Chart) *frame {
	doc := svg.New(c.Width, c.Height)
	doc.Background = c.Background
	doc.Title = c.Title
	plot := c.PlotArea()
	return &frame{
		chart: c,
		doc:   doc,
		plot:  plot,
		decls: slices.Clone(c.Axes),
		result: &Result{
			Chart:  c.DisplayName(),
			Type:   c.Type,
			Width:  c.Width,
			Height: c.Height,
			Plot:   plot,
		},
	}
}

func (f *frame) drawTitle() {
	if f.chart.Title == "" {
		return
	}
	f.doc.Add(svg.Text{
		X:       f.chart.Width / 2,
		Y:       f.plot.Y / 2,
		Content: f.chart.Title,
		Size:    titleFontSize,
		Anchor:  svg.AnchorMiddle,
		Bold:    true,
		Style:   svg.Style{Fill: "#333"},
	})
}

// deriveCategories fills String axes that declare no categories with the
// distinct labels plotted against them, in first-seen order.
func (f *frame) deriveCategories() {
	for i := range f.decls {
		d := &f.decls[i]
		if d.Kind != axis.String || len(d.Categories) > 0 {
			continue
		}
		seen := make(map[string]bool)
		for _, s := range f.chart.Series {
			if s.XAxis != d.ID && s.YAxis != d.ID {
				continue
			}
			for _, v := range s.Values {
				if label, ok := v.CategoryLabel(); ok && !seen[label] {
					seen[label] = true
					d.Categories = append(d.Categories, label)
				}
			}
		}
	}
}

// prepareAxes builds the axis set from the chart declarations and prepares
// every axis with the values plotted against it.
func (f *frame) prepareAxes(values map[string][]float64) error {
	set, err := axis.NewSet(f.decls)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAxis, err, "chart %q", f.chart.DisplayName())
	}
	if err := set.Prepare(values, f.plot, f.chart.Horizontal); err != nil {
		return err
	}
	f.axes = set
	return nil
}

// seriesAxes returns the category and value axis of a series.
func (f *frame) seriesAxes(s chart.Series) (cat, val *axis.Axis, err error) {
	if cat, err = f.axes.Lookup(s.XAxis); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidAxis, err, "series %q", s.Name)
	}
	if val, err = f.axes.Lookup(s.YAxis); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidAxis, err, "series %q", s.Name)
	}
	return cat, val, nil
}

// decl returns the working declaration of the given axis.
func (f *frame) decl(id string) axis.Declaration {
	for _, d := range f.decls {
		if d.ID == id {
			return d
		}
	}
	return axis.Declaration{ID: id}
}

// categoryName returns the label of category slot i on the declared axis,
// matching the labels axis.Prepare derives when none are declared.
func categoryName(d axis.Declaration, i int) string {
	if i < len(d.Categories) {
		return d.Categories[i]
	}
	return strconv.Itoa(i + 1)
}

// inSlot reports whether index i has a slot on the declared axis. Values
// past the declared categories of a discrete axis are not drawn.
func (f *frame) inSlot(d axis.Declaration, i int) bool {
	if !d.Kind.IsDiscrete() || len(d.Categories) == 0 || i < len(d.Categories) {
		return true
	}
	f.result.Skipped++
	return false
}

// slot returns the pixel start and width of category i. Continuous
// category axes get n equal slots centered on the index positions.
func slot(cat *axis.Axis, i, n int) (start, width float64) {
	if cat.Kind().IsDiscrete() {
		return cat.SlotStart(i), cat.CategoryExtent
	}
	width = cat.Length() / float64(max(n, 1))
	return cat.ValueToCoordinate(float64(i)) - width/2, width
}

// resolve converts a series value to a position on a. Labels are looked up
// as categories on discrete axes; unknown labels are skipped and counted.
// A quoted number names a category when one matches its text and is used
// as a slot index otherwise.
func (f *frame) resolve(a *axis.Axis, v chart.Value) (float64, bool) {
	switch {
	case !v.Valid:
		return math.NaN(), false
	case v.Text != "" && a.Kind().IsDiscrete():
		if i, ok := a.CategoryIndex(v.Text); ok {
			return float64(i), true
		}
	case v.IsLabel():
		if !a.Kind().IsDiscrete() {
			f.result.Skipped++
			return math.NaN(), false
		}
		i, ok := a.CategoryIndex(v.Label)
		if !ok {
			f.result.Skipped++
			return math.NaN(), false
		}
		return float64(i), true
	}
	return v.Num, true
}

// numericValues collects the numbers each value axis must cover.
func (f *frame) numericValues(values map[string][]float64) {
	for _, s := range f.chart.Series {
		for _, v := range s.Values {
			if n := v.Float(); !math.IsNaN(n) {
				values[s.YAxis] = append(values[s.YAxis], n)
			}
		}
	}
}

// categoryIndexes adds 0..n-1 for each series' category axis so axes
// without declared categories derive one slot per value.
func (f *frame) categoryIndexes(values map[string][]float64) {
	for _, s := range f.chart.Series {
		for i := range s.Values {
			values[s.XAxis] = append(values[s.XAxis], float64(i))
		}
	}
}

// point maps a (category, value) pair to pixels, honoring the chart
// orientation.
func point(cat *axis.Axis, c float64, val *axis.Axis, v float64) svg.Point {
	cp, vp := cat.ValueToCoordinate(c), val.ValueToCoordinate(v)
	if cat.Direction == axis.Horizontal {
		return svg.Point{X: cp, Y: vp}
	}
	return svg.Point{X: vp, Y: cp}
}

// band returns the rectangle spanning [start, start+width] pixels along
// the category axis and between pixels p0 and p1 along the value axis.
func band(cat *axis.Axis, start, width, p0, p1 float64) svg.Rect {
	lo, hi := math.Min(p0, p1), math.Max(p0, p1)
	if cat.Direction == axis.Horizontal {
		return svg.Rect{X: start, Y: lo, W: width, H: hi - lo}
	}
	return svg.Rect{X: lo, Y: start, W: hi - lo, H: width}
}

// fill returns the fill for a series color, as a gradient when enabled.
func (f *frame) fill(color string) string {
	if !f.chart.Gradient {
		return color
	}
	return f.doc.Gradient(svg.Vertical(color, 0.95))
}

func tooltip(series, category string, v float64) string {
	return fmt.Sprintf("%s: %s = %s", series, category, strconv.FormatFloat(v, 'g', -1, 64))
}
