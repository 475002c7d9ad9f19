package chart

import (
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Validate checks a chart after SetDefaults. It reports the first problem
// as a coded error: INVALID_CHART_TYPE, INVALID_PLOT_AREA, INVALID_AXIS or
// INVALID_INPUT. Degenerate data (empty series, missing values, zero
// spans) is not an error.
func (c *Chart) Validate() error {
	if _, err := ParseType(string(c.Type)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidChartType, err, "chart %q", c.DisplayName())
	}
	plot := c.PlotArea()
	if err := plot.Validate(); err != nil {
		return err
	}
	if c.Legend != LegendRight && c.Legend != LegendBottom && c.Legend != LegendNone {
		return errors.New(errors.ErrCodeInvalidInput, "legend position %q (must be right, bottom or none)", c.Legend)
	}
	if c.InnerRadius < 0 || c.InnerRadius >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "inner radius %g outside [0, 1)", c.InnerRadius)
	}
	if c.Background != "" {
		if err := errors.ValidateColor(c.Background); err != nil {
			return err
		}
	}
	for _, col := range c.Palette {
		if err := errors.ValidateColor(col); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.Axes))
	for _, d := range c.Axes {
		if err := errors.ValidateAxisID(d.ID); err != nil {
			return err
		}
		if seen[d.ID] {
			return errors.New(errors.ErrCodeInvalidAxis, "duplicate axis id %q", d.ID)
		}
		seen[d.ID] = true
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: min %g above max %g", d.ID, *d.Min, *d.Max)
		}
	}

	for _, s := range c.Series {
		if s.Color != "" {
			if err := errors.ValidateColor(s.Color); err != nil {
				return err
			}
		}
		if !c.Type.Cartesian() {
			continue
		}
		for _, id := range []string{s.XAxis, s.YAxis} {
			if !seen[id] {
				return errors.New(errors.ErrCodeInvalidAxis, "series %q references unknown axis %q", s.Name, id)
			}
		}
	}

	switch c.Type {
	case TypeWaterfall:
		if len(c.Steps) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "waterfall chart %q has no steps", c.DisplayName())
		}
	case TypeSankey:
		for _, l := range c.Links {
			if l.Source == "" || l.Target == "" {
				return errors.New(errors.ErrCodeInvalidInput, "sankey link with empty endpoint")
			}
			if l.Value < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "sankey link %s -> %s has negative value %g", l.Source, l.Target, l.Value)
			}
		}
		if err := c.Sankey.Validate(); err != nil {
			return err
		}
	}
	return nil
}
