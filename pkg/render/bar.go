package render

import (
	"strconv"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/render/svg"
	"github.com/matzehuels/stackchart/pkg/stack"
)

// stackSeries accumulates every series in the given order. Missing values
// are stacked as zero so the band sequence stays contiguous. bands is
// indexed by series, then category.
func (f *frame) stackSeries(order []int) (*stack.Accumulator, [][]stack.Band) {
	acc := stack.NewAccumulator()
	bands := make([][]stack.Band, len(f.chart.Series))
	for _, si := range order {
		s := f.chart.Series[si]
		d := f.decl(s.XAxis)
		bands[si] = make([]stack.Band, len(s.Values))
		for i, v := range s.Values {
			key := stack.Key{Category: categoryName(d, i), Group: s.Stack, Axis: s.YAxis}
			bands[si][i] = acc.Accumulate(key, s.Name, v.OrZero())
		}
	}
	return acc, bands
}

// stackValues adds the per-axis extents of every stack to values.
func stackValues(acc *stack.Accumulator, values map[string][]float64) {
	for _, st := range acc.Stacks() {
		values[st.Key.Axis] = append(values[st.Key.Axis], st.Negative, st.Positive)
	}
}

// barColumns assigns every series a column within its category slot:
// one column per series when grouped, one per stack group when stacked.
func barColumns(c *chart.Chart) (n int, col []int) {
	col = make([]int, len(c.Series))
	if !c.Stacked {
		for i := range col {
			col[i] = i
		}
		return max(len(col), 1), col
	}
	groups := make(map[string]int)
	for i, s := range c.Series {
		g, ok := groups[s.Stack]
		if !ok {
			g = len(groups)
			groups[s.Stack] = g
		}
		col[i] = g
	}
	return max(len(groups), 1), col
}

func renderBar(f *frame) error {
	c := f.chart
	f.deriveCategories()
	order := c.Type.StackOrder().Indices(len(c.Series))

	values := make(map[string][]float64)
	f.categoryIndexes(values)
	var (
		acc   *stack.Accumulator
		bands [][]stack.Band
	)
	if c.Stacked {
		acc, bands = f.stackSeries(order)
		stackValues(acc, values)
	} else {
		f.numericValues(values)
	}
	if err := f.prepareAxes(values); err != nil {
		return err
	}
	f.drawAxes()

	columns, colOf := barColumns(c)
	for _, si := range order {
		s := c.Series[si]
		cat, val, err := f.seriesAxes(s)
		if err != nil {
			return err
		}
		d := f.decl(s.XAxis)
		fill := f.fill(c.SeriesColor(si))
		g := &svg.Group{ID: "series-" + strconv.Itoa(si), Class: "bar"}

		for i, v := range s.Values {
			if !f.inSlot(d, i) {
				continue
			}
			slotStart, slotWidth := slot(cat, i, len(s.Values))
			width := slotWidth * (1 - 2*groupPadding) / float64(columns)
			start := slotStart + slotWidth*groupPadding + float64(colOf[si])*width

			var p0, p1, value float64
			if acc != nil {
				b := bands[si][i]
				if b.Value == 0 {
					continue
				}
				p0, p1, value = val.ValueToCoordinate(b.Start), val.ValueToCoordinate(b.End), b.Value
			} else {
				n, ok := f.resolve(val, v)
				if !ok {
					continue
				}
				p0, p1, value = val.Baseline(), val.ValueToCoordinate(n), n
			}
			r := band(cat, start, width, p0, p1)
			r.Title = tooltip(s.Name, categoryName(d, i), value)
			r.Style = svg.Style{Fill: fill}
			g.Add(r)
		}
		f.doc.Add(g)
	}

	if acc != nil {
		f.result.Stacks = acc.Stacks()
	}
	f.seriesLegend()
	return nil
}
