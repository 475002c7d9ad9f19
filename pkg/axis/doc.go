// Package axis owns the per-axis state of a chart: kind, computed bounds,
// ticks, category slots and placement around the plot area.
//
// Axes are built in two phases. [NewSet] records the declarations; [Set.Prepare]
// then feeds each axis the values plotted against it, computes nice bounds
// through package scale, lays out ticks and assigns a side. Additional axes
// on the same side are pushed outward by [StackOffset] pixels each.
//
// After preparation, [Axis.ValueToCoordinate] converts data values to pixels:
//
//	set, _ := axis.NewSet([]axis.Declaration{
//	    {ID: "x", Kind: axis.Category, Categories: []string{"Q1", "Q2"}},
//	    {ID: "y", Kind: axis.Numeric, BeginAtZero: true},
//	})
//	_ = set.Prepare(map[string][]float64{"y": {12, 97}}, plot, false)
//	y, _ := set.Get("y")
//	py := y.ValueToCoordinate(50)
//
// # Orientation
//
// The horizontal flag passed to Prepare swaps the pixel direction of the X
// and Y dimensions for the whole chart. It is an argument rather than
// stored state so that no orientation can leak between render calls.
//
// # Unknown categories
//
// [Axis.CategoryIndex] reports whether a label exists instead of silently
// falling back to slot 0, so callers can skip, default or reject the point.
package axis
