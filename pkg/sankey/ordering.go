package sankey

import (
	"maps"
	"slices"

	"github.com/matzehuels/stackchart/pkg/dag"
	"github.com/matzehuels/stackchart/pkg/dag/perm"
)

// OrderColumns returns the top-to-bottom node order of every level.
//
// With OrderDeclaration the insertion order is kept. With OrderBarycenter
// the columns are swept left-to-right and right-to-left passes times; in
// each sweep a column is stably sorted by the mean relative position of
// its neighbors in the previously swept columns. The ordering with the
// fewest crossings between adjacent levels is returned, the declaration
// order winning ties. OrderExhaustive then permutes small columns one at
// a time, keeping any order that lowers the crossing count.
func OrderColumns(g *dag.DAG, ordering Ordering, passes int) map[int][]string {
	cols := Columns(g)
	if ordering == OrderDeclaration || len(cols) < 2 {
		return cols
	}
	best := barycenter(g, cols, passes)
	if ordering == OrderExhaustive {
		refineExhaustive(g, best)
	}
	return best
}

func barycenter(g *dag.DAG, cols map[int][]string, passes int) map[int][]string {
	best := cloneColumns(cols)
	bestCrossings := dag.CountCrossings(g, best)
	if bestCrossings == 0 {
		return best
	}

	levels := slices.Sorted(maps.Keys(cols))
	for pass := 0; pass < passes; pass++ {
		if pass%2 == 0 {
			for _, lv := range levels[1:] {
				sortByBarycenter(cols, lv, func(id string) []string { return g.Parents(id) }, g)
			}
		} else {
			for i := len(levels) - 2; i >= 0; i-- {
				sortByBarycenter(cols, levels[i], func(id string) []string { return g.Children(id) }, g)
			}
		}
		if c := dag.CountCrossings(g, cols); c < bestCrossings {
			best, bestCrossings = cloneColumns(cols), c
			if c == 0 {
				break
			}
		}
	}
	return best
}

func refineExhaustive(g *dag.DAG, cols map[int][]string) {
	crossings := dag.CountCrossings(g, cols)
	for _, lv := range slices.Sorted(maps.Keys(cols)) {
		if crossings == 0 {
			return
		}
		orig := cols[lv]
		if len(orig) < 2 || len(orig) > MaxExhaustiveColumn {
			continue
		}
		best := orig
		for _, p := range perm.Generate(len(orig), 0) {
			cols[lv] = perm.Apply(orig, p)
			if c := dag.CountCrossings(g, cols); c < crossings {
				crossings, best = c, cols[lv]
			}
		}
		cols[lv] = best
	}
}

func sortByBarycenter(cols map[int][]string, lv int, neighbors func(string) []string, g *dag.DAG) {
	pos := make(map[string]float64)
	for _, ids := range cols {
		for i, id := range ids {
			pos[id] = (float64(i) + 0.5) / float64(len(ids))
		}
	}

	col := cols[lv]
	current := dag.PosMap(col)
	center := make(map[string]float64, len(col))
	for _, id := range col {
		var sum float64
		var n int
		for _, nb := range neighbors(id) {
			if node, ok := g.Node(nb); ok && node.Level != lv {
				sum += pos[nb]
				n++
			}
		}
		if n == 0 {
			center[id] = pos[id]
			continue
		}
		center[id] = sum / float64(n)
	}

	slices.SortStableFunc(col, func(a, b string) int {
		ca, cb := center[a], center[b]
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return current[a] - current[b]
	})
}

func cloneColumns(cols map[int][]string) map[int][]string {
	out := make(map[int][]string, len(cols))
	for lv, ids := range cols {
		out[lv] = slices.Clone(ids)
	}
	return out
}
