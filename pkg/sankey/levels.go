package sankey

import "github.com/matzehuels/stackchart/pkg/dag"

// AssignLevels assigns every node of g a level and stores it on the graph
// with [dag.DAG.SetLevels]. The returned map holds the same assignment.
//
// # Algorithm
//
//  1. Nodes without incoming edges start at level 0, in insertion order.
//  2. If there are none, the first node with more outgoing than incoming
//     edges (or else the first node) becomes a synthetic source.
//  3. Breadth-first relaxation: a target's level becomes
//     max(current, source+1), and the target is revisited whenever its level
//     grows. Levels are capped at len(nodes)-1, so cycles terminate.
//  4. Nodes never reached take max(assigned parent level)+1, or 0 when no
//     parent has a level.
//
// For acyclic input every edge points to a strictly higher level. For
// cyclic input the result is best effort.
//
// AssignLevels panics if g is nil. An empty graph yields an empty map.
func AssignLevels(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	levels := make(map[string]int, len(nodes))
	if len(nodes) == 0 {
		return levels
	}
	limit := len(nodes) - 1

	queue := make([]string, 0, len(nodes))
	for _, n := range g.Sources() {
		levels[n.ID] = 0
		queue = append(queue, n.ID)
	}
	if len(queue) == 0 {
		src := syntheticSource(g, nodes)
		levels[src] = 0
		queue = append(queue, src)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		next := levels[curr] + 1
		if next > limit {
			continue
		}
		for _, child := range g.Children(curr) {
			if lv, ok := levels[child]; !ok || next > lv {
				levels[child] = next
				queue = append(queue, child)
			}
		}
	}

	for _, n := range nodes {
		if _, ok := levels[n.ID]; ok {
			continue
		}
		lv := 0
		for _, p := range g.Parents(n.ID) {
			if pl, ok := levels[p]; ok && pl+1 > lv {
				lv = pl + 1
			}
		}
		levels[n.ID] = lv
	}

	g.SetLevels(levels)
	return levels
}

func syntheticSource(g *dag.DAG, nodes []*dag.Node) string {
	for _, n := range nodes {
		if g.OutDegree(n.ID) > g.InDegree(n.ID) {
			return n.ID
		}
	}
	return nodes[0].ID
}

// Columns returns the node IDs of every level from 0 to g.MaxLevel() in
// insertion order. Levels without nodes are present as empty slices.
func Columns(g *dag.DAG) map[int][]string {
	cols := make(map[int][]string, g.MaxLevel()+1)
	for lv := 0; lv <= g.MaxLevel(); lv++ {
		cols[lv] = dag.NodeIDs(g.NodesInLevel(lv))
	}
	return cols
}
