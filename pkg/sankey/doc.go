// Package sankey lays out flow diagrams: it assigns every node a column
// (level), sizes and positions the nodes of each column, and computes the
// ribbons connecting them.
//
// # Levels
//
// [AssignLevels] performs a breadth-first longest-path leveling from the
// source nodes of a [dag.DAG]: every node ends up one column to the right
// of the deepest node flowing into it. For A→B→C plus A→C, C lands in
// level 2, not 1.
//
// Cyclic input is handled on a best-effort basis. When no node lacks
// incoming flows, the first node with more outgoing than incoming edges is
// used as a synthetic source. Levels never exceed len(nodes)-1, which
// bounds the relaxation on cycles. Nodes unreachable from any source take
// one more than the highest assigned level among their parents, or 0.
//
// # Nodes
//
// [LayoutNodes] sizes nodes by [dag.DAG.Throughput]. One pixels-per-unit
// factor is shared by every column so that equal flows have equal
// thickness everywhere; it is the largest factor that lets the busiest
// column fit the plot height. Heights are clamped to
// [Config.MinNodeHeight] and [Config.MaxNodeHeight] and each column is
// centered vertically.
//
// # Links
//
// [LayoutLinks] gives each link a thickness at each end proportional to
// its share of that node's throughput. Links leave and enter a node stacked
// from the top, ordered by the vertical position of the node at their other
// end, which keeps ribbons from crossing right at the node. The ribbon
// edges are cubic Bézier curves whose control points sit
// [Config.Curvature] of the way between the two columns.
package sankey
