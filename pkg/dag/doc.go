// Package dag provides a directed graph of weighted flows, the input of the
// sankey layout.
//
// # Overview
//
// Nodes are the boxes of a sankey diagram and edges the flows between them.
// Every edge carries a non-negative Value; a node's size is derived from
// [DAG.Throughput], the larger of its incoming and outgoing totals. Nodes
// carry a Level, the column they are drawn in, which is filled in by the
// sankey package's level assignment and indexed for [DAG.NodesInLevel].
//
// Nodes keep their insertion order. Every query returning several nodes or
// edges preserves it, so layouts built on the graph are deterministic.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "coal"})
//	g.AddNode(dag.Node{ID: "grid"})
//	g.AddEdge(dag.Edge{From: "coal", To: "grid", Value: 40})
//
// # Cycles
//
// The graph does not reject cycles while it is being built: user data may
// contain them and the layout treats them on a best-effort basis.
// [DAG.Validate] reports ErrGraphHasCycle so that callers can warn about it.
// After level assignment, [DAG.ValidateLevels] checks that every edge points
// to a strictly higher level.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] use a Fenwick tree (binary
// indexed tree) to count inversions in O(E log V) time. The sankey layout
// uses them to keep the node ordering with the fewest crossings.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
