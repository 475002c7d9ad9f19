package dag

import (
	"errors"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrNegativeValue is returned by [DAG.AddEdge] for links carrying a
	// negative flow.
	ErrNegativeValue = errors.New("link value must not be negative")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrLevelOrder is returned by [DAG.ValidateLevels] when an edge does not
	// point from a lower level to a strictly higher one.
	ErrLevelOrder = errors.New("edge target level must exceed source level")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black
	// coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil after AddNode or New.
type Metadata map[string]any

// Node is a vertex of a flow graph. Level is the column the node is drawn
// in; it is assigned by layer assignment and is 0 until then.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label; ID when empty
	Color string   // Optional fill color
	Level int      // Column assignment (0 = source column)
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns Label, or ID when no label is set.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed flow of Value units from one node to another.
type Edge struct {
	From  string   // Source node ID
	To    string   // Target node ID
	Value float64  // Flow carried by the edge, never negative
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a directed graph of weighted flows. Despite the name it may hold
// cycles while being built; [DAG.Validate] reports them. Nodes keep their
// insertion order, which every query that returns several nodes preserves.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]int // nodeID -> edge indexes
	incoming map[string][]int // nodeID -> edge indexes
	levels   map[int][]*Node  // level -> nodes in that level
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
		levels:   make(map[int][]*Node),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph and indexes it by its Level.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node)
	d.levels[node.Level] = append(d.levels[node.Level], node)
	return nil
}

// EnsureNode adds a node with the given ID unless it already exists.
func (d *DAG) EnsureNode(id string) error {
	if _, ok := d.nodes[id]; ok {
		return nil
	}
	return d.AddNode(Node{ID: id})
}

// SetLevels updates the level assignments for nodes and rebuilds the level
// index. Nodes not present in the map retain their current level.
func (d *DAG) SetLevels(levels map[string]int) {
	d.levels = make(map[int][]*Node)
	for _, n := range d.order {
		if lv, ok := levels[n.ID]; ok {
			n.Level = lv
		}
		d.levels[n.Level] = append(d.levels[n.Level], n)
	}
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints and ErrNegativeValue for negative flows. NaN values are stored
// as zero. Multiple edges between the same nodes are allowed.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if math.IsNaN(e.Value) {
		e.Value = 0
	}
	if e.Value < 0 {
		return ErrNegativeValue
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	i := len(d.edges) - 1
	d.outgoing[e.From] = append(d.outgoing[e.From], i)
	d.incoming[e.To] = append(d.incoming[e.To], i)
	return nil
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// OutEdges returns the edges leaving the node in insertion order.
func (d *DAG) OutEdges(id string) []Edge { return d.collect(d.outgoing[id]) }

// InEdges returns the edges entering the node in insertion order.
func (d *DAG) InEdges(id string) []Edge { return d.collect(d.incoming[id]) }

func (d *DAG) collect(idx []int) []Edge {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = d.edges[j]
	}
	return out
}

// Children returns the target IDs of the node's outgoing edges, one per
// edge. Returns nil if the node has no children or doesn't exist.
func (d *DAG) Children(id string) []string {
	var ids []string
	for _, i := range d.outgoing[id] {
		ids = append(ids, d.edges[i].To)
	}
	return ids
}

// Parents returns the source IDs of the node's incoming edges, one per
// edge. Returns nil if the node has no parents or doesn't exist.
func (d *DAG) Parents(id string) []string {
	var ids []string
	for _, i := range d.incoming[id] {
		ids = append(ids, d.edges[i].From)
	}
	return ids
}

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// InTotal returns the summed value of the node's incoming edges.
func (d *DAG) InTotal(id string) float64 {
	var sum float64
	for _, i := range d.incoming[id] {
		sum += d.edges[i].Value
	}
	return sum
}

// OutTotal returns the summed value of the node's outgoing edges.
func (d *DAG) OutTotal(id string) float64 {
	var sum float64
	for _, i := range d.outgoing[id] {
		sum += d.edges[i].Value
	}
	return sum
}

// Throughput returns max(InTotal, OutTotal), the flow a node is sized by.
func (d *DAG) Throughput(id string) float64 {
	return math.Max(d.InTotal(id), d.OutTotal(id))
}

// NodesInLevel returns all nodes assigned to the given level in insertion
// order. Returns nil if the level is empty.
func (d *DAG) NodesInLevel(level int) []*Node { return d.levels[level] }

// LevelCount returns the number of distinct levels in the graph.
func (d *DAG) LevelCount() int { return len(d.levels) }

// LevelIDs returns all level indices in ascending order.
func (d *DAG) LevelIDs() []int {
	return slices.Sorted(maps.Keys(d.levels))
}

// MaxLevel returns the highest level index, or 0 if the graph is empty.
func (d *DAG) MaxLevel() int {
	if len(d.levels) == 0 {
		return 0
	}
	ids := d.LevelIDs()
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges in insertion order.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.order {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate checks graph integrity and returns nil if valid. It returns
// ErrInvalidEdgeEndpoint if an edge references a missing node, or
// ErrGraphHasCycle if a directed cycle exists.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	return d.detectCycles()
}

// ValidateLevels returns ErrLevelOrder unless every edge points to a
// strictly higher level.
func (d *DAG) ValidateLevels() error {
	for _, e := range d.edges {
		if d.nodes[e.To].Level <= d.nodes[e.From].Level {
			return ErrLevelOrder
		}
	}
	return nil
}

// HasCycle reports whether the graph contains a directed cycle.
func (d *DAG) HasCycle() bool { return d.detectCycles() != nil }

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, i := range d.outgoing[id] {
			child := d.edges[i].To
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, n := range d.order {
		if color[n.ID] == white {
			dfs(n.ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
