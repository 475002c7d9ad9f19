package dag

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func build(t *testing.T, ids []string, edges []Edge) *DAG {
	t.Helper()
	g := New(nil)
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s) error = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s) error = %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) error = %v, want %v", err, ErrInvalidNodeID)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) error = %v, want %v", err, ErrDuplicateNodeID)
	}
	if err := g.EnsureNode("a"); err != nil {
		t.Errorf("EnsureNode(existing) error = %v", err)
	}
	if n, _ := g.Node("a"); n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := build(t, []string{"a", "b"}, nil)
	tests := []struct {
		edge Edge
		want error
	}{
		{Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{Edge{From: "a", To: "b", Value: -1}, ErrNegativeValue},
	}
	for _, tt := range tests {
		if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
			t.Errorf("AddEdge(%+v) error = %v, want %v", tt.edge, err, tt.want)
		}
	}
	if err := g.AddEdge(Edge{From: "a", To: "b", Value: math.NaN()}); err != nil {
		t.Fatalf("AddEdge(NaN) error = %v", err)
	}
	if v := g.Edges()[0].Value; v != 0 {
		t.Errorf("NaN edge stored as %v, want 0", v)
	}
}

func TestTotals(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []Edge{
		{From: "a", To: "b", Value: 10},
		{From: "a", To: "c", Value: 5},
		{From: "b", To: "c", Value: 12},
	})

	tests := []struct {
		id            string
		in, out, thru float64
		inDeg, outDeg int
	}{
		{"a", 0, 15, 15, 0, 2},
		{"b", 10, 12, 12, 1, 1},
		{"c", 17, 0, 17, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := g.InTotal(tt.id); got != tt.in {
				t.Errorf("InTotal = %v, want %v", got, tt.in)
			}
			if got := g.OutTotal(tt.id); got != tt.out {
				t.Errorf("OutTotal = %v, want %v", got, tt.out)
			}
			if got := g.Throughput(tt.id); got != tt.thru {
				t.Errorf("Throughput = %v, want %v", got, tt.thru)
			}
			if g.InDegree(tt.id) != tt.inDeg || g.OutDegree(tt.id) != tt.outDeg {
				t.Errorf("degrees = %d/%d, want %d/%d", g.InDegree(tt.id), g.OutDegree(tt.id), tt.inDeg, tt.outDeg)
			}
		})
	}

	if got := g.Children("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v", got)
	}
	if got := g.Parents("c"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Parents(c) = %v", got)
	}
	if got := len(g.InEdges("c")); got != 2 {
		t.Errorf("len(InEdges(c)) = %d, want 2", got)
	}
	if g.OutEdges("c") != nil {
		t.Error("OutEdges(sink) should be nil")
	}
}

func TestInsertionOrder(t *testing.T) {
	ids := []string{"zeta", "alpha", "mid", "beta"}
	g := build(t, ids, []Edge{{From: "zeta", To: "beta", Value: 1}})

	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Sources() = %v", got)
	}
	if got := NodeIDs(g.Sinks()); !slices.Equal(got, []string{"alpha", "mid", "beta"}) {
		t.Errorf("Sinks() = %v", got)
	}
}

func TestSetLevels(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []Edge{
		{From: "a", To: "b", Value: 1},
		{From: "b", To: "c", Value: 1},
	})
	if err := g.ValidateLevels(); !errors.Is(err, ErrLevelOrder) {
		t.Errorf("ValidateLevels() before assignment = %v, want %v", err, ErrLevelOrder)
	}

	g.SetLevels(map[string]int{"b": 1, "c": 3})
	if got := g.LevelIDs(); !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("LevelIDs() = %v", got)
	}
	if g.MaxLevel() != 3 || g.LevelCount() != 3 {
		t.Errorf("MaxLevel() = %d, LevelCount() = %d", g.MaxLevel(), g.LevelCount())
	}
	if got := NodeIDs(g.NodesInLevel(3)); !slices.Equal(got, []string{"c"}) {
		t.Errorf("NodesInLevel(3) = %v", got)
	}
	if err := g.ValidateLevels(); err != nil {
		t.Errorf("ValidateLevels() = %v", err)
	}
}

func TestValidateCycles(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  error
	}{
		{"chain", []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}, nil},
		{"diamond", []Edge{{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "b", To: "c"}}, nil},
		{"loop", []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"}}, ErrGraphHasCycle},
		{"self", []Edge{{From: "b", To: "b"}}, ErrGraphHasCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, []string{"a", "b", "c"}, tt.edges)
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			if g.HasCycle() != (tt.want != nil) {
				t.Errorf("HasCycle() = %v", g.HasCycle())
			}
		})
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "x"}).DisplayLabel(); got != "x" {
		t.Errorf("DisplayLabel() = %q, want x", got)
	}
	if got := (Node{ID: "x", Label: "Coal"}).DisplayLabel(); got != "Coal" {
		t.Errorf("DisplayLabel() = %q, want Coal", got)
	}
}
