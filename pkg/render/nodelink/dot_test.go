package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/dag"
)

func flowGraph(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b", Value: 10})
	_ = g.AddEdge(dag.Edge{From: "a", To: "c", Value: 5})
	_ = g.AddEdge(dag.Edge{From: "b", To: "c", Value: 10})
	g.SetLevels(map[string]int{"a": 0, "b": 1, "c": 2})
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(flowGraph(t), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"a" [label="a"]`,
		`"a" -> "b" [penwidth=8.00]`,
		`"a" -> "c" [penwidth=4.50]`,
		`{ rank=same; "b"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "src", Label: "Source", Meta: dag.Metadata{"unit": "TWh"}})
	_ = g.AddNode(dag.Node{ID: "dst"})
	_ = g.AddEdge(dag.Edge{From: "src", To: "dst", Value: 7})
	g.SetLevels(map[string]int{"src": 0, "dst": 1})

	dot := ToDOT(g, Options{Detailed: true})

	for _, want := range []string{"Source", "level: 0", "flow: 7", "unit: TWh", `label="7"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q", want)
		}
	}
}

func TestToDOT_ColumnOrder(t *testing.T) {
	g := dag.New(nil)
	for _, id := range []string{"s", "x", "y"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "s", To: "x", Value: 1})
	_ = g.AddEdge(dag.Edge{From: "s", To: "y", Value: 1})
	g.SetLevels(map[string]int{"s": 0, "x": 1, "y": 1})

	dot := ToDOT(g, Options{Columns: map[int][]string{1: {"y", "x"}}})
	if !strings.Contains(dot, `{ rank=same; "y"; "x"; }`) {
		t.Errorf("ToDOT() ignored column order:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg></svg>")
	if string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}
