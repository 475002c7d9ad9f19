package sankey_test

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/dag"
	"github.com/matzehuels/stackchart/pkg/sankey"
)

func ExampleAssignLevels() {
	g := dag.New(nil)
	for _, id := range []string{"A", "B", "C"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A", To: "B", Value: 5})
	_ = g.AddEdge(dag.Edge{From: "B", To: "C", Value: 5})
	_ = g.AddEdge(dag.Edge{From: "A", To: "C", Value: 2})

	levels := sankey.AssignLevels(g)
	fmt.Println(levels["A"], levels["B"], levels["C"])
	// Output:
	// 0 1 2
}

func ExampleLayout() {
	g := dag.New(nil)
	for _, id := range []string{"coal", "gas", "grid"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "coal", To: "grid", Value: 60})
	_ = g.AddEdge(dag.Edge{From: "gas", To: "grid", Value: 40})

	res, err := sankey.Layout(g, axis.PlotArea{Width: 420, Height: 210}, sankey.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range res.Nodes {
		fmt.Printf("%s level=%d x=%g y=%g h=%g\n", n.ID, n.Level, n.X, n.Y, n.Height)
	}
	// Output:
	// coal level=0 x=0 y=0 h=120
	// gas level=0 x=0 y=130 h=80
	// grid level=1 x=400 y=5 h=200
}
