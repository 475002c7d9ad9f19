package sankey

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/dag"
)

// Link is the computed ribbon of one flow. The ribbon leaves the source
// node's right edge at X0 between SourceY0 and SourceY1 and enters the
// target node's left edge at X1 between TargetY0 and TargetY1.
type Link struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Value       float64 `json:"value"`
	SourceWidth float64 `json:"source_width"`
	TargetWidth float64 `json:"target_width"`
	X0          float64 `json:"x0"`
	X1          float64 `json:"x1"`
	SourceY0    float64 `json:"source_y0"`
	SourceY1    float64 `json:"source_y1"`
	TargetY0    float64 `json:"target_y0"`
	TargetY1    float64 `json:"target_y1"`
	Curvature   float64 `json:"curvature"`
}

// Controls returns the x coordinates of the two Bézier control points of
// the ribbon edges.
func (l Link) Controls() (c0, c1 float64) {
	dx := (l.X1 - l.X0) * l.Curvature
	return l.X0 + dx, l.X1 - dx
}

// Path returns the closed SVG path outlining the ribbon: the top edge as a
// cubic Bézier from source to target, the target end, the bottom edge back
// and the source end.
func (l Link) Path() string {
	c0, c1 := l.Controls()
	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", num(l.X0), num(l.SourceY0))
	fmt.Fprintf(&b, " C%s,%s %s,%s %s,%s", num(c0), num(l.SourceY0), num(c1), num(l.TargetY0), num(l.X1), num(l.TargetY0))
	fmt.Fprintf(&b, " L%s,%s", num(l.X1), num(l.TargetY1))
	fmt.Fprintf(&b, " C%s,%s %s,%s %s,%s", num(c1), num(l.TargetY1), num(c0), num(l.SourceY1), num(l.X0), num(l.SourceY1))
	b.WriteString(" Z")
	return b.String()
}

func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// LayoutLinks computes the ribbon of every edge of g from a node layout.
// Links are returned in edge insertion order.
//
// A link's thickness at each end is value / node.Value * node.Height for
// that end's node, so one link may be wider at one end than the other when
// the nodes are clamped or carry unbalanced flows. At each node, outgoing
// links are stacked from the top in the order of their targets' vertical
// centers and incoming links in the order of their sources' centers; ties
// keep insertion order.
func LayoutLinks(g *dag.DAG, nodes NodeLayout, curvature float64) []Link {
	edges := g.Edges()
	links := make([]Link, len(edges))
	bySource := make(map[string][]int)
	byTarget := make(map[string][]int)
	for i, e := range edges {
		links[i] = Link{Source: e.From, Target: e.To, Value: e.Value, Curvature: curvature}
		bySource[e.From] = append(bySource[e.From], i)
		byTarget[e.To] = append(byTarget[e.To], i)
	}

	center := func(id string) float64 {
		n, _ := nodes.Node(id)
		return n.CenterY()
	}

	for id, idx := range bySource {
		src, ok := nodes.Node(id)
		if !ok {
			continue
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return compareFloat(center(links[a].Target), center(links[b].Target))
		})
		y := src.Y
		for _, i := range idx {
			w := share(links[i].Value, src)
			links[i].X0 = src.Right()
			links[i].SourceWidth = w
			links[i].SourceY0, links[i].SourceY1 = y, y+w
			y += w
		}
	}

	for id, idx := range byTarget {
		dst, ok := nodes.Node(id)
		if !ok {
			continue
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return compareFloat(center(links[a].Source), center(links[b].Source))
		})
		y := dst.Y
		for _, i := range idx {
			w := share(links[i].Value, dst)
			links[i].X1 = dst.X
			links[i].TargetWidth = w
			links[i].TargetY0, links[i].TargetY1 = y, y+w
			y += w
		}
	}
	return links
}

func share(value float64, n Node) float64 {
	if n.Value <= 0 {
		return 0
	}
	return value / n.Value * n.Height
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Result is a complete sankey layout.
type Result struct {
	Levels    map[string]int `json:"levels"`
	Nodes     []Node         `json:"nodes"`
	Links     []Link         `json:"links"`
	Scale     float64        `json:"scale"`
	Crossings int            `json:"crossings"`
	Cyclic    bool           `json:"cyclic"`
}

// Layout runs AssignLevels, LayoutNodes and LayoutLinks on g. Defaults are
// applied to a copy of cfg. It fails only for an invalid plot area or
// config; cyclic graphs are laid out best effort and reported in
// Result.Cyclic.
func Layout(g *dag.DAG, plot axis.PlotArea, cfg Config) (*Result, error) {
	if err := plot.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	levels := AssignLevels(g)
	nodes := LayoutNodes(g, plot, cfg)
	links := LayoutLinks(g, nodes, cfg.Bend())
	return &Result{
		Levels:    levels,
		Nodes:     nodes.Nodes,
		Links:     links,
		Scale:     nodes.Scale,
		Crossings: dag.CountCrossings(g, nodes.Columns),
		Cyclic:    g.HasCycle(),
	}, nil
}
