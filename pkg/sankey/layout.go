package sankey

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/axis"
	"github.com/matzehuels/stackchart/pkg/dag"
)

// Node is the computed band of one sankey node.
type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Color  string  `json:"color,omitempty"`
	Level  int     `json:"level"`
	Index  int     `json:"index"` // position within the level, top to bottom
	In     float64 `json:"in"`
	Out    float64 `json:"out"`
	Value  float64 `json:"value"` // max(In, Out)
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the node's right edge.
func (n Node) Right() float64 { return n.X + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// CenterY returns the vertical center of the node.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// NodeLayout is the result of LayoutNodes.
type NodeLayout struct {
	Nodes        []Node           `json:"nodes"`
	Scale        float64          `json:"scale"` // pixels per flow unit
	LevelPadding float64          `json:"level_padding"`
	Columns      map[int][]string `json:"columns"`

	index map[string]int
}

// Node returns the layout of the node with the given ID.
func (l NodeLayout) Node(id string) (Node, bool) {
	i, ok := l.index[id]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// LayoutNodes positions the nodes of g inside plot. Levels must already be
// assigned, see [AssignLevels]. cfg is used as given; call
// [Config.SetDefaults] first for the default spacing.
//
// Node x is plot.X + level*(NodeWidth+LevelPadding). When cfg.LevelPadding
// is zero it is chosen so that the last column touches the right edge of
// the plot area.
func LayoutNodes(g *dag.DAG, plot axis.PlotArea, cfg Config) NodeLayout {
	cols := OrderColumns(g, cfg.Ordering, cfg.Passes)
	numLevels := g.MaxLevel() + 1

	pad := cfg.LevelPadding
	if pad <= 0 && numLevels > 1 {
		pad = math.Max(0, (plot.Width-float64(numLevels)*cfg.NodeWidth)/float64(numLevels-1))
	}

	ky := math.Inf(1)
	for lv := 0; lv < numLevels; lv++ {
		ids := cols[lv]
		var sum float64
		for _, id := range ids {
			sum += g.Throughput(id)
		}
		if sum <= 0 {
			continue
		}
		avail := math.Max(0, plot.Height-float64(len(ids)-1)*cfg.NodePadding)
		ky = math.Min(ky, avail/sum)
	}
	if math.IsInf(ky, 1) {
		ky = 0
	}

	out := NodeLayout{
		Nodes:        make([]Node, 0, g.NodeCount()),
		Scale:        ky,
		LevelPadding: pad,
		Columns:      cols,
		index:        make(map[string]int, g.NodeCount()),
	}
	for lv := 0; lv < numLevels; lv++ {
		ids := cols[lv]
		if len(ids) == 0 {
			continue
		}

		heights := make([]float64, len(ids))
		total := float64(len(ids)-1) * cfg.NodePadding
		for i, id := range ids {
			heights[i] = clampHeight(g.Throughput(id)*ky, cfg)
			total += heights[i]
		}

		x := plot.X + float64(lv)*(cfg.NodeWidth+pad)
		y := plot.Y + math.Max(0, (plot.Height-total)/2)
		for i, id := range ids {
			n, _ := g.Node(id)
			out.index[id] = len(out.Nodes)
			out.Nodes = append(out.Nodes, Node{
				ID:     id,
				Label:  n.DisplayLabel(),
				Color:  n.Color,
				Level:  lv,
				Index:  i,
				In:     g.InTotal(id),
				Out:    g.OutTotal(id),
				Value:  g.Throughput(id),
				X:      x,
				Y:      y,
				Width:  cfg.NodeWidth,
				Height: heights[i],
			})
			y += heights[i] + cfg.NodePadding
		}
	}
	return out
}

func clampHeight(h float64, cfg Config) float64 {
	h = math.Max(h, cfg.MinNodeHeight)
	if cfg.MaxNodeHeight > 0 {
		h = math.Min(h, cfg.MaxNodeHeight)
	}
	return h
}
